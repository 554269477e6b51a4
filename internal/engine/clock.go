package engine

import "time"

// Clock abstracts time.Now() so that "today" can be fixed in tests. The
// generated feed covers the Gregorian years around Clock.Now().
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
