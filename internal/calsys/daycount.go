// Package calsys defines the universal day axis shared by every calendar
// system of this module, the contract those systems implement, and the
// proleptic Gregorian and Julian systems the other calendars are measured
// against.
//
// A DayCount is a signed number of days relative to 1970-01-01 (proleptic
// Gregorian). Every calendar converts its own date tuples to and from this
// axis, so converting between two calendars is always a two-step hop:
//
//	d, err := hebrew.Calendar{}.ToDayCount(date)
//	g, err := calsys.Gregorian.FromDayCount(d)
package calsys

import (
	"fmt"
	"time"
)

// secondsPerDay is used when bridging to time.Time.
const secondsPerDay = 86400

// DayCount is the number of days since 1970-01-01.
type DayCount int64

// Plus returns the day count shifted by n days.
func (d DayCount) Plus(n int64) DayCount {
	return d + DayCount(n)
}

// Time returns midnight UTC of the day.
func (d DayCount) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// FromTime returns the day count of the calendar date of t in its own location.
// The time of day is ignored.
func FromTime(t time.Time) DayCount {
	y, m, dom := t.Date()
	return DayCount(gregorianToDays(int64(y), int64(m), int64(dom)))
}

// Era identifies an era of one calendar family (e.g. anno mundi).
type Era string

// Date is an era/year/month/day tuple of a specific calendar system.
// Variant is only set for variant calendars (tabulated tables) and names
// the table the date belongs to.
type Date struct {
	Era     Era
	Year    int
	Month   int
	Day     int
	Variant string
}

// String renders the tuple as era-yyyy-mm-dd with an optional [variant] suffix.
func (d Date) String() string {
	s := fmt.Sprintf("%s-%04d-%02d-%02d", d.Era, d.Year, d.Month, d.Day)
	if d.Variant != "" {
		s += "[" + d.Variant + "]"
	}
	return s
}

// FloorDiv and FloorMod round toward negative infinity, unlike / and %.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func FloorMod(a, b int64) int64 {
	return a - FloorDiv(a, b)*b
}
