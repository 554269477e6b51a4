package calsys

// System is the transform contract every calendar of this module implements.
//
// ToDayCount and FromDayCount are mutual inverses over [MinDayCount, MaxDayCount].
// FromDayCount fails with ErrOutOfRange outside that range, ToDayCount fails
// with ErrInvalidDate (or ErrOutOfRange for tuples beyond the coverage) when
// the tuple is not valid.
type System interface {
	ToDayCount(date Date) (DayCount, error)
	FromDayCount(days DayCount) (Date, error)
	MinDayCount() DayCount
	MaxDayCount() DayCount
	IsValid(era Era, year, month, day int) bool
	LengthOfMonth(era Era, year, month int) (int, error)
	LengthOfYear(era Era, year int) (int, error)
	Eras() []Era
}

// Convert maps a date of one system onto another through the day axis.
func Convert(from, to System, date Date) (Date, error) {
	days, err := from.ToDayCount(date)
	if err != nil {
		return Date{}, err
	}
	return to.FromDayCount(days)
}

// CheckRange fails with ErrOutOfRange if days lies outside the system's coverage.
func CheckRange(s System, days DayCount) error {
	if days < s.MinDayCount() || days > s.MaxDayCount() {
		return NewOutOfRange("day count %d not in [%d, %d]", days, s.MinDayCount(), s.MaxDayCount())
	}
	return nil
}
