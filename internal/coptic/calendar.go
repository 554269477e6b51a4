// Package coptic implements the Coptic (Alexandrian) calendar: twelve months
// of thirty days followed by five or six epagomenal days, with a leap year
// every fourth year.
package coptic

import (
	"github.com/tartampluch/go-calendars/internal/calsys"
)

// AnnoMartyrum (era of the martyrs) is the only era of the Coptic calendar.
const AnnoMartyrum calsys.Era = "em"

const (
	MinYear = 1
	MaxYear = 9999

	// Epagomenae is the thirteenth, short month.
	Epagomenae = 13
)

// epoch is 1 Thout 1 AM (29 August 284, Julian).
var epoch = calsys.JulianDays(284, 8, 29)

// Calendar is the Coptic calendar for years 1 to 9999.
type Calendar struct{}

var _ calsys.System = Calendar{}

// IsLeapYear reports whether the year ends with six epagomenal days.
func IsLeapYear(year int) bool {
	return calsys.FloorMod(int64(year), 4) == 3
}

func monthLength(year, month int) int {
	if month < Epagomenae {
		return 30
	}
	if IsLeapYear(year) {
		return 6
	}
	return 5
}

func toDays(year, month, day int) calsys.DayCount {
	y := int64(year)
	return epoch.Plus(-1 + 365*(y-1) + calsys.FloorDiv(y, 4) + 30*int64(month-1) + int64(day))
}

func (c Calendar) ToDayCount(date calsys.Date) (calsys.DayCount, error) {
	if !c.IsValid(date.Era, date.Year, date.Month, date.Day) {
		return 0, calsys.NewInvalidDate("%s", date)
	}
	return toDays(date.Year, date.Month, date.Day), nil
}

func (c Calendar) FromDayCount(days calsys.DayCount) (calsys.Date, error) {
	if err := calsys.CheckRange(c, days); err != nil {
		return calsys.Date{}, err
	}
	year := int(calsys.FloorDiv(4*int64(days-epoch)+1463, 1461))
	offset := int(days - toDays(year, 1, 1))
	month := offset/30 + 1
	day := offset%30 + 1
	return calsys.Date{Era: AnnoMartyrum, Year: year, Month: month, Day: day}, nil
}

func (Calendar) MinDayCount() calsys.DayCount {
	return toDays(MinYear, 1, 1)
}

func (Calendar) MaxDayCount() calsys.DayCount {
	return toDays(MaxYear, Epagomenae, monthLength(MaxYear, Epagomenae))
}

func (Calendar) IsValid(era calsys.Era, year, month, day int) bool {
	return era == AnnoMartyrum && year >= MinYear && year <= MaxYear &&
		month >= 1 && month <= Epagomenae && day >= 1 && day <= monthLength(year, month)
}

func (Calendar) LengthOfMonth(era calsys.Era, year, month int) (int, error) {
	if era != AnnoMartyrum {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	if year < MinYear || year > MaxYear || month < 1 || month > Epagomenae {
		return 0, calsys.NewOutOfRange("year=%d, month=%d", year, month)
	}
	return monthLength(year, month), nil
}

func (Calendar) LengthOfYear(era calsys.Era, year int) (int, error) {
	if era != AnnoMartyrum {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	if year < MinYear || year > MaxYear {
		return 0, calsys.NewOutOfRange("year=%d", year)
	}
	if IsLeapYear(year) {
		return 366, nil
	}
	return 365, nil
}

func (Calendar) Eras() []calsys.Era {
	return []calsys.Era{AnnoMartyrum}
}

// RelatedYear projects Coptic dates onto the Gregorian year in which their
// year began (1 Thout).
var RelatedYear = calsys.RelatedYear{System: Calendar{}}
