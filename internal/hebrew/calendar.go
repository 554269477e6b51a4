// Package hebrew implements the arithmetic Hebrew calendar and the rules
// for recurring Hebrew anniversaries (birthdays and yahrzeits).
package hebrew

import (
	"github.com/tartampluch/go-calendars/internal/calsys"
)

// AnnoMundi is the only era of the Hebrew calendar.
const AnnoMundi calsys.Era = "am"

// Supported years.
const (
	MinYear = 1
	MaxYear = 9999
)

// epoch is 1 Tishri AM 1 (7 October 3761 BC, Julian).
var epoch = calsys.JulianDays(-3760, 10, 7)

// Calendar is the arithmetic Hebrew calendar. Month numbers of its dates are
// Month values.
type Calendar struct{}

var _ calsys.System = Calendar{}

// IsLeapYear reports whether the year has thirteen months.
func IsLeapYear(year int) bool {
	return calsys.FloorMod(7*int64(year)+1, 19) < 7
}

// elapsedDays counts the days from the epoch's molad to the new year,
// applying the molad zaken and GaTaRaD/BeTUTaKPaT postponements in part.
func elapsedDays(year int) int64 {
	monthsElapsed := calsys.FloorDiv(235*int64(year)-234, 19)
	partsElapsed := 12084 + 13753*monthsElapsed
	days := 29*monthsElapsed + calsys.FloorDiv(partsElapsed, 25920)
	if calsys.FloorMod(3*(days+1), 7) < 3 {
		days++
	}
	return days
}

// yearLengthCorrection delays the new year so that no year has 356 days and
// the preceding year never has 382 days.
func yearLengthCorrection(year int) int64 {
	ny0, ny1, ny2 := elapsedDays(year-1), elapsedDays(year), elapsedDays(year+1)
	switch {
	case ny2-ny1 == 356:
		return 2
	case ny1-ny0 == 382:
		return 1
	default:
		return 0
	}
}

// NewYear returns the day of 1 Tishri of the year, unchecked.
func NewYear(year int) calsys.DayCount {
	return epoch.Plus(elapsedDays(year) + yearLengthCorrection(year))
}

// DaysInYear returns 353, 354 or 355 for common years and 383, 384 or 385
// for leap years.
func DaysInYear(year int) int {
	return int(NewYear(year+1) - NewYear(year))
}

// MonthLength returns the number of days of the month in the year, unchecked.
// AdarI has no days in a common year.
func MonthLength(year int, m Month) int {
	switch m {
	case Heshvan:
		if DaysInYear(year)%10 == 5 {
			return 30
		}
		return 29
	case Kislev:
		if DaysInYear(year)%10 == 3 {
			return 29
		}
		return 30
	case AdarI:
		if !IsLeapYear(year) {
			return 0
		}
		return 30
	case Tevet, AdarII, Iyar, Tamuz, Elul:
		return 29
	default:
		return 30
	}
}

func (Calendar) ToDayCount(date calsys.Date) (calsys.DayCount, error) {
	if !(Calendar{}).IsValid(date.Era, date.Year, date.Month, date.Day) {
		return 0, calsys.NewInvalidDate("%s", date)
	}
	return toDays(date.Year, Month(date.Month), date.Day), nil
}

func toDays(year int, month Month, day int) calsys.DayCount {
	d := NewYear(year)
	for m := Tishri; m < month; m++ {
		d = d.Plus(int64(MonthLength(year, m)))
	}
	return d.Plus(int64(day - 1))
}

func (c Calendar) FromDayCount(days calsys.DayCount) (calsys.Date, error) {
	if err := calsys.CheckRange(c, days); err != nil {
		return calsys.Date{}, err
	}

	// The mean-year estimate may undershoot but never overshoots by more
	// than one year.
	approx := int(calsys.FloorDiv(int64(days-epoch)*98496, 35975351)) + 1
	year := approx - 1
	for NewYear(year+1) <= days {
		year++
	}

	start := NewYear(year)
	month := Tishri
	for {
		n := calsys.DayCount(MonthLength(year, month))
		if days < start+n {
			break
		}
		start += n
		month++
	}
	return calsys.Date{Era: AnnoMundi, Year: year, Month: int(month), Day: int(days-start) + 1}, nil
}

func (Calendar) MinDayCount() calsys.DayCount {
	return NewYear(MinYear)
}

func (Calendar) MaxDayCount() calsys.DayCount {
	return NewYear(MaxYear+1) - 1
}

func (Calendar) IsValid(era calsys.Era, year, month, day int) bool {
	if era != AnnoMundi || year < MinYear || year > MaxYear ||
		month < int(Tishri) || month > int(Elul) || day < 1 {
		return false
	}
	return day <= MonthLength(year, Month(month))
}

func (Calendar) LengthOfMonth(era calsys.Era, year, month int) (int, error) {
	if era != AnnoMundi {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	if year < MinYear || year > MaxYear || month < int(Tishri) || month > int(Elul) {
		return 0, calsys.NewOutOfRange("year=%d, month=%d", year, month)
	}
	if Month(month) == AdarI && !IsLeapYear(year) {
		return 0, calsys.NewInvalidDate("%s does not exist in common year %d", AdarI, year)
	}
	return MonthLength(year, Month(month)), nil
}

func (Calendar) LengthOfYear(era calsys.Era, year int) (int, error) {
	if era != AnnoMundi {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	if year < MinYear || year > MaxYear {
		return 0, calsys.NewOutOfRange("year=%d", year)
	}
	return DaysInYear(year), nil
}

func (Calendar) Eras() []calsys.Era {
	return []calsys.Era{AnnoMundi}
}

// Of returns the Hebrew date for year, month and day without validation.
func Of(year int, month Month, day int) calsys.Date {
	return calsys.Date{Era: AnnoMundi, Year: year, Month: int(month), Day: day}
}

// RelatedYear projects Hebrew dates onto the Gregorian year in which their
// year began (1 Tishri).
var RelatedYear = calsys.RelatedYear{System: Calendar{}}
