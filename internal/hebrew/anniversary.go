package hebrew

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// Anniversary selects how a Hebrew event recurs in later years.
type Anniversary int

const (
	// Birthday keeps an Adar birthday in the last month of the year and
	// moves the 30th of a short month to the first of the next one.
	Birthday Anniversary = iota

	// Yahrzeit follows the customary rules for the anniversary of a death
	// (Dershowitz and Reingold, Calendrical Calculations).
	Yahrzeit
)

func (a Anniversary) String() string {
	switch a {
	case Birthday:
		return config.KindBirthday
	case Yahrzeit:
		return config.KindYahrzeit
	default:
		return fmt.Sprintf("Anniversary(%d)", int(a))
	}
}

// ParseAnniversary accepts "birthday" or "yahrzeit" in any case.
func ParseAnniversary(s string) (Anniversary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case config.KindBirthday:
		return Birthday, nil
	case config.KindYahrzeit:
		return Yahrzeit, nil
	default:
		return 0, calsys.NewArgument("%s: %q", config.ErrUnknownKind, s)
	}
}

// EventOf converts a date of any calendar system into the Hebrew date the
// anniversary rules work on.
func EventOf(sys calsys.System, date calsys.Date) (calsys.Date, error) {
	return calsys.Convert(sys, Calendar{}, date)
}

// InHebrewYear returns the anniversary of event in the Hebrew year hyear.
// The event must be a valid Hebrew date.
func (a Anniversary) InHebrewYear(event calsys.Date, hyear int) (calsys.Date, error) {
	if !(Calendar{}).IsValid(event.Era, event.Year, event.Month, event.Day) {
		return calsys.Date{}, calsys.NewInvalidDate("%s: %s", config.ErrAnniversary, event)
	}
	if hyear < MinYear || hyear > MaxYear {
		return calsys.Date{}, calsys.NewOutOfRange("hebrew year %d", hyear)
	}

	var days calsys.DayCount
	switch a {
	case Birthday:
		days = birthday(Month(event.Month), event.Day, hyear)
	case Yahrzeit:
		days = yahrzeit(event.Year, Month(event.Month), event.Day, hyear)
	default:
		return calsys.Date{}, calsys.NewArgument("%s: %s", config.ErrUnknownKind, a)
	}
	return Calendar{}.FromDayCount(days)
}

func birthday(month Month, day, hyear int) calsys.DayCount {
	switch {
	case month == AdarII:
		// The last month of the year, whatever the target year has.
		return toDays(hyear, AdarII, day)
	case month == AdarI && !IsLeapYear(hyear):
		month = AdarII
	}
	if day <= 29 {
		return toDays(hyear, month, day)
	}
	return toDays(hyear, month, 1).Plus(int64(day - 1))
}

func yahrzeit(year int, month Month, day, hyear int) calsys.DayCount {
	switch {
	case month == Heshvan && day == 30 && MonthLength(year+1, Heshvan) == 29:
		return toDays(hyear, Kislev, 1).Plus(-1)
	case month == Kislev && day == 30 && MonthLength(year+1, Kislev) == 29:
		return toDays(hyear, Tevet, 1).Plus(-1)
	case month == AdarII && IsLeapYear(year):
		return toDays(hyear, AdarII, day)
	}

	biblical := month.Biblical(false)
	leap := IsLeapYear(hyear)
	if biblical == 12 && day == 30 && !leap {
		return toDays(hyear, Shevat, 30)
	}
	return toDays(hyear, MonthOfBiblical(biblical, leap), 1).Plus(int64(day - 1))
}

// ForGregorianYear returns the Gregorian dates, in ascending order, on which
// the anniversary of event falls during gyear. Most years have one, some
// have two, and years beyond the Hebrew range have none.
func (a Anniversary) ForGregorianYear(event calsys.Date, gyear int) ([]calsys.Date, error) {
	cal := Calendar{}
	if !cal.IsValid(event.Era, event.Year, event.Month, event.Day) {
		return nil, calsys.NewInvalidDate("%s: %s", config.ErrAnniversary, event)
	}

	var first int
	switch jan1 := calsys.GregorianDays(gyear, 1, 1); {
	case jan1 < cal.MinDayCount():
		first = MinYear - 1
	case jan1 > cal.MaxDayCount():
		first = MaxYear
	default:
		d, err := cal.FromDayCount(jan1)
		if err != nil {
			return nil, err
		}
		first = d.Year
	}

	var dates []calsys.Date
	for hyear := first; hyear <= first+1; hyear++ {
		if hyear < MinYear || hyear > MaxYear {
			continue
		}
		date, err := a.InHebrewYear(event, hyear)
		if err != nil {
			return nil, err
		}
		days, err := cal.ToDayCount(date)
		if err != nil {
			return nil, err
		}
		y, m, d := calsys.GregorianDate(days)
		if y == gyear {
			dates = append(dates, calsys.Date{Era: calsys.CommonEra, Year: y, Month: m, Day: d})
		}
	}
	return dates, nil
}
