// Package history resolves historic year numbering: where a civil year began
// under the conventions in force at the time (new-year rules), which year
// number a contemporary would have written (the displayed year), and the
// Julian to Gregorian cutover.
package history

import (
	"cmp"
	"fmt"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// Historic eras. Years of every era map linearly onto anno Domini.
const (
	BC            calsys.Era = "BC"
	AD            calsys.Era = "AD"
	Hispanic      calsys.Era = "HISPANIC"
	Byzantine     calsys.Era = "BYZANTINE"
	AbUrbeCondita calsys.Era = "AB_URBE_CONDITA"
)

// Eras lists the historic eras in canonical order.
var Eras = []calsys.Era{BC, AD, Hispanic, Byzantine, AbUrbeCondita}

// ParseEra accepts the names above case-sensitively.
func ParseEra(s string) (calsys.Era, error) {
	for _, e := range Eras {
		if string(e) == s {
			return e, nil
		}
	}
	return "", calsys.NewArgument("%s: %q", config.ErrUnknownEra, s)
}

// AnnoDomini converts a year of era into the astronomical AD year (1 BC is 0).
func AnnoDomini(era calsys.Era, yearOfEra int) int {
	switch era {
	case BC:
		return 1 - yearOfEra
	case Hispanic:
		return yearOfEra - 38
	case Byzantine:
		return yearOfEra - 5508
	case AbUrbeCondita:
		return yearOfEra - 753
	default:
		return yearOfEra
	}
}

// YearOfEra is the inverse of AnnoDomini.
func YearOfEra(era calsys.Era, annoDomini int) int {
	switch era {
	case BC:
		return 1 - annoDomini
	case Hispanic:
		return annoDomini + 38
	case Byzantine:
		return annoDomini + 5508
	case AbUrbeCondita:
		return annoDomini + 753
	default:
		return annoDomini
	}
}

// HistoricDate is a date of the historic calendar written in one of the
// historic eras.
type HistoricDate struct {
	Era       calsys.Era
	YearOfEra int
	Month     int
	Day       int
}

// newDate builds a date in era from an anno Domini year.
func newDate(era calsys.Era, annoDomini, month, day int) HistoricDate {
	return HistoricDate{Era: era, YearOfEra: YearOfEra(era, annoDomini), Month: month, Day: day}
}

// AnnoDomini returns the astronomical year of the date.
func (d HistoricDate) AnnoDomini() int {
	return AnnoDomini(d.Era, d.YearOfEra)
}

// Compare orders dates chronologically regardless of their eras.
func (d HistoricDate) Compare(o HistoricDate) int {
	if c := cmp.Compare(d.AnnoDomini(), o.AnnoDomini()); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// Date returns the tuple as a calsys.Date.
func (d HistoricDate) Date() calsys.Date {
	return calsys.Date{Era: d.Era, Year: d.YearOfEra, Month: d.Month, Day: d.Day}
}

func (d HistoricDate) String() string {
	return fmt.Sprintf("%s-%04d-%02d-%02d", d.Era, d.YearOfEra, d.Month, d.Day)
}
