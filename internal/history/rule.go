package history

import (
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// NewYearRule is a convention fixing the first day of a civil year.
type NewYearRule int

// New-year rules. Rules listed after BeginOfJanuary start the year later
// than 1 January, the last four start it in the previous calendar year.
const (
	BeginOfJanuary NewYearRule = iota
	BeginOfFebruary
	BeginOfMarch
	MariaAnunciata
	EasterStyle
	BeginOfSeptember
	ByzantineStyle
	ChristmasStyle
	CalculusPisanus
)

var ruleNames = [...]string{
	BeginOfJanuary:   "BEGIN_OF_JANUARY",
	BeginOfFebruary:  "BEGIN_OF_FEBRUARY",
	BeginOfMarch:     "BEGIN_OF_MARCH",
	MariaAnunciata:   "MARIA_ANUNCIATA",
	EasterStyle:      "EASTER_STYLE",
	BeginOfSeptember: "BEGIN_OF_SEPTEMBER",
	ByzantineStyle:   "BYZANTINE",
	ChristmasStyle:   "CHRISTMAS_STYLE",
	CalculusPisanus:  "CALCULUS_PISANUS",
}

// ParseRule resolves a rule by its upper snake-case name.
func ParseRule(name string) (NewYearRule, error) {
	for i, n := range ruleNames {
		if n == name {
			return NewYearRule(i), nil
		}
	}
	return 0, calsys.NewArgument("%s: %q", config.ErrUnknownRule, name)
}

func (r NewYearRule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return "NewYearRule(?)"
	}
	return ruleNames[r]
}

// Until makes a strategy using r up to and including the anno Domini year
// lastAnnoDomini. Alone, the strategy applies r to all years; the bound only
// matters once strategies are combined with And.
func (r NewYearRule) Until(lastAnnoDomini int) NewYearStrategy {
	return NewYearStrategy{rule: r, last: lastAnnoDomini}
}

// NewYear returns the first day of the historic year yearOfEra under r.
func (r NewYearRule) NewYear(era calsys.Era, yearOfEra int) HistoricDate {
	ad := AnnoDomini(era, yearOfEra)
	switch r {
	case BeginOfFebruary:
		return newDate(era, ad, 2, 1)
	case BeginOfMarch:
		return newDate(era, ad, 3, 1)
	case MariaAnunciata:
		return newDate(era, ad, 3, 25)
	case EasterStyle:
		m, d := JulianEaster(ad)
		return newDate(era, ad, m, d)
	case BeginOfSeptember, ByzantineStyle:
		return newDate(era, ad-1, 9, 1)
	case ChristmasStyle:
		return newDate(era, ad-1, 12, 25)
	case CalculusPisanus:
		return newDate(era, ad-1, 3, 25)
	default:
		return newDate(era, ad, 1, 1)
	}
}

// startsEarly reports rules whose year begins before 1 January.
func (r NewYearRule) startsEarly() bool {
	return r >= BeginOfSeptember
}

// displayedYear computes the year label of date under r. Neighbouring years
// may follow another rule, hence the whole strategy.
func (r NewYearRule) displayedYear(s NewYearStrategy, date HistoricDate) int {
	ad := date.AnnoDomini()
	switch {
	case r == BeginOfJanuary:
		return date.YearOfEra
	case r.startsEarly():
		if date.Compare(s.NewYear(date.Era, YearOfEra(date.Era, ad+1))) >= 0 {
			return YearOfEra(date.Era, ad+1)
		}
	default:
		if date.Compare(s.NewYear(date.Era, date.YearOfEra)) < 0 {
			return YearOfEra(date.Era, ad-1)
		}
	}
	return date.YearOfEra
}

// JulianEaster returns month and day of Easter Sunday in the Julian calendar
// for the given anno Domini year.
func JulianEaster(annoDomini int) (month, day int) {
	a := mod(annoDomini, 4)
	b := mod(annoDomini, 7)
	c := mod(annoDomini, 19)
	d := (19*c + 15) % 30
	e := (2*a + 4*b - d + 34) % 7
	return (d + e + 114) / 31, (d+e+114)%31 + 1
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}
