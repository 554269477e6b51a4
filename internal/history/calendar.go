package history

import (
	"github.com/tartampluch/go-calendars/internal/calsys"
)

// FirstGregorianReform is 1582-10-15, the first day of the Gregorian calendar
// in the papal states.
var FirstGregorianReform = calsys.GregorianDays(1582, 10, 15)

// Year bounds of the historic calendar, in anno Domini.
const (
	minAnnoDomini = -9998 // 9999 BC
	maxAnnoDomini = 9999
)

// History is the Julian calendar up to a cutover day and the Gregorian
// calendar from then on, written in the eras BC and AD, together with a
// new-year strategy for historic year numbering.
//
// Dates that fall into the gap skipped by the reform are invalid.
type History struct {
	cutover  calsys.DayCount
	strategy NewYearStrategy
}

var _ calsys.System = (*History)(nil)

// New creates a historic calendar switching to the Gregorian calendar on the
// day cutover.
func New(cutover calsys.DayCount, strategy NewYearStrategy) *History {
	return &History{cutover: cutover, strategy: strategy}
}

// Standard is the 1582 reform with new years on 1 January.
func Standard() *History {
	return New(FirstGregorianReform, Default)
}

// WithStrategy returns a copy of h using another new-year strategy.
func (h *History) WithStrategy(s NewYearStrategy) *History {
	return New(h.cutover, s)
}

// Cutover returns the first Gregorian day.
func (h *History) Cutover() calsys.DayCount { return h.cutover }

// Strategy returns the new-year strategy.
func (h *History) Strategy() NewYearStrategy { return h.strategy }

func (h *History) ToDayCount(date calsys.Date) (calsys.DayCount, error) {
	d, ok := h.resolve(date.Era, date.Year, date.Month, date.Day)
	if !ok {
		return 0, calsys.NewInvalidDate("%s", date)
	}
	return d, nil
}

func (h *History) FromDayCount(days calsys.DayCount) (calsys.Date, error) {
	if err := calsys.CheckRange(h, days); err != nil {
		return calsys.Date{}, err
	}
	var y, m, d int
	if days >= h.cutover {
		y, m, d = calsys.GregorianDate(days)
	} else {
		y, m, d = calsys.JulianDate(days)
	}
	era := AD
	if y < 1 {
		era = BC
	}
	return calsys.Date{Era: era, Year: YearOfEra(era, y), Month: m, Day: d}, nil
}

func (h *History) MinDayCount() calsys.DayCount {
	return calsys.JulianDays(minAnnoDomini, 1, 1)
}

func (h *History) MaxDayCount() calsys.DayCount {
	return calsys.GregorianDays(maxAnnoDomini, 12, 31)
}

func (h *History) IsValid(era calsys.Era, year, month, day int) bool {
	_, ok := h.resolve(era, year, month, day)
	return ok
}

func (h *History) LengthOfMonth(era calsys.Era, year, month int) (int, error) {
	if era != BC && era != AD {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	if month < 1 || month > 12 || !h.inRange(era, year) {
		return 0, calsys.NewOutOfRange("year=%d, month=%d", year, month)
	}
	// Counting valid days handles the month shortened by the reform.
	n := 0
	for d := 1; d <= 31; d++ {
		if h.IsValid(era, year, month, d) {
			n++
		}
	}
	return n, nil
}

func (h *History) LengthOfYear(era calsys.Era, year int) (int, error) {
	total := 0
	for m := 1; m <= 12; m++ {
		n, err := h.LengthOfMonth(era, year, m)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (h *History) Eras() []calsys.Era {
	return []calsys.Era{BC, AD}
}

// BeginOfYear returns the first day of the historic year yearOfEra under the
// strategy. Any historic era is accepted.
func (h *History) BeginOfYear(era calsys.Era, yearOfEra int) (calsys.DayCount, error) {
	ny := h.strategy.NewYear(era, yearOfEra)
	ad := ny.AnnoDomini()
	e := AD
	if ad < 1 {
		e = BC
	}
	return h.ToDayCount(calsys.Date{Era: e, Year: YearOfEra(e, ad), Month: ny.Month, Day: ny.Day})
}

// DisplayedYear returns the AD year number shown for the day under the
// strategy.
func (h *History) DisplayedYear(days calsys.DayCount) (int, error) {
	date, err := h.FromDayCount(days)
	if err != nil {
		return 0, err
	}
	return h.strategy.DisplayedYear(HistoricDate{Era: date.Era, YearOfEra: date.Year, Month: date.Month, Day: date.Day})
}

func (h *History) inRange(era calsys.Era, year int) bool {
	if year < 1 {
		return false
	}
	ad := AnnoDomini(era, year)
	return ad >= minAnnoDomini && ad <= maxAnnoDomini
}

// resolve picks the Gregorian reading of the tuple if it falls on or after
// the cutover, else the Julian reading if it falls before it.
func (h *History) resolve(era calsys.Era, year, month, day int) (calsys.DayCount, bool) {
	if (era != BC && era != AD) || !h.inRange(era, year) {
		return 0, false
	}
	ad := AnnoDomini(era, year)
	tuple := calsys.Date{Era: calsys.CommonEra, Year: ad, Month: month, Day: day}

	if g, err := calsys.Gregorian.ToDayCount(tuple); err == nil && g >= h.cutover {
		return g, true
	}
	if j, err := calsys.Julian.ToDayCount(tuple); err == nil && j < h.cutover {
		return j, true
	}
	return 0, false
}
