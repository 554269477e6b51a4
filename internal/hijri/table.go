// Package hijri implements tabulated Islamic calendars: each variant is an
// externally supplied table of month lengths, resolved by binary search over
// the first days of its months.
package hijri

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// AnnoHegirae is the only era of the Hijri calendar.
const AnnoHegirae calsys.Era = "ah"

// Month lengths a table row may declare.
const (
	minMonthLength = 29
	maxMonthLength = 30
)

// Table is an immutable tabulated calendar for one variant. The month arrays
// are indexed by (year-MinYear)*12 + month-1; the first day of every month is
// the first day of the previous month plus its length.
//
// Table implements calsys.System. Tables of the same base data with different
// adjustments share their arrays.
type Table struct {
	variant    string
	adjustment int
	version    string
	minYear    int
	maxYear    int
	minUTC     calsys.DayCount
	maxUTC     calsys.DayCount

	lengthOfMonth   []int
	firstDayOfMonth []calsys.DayCount
}

var _ calsys.System = (*Table)(nil)

// BuildTable parses table data for the named variant (which may carry an
// adjustment suffix). Any missing row, unparsable number or month length
// outside 29..30 fails with calsys.ErrDataFormat; no table is returned then.
func BuildTable(variant string, r io.Reader) (*Table, error) {
	v, err := ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	base, err := parseTable(v.Base, r)
	if err != nil {
		return nil, err
	}
	return base.withAdjustment(v), nil
}

// parseTable reads the properties stream in two passes: the first collects and
// validates the rows and finds the real number of months (a short row ends the
// table), the second fills exact-size arrays.
func parseTable(base string, r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, calsys.NewDataFormat(err, "cannot read table %q", base)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(raw)
	if err != nil {
		return nil, calsys.NewDataFormat(err, "malformed table %q", base)
	}

	if typ := props.GetString(config.TablePropType, ""); typ != base {
		return nil, calsys.NewDataFormat(nil, "wrong hijri variant: expected=%s, found=%s", base, typ)
	}

	start, err := time.Parse(config.DateFormatFullDash, props.GetString(config.TablePropISOStart, ""))
	if err != nil {
		return nil, calsys.NewDataFormat(err, "bad %s in table %q", config.TablePropISOStart, base)
	}

	minYear, err := intProperty(props, config.TablePropMin, config.DefaultTableMinYear)
	if err != nil {
		return nil, calsys.NewDataFormat(err, "bad %s in table %q", config.TablePropMin, base)
	}
	maxYear, err := intProperty(props, config.TablePropMax, config.DefaultTableMaxYear)
	if err != nil {
		return nil, calsys.NewDataFormat(err, "bad %s in table %q", config.TablePropMax, base)
	}

	// Pass 1.
	var rows [][]int
	months := 0
	for year := minYear; year <= maxYear; year++ {
		row, ok := props.Get(strconv.Itoa(year))
		if !ok {
			return nil, calsys.NewDataFormat(nil, "table %q: missing year=%d", base, year)
		}
		fields := strings.Fields(row)
		if len(fields) > config.MonthsPerLunarYear {
			fields = fields[:config.MonthsPerLunarYear]
		}
		lengths := make([]int, len(fields))
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, calsys.NewDataFormat(err, "table %q: year=%d, month=%d", base, year, i+1)
			}
			if n < minMonthLength || n > maxMonthLength {
				return nil, calsys.NewDataFormat(nil, "table %q: year=%d, month=%d has %d days", base, year, i+1, n)
			}
			lengths[i] = n
		}
		rows = append(rows, lengths)
		months += len(lengths)
		if len(lengths) < config.MonthsPerLunarYear {
			break
		}
	}
	if months == 0 {
		return nil, calsys.NewDataFormat(nil, "table %q has no months", base)
	}

	// Pass 2.
	t := &Table{
		variant:         base,
		version:         props.GetString(config.TablePropVersion, config.DefaultTableVersion),
		minYear:         minYear,
		maxYear:         maxYear,
		minUTC:          calsys.FromTime(start),
		lengthOfMonth:   make([]int, 0, months),
		firstDayOfMonth: make([]calsys.DayCount, 0, months),
	}
	next := t.minUTC
	for _, lengths := range rows {
		for _, n := range lengths {
			t.lengthOfMonth = append(t.lengthOfMonth, n)
			t.firstDayOfMonth = append(t.firstDayOfMonth, next)
			next = next.Plus(int64(n))
		}
	}
	t.maxUTC = next - 1
	return t, nil
}

func intProperty(p *properties.Properties, key string, def int) (int, error) {
	s, ok := p.Get(key)
	if !ok {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// withAdjustment returns a table for v sharing t's arrays.
func (t *Table) withAdjustment(v Variant) *Table {
	if v.Adjustment == 0 {
		return t
	}
	adjusted := *t
	adjusted.variant = v.String()
	adjusted.adjustment = v.Adjustment
	return &adjusted
}

// Variant returns the canonical variant name, including any adjustment.
func (t *Table) Variant() string { return t.variant }

// Adjustment returns the day shift applied to every conversion.
func (t *Table) Adjustment() int { return t.adjustment }

// Version returns the version declared by the table data.
func (t *Table) Version() string { return t.version }

// MinYear returns the first tabulated year.
func (t *Table) MinYear() int { return t.minYear }

// MaxYear returns the last declared year. A truncated table may cover only
// part of it.
func (t *Table) MaxYear() int { return t.maxYear }

// Months returns the number of tabulated months.
func (t *Table) Months() int { return len(t.lengthOfMonth) }

// MonthAt returns the first day (unadjusted) and the length of the month at index i.
func (t *Table) MonthAt(i int) (calsys.DayCount, int) {
	return t.firstDayOfMonth[i], t.lengthOfMonth[i]
}

// FromDayCount resolves a day by binary search over the month starts.
func (t *Table) FromDayCount(days calsys.DayCount) (calsys.Date, error) {
	shifted := days.Plus(int64(t.adjustment))
	i := search(shifted, t.firstDayOfMonth)

	if i < 0 || (i == len(t.firstDayOfMonth)-1 && shifted >= t.firstDayOfMonth[i].Plus(int64(t.lengthOfMonth[i]))) {
		return calsys.Date{}, calsys.NewOutOfRange("day count %d not covered by %s", days, t.variant)
	}

	return calsys.Date{
		Era:     AnnoHegirae,
		Year:    i/config.MonthsPerLunarYear + t.minYear,
		Month:   i%config.MonthsPerLunarYear + 1,
		Day:     int(shifted-t.firstDayOfMonth[i]) + 1,
		Variant: t.variant,
	}, nil
}

// ToDayCount indexes the month directly.
func (t *Table) ToDayCount(date calsys.Date) (calsys.DayCount, error) {
	if date.Variant != t.variant {
		return 0, calsys.NewInvalidDate("%s does not belong to variant %s", date, t.variant)
	}
	if !t.IsValid(date.Era, date.Year, date.Month, date.Day) {
		return 0, calsys.NewInvalidDate("%s", date)
	}
	i := t.index(date.Year, date.Month)
	return t.firstDayOfMonth[i].Plus(int64(date.Day - 1 - t.adjustment)), nil
}

func (t *Table) MinDayCount() calsys.DayCount {
	return t.minUTC.Plus(int64(-t.adjustment))
}

func (t *Table) MaxDayCount() calsys.DayCount {
	return t.maxUTC.Plus(int64(-t.adjustment))
}

func (t *Table) IsValid(era calsys.Era, year, month, day int) bool {
	if era != AnnoHegirae || year < t.minYear || year > t.maxYear ||
		month < 1 || month > config.MonthsPerLunarYear || day < 1 {
		return false
	}
	i := t.index(year, month)
	return i < len(t.lengthOfMonth) && day <= t.lengthOfMonth[i]
}

func (t *Table) LengthOfMonth(era calsys.Era, year, month int) (int, error) {
	if era != AnnoHegirae {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	i := t.index(year, month)
	if month < 1 || month > config.MonthsPerLunarYear || i < 0 || i >= len(t.lengthOfMonth) {
		return 0, calsys.NewOutOfRange("year=%d, month=%d", year, month)
	}
	return t.lengthOfMonth[i], nil
}

func (t *Table) LengthOfYear(era calsys.Era, year int) (int, error) {
	if era != AnnoHegirae {
		return 0, calsys.NewInvalidDate("wrong era: %s", era)
	}
	if year < t.minYear || year > t.maxYear {
		return 0, calsys.NewOutOfRange("year=%d", year)
	}
	total := 0
	for m := 1; m <= config.MonthsPerLunarYear; m++ {
		i := t.index(year, m)
		if i >= len(t.lengthOfMonth) {
			return 0, calsys.NewOutOfRange("year %d is not fully covered by %s", year, t.variant)
		}
		total += t.lengthOfMonth[i]
	}
	return total, nil
}

func (t *Table) Eras() []calsys.Era {
	return []calsys.Era{AnnoHegirae}
}

// String identifies the table in logs.
func (t *Table) String() string {
	return fmt.Sprintf("%s(v%s, %d-%d)", t.variant, t.version, t.minYear, t.maxYear)
}

func (t *Table) index(year, month int) int {
	return (year-t.minYear)*config.MonthsPerLunarYear + month - 1
}

// search returns the greatest index whose month starts on or before days, or
// -1 if days precedes the table.
func search(days calsys.DayCount, firstDayOfMonth []calsys.DayCount) int {
	low, high := 0, len(firstDayOfMonth)-1
	for low <= high {
		middle := (low + high) / 2
		if firstDayOfMonth[middle] <= days {
			low = middle + 1
		} else {
			high = middle - 1
		}
	}
	return low - 1
}
