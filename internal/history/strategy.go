package history

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// MaxBound is the open upper bound of a strategy covering all later years.
const MaxBound = math.MaxInt32

// minDisplayedYear is the first anno Domini year for which BC/AD dates have a
// displayed year.
const minDisplayedYear = 8

// Default applies BeginOfJanuary to all years.
var Default = BeginOfJanuary.Until(MaxBound)

// NewYearStrategy selects the new-year rule by anno Domini year. It is either
// a single rule for all years, or a list of (rule, last year inclusive)
// bounds in ascending order followed by BeginOfJanuary for every later year.
// Strategies are immutable values; compare them with Equal.
type NewYearStrategy struct {
	bounds []NewYearStrategy // nil for a single rule
	rule   NewYearRule
	last   int
}

// And combines s with next into a strategy whose bounds are the sorted union
// of both. Two bounds ending in the same year fail with
// calsys.ErrConstructionConflict.
func (s NewYearStrategy) And(next NewYearStrategy) (NewYearStrategy, error) {
	return compose(slices.Concat(s.parts(), next.parts()))
}

func compose(parts []NewYearStrategy) (NewYearStrategy, error) {
	slices.SortStableFunc(parts, func(a, b NewYearStrategy) int {
		return cmp.Compare(a.last, b.last)
	})
	for i := 1; i < len(parts); i++ {
		if parts[i].last == parts[i-1].last {
			return NewYearStrategy{}, calsys.NewConstructionConflict(
				"multiple strategies end in %d: %s and %s", parts[i].last, parts[i-1].rule, parts[i].rule)
		}
	}
	return NewYearStrategy{bounds: parts, rule: BeginOfJanuary, last: MaxBound}, nil
}

func (s NewYearStrategy) parts() []NewYearStrategy {
	if s.bounds == nil {
		return []NewYearStrategy{s}
	}
	return s.bounds
}

// Rule returns the rule in force for the anno Domini year.
func (s NewYearStrategy) Rule(annoDomini int) NewYearRule {
	for _, b := range s.bounds {
		if annoDomini <= b.last {
			return b.rule
		}
	}
	return s.rule
}

// NewYear returns the first day of the historic year yearOfEra.
func (s NewYearStrategy) NewYear(era calsys.Era, yearOfEra int) HistoricDate {
	return s.Rule(AnnoDomini(era, yearOfEra)).NewYear(era, yearOfEra)
}

// DisplayedYear returns the year number a contemporary would have written
// for date. It fails with calsys.ErrArgument for BC/AD dates before AD 8.
func (s NewYearStrategy) DisplayedYear(date HistoricDate) (int, error) {
	ad := date.AnnoDomini()
	if ad < minDisplayedYear && (date.Era == BC || date.Era == AD) {
		return 0, calsys.NewArgument("cannot determine displayed year in non-proleptic era: %s", date)
	}
	return s.Rule(ad).displayedYear(s, date), nil
}

// Equal reports whether both strategies have the same rules and bounds.
func (s NewYearStrategy) Equal(o NewYearStrategy) bool {
	return s.rule == o.rule && s.last == o.last &&
		slices.EqualFunc(s.bounds, o.bounds, NewYearStrategy.Equal) &&
		(s.bounds == nil) == (o.bounds == nil)
}

// String renders "[new-year-rule=RULE]" or "[RULE->bound,...]".
func (s NewYearStrategy) String() string {
	var sb strings.Builder
	if s.bounds == nil {
		sb.WriteString("[new-year-rule=")
		sb.WriteString(s.rule.String())
	} else {
		for i, b := range s.bounds {
			if i == 0 {
				sb.WriteByte('[')
			} else {
				sb.WriteByte(',')
			}
			sb.WriteString(b.rule.String())
			sb.WriteString("->")
			sb.WriteString(strconv.Itoa(b.last))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// ParseStrategy reads the textual form "RULE:bound,RULE:bound,RULE". A part
// without a bound extends to MaxBound.
func ParseStrategy(text string) (NewYearStrategy, error) {
	var parts []NewYearStrategy
	for _, part := range strings.Split(text, config.StrategyPartSeparator) {
		name, bound, found := strings.Cut(strings.TrimSpace(part), config.StrategyBoundSeparator)
		rule, err := ParseRule(name)
		if err != nil {
			return NewYearStrategy{}, err
		}
		last := MaxBound
		if found {
			if last, err = strconv.Atoi(bound); err != nil || last < math.MinInt32 || last > MaxBound {
				return NewYearStrategy{}, calsys.NewArgument("bad bound in %q", part)
			}
		}
		parts = append(parts, rule.Until(last))
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return compose(parts)
}
