package history_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/history"
)

func hd(era calsys.Era, y, m, d int) history.HistoricDate {
	return history.HistoricDate{Era: era, YearOfEra: y, Month: m, Day: d}
}

func mustAnd(t *testing.T, a, b history.NewYearStrategy) history.NewYearStrategy {
	t.Helper()
	s, err := a.And(b)
	require.NoError(t, err)
	return s
}

func TestNewYearRule_NewYear(t *testing.T) {
	tests := []struct {
		rule history.NewYearRule
		want history.HistoricDate
	}{
		{history.BeginOfJanuary, hd(history.AD, 1500, 1, 1)},
		{history.BeginOfFebruary, hd(history.AD, 1500, 2, 1)},
		{history.BeginOfMarch, hd(history.AD, 1500, 3, 1)},
		{history.MariaAnunciata, hd(history.AD, 1500, 3, 25)},
		{history.EasterStyle, hd(history.AD, 1500, 4, 19)},
		{history.BeginOfSeptember, hd(history.AD, 1499, 9, 1)},
		{history.ByzantineStyle, hd(history.AD, 1499, 9, 1)},
		{history.ChristmasStyle, hd(history.AD, 1499, 12, 25)},
		{history.CalculusPisanus, hd(history.AD, 1499, 3, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.NewYear(history.AD, 1500))
		})
	}
}

func TestJulianEaster(t *testing.T) {
	tests := []struct {
		year, month, day int
	}{
		{2008, 4, 14},
		{1500, 4, 19},
		{1400, 4, 18},
	}
	for _, tt := range tests {
		m, d := history.JulianEaster(tt.year)
		assert.Equal(t, tt.month, m, "year %d", tt.year)
		assert.Equal(t, tt.day, d, "year %d", tt.year)
	}
}

func TestStrategy_BoundIsLastYearInclusive(t *testing.T) {
	s := mustAnd(t, history.MariaAnunciata.Until(1582), history.BeginOfMarch.Until(history.MaxBound))

	assert.Equal(t, hd(history.AD, 1582, 3, 25), s.NewYear(history.AD, 1582))
	assert.Equal(t, hd(history.AD, 1583, 3, 1), s.NewYear(history.AD, 1583))
	assert.Equal(t, history.MariaAnunciata, s.Rule(1582))
	assert.Equal(t, history.BeginOfMarch, s.Rule(1583))
}

func TestStrategy_CatchAllIsBeginOfJanuary(t *testing.T) {
	s := mustAnd(t, history.ChristmasStyle.Until(1300), history.EasterStyle.Until(1500))
	assert.Equal(t, history.ChristmasStyle, s.Rule(1200))
	assert.Equal(t, history.EasterStyle, s.Rule(1400))
	assert.Equal(t, history.BeginOfJanuary, s.Rule(1501))
}

func TestStrategy_SingleRuleAppliesToAllYears(t *testing.T) {
	s := history.BeginOfMarch.Until(1000)
	assert.Equal(t, hd(history.AD, 2000, 3, 1), s.NewYear(history.AD, 2000))
}

func TestStrategy_And(t *testing.T) {
	t.Run("Sorted union", func(t *testing.T) {
		s := mustAnd(t, history.ChristmasStyle.Until(1700), history.BeginOfMarch.Until(1500))
		s = mustAnd(t, s, history.MariaAnunciata.Until(1600))
		assert.Equal(t, "[BEGIN_OF_MARCH->1500,MARIA_ANUNCIATA->1600,CHRISTMAS_STYLE->1700]", s.String())

		other := mustAnd(t, history.MariaAnunciata.Until(1600),
			mustAnd(t, history.BeginOfMarch.Until(1500), history.ChristmasStyle.Until(1700)))
		assert.True(t, s.Equal(other))
	})

	t.Run("Same bound is a conflict", func(t *testing.T) {
		_, err := history.BeginOfMarch.Until(1600).And(history.ChristmasStyle.Until(1600))
		assert.ErrorIs(t, err, calsys.ErrConstructionConflict)
	})
}

func TestStrategy_Equal(t *testing.T) {
	assert.True(t, history.Default.Equal(history.BeginOfJanuary.Until(history.MaxBound)))
	assert.False(t, history.Default.Equal(history.BeginOfJanuary.Until(1000)))
	assert.False(t, history.Default.Equal(history.BeginOfMarch.Until(history.MaxBound)))
	assert.Equal(t, "[new-year-rule=BEGIN_OF_JANUARY]", history.Default.String())
}

func TestStrategy_DisplayedYear(t *testing.T) {
	florence := mustAnd(t, history.MariaAnunciata.Until(1749), history.Default)
	christmas := mustAnd(t, history.ChristmasStyle.Until(1600), history.Default)

	tests := []struct {
		name     string
		strategy history.NewYearStrategy
		date     history.HistoricDate
		want     int
	}{
		{"Annunciation: before new year", florence, hd(history.AD, 1700, 2, 10), 1699},
		{"Annunciation: after new year", florence, hd(history.AD, 1700, 4, 1), 1700},
		{"Annunciation: last year of the rule", florence, hd(history.AD, 1749, 2, 10), 1748},
		{"Annunciation: after the switch", florence, hd(history.AD, 1750, 2, 10), 1750},
		{"Christmas: after Christmas", christmas, hd(history.AD, 1500, 12, 28), 1501},
		{"Christmas: before Christmas", christmas, hd(history.AD, 1500, 12, 24), 1500},
		{"Christmas: next year starts in January", christmas, hd(history.AD, 1600, 12, 28), 1600},
		{"Byzantine: after September", history.ByzantineStyle.Until(history.MaxBound), hd(history.Byzantine, 7000, 10, 1), 7001},
		{"Byzantine: before September", history.ByzantineStyle.Until(history.MaxBound), hd(history.Byzantine, 7000, 8, 31), 7000},
		{"Easter: day before", history.EasterStyle.Until(history.MaxBound), hd(history.AD, 1500, 4, 18), 1499},
		{"Easter: Easter Sunday", history.EasterStyle.Until(history.MaxBound), hd(history.AD, 1500, 4, 19), 1500},
		{"Pisan: from 25 March", history.CalculusPisanus.Until(history.MaxBound), hd(history.AD, 1500, 3, 25), 1501},
		{"Pisan: before 25 March", history.CalculusPisanus.Until(history.MaxBound), hd(history.AD, 1500, 3, 24), 1500},
		{"January: unchanged", history.Default, hd(history.AD, 1500, 6, 1), 1500},
		{"Hispanic era near its start", history.Default, hd(history.Hispanic, 40, 6, 1), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.strategy.DisplayedYear(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrategy_DisplayedYearUndefinedBeforeAD8(t *testing.T) {
	for _, date := range []history.HistoricDate{hd(history.AD, 7, 6, 1), hd(history.BC, 10, 6, 1)} {
		_, err := history.Default.DisplayedYear(date)
		assert.ErrorIs(t, err, calsys.ErrArgument, "%s", date)
	}
	_, err := history.Default.DisplayedYear(hd(history.AD, 8, 1, 1))
	assert.NoError(t, err)
}

func TestStrategy_Serialization(t *testing.T) {
	composite := mustAnd(t, history.MariaAnunciata.Until(1749), history.ChristmasStyle.Until(1600))

	for _, s := range []history.NewYearStrategy{history.Default, history.EasterStyle.Until(1300), composite} {
		t.Run(s.String(), func(t *testing.T) {
			var buf bytes.Buffer
			n, err := s.WriteTo(&buf)
			require.NoError(t, err)
			assert.Equal(t, int64(buf.Len()), n)

			got, err := history.ReadStrategy(&buf)
			require.NoError(t, err)
			assert.True(t, s.Equal(got), "got %s", got)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestStrategy_WireLayout(t *testing.T) {
	var buf bytes.Buffer
	_, err := history.Default.WriteTo(&buf)
	require.NoError(t, err)

	want := []byte{0, 0, 0, 0, 0, 16}
	want = append(want, "BEGIN_OF_JANUARY"...)
	want = append(want, 0x7f, 0xff, 0xff, 0xff)
	assert.Equal(t, want, buf.Bytes())
}

func TestReadStrategy_Errors(t *testing.T) {
	part := func(name string, bound byte) []byte {
		b := []byte{0, byte(len(name))}
		b = append(b, name...)
		return append(b, 0, 0, 0x06, bound)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Truncated name", []byte{0, 0, 0, 0, 0, 16, 'B'}},
		{"Unknown rule", append([]byte{0, 0, 0, 0}, part("NEW_YEARS_EVE", 0x40)...)},
		{"Negative count", []byte{0xff, 0xff, 0xff, 0xff}},
		{"Duplicate bounds", append(append([]byte{0, 0, 0, 2}, part("BEGIN_OF_MARCH", 0x40)...), part("EASTER_STYLE", 0x40)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := history.ReadStrategy(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, calsys.ErrDataFormat)
		})
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := history.ParseStrategy("MARIA_ANUNCIATA:1749, BEGIN_OF_JANUARY")
	require.NoError(t, err)
	assert.True(t, s.Equal(mustAnd(t, history.MariaAnunciata.Until(1749), history.Default)))

	single, err := history.ParseStrategy("EASTER_STYLE")
	require.NoError(t, err)
	assert.True(t, single.Equal(history.EasterStyle.Until(history.MaxBound)))

	_, err = history.ParseStrategy("FEAST_OF_FOOLS:1500")
	assert.ErrorIs(t, err, calsys.ErrArgument)
	_, err = history.ParseStrategy("BEGIN_OF_MARCH:soon")
	assert.ErrorIs(t, err, calsys.ErrArgument)
	_, err = history.ParseStrategy("BEGIN_OF_MARCH:1500,EASTER_STYLE:1500")
	assert.ErrorIs(t, err, calsys.ErrConstructionConflict)
}
