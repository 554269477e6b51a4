package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/history"
)

func ad(y, m, d int) calsys.Date {
	return calsys.Date{Era: history.AD, Year: y, Month: m, Day: d}
}

func TestHistory_Cutover(t *testing.T) {
	h := history.Standard()

	first, err := h.ToDayCount(ad(1582, 10, 15))
	require.NoError(t, err)
	assert.Equal(t, calsys.DayCount(-141427), first)

	last, err := h.ToDayCount(ad(1582, 10, 4))
	require.NoError(t, err)
	assert.Equal(t, first-1, last)

	for d := 5; d <= 14; d++ {
		assert.False(t, h.IsValid(history.AD, 1582, 10, d), "1582-10-%02d lies in the gap", d)
	}
	_, err = h.ToDayCount(ad(1582, 10, 10))
	assert.ErrorIs(t, err, calsys.ErrInvalidDate)

	n, err := h.LengthOfMonth(history.AD, 1582, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, n)

	n, err = h.LengthOfYear(history.AD, 1582)
	require.NoError(t, err)
	assert.Equal(t, 355, n)
}

func TestHistory_LeapRules(t *testing.T) {
	h := history.Standard()
	assert.True(t, h.IsValid(history.AD, 1500, 2, 29), "Julian leap year")
	assert.False(t, h.IsValid(history.AD, 1700, 2, 29), "Gregorian common year")
	assert.True(t, h.IsValid(history.AD, 1600, 2, 29))
	assert.False(t, h.IsValid(history.Byzantine, 7000, 1, 1), "only BC and AD are calendar eras")
}

func TestHistory_Eras(t *testing.T) {
	h := history.Standard()

	date, err := h.FromDayCount(0)
	require.NoError(t, err)
	assert.Equal(t, ad(1970, 1, 1), date)

	date, err = h.FromDayCount(calsys.JulianDays(0, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, calsys.Date{Era: history.BC, Year: 1, Month: 1, Day: 1}, date)

	date, err = h.FromDayCount(calsys.JulianDays(1, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, ad(1, 1, 1), date)
}

func TestHistory_RoundTrip(t *testing.T) {
	h := history.Standard()
	for d := h.MinDayCount(); d <= h.MaxDayCount(); d += 37 {
		date, err := h.FromDayCount(d)
		require.NoError(t, err)
		back, err := h.ToDayCount(date)
		require.NoError(t, err)
		require.Equal(t, d, back, "%s", date)
	}

	_, err := h.FromDayCount(h.MaxDayCount() + 1)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
}

func TestHistory_BeginOfYearAndDisplayedYear(t *testing.T) {
	florence, err := history.MariaAnunciata.Until(1749).And(history.Default)
	require.NoError(t, err)
	h := history.Standard().WithStrategy(florence)

	begin, err := h.BeginOfYear(history.AD, 1700)
	require.NoError(t, err)
	assert.Equal(t, calsys.GregorianDays(1700, 3, 25), begin)

	begin, err = h.BeginOfYear(history.AD, 1500)
	require.NoError(t, err)
	assert.Equal(t, calsys.JulianDays(1500, 3, 25), begin)

	year, err := h.DisplayedYear(calsys.GregorianDays(1700, 2, 10))
	require.NoError(t, err)
	assert.Equal(t, 1699, year)

	byz := history.Standard().WithStrategy(history.ByzantineStyle.Until(history.MaxBound))
	begin, err = byz.BeginOfYear(history.Byzantine, 7001)
	require.NoError(t, err)
	assert.Equal(t, calsys.JulianDays(1492, 9, 1), begin)
}
