package calsys_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendars/internal/calsys"
)

func ce(y, m, d int) calsys.Date {
	return calsys.Date{Era: calsys.CommonEra, Year: y, Month: m, Day: d}
}

func TestProleptic_KnownDayCounts(t *testing.T) {
	tests := []struct {
		name   string
		system calsys.Proleptic
		date   calsys.Date
		want   calsys.DayCount
	}{
		{"Unix epoch", calsys.Gregorian, ce(1970, 1, 1), 0},
		{"Start of 1900", calsys.Gregorian, ce(1900, 1, 1), -25567},
		{"Gregorian reform", calsys.Gregorian, ce(1582, 10, 15), -141427},
		{"Gregorian year 1", calsys.Gregorian, ce(1, 1, 1), -719162},
		{"Gregorian year 0 (leap)", calsys.Gregorian, ce(0, 1, 1), -719528},
		{"Last Julian day before reform", calsys.Julian, ce(1582, 10, 4), -141428},
		{"Unix epoch in Julian", calsys.Julian, ce(1969, 12, 19), 0},
		{"Julian year 0", calsys.Julian, ce(0, 1, 1), -719530},
		{"Julian year -1 end", calsys.Julian, ce(-1, 12, 31), -719531},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.system.ToDayCount(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := tt.system.FromDayCount(got)
			require.NoError(t, err)
			assert.Equal(t, tt.date, back)
		})
	}
}

func TestProleptic_RoundTrip(t *testing.T) {
	for _, sys := range []calsys.Proleptic{calsys.Gregorian, calsys.Julian} {
		for d := calsys.DayCount(-800000); d <= 800000; d += 97 {
			date, err := sys.FromDayCount(d)
			require.NoError(t, err)
			back, err := sys.ToDayCount(date)
			require.NoError(t, err)
			require.Equal(t, d, back, "round trip of %s", date)
		}
	}
}

func TestProleptic_Boundaries(t *testing.T) {
	sys := calsys.Gregorian

	first, err := sys.FromDayCount(sys.MinDayCount())
	require.NoError(t, err)
	assert.Equal(t, ce(calsys.MinProlepticYear, 1, 1), first)

	last, err := sys.FromDayCount(sys.MaxDayCount())
	require.NoError(t, err)
	assert.Equal(t, ce(calsys.MaxProlepticYear, 12, 31), last)

	_, err = sys.FromDayCount(sys.MaxDayCount() + 1)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
	_, err = sys.FromDayCount(sys.MinDayCount() - 1)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
}

func TestProleptic_Validity(t *testing.T) {
	assert.False(t, calsys.Gregorian.IsValid(calsys.CommonEra, 1900, 2, 29))
	assert.True(t, calsys.Julian.IsValid(calsys.CommonEra, 1900, 2, 29))
	assert.True(t, calsys.Gregorian.IsValid(calsys.CommonEra, 2000, 2, 29))
	assert.False(t, calsys.Gregorian.IsValid("am", 2000, 1, 1))
	assert.False(t, calsys.Gregorian.IsValid(calsys.CommonEra, 2000, 13, 1))

	_, err := calsys.Gregorian.ToDayCount(ce(2023, 4, 31))
	assert.ErrorIs(t, err, calsys.ErrInvalidDate)

	n, err := calsys.Gregorian.LengthOfMonth(calsys.CommonEra, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, 29, n)

	n, err = calsys.Julian.LengthOfYear(calsys.CommonEra, 1700)
	require.NoError(t, err)
	assert.Equal(t, 366, n)

	_, err = calsys.Gregorian.LengthOfMonth(calsys.CommonEra, 2024, 0)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
}

func TestConvert_JulianToGregorian(t *testing.T) {
	// Orthodox Easter 2008 fell on Julian 14 April.
	got, err := calsys.Convert(calsys.Julian, calsys.Gregorian, ce(2008, 4, 14))
	require.NoError(t, err)
	assert.Equal(t, ce(2008, 4, 27), got)
}

func TestGregorianYear_MatchesFullDecomposition(t *testing.T) {
	for d := calsys.DayCount(-1000000); d <= 1000000; d += 13 {
		y, _, _ := calsys.GregorianDate(d)
		require.Equal(t, y, calsys.GregorianYear(d), "day %d", d)
	}
	assert.Equal(t, 2024, calsys.GregorianYear(calsys.GregorianDays(2024, 12, 31)))
	assert.Equal(t, 2000, calsys.GregorianYear(calsys.GregorianDays(2000, 2, 29)))
	assert.Equal(t, 0, calsys.GregorianYear(calsys.GregorianDays(1, 1, 1)-1))
}

func TestDayCount_TimeBridge(t *testing.T) {
	tm := time.Date(2025, 4, 13, 22, 30, 0, 0, time.UTC)
	d := calsys.FromTime(tm)
	assert.Equal(t, calsys.DayCount(20191), d)
	assert.Equal(t, time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, calsys.DayCount(20192), d.Plus(1))
}

func TestError_Classification(t *testing.T) {
	cause := errors.New("boom")
	err := calsys.NewDataFormat(cause, "row %d", 7)

	assert.ErrorIs(t, err, calsys.ErrDataFormat)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, calsys.ErrOutOfRange)
	assert.Contains(t, err.Error(), "row 7")

	var calErr *calsys.Error
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, calsys.ErrDataFormat, calErr.Kind)
}
