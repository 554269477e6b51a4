package hebrew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/hebrew"
)

func am(y int, m hebrew.Month, d int) calsys.Date {
	return hebrew.Of(y, m, d)
}

func ce(y, m, d int) calsys.Date {
	return calsys.Date{Era: calsys.CommonEra, Year: y, Month: m, Day: d}
}

func TestCalendar_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		date calsys.Date
		want calsys.DayCount
	}{
		{"Epoch", am(1, hebrew.Tishri, 1), -2092590},
		{"Rosh Hashana 5785", am(5785, hebrew.Tishri, 1), 19999},
		{"Rosh Hashana 5786", am(5786, hebrew.Tishri, 1), calsys.GregorianDays(2025, 9, 23)},
		{"Rosh Hashana 5784", am(5784, hebrew.Tishri, 1), calsys.GregorianDays(2023, 9, 16)},
		{"Rosh Hashana 5751", am(5751, hebrew.Tishri, 1), calsys.GregorianDays(1990, 9, 20)},
		{"Rosh Hashana 5700", am(5700, hebrew.Tishri, 1), calsys.GregorianDays(1939, 9, 14)},
		{"Passover 5785", am(5785, hebrew.Nisan, 15), 20191},
		{"Last supported day", am(9999, hebrew.Elul, 29), 1559487},
	}

	cal := hebrew.Calendar{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.ToDayCount(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := cal.FromDayCount(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.date, back)
		})
	}
}

func TestCalendar_Range(t *testing.T) {
	cal := hebrew.Calendar{}
	assert.Equal(t, calsys.DayCount(-2092590), cal.MinDayCount())
	assert.Equal(t, calsys.DayCount(1559487), cal.MaxDayCount())

	_, err := cal.FromDayCount(cal.MinDayCount() - 1)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
	_, err = cal.FromDayCount(cal.MaxDayCount() + 1)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
}

func TestCalendar_RoundTrip(t *testing.T) {
	cal := hebrew.Calendar{}
	for d := cal.MinDayCount(); d <= cal.MaxDayCount(); d += 97 {
		date, err := cal.FromDayCount(d)
		require.NoError(t, err)
		require.True(t, cal.IsValid(date.Era, date.Year, date.Month, date.Day), "%s", date)

		back, err := cal.ToDayCount(date)
		require.NoError(t, err)
		require.Equal(t, d, back, "%s", date)
	}
}

func TestCalendar_NewYearBoundaries(t *testing.T) {
	cal := hebrew.Calendar{}
	for y := hebrew.MinYear; y <= hebrew.MaxYear; y++ {
		first, err := cal.FromDayCount(hebrew.NewYear(y))
		require.NoError(t, err)
		require.Equal(t, am(y, hebrew.Tishri, 1), first)

		if y == hebrew.MinYear {
			continue
		}
		last, err := cal.FromDayCount(hebrew.NewYear(y) - 1)
		require.NoError(t, err)
		require.Equal(t, am(y-1, hebrew.Elul, 29), last)
	}
}

func TestCalendar_YearStructure(t *testing.T) {
	assert.True(t, hebrew.IsLeapYear(5784))
	assert.True(t, hebrew.IsLeapYear(5776))
	assert.True(t, hebrew.IsLeapYear(5787))
	assert.False(t, hebrew.IsLeapYear(5785))
	assert.False(t, hebrew.IsLeapYear(5789))

	assert.Equal(t, 355, hebrew.DaysInYear(5785))
	assert.Equal(t, 383, hebrew.DaysInYear(5784))
	assert.Equal(t, 29, hebrew.MonthLength(5784, hebrew.Heshvan))
	assert.Equal(t, 29, hebrew.MonthLength(5784, hebrew.Kislev))
	assert.Equal(t, 0, hebrew.MonthLength(5785, hebrew.AdarI))

	allowed := []int{353, 354, 355, 383, 384, 385}
	for y := 1; y <= 9999; y += 7 {
		n := hebrew.DaysInYear(y)
		require.Contains(t, allowed, n, "year %d", y)
		assert.Equal(t, hebrew.IsLeapYear(y), n > 355, "year %d", y)

		sum := 0
		for m := hebrew.Tishri; m <= hebrew.Elul; m++ {
			sum += hebrew.MonthLength(y, m)
		}
		require.Equal(t, n, sum, "year %d", y)
	}
}

func TestCalendar_Validity(t *testing.T) {
	cal := hebrew.Calendar{}

	assert.True(t, cal.IsValid(hebrew.AnnoMundi, 5784, int(hebrew.AdarI), 30))
	assert.False(t, cal.IsValid(hebrew.AnnoMundi, 5785, int(hebrew.AdarI), 1), "no Adar I in a common year")
	assert.False(t, cal.IsValid(hebrew.AnnoMundi, 5784, int(hebrew.Heshvan), 30))
	assert.False(t, cal.IsValid(hebrew.AnnoMundi, 5785, int(hebrew.AdarII), 30))
	assert.False(t, cal.IsValid(calsys.CommonEra, 5785, 1, 1))
	assert.False(t, cal.IsValid(hebrew.AnnoMundi, 10000, 1, 1))
	assert.False(t, cal.IsValid(hebrew.AnnoMundi, 5785, 14, 1))

	_, err := cal.ToDayCount(am(5785, hebrew.AdarI, 1))
	assert.ErrorIs(t, err, calsys.ErrInvalidDate)

	_, err = cal.LengthOfMonth(hebrew.AnnoMundi, 5785, int(hebrew.AdarI))
	assert.ErrorIs(t, err, calsys.ErrInvalidDate)
	_, err = cal.LengthOfMonth(hebrew.AnnoMundi, 0, 1)
	assert.ErrorIs(t, err, calsys.ErrOutOfRange)
	_, err = cal.LengthOfYear(calsys.CommonEra, 5785)
	assert.ErrorIs(t, err, calsys.ErrInvalidDate)

	n, err := cal.LengthOfYear(hebrew.AnnoMundi, 5784)
	require.NoError(t, err)
	assert.Equal(t, 383, n)
	assert.Equal(t, []calsys.Era{hebrew.AnnoMundi}, cal.Eras())
}

func TestCalendar_ConvertFromGregorian(t *testing.T) {
	got, err := calsys.Convert(calsys.Gregorian, hebrew.Calendar{}, ce(2024, 10, 3))
	require.NoError(t, err)
	assert.Equal(t, am(5785, hebrew.Tishri, 1), got)

	got, err = hebrew.EventOf(calsys.Gregorian, ce(2025, 4, 13))
	require.NoError(t, err)
	assert.Equal(t, am(5785, hebrew.Nisan, 15), got)
}

func TestMonth_Biblical(t *testing.T) {
	tests := []struct {
		month hebrew.Month
		leap  bool
		want  int
	}{
		{hebrew.Nisan, false, 1},
		{hebrew.Elul, true, 6},
		{hebrew.Tishri, false, 7},
		{hebrew.Shevat, true, 11},
		{hebrew.AdarI, true, 12},
		{hebrew.AdarII, true, 13},
		{hebrew.AdarII, false, 12},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.month.Biblical(tt.leap))
			assert.Equal(t, tt.month, hebrew.MonthOfBiblical(tt.want, tt.leap))
		})
	}

	assert.Equal(t, "ADAR_I", hebrew.AdarI.String())
	assert.Equal(t, "Month(14)", hebrew.Month(14).String())
}

func TestRelatedYear(t *testing.T) {
	ctx := am(5785, hebrew.Nisan, 15)

	v, err := hebrew.RelatedYear.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2024, v, "5785 began in autumn 2024")

	lo, err := hebrew.RelatedYear.Minimum(ctx)
	require.NoError(t, err)
	hi, err := hebrew.RelatedYear.Maximum(ctx)
	require.NoError(t, err)
	assert.Equal(t, -3760, lo)
	assert.Equal(t, 6238, hi)

	_, err = hebrew.RelatedYear.With(ctx, 2025)
	assert.ErrorIs(t, err, calsys.ErrUnsupportedModification)
}
