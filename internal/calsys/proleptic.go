package calsys

// CommonEra is the single era of the proleptic Gregorian and Julian systems,
// which count years astronomically (1 BC is year 0, 2 BC is year -1).
const CommonEra Era = "ce"

// Year bounds of the proleptic systems.
const (
	MinProlepticYear = -999999
	MaxProlepticYear = 999999
)

// Day offsets from the March-based day zero of each arithmetic (0000-03-01
// in the respective calendar) to 1970-01-01.
const (
	gregorianShift = 719468
	julianShift    = 719470
)

// Proleptic is the Gregorian or Julian calendar extended without limits in
// both directions. Use the Gregorian and Julian values.
type Proleptic struct {
	julian bool
}

var (
	// Gregorian is the proleptic Gregorian calendar.
	Gregorian = Proleptic{}

	// Julian is the proleptic Julian calendar.
	Julian = Proleptic{julian: true}
)

var _ System = Proleptic{}

// IsLeapYear reports whether the astronomical year has 366 days.
func (p Proleptic) IsLeapYear(year int) bool {
	if p.julian {
		return FloorMod(int64(year), 4) == 0
	}
	return IsGregorianLeapYear(year)
}

// IsGregorianLeapYear applies the Gregorian 4/100/400 rule.
func IsGregorianLeapYear(year int) bool {
	y := int64(year)
	return FloorMod(y, 4) == 0 && (FloorMod(y, 100) != 0 || FloorMod(y, 400) == 0)
}

func (p Proleptic) ToDayCount(date Date) (DayCount, error) {
	if !p.IsValid(date.Era, date.Year, date.Month, date.Day) {
		return 0, NewInvalidDate("%s", date)
	}
	return p.days(date.Year, date.Month, date.Day), nil
}

func (p Proleptic) FromDayCount(days DayCount) (Date, error) {
	if err := CheckRange(p, days); err != nil {
		return Date{}, err
	}
	var y, m, d int
	if p.julian {
		y, m, d = JulianDate(days)
	} else {
		y, m, d = GregorianDate(days)
	}
	return Date{Era: CommonEra, Year: y, Month: m, Day: d}, nil
}

func (p Proleptic) MinDayCount() DayCount {
	return p.days(MinProlepticYear, 1, 1)
}

func (p Proleptic) MaxDayCount() DayCount {
	return p.days(MaxProlepticYear, 12, 31)
}

func (p Proleptic) IsValid(era Era, year, month, day int) bool {
	if era != CommonEra || year < MinProlepticYear || year > MaxProlepticYear {
		return false
	}
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= p.monthLength(year, month)
}

func (p Proleptic) LengthOfMonth(era Era, year, month int) (int, error) {
	if era != CommonEra {
		return 0, NewInvalidDate("wrong era: %s", era)
	}
	if year < MinProlepticYear || year > MaxProlepticYear || month < 1 || month > 12 {
		return 0, NewOutOfRange("year=%d, month=%d", year, month)
	}
	return p.monthLength(year, month), nil
}

func (p Proleptic) LengthOfYear(era Era, year int) (int, error) {
	if era != CommonEra {
		return 0, NewInvalidDate("wrong era: %s", era)
	}
	if year < MinProlepticYear || year > MaxProlepticYear {
		return 0, NewOutOfRange("year=%d", year)
	}
	if p.IsLeapYear(year) {
		return 366, nil
	}
	return 365, nil
}

func (p Proleptic) Eras() []Era {
	return []Era{CommonEra}
}

func (p Proleptic) monthLength(year, month int) int {
	switch month {
	case 2:
		if p.IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func (p Proleptic) days(year, month, day int) DayCount {
	if p.julian {
		return JulianDays(year, month, day)
	}
	return GregorianDays(year, month, day)
}

// GregorianDays returns the day count of a proleptic Gregorian date without
// validating it.
func GregorianDays(year, month, day int) DayCount {
	return DayCount(gregorianToDays(int64(year), int64(month), int64(day)))
}

// JulianDays returns the day count of a proleptic Julian date without
// validating it.
func JulianDays(year, month, day int) DayCount {
	y, doy := marchBased(int64(year), int64(month), int64(day))
	return DayCount(365*y + FloorDiv(y, 4) + doy - julianShift)
}

func gregorianToDays(year, month, day int64) int64 {
	y, doy := marchBased(year, month, day)
	return 365*y + FloorDiv(y, 4) - FloorDiv(y, 100) + FloorDiv(y, 400) + doy - gregorianShift
}

// marchBased moves January and February to the end of the previous year so
// that the leap day is the last day of the shifted year.
func marchBased(year, month, day int64) (int64, int64) {
	if month <= 2 {
		year--
	}
	mp := (month + 9) % 12
	return year, (153*mp+2)/5 + day - 1
}

// GregorianDate decomposes a day count into a proleptic Gregorian date.
func GregorianDate(days DayCount) (year, month, day int) {
	n := int64(days) + gregorianShift
	q400 := FloorDiv(n, 146097)
	r400 := FloorMod(n, 146097)
	if r400 == 146096 {
		return int((q400 + 1) * 400), 2, 29
	}
	q100 := r400 / 36524
	r100 := r400 % 36524
	q4 := r100 / 1461
	r4 := r100 % 1461
	if r4 == 1460 {
		return int(q400*400 + q100*100 + (q4+1)*4), 2, 29
	}
	q1 := r4 / 365
	r1 := r4 % 365
	return marchToCivil(q400*400+q100*100+q4*4+q1, r1)
}

// JulianDate decomposes a day count into a proleptic Julian date.
func JulianDate(days DayCount) (year, month, day int) {
	n := int64(days) + julianShift
	q4 := FloorDiv(n, 1461)
	r4 := FloorMod(n, 1461)
	if r4 == 1460 {
		return int((q4 + 1) * 4), 2, 29
	}
	return marchToCivil(q4*4+r4/365, r4%365)
}

// marchToCivil converts a March-based year and zero-based day of that year.
func marchToCivil(y, r1 int64) (int, int, int) {
	m := ((r1+31)*5)/153 + 2
	d := r1 - ((m+1)*153)/5 + 123
	if m > 12 {
		y++
		m -= 12
	}
	return int(y), int(m), int(d)
}

// GregorianYear returns the proleptic Gregorian year containing the day.
// It decomposes the day count into quad-centuries, centuries and
// quadrennials without building a full date.
func GregorianYear(days DayCount) int {
	n := int64(days) + gregorianShift
	q400 := FloorDiv(n, 146097)
	r400 := FloorMod(n, 146097)
	if r400 == 146096 {
		return int((q400 + 1) * 400)
	}
	q100 := r400 / 36524
	r100 := r400 % 36524
	q4 := r100 / 1461
	r4 := r100 % 1461
	if r4 == 1460 {
		return int(q400*400 + q100*100 + (q4+1)*4)
	}
	q1 := r4 / 365
	r1 := r4 % 365
	y := q400*400 + q100*100 + q4*4 + q1
	// days after 31 December of the March-based year belong to the next civil year
	if ((r1+31)*5)/153+2 > 12 {
		y++
	}
	return int(y)
}
