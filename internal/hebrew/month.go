package hebrew

import "fmt"

// Month is a Hebrew month in civil order, counted from Tishri. AdarI exists
// only in leap years; in common years AdarII is the single month Adar.
type Month int

const (
	Tishri Month = iota + 1
	Heshvan
	Kislev
	Tevet
	Shevat
	AdarI
	AdarII
	Nisan
	Iyar
	Sivan
	Tamuz
	Av
	Elul
)

var monthNames = [...]string{
	Tishri:  "TISHRI",
	Heshvan: "HESHVAN",
	Kislev:  "KISLEV",
	Tevet:   "TEVET",
	Shevat:  "SHEVAT",
	AdarI:   "ADAR_I",
	AdarII:  "ADAR_II",
	Nisan:   "NISAN",
	Iyar:    "IYAR",
	Sivan:   "SIVAN",
	Tamuz:   "TAMUZ",
	Av:      "AV",
	Elul:    "ELUL",
}

func (m Month) String() string {
	if m < Tishri || m > Elul {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// Biblical returns the month number counted from Nisan. In a leap year Adar I
// is 12 and Adar II is 13; in a common year Adar is 12.
func (m Month) Biblical(leap bool) int {
	switch {
	case m >= Nisan:
		return int(m - Nisan + 1)
	case m == AdarII && leap:
		return 13
	case m == AdarII:
		return 12
	default:
		return int(m) + 6
	}
}

// MonthOfBiblical is the inverse of Month.Biblical.
func MonthOfBiblical(biblical int, leap bool) Month {
	switch {
	case biblical <= 6:
		return Month(biblical) + Nisan - 1
	case biblical == 12 && !leap, biblical == 13:
		return AdarII
	default:
		return Month(biblical - 6)
	}
}
