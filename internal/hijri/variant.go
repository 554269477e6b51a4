package hijri

import (
	"strconv"
	"strings"

	"github.com/tartampluch/go-calendars/internal/calsys"
	"github.com/tartampluch/go-calendars/internal/config"
)

// Variant is a parsed variant name: a base data set plus a uniform day shift
// for regional sighting differences, written "islamic-civil:+1".
type Variant struct {
	Base       string
	Adjustment int
}

// ParseVariant splits name into base and adjustment. The adjustment must lie
// within ±config.MaxVariantAdjustment.
func ParseVariant(name string) (Variant, error) {
	base, adj, found := strings.Cut(name, config.VariantAdjustmentSeparator)
	if base == "" {
		return Variant{}, calsys.NewArgument("empty hijri variant: %q", name)
	}
	if !found {
		return Variant{Base: base}, nil
	}

	n, err := strconv.Atoi(adj)
	if err != nil {
		return Variant{}, calsys.NewArgument("bad hijri adjustment in %q", name)
	}
	if n < -config.MaxVariantAdjustment || n > config.MaxVariantAdjustment {
		return Variant{}, calsys.NewOutOfRange("hijri adjustment %d in %q exceeds ±%d", n, name, config.MaxVariantAdjustment)
	}
	return Variant{Base: base, Adjustment: n}, nil
}

// String returns the canonical name: the base alone when there is no
// adjustment, else base:+n or base:-n.
func (v Variant) String() string {
	if v.Adjustment == 0 {
		return v.Base
	}
	sign := "+"
	if v.Adjustment < 0 {
		sign = ""
	}
	return v.Base + config.VariantAdjustmentSeparator + sign + strconv.Itoa(v.Adjustment)
}

// resourcePath returns the location of the base table inside the calendar family.
func (v Variant) resourcePath() string {
	return config.ResourceDataDir + strings.ReplaceAll(v.Base, "-", "_") + config.ResourceDataExt
}
