package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a USD amount in integer minor units. All arithmetic in this
// package stays in integer space; major-unit decimals exist only at the
// parse and format boundaries.
type Cents int64

// Card processing fee: 2.9% + $0.30, the standard acquirer rate.
const (
	feeRatePerMille = 29
	feeFixedCents   = Cents(30)
)

// FeeCents returns the processing fee for the given base amount, rounded
// half-up to the nearest cent. Non-positive amounts carry no fee.
func FeeCents(base Cents) Cents {
	if base <= 0 {
		return 0
	}
	variable := (int64(base)*feeRatePerMille + 500) / 1000
	return Cents(variable) + feeFixedCents
}

// TotalCents returns the amount the donor is charged: the base amount plus
// the processing fee when the donor opted to cover it.
func TotalCents(base Cents, coverFee bool) Cents {
	if !coverFee {
		return base
	}
	return base + FeeCents(base)
}

// ParseAmount converts a major-unit decimal string ("51.75") to cents. At
// most two fractional digits are accepted; this is the only place user
// input is converted to minor units.
func ParseAmount(s string) (Cents, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	negative := strings.HasPrefix(s, "-")
	if negative {
		return 0, fmt.Errorf("amount must not be negative")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	// strconv accepts a leading sign, so digit checks come first.
	if !digitsOnly(whole) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var cents int64
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two decimal places", s)
		}
		if !digitsOnly(frac) {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		if len(frac) == 1 {
			cents *= 10
		}
	}

	return Cents(dollars*100 + cents), nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FromDollars converts whole major units to cents.
func FromDollars(d int64) Cents {
	return Cents(d * 100)
}

// String renders the amount as a dollar figure, e.g. "$51.75".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
