package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a quantity of funds counted in base units. One display unit is
// 1e6 base units, so the smallest representable step is 0.000001 unit.
type Amount int64

// UnitScale is the number of base units per display unit.
const UnitScale = 1_000_000

// MinimumDonation is 0.001 unit.
const MinimumDonation Amount = UnitScale / 1000

// Fee configuration bounds, in basis points (10000 = 100%).
const (
	MaxFeeBps     int64 = 1000
	DefaultFeeBps int64 = 250
	feeDenom      int64 = 10_000
)

// ParseAmount converts a human decimal string ("2.5") into base units.
// It rejects negative values, more than six decimal places, and values
// outside the int64 range.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative value", ErrInvalidAmount)
	}
	scaled := d.Mul(decimal.NewFromInt(UnitScale))
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("%w: more than 6 decimal places", ErrInvalidAmount)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, ErrAmountOverflow
	}
	return Amount(scaled.IntPart()), nil
}

// String renders the amount in display units, e.g. 275000 -> "0.275".
func (a Amount) String() string {
	return decimal.New(int64(a), -6).String()
}

// Add returns a+b, failing with ErrAmountOverflow instead of wrapping.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > Amount(math.MaxInt64)-b {
		return 0, ErrAmountOverflow
	}
	if b < 0 && a < Amount(math.MinInt64)-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// SplitFee computes the platform cut of raw at the given basis points and
// the remainder. The fee is floor(raw*bps/10000), evaluated without
// intermediate overflow.
func SplitFee(raw Amount, bps int64) (fee, net Amount) {
	r := int64(raw)
	f := bps*(r/feeDenom) + (r%feeDenom)*bps/feeDenom
	return Amount(f), Amount(r - f)
}

// ValidateFeeBps checks a fee configuration value against the cap.
func ValidateFeeBps(bps int64) error {
	if bps < 0 || bps > MaxFeeBps {
		return ErrInvalidFee
	}
	return nil
}
