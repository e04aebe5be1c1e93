package client

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a display amount such as "12.5" into base units of a
// token with the given decimals. The result must be a positive whole number
// of base units that fits into uint64.
func ParseAmount(s string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	base := d.Shift(int32(decimals))
	if !base.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	if base.Sign() <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, s)
	}

	n := base.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s is too large", ErrInvalidAmount, s)
	}

	return n.Uint64(), nil
}

// FormatAmount renders base units with exactly decimals fractional digits.
func FormatAmount(amount uint64, decimals uint8) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
	return d.StringFixed(int32(decimals))
}
