package venue

import (
	"math"
	"math/bits"
)

// MulDiv returns floor(a*b/c) computed over 128 bits. It fails with
// [ErrMathOverflow] when c is zero or the quotient does not fit 64 bits.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrMathOverflow
	}

	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, ErrMathOverflow
	}

	q, _ := bits.Div64(hi, lo, c)
	return q, nil
}

// MulDivUp is [MulDiv] rounded towards positive infinity.
func MulDivUp(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrMathOverflow
	}

	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, ErrMathOverflow
	}

	q, r := bits.Div64(hi, lo, c)
	if r > 0 {
		if q == math.MaxUint64 {
			return 0, ErrMathOverflow
		}
		q++
	}

	return q, nil
}

// issue sizes a deposit of assets into a pool. Shares are rounded up and
// topUp is the value that rounding adds, owed to the pool by the treasury so
// the share price never drops. When the treasury cannot cover it shares are
// rounded down instead. An empty pool issues shares one to one.
func issue(assets, pool, supply, treasury uint64) (shares, topUp uint64, err error) {
	if supply == 0 || pool == 0 {
		return assets, 0, nil
	}

	up, err := MulDivUp(assets, supply, pool)
	if err != nil {
		return 0, 0, err
	}
	worth, err := MulDivUp(up, pool, supply)
	if err != nil {
		return 0, 0, err
	}
	if gap := worth - assets; gap <= treasury {
		return up, gap, nil
	}

	shares, err = MulDiv(assets, supply, pool)
	return shares, 0, err
}

// redemption is a sized withdrawal.
type redemption struct {
	shares uint64 // burned from the owner
	assets uint64 // paid to the owner
	topUp  uint64 // paid by the treasury into the pool beforehand
}

// redeem sizes a withdrawal of assets by an owner holding position shares.
// Asking for at least the position value redeems the whole position at that
// value. Otherwise the owner receives exactly assets: shares are rounded down
// and the sub-share remainder comes from the treasury, or one more share is
// burned when the treasury cannot cover it. The share price never drops.
func redeem(assets, position, pool, supply, treasury uint64) (redemption, error) {
	value, err := toAssets(position, pool, supply)
	if err != nil {
		return redemption{}, err
	}
	if assets >= value {
		return redemption{shares: position, assets: value}, nil
	}

	shares, err := MulDiv(assets, supply, pool)
	if err != nil {
		return redemption{}, err
	}
	covered, err := MulDiv(shares, pool, supply)
	if err != nil {
		return redemption{}, err
	}
	if gap := assets - covered; shares > 0 && gap <= treasury {
		return redemption{shares: shares, assets: assets, topUp: gap}, nil
	}

	shares, err = MulDivUp(assets, supply, pool)
	if err != nil {
		return redemption{}, err
	}

	return redemption{shares: min(shares, position), assets: assets}, nil
}
