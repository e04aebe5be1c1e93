package venue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/gagliardetto/solana-go"
)

const (
	bpsDenominator = 10_000
	secondsPerYear = 365 * 24 * 60 * 60
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Venues executes venue calls against a custody ledger.
type Venues struct {
	registry *Registry
	now      Clock

	logger *logger.Logger
}

// New returns the venue simulator for registry. A nil clock means time.Now.
func New(registry *Registry, clock Clock, logger *logger.Logger) *Venues {
	if clock == nil {
		clock = time.Now
	}

	return &Venues{registry: registry, now: clock, logger: logger}
}

// Registry returns the static venue configuration.
func (v *Venues) Registry() *Registry {
	return v.registry
}

// AccrualKeys lists every account [Venues.AccrueAll] writes.
func (v *Venues) AccrualKeys() []solana.PublicKey {
	var keys []solana.PublicKey
	for _, m := range v.registry.Lender.Markets {
		keys = append(keys, m.LockKeys()...)
	}
	for _, rv := range v.registry.Reserves.Vaults {
		keys = append(keys, rv.LockKeys()...)
	}

	return keys
}

// AccrueAll brings interest of every configured venue up to date and returns
// the total paid out of treasuries.
func (v *Venues) AccrueAll(ctx context.Context, tx ledger.Tx) (uint64, error) {
	var total uint64

	for _, m := range v.registry.Lender.Markets {
		paid, err := v.AccrueLender(ctx, tx, m)
		if err != nil {
			return total, fmt.Errorf("accrue lender market %s: %w", m.Name, err)
		}
		total += paid
	}

	for _, rv := range v.registry.Reserves.Vaults {
		paid, err := v.AccrueReserves(ctx, tx, rv)
		if err != nil {
			return total, fmt.Errorf("accrue reserve vault %s: %w", rv.Name, err)
		}
		total += paid
	}

	return total, nil
}

// accrue pays simple interest on the principal held by holder since the
// state's last accrual. Payment comes from treasury and is capped by its
// balance. Sub-unit interest is left to build up.
func (v *Venues) accrue(ctx context.Context, tx ledger.Tx, state, holder, asset, treasury solana.PublicKey) (uint64, error) {
	st, err := tx.VenueState(ctx, state)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrNotProvisioned, state)
		}
		return 0, err
	}

	now := v.now()
	elapsed := now.Sub(st.LastAccrual)
	if elapsed <= 0 {
		return 0, nil
	}

	principal, err := tx.Balance(ctx, holder, asset)
	if err != nil {
		return 0, err
	}

	interest, err := MulDiv(principal, uint64(st.RateBps)*uint64(elapsed/time.Second), bpsDenominator*secondsPerYear)
	if err != nil {
		return 0, err
	}
	if interest == 0 && principal > 0 && st.RateBps > 0 {
		return 0, nil
	}

	available, err := tx.Balance(ctx, treasury, asset)
	if err != nil {
		return 0, err
	}
	interest = min(interest, available)

	if err = tx.Transfer(ctx, asset, treasury, holder, treasury, interest); err != nil {
		return 0, err
	}

	st.LastAccrual = now
	if err = tx.PutVenueState(ctx, st); err != nil {
		return 0, err
	}

	if interest > 0 {
		logger.FromContext(ctx).Debug().
			Str("func", "*Venues.accrue").
			Str("state", state.String()).
			Uint64("interest", interest).
			Msg("interest accrued")
	}

	return interest, nil
}

// shareSupply returns the supply of a venue share mint.
func shareSupply(ctx context.Context, tx ledger.Tx, mint solana.PublicKey) (uint64, error) {
	m, err := tx.Mint(ctx, mint)
	if err != nil {
		if errors.Is(err, ledger.ErrMintNotFound) {
			return 0, fmt.Errorf("%w: share mint %s", ErrNotProvisioned, mint)
		}
		return 0, err
	}

	return m.Supply, nil
}

// toAssets converts shares into assets at the pool rate.
func toAssets(shares, pool, supply uint64) (uint64, error) {
	if supply == 0 {
		return 0, nil
	}

	return MulDiv(shares, pool, supply)
}
