package yield

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// ReservesAdapter routes vault custody into a vault of lending reserves. The
// venue revalues every reserve on each call, so the context always carries
// the full reserve list.
type ReservesAdapter struct {
	venues *venue.Venues
}

// NewReservesAdapter returns the adapter for reserve vaults served by venues.
func NewReservesAdapter(venues *venue.Venues) *ReservesAdapter {
	return &ReservesAdapter{venues: venues}
}

func (a *ReservesAdapter) Kind() Kind { return KindReserves }

func (a *ReservesAdapter) Markets() []models.VenueInfo {
	vaults := a.venues.Registry().Reserves.Vaults
	infos := make([]models.VenueInfo, 0, len(vaults))
	for _, rv := range vaults {
		infos = append(infos, models.VenueInfo{Venue: string(KindReserves), Name: rv.Name, Asset: rv.Asset})
	}

	return infos
}

func (a *ReservesAdapter) ResolveContext(_ context.Context, asset, signer solana.PublicKey) (Context, error) {
	rv, ok := a.venues.Registry().ReservesVaultFor(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s at %s", ErrNotSupported, asset, KindReserves)
	}

	return newReservesContext(rv, signer), nil
}

func (a *ReservesAdapter) DepositInto(ctx context.Context, tx ledger.Tx, c Context, call Call) (uint64, error) {
	rc, err := a.unwrap(c)
	if err != nil {
		return 0, err
	}

	return credited(ctx, tx, call.Vault, rc.vault.SharesMint, func() (uint64, error) {
		return a.venues.ReservesDeposit(ctx, tx, rc.vault, rc.Remaining(), call.Vault, call.Amount)
	})
}

func (a *ReservesAdapter) WithdrawFrom(ctx context.Context, tx ledger.Tx, c Context, call Call) (uint64, error) {
	rc, err := a.unwrap(c)
	if err != nil {
		return 0, err
	}

	if _, err = a.venues.AccrueReserves(ctx, tx, rc.vault); err != nil {
		return 0, err
	}

	position, err := tx.Balance(ctx, call.Vault, rc.vault.SharesMint)
	if err != nil {
		return 0, err
	}
	value, err := a.venues.ReservesValue(ctx, tx, rc.vault, position)
	if err != nil {
		return 0, err
	}
	assets, err := redemption(value, call)
	if err != nil {
		return 0, err
	}

	return a.venues.ReservesWithdraw(ctx, tx, rc.vault, rc.Remaining(), rc.accounts["reserve"], call.Vault, assets)
}

func (a *ReservesAdapter) Position(ctx context.Context, tx ledger.Tx, c Context, owner solana.PublicKey) (models.Position, error) {
	rc, err := a.unwrap(c)
	if err != nil {
		return models.Position{}, err
	}

	shares, err := tx.Balance(ctx, owner, rc.vault.SharesMint)
	if err != nil {
		return models.Position{}, err
	}
	value, err := a.venues.ReservesValue(ctx, tx, rc.vault, shares)
	if err != nil {
		return models.Position{}, err
	}

	return models.Position{
		Venue:      string(KindReserves),
		Asset:      rc.vault.Asset,
		ShareMint:  rc.vault.SharesMint,
		Shares:     shares,
		Underlying: value,
	}, nil
}

func (a *ReservesAdapter) unwrap(c Context) (*ReservesContext, error) {
	rc, ok := c.(*ReservesContext)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrWrongContext, c)
	}

	return rc, nil
}
