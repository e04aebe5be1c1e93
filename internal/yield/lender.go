package yield

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// LenderAdapter routes vault custody into the aggregating lender.
type LenderAdapter struct {
	venues *venue.Venues
}

// NewLenderAdapter returns the adapter for the aggregating lender.
//
// Parameters:
//   - venues: simulator executing lender calls inside the caller's ledger unit.
//
// The adapter resolves a market per asset from the venues' registry; an asset
// without a market yields [ErrNotSupported].
func NewLenderAdapter(venues *venue.Venues) *LenderAdapter {
	return &LenderAdapter{venues: venues}
}

func (a *LenderAdapter) Kind() Kind { return KindLender }

func (a *LenderAdapter) Markets() []models.VenueInfo {
	markets := a.venues.Registry().Lender.Markets
	infos := make([]models.VenueInfo, 0, len(markets))
	for _, m := range markets {
		infos = append(infos, models.VenueInfo{Venue: string(KindLender), Name: m.Name, Asset: m.Asset})
	}

	return infos
}

func (a *LenderAdapter) ResolveContext(_ context.Context, asset, signer solana.PublicKey) (Context, error) {
	reg := a.venues.Registry()
	m, ok := reg.LenderMarketFor(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s at %s", ErrNotSupported, asset, KindLender)
	}

	return newLenderContext(reg.Lender, m, signer), nil
}

func (a *LenderAdapter) DepositInto(ctx context.Context, tx ledger.Tx, c Context, call Call) (uint64, error) {
	lc, err := a.unwrap(c)
	if err != nil {
		return 0, err
	}

	return credited(ctx, tx, call.Vault, lc.market.FTokenMint, func() (uint64, error) {
		return a.venues.LenderDeposit(ctx, tx, lc.market, call.Vault, call.Amount)
	})
}

func (a *LenderAdapter) WithdrawFrom(ctx context.Context, tx ledger.Tx, c Context, call Call) (uint64, error) {
	lc, err := a.unwrap(c)
	if err != nil {
		return 0, err
	}

	if _, err = a.venues.AccrueLender(ctx, tx, lc.market); err != nil {
		return 0, err
	}

	position, err := tx.Balance(ctx, call.Vault, lc.market.FTokenMint)
	if err != nil {
		return 0, err
	}
	value, err := a.venues.LenderValue(ctx, tx, lc.market, position)
	if err != nil {
		return 0, err
	}
	assets, err := redemption(value, call)
	if err != nil {
		return 0, err
	}

	return a.venues.LenderWithdraw(ctx, tx, lc.market, call.Vault, assets)
}

func (a *LenderAdapter) Position(ctx context.Context, tx ledger.Tx, c Context, owner solana.PublicKey) (models.Position, error) {
	lc, err := a.unwrap(c)
	if err != nil {
		return models.Position{}, err
	}

	shares, err := tx.Balance(ctx, owner, lc.market.FTokenMint)
	if err != nil {
		return models.Position{}, err
	}
	value, err := a.venues.LenderValue(ctx, tx, lc.market, shares)
	if err != nil {
		return models.Position{}, err
	}

	return models.Position{
		Venue:      string(KindLender),
		Asset:      lc.market.Asset,
		ShareMint:  lc.market.FTokenMint,
		Shares:     shares,
		Underlying: value,
	}, nil
}

func (a *LenderAdapter) unwrap(c Context) (*LenderContext, error) {
	lc, ok := c.(*LenderContext)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrWrongContext, c)
	}

	return lc, nil
}
