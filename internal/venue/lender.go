package venue

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/gagliardetto/solana-go"
)

// LenderDeposit moves amount of the market asset from depositor into the
// pool and mints fTokens to depositor at the current rate. The minted shares
// are worth at least amount whenever the treasury can cover the rounding.
func (v *Venues) LenderDeposit(ctx context.Context, tx ledger.Tx, m *LenderMarket, depositor solana.PublicKey, amount uint64) (uint64, error) {
	if _, err := v.AccrueLender(ctx, tx, m); err != nil {
		return 0, err
	}

	pool, supply, err := v.lenderPool(ctx, tx, m)
	if err != nil {
		return 0, err
	}
	treasury, err := tx.Balance(ctx, m.Treasury, m.Asset)
	if err != nil {
		return 0, err
	}

	shares, topUp, err := issue(amount, pool, supply, treasury)
	if err != nil {
		return 0, err
	}
	if shares == 0 {
		return 0, ErrZeroShares
	}

	if err = tx.Transfer(ctx, m.Asset, depositor, m.SupplyTokenReservesLiquidity, depositor, amount); err != nil {
		return 0, fmt.Errorf("lender deposit transfer: %w", err)
	}
	if err = tx.Transfer(ctx, m.Asset, m.Treasury, m.SupplyTokenReservesLiquidity, m.Treasury, topUp); err != nil {
		return 0, fmt.Errorf("lender deposit top-up: %w", err)
	}
	if err = tx.MintTo(ctx, m.FTokenMint, depositor, m.Lending, shares); err != nil {
		return 0, fmt.Errorf("lender deposit mint: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*Venues.LenderDeposit").
		Str("market", m.Name).
		Uint64("amount", amount).
		Uint64("shares", shares).
		Uint64("top_up", topUp).
		Msg("lender deposit")

	return shares, nil
}

// LenderWithdraw pays assets of the pool liquidity to owner and burns the
// fTokens backing them. Asking for at least the position value redeems the
// whole position and pays its value.
func (v *Venues) LenderWithdraw(ctx context.Context, tx ledger.Tx, m *LenderMarket, owner solana.PublicKey, assets uint64) (uint64, error) {
	if _, err := v.AccrueLender(ctx, tx, m); err != nil {
		return 0, err
	}

	pool, supply, err := v.lenderPool(ctx, tx, m)
	if err != nil {
		return 0, err
	}
	position, err := tx.Balance(ctx, owner, m.FTokenMint)
	if err != nil {
		return 0, err
	}
	treasury, err := tx.Balance(ctx, m.Treasury, m.Asset)
	if err != nil {
		return 0, err
	}

	r, err := redeem(assets, position, pool, supply, treasury)
	if err != nil {
		return 0, err
	}
	if r.assets == 0 {
		return 0, ErrZeroAssets
	}

	if err = tx.Transfer(ctx, m.Asset, m.Treasury, m.SupplyTokenReservesLiquidity, m.Treasury, r.topUp); err != nil {
		return 0, fmt.Errorf("lender withdraw top-up: %w", err)
	}
	if err = tx.Burn(ctx, m.FTokenMint, owner, owner, r.shares); err != nil {
		return 0, fmt.Errorf("lender withdraw burn: %w", err)
	}
	if err = tx.Transfer(ctx, m.Asset, m.SupplyTokenReservesLiquidity, owner, m.SupplyTokenReservesLiquidity, r.assets); err != nil {
		return 0, fmt.Errorf("lender withdraw transfer: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*Venues.LenderWithdraw").
		Str("market", m.Name).
		Uint64("shares", r.shares).
		Uint64("assets", r.assets).
		Uint64("top_up", r.topUp).
		Msg("lender withdraw")

	return r.assets, nil
}

// AccrueLender brings interest of market m up to date.
func (v *Venues) AccrueLender(ctx context.Context, tx ledger.Tx, m *LenderMarket) (uint64, error) {
	return v.accrue(ctx, tx, m.Lending, m.SupplyTokenReservesLiquidity, m.Asset, m.Treasury)
}

// LenderValue returns the pool liquidity backing shares without accruing.
func (v *Venues) LenderValue(ctx context.Context, tx ledger.Tx, m *LenderMarket, shares uint64) (uint64, error) {
	pool, supply, err := v.lenderPool(ctx, tx, m)
	if err != nil {
		return 0, err
	}

	return toAssets(shares, pool, supply)
}

func (v *Venues) lenderPool(ctx context.Context, tx ledger.Tx, m *LenderMarket) (uint64, uint64, error) {
	pool, err := tx.Balance(ctx, m.SupplyTokenReservesLiquidity, m.Asset)
	if err != nil {
		return 0, 0, err
	}

	supply, err := shareSupply(ctx, tx, m.FTokenMint)
	if err != nil {
		return 0, 0, err
	}

	return pool, supply, nil
}
