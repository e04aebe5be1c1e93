package venue

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// ReservesDeposit moves amount into the vault's idle liquidity, mints shares
// to depositor at the AUM rate and allocates part of the idle liquidity to
// the main reserve. remaining must name every reserve of the vault.
func (v *Venues) ReservesDeposit(ctx context.Context, tx ledger.Tx, rv *ReservesVault, remaining []models.AccountRef, depositor solana.PublicKey, amount uint64) (uint64, error) {
	if err := rv.checkRemaining(remaining); err != nil {
		return 0, err
	}
	if _, err := v.AccrueReserves(ctx, tx, rv); err != nil {
		return 0, err
	}

	aum, supply, err := v.reservesPool(ctx, tx, rv)
	if err != nil {
		return 0, err
	}
	treasury, err := tx.Balance(ctx, rv.Treasury, rv.Asset)
	if err != nil {
		return 0, err
	}

	shares, topUp, err := issue(amount, aum, supply, treasury)
	if err != nil {
		return 0, err
	}
	if shares == 0 {
		return 0, ErrZeroShares
	}

	if err = tx.Transfer(ctx, rv.Asset, depositor, rv.TokenVault, depositor, amount); err != nil {
		return 0, fmt.Errorf("reserves deposit transfer: %w", err)
	}
	if err = tx.Transfer(ctx, rv.Asset, rv.Treasury, rv.TokenVault, rv.Treasury, topUp); err != nil {
		return 0, fmt.Errorf("reserves deposit top-up: %w", err)
	}
	if err = tx.MintTo(ctx, rv.SharesMint, depositor, rv.BaseVaultAuthority, shares); err != nil {
		return 0, fmt.Errorf("reserves deposit mint: %w", err)
	}
	if err = v.allocate(ctx, tx, rv); err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*Venues.ReservesDeposit").
		Str("vault", rv.Name).
		Uint64("amount", amount).
		Uint64("shares", shares).
		Uint64("top_up", topUp).
		Msg("reserves deposit")

	return shares, nil
}

// ReservesWithdraw pays assets of the AUM to owner, first from idle liquidity
// and then from reserve, and burns the shares backing them. Asking for at
// least the position value redeems the whole position and pays its value.
func (v *Venues) ReservesWithdraw(ctx context.Context, tx ledger.Tx, rv *ReservesVault, remaining []models.AccountRef, reserve, owner solana.PublicKey, assets uint64) (uint64, error) {
	if err := rv.checkRemaining(remaining); err != nil {
		return 0, err
	}

	ref, ok := rv.reserve(reserve)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownReserve, reserve)
	}
	if !ref.Writable {
		return 0, fmt.Errorf("%w: %s", ErrReadOnlyReserve, reserve)
	}

	if _, err := v.AccrueReserves(ctx, tx, rv); err != nil {
		return 0, err
	}

	aum, supply, err := v.reservesPool(ctx, tx, rv)
	if err != nil {
		return 0, err
	}
	position, err := tx.Balance(ctx, owner, rv.SharesMint)
	if err != nil {
		return 0, err
	}
	treasury, err := tx.Balance(ctx, rv.Treasury, rv.Asset)
	if err != nil {
		return 0, err
	}

	r, err := redeem(assets, position, aum, supply, treasury)
	if err != nil {
		return 0, err
	}
	if r.assets == 0 {
		return 0, ErrZeroAssets
	}

	if err = tx.Transfer(ctx, rv.Asset, rv.Treasury, rv.TokenVault, rv.Treasury, r.topUp); err != nil {
		return 0, fmt.Errorf("reserves withdraw top-up: %w", err)
	}
	if err = tx.Burn(ctx, rv.SharesMint, owner, owner, r.shares); err != nil {
		return 0, fmt.Errorf("reserves withdraw burn: %w", err)
	}

	idle, err := tx.Balance(ctx, rv.TokenVault, rv.Asset)
	if err != nil {
		return 0, err
	}
	fromIdle := min(idle, r.assets)
	if err = tx.Transfer(ctx, rv.Asset, rv.TokenVault, owner, rv.TokenVault, fromIdle); err != nil {
		return 0, fmt.Errorf("reserves withdraw transfer: %w", err)
	}

	if shortfall := r.assets - fromIdle; shortfall > 0 {
		held, err := tx.Balance(ctx, reserve, rv.Asset)
		if err != nil {
			return 0, err
		}
		if held < shortfall {
			return 0, fmt.Errorf("%w: reserve %s holds %d, needs %d", ErrInsufficientLiquidity, reserve, held, shortfall)
		}
		if err = tx.Transfer(ctx, rv.Asset, reserve, owner, reserve, shortfall); err != nil {
			return 0, fmt.Errorf("reserves withdraw from reserve: %w", err)
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*Venues.ReservesWithdraw").
		Str("vault", rv.Name).
		Uint64("shares", r.shares).
		Uint64("assets", r.assets).
		Uint64("top_up", r.topUp).
		Msg("reserves withdraw")

	return r.assets, nil
}

// ReservesValue returns the AUM backing shares without accruing.
func (v *Venues) ReservesValue(ctx context.Context, tx ledger.Tx, rv *ReservesVault, shares uint64) (uint64, error) {
	aum, supply, err := v.reservesPool(ctx, tx, rv)
	if err != nil {
		return 0, err
	}

	return toAssets(shares, aum, supply)
}

// AccrueReserves brings interest of every writable reserve of rv up to date.
func (v *Venues) AccrueReserves(ctx context.Context, tx ledger.Tx, rv *ReservesVault) (uint64, error) {
	var total uint64
	for _, r := range rv.Reserves {
		if !r.Writable {
			continue
		}
		paid, err := v.accrue(ctx, tx, r.Address, r.Address, rv.Asset, rv.Treasury)
		if err != nil {
			return total, err
		}
		total += paid
	}

	return total, nil
}

// reservesPool returns assets under management and the share supply.
func (v *Venues) reservesPool(ctx context.Context, tx ledger.Tx, rv *ReservesVault) (uint64, uint64, error) {
	aum, err := tx.Balance(ctx, rv.TokenVault, rv.Asset)
	if err != nil {
		return 0, 0, err
	}

	for _, r := range rv.Reserves {
		if !r.Writable {
			continue
		}
		held, err := tx.Balance(ctx, r.Address, rv.Asset)
		if err != nil {
			return 0, 0, err
		}
		if aum > ledger.MaxAmount-held {
			return 0, 0, ErrMathOverflow
		}
		aum += held
	}

	supply, err := shareSupply(ctx, tx, rv.SharesMint)
	if err != nil {
		return 0, 0, err
	}

	return aum, supply, nil
}

func (v *Venues) allocate(ctx context.Context, tx ledger.Tx, rv *ReservesVault) error {
	if rv.AllocationBps == 0 {
		return nil
	}

	idle, err := tx.Balance(ctx, rv.TokenVault, rv.Asset)
	if err != nil {
		return err
	}

	move, err := MulDiv(idle, uint64(rv.AllocationBps), bpsDenominator)
	if err != nil {
		return err
	}

	return tx.Transfer(ctx, rv.Asset, rv.TokenVault, rv.MainReserve.Address, rv.TokenVault, move)
}

// checkRemaining requires remaining to list exactly the configured reserves
// with matching writability, in any order.
func (rv *ReservesVault) checkRemaining(remaining []models.AccountRef) error {
	given := make(map[solana.PublicKey]bool, len(remaining))
	for _, r := range remaining {
		ref, ok := rv.reserve(r.Address)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownReserve, r.Address)
		}
		if r.Writable != ref.Writable {
			return fmt.Errorf("%w: %s has wrong writability", ErrUnknownReserve, r.Address)
		}
		given[r.Address] = true
	}

	for _, ref := range rv.Reserves {
		if !given[ref.Address] {
			return fmt.Errorf("%w: %s", ErrMissingReserve, ref.Address)
		}
	}

	return nil
}
