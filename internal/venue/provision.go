package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

const defaultShareDecimals uint8 = 6

// Provision creates the genesis mints and balances, the venue share mints and
// the venue accrual states that do not exist yet. Running it again is a
// no-op.
func (v *Venues) Provision(ctx context.Context, l ledger.Ledger) error {
	keys := v.AccrualKeys()
	for _, m := range v.registry.Genesis.Mints {
		keys = append(keys, m.Address)
	}
	for _, b := range v.registry.Genesis.Balances {
		keys = append(keys, b.Owner)
	}

	err := l.Atomic(ctx, keys, func(ctx context.Context, tx ledger.Tx) error {
		if err := v.provisionGenesis(ctx, tx); err != nil {
			return err
		}

		for _, m := range v.registry.Lender.Markets {
			if err := v.provisionShareMint(ctx, tx, m.FTokenMint, m.Lending, m.Asset); err != nil {
				return err
			}
			if err := v.provisionState(ctx, tx, m.Lending, LenderKind, m.RateBps); err != nil {
				return err
			}
		}

		for _, rv := range v.registry.Reserves.Vaults {
			if err := v.provisionShareMint(ctx, tx, rv.SharesMint, rv.BaseVaultAuthority, rv.Asset); err != nil {
				return err
			}
			for _, r := range rv.Reserves {
				if !r.Writable {
					continue
				}
				if err := v.provisionState(ctx, tx, r.Address, ReserveKind, rv.RateBps); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		v.logger.Err(err).Str("func", "*Venues.Provision").Msg("error provisioning venues")
		return fmt.Errorf("provision venues: %w", err)
	}

	v.logger.Info().
		Int("lender_markets", len(v.registry.Lender.Markets)).
		Int("reserve_vaults", len(v.registry.Reserves.Vaults)).
		Msg("venues provisioned")

	return nil
}

func (v *Venues) provisionGenesis(ctx context.Context, tx ledger.Tx) error {
	for _, gm := range v.registry.Genesis.Mints {
		_, err := tx.Mint(ctx, gm.Address)
		if err == nil {
			continue
		}
		if !errors.Is(err, ledger.ErrMintNotFound) {
			return err
		}

		if err = tx.CreateMint(ctx, models.Mint{
			Address:       gm.Address,
			MintAuthority: gm.Authority,
			Decimals:      gm.Decimals,
		}); err != nil {
			return err
		}

		for _, b := range v.registry.Genesis.Balances {
			if !b.Mint.Equals(gm.Address) {
				continue
			}
			if err = tx.MintTo(ctx, gm.Address, b.Owner, gm.Authority, b.Amount); err != nil {
				return fmt.Errorf("genesis balance of %s: %w", b.Owner, err)
			}
		}
	}

	return nil
}

func (v *Venues) provisionShareMint(ctx context.Context, tx ledger.Tx, mint, authority, asset solana.PublicKey) error {
	_, err := tx.Mint(ctx, mint)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ledger.ErrMintNotFound) {
		return err
	}

	decimals := defaultShareDecimals
	if assetMint, err := tx.Mint(ctx, asset); err == nil {
		decimals = assetMint.Decimals
	}

	return tx.CreateMint(ctx, models.Mint{
		Address:       mint,
		MintAuthority: authority,
		Decimals:      decimals,
	})
}

func (v *Venues) provisionState(ctx context.Context, tx ledger.Tx, address solana.PublicKey, kind string, rateBps uint32) error {
	_, err := tx.VenueState(ctx, address)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ledger.ErrAccountNotFound) {
		return err
	}

	return tx.PutVenueState(ctx, models.VenueState{
		Address:     address,
		Kind:        kind,
		RateBps:     rateBps,
		LastAccrual: v.now(),
	})
}
