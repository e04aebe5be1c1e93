package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/address"
	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

func (s *vaultService) GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error) {
	vaultAddr, _, err := address.Vault(s.programID, vaultID)
	if err != nil {
		return models.VaultView{}, classify(err)
	}

	var view models.VaultView
	err = s.ledger.View(ctx, func(ctx context.Context, tx ledger.Tx) error {
		vault, err := s.vault(ctx, tx, vaultAddr)
		if err != nil {
			return err
		}
		view.Vault = vault

		if !vault.HasReceiptToken() {
			return nil
		}

		receipt, err := tx.Mint(ctx, vault.ReceiptMint)
		if err != nil {
			return err
		}
		view.ReceiptToken = &receipt

		return nil
	})
	if err != nil {
		return models.VaultView{}, err
	}

	return view, nil
}

func (s *vaultService) Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error) {
	vaultAddr, _, err := address.Vault(s.programID, vaultID)
	if err != nil {
		return models.Balance{}, classify(err)
	}

	var balance models.Balance
	err = s.ledger.View(ctx, func(ctx context.Context, tx ledger.Tx) error {
		vault, err := s.vault(ctx, tx, vaultAddr)
		if err != nil {
			return err
		}
		if !vault.HasReceiptToken() {
			return fmt.Errorf("%w: vault %s", ErrReceiptTokenNotFound, vaultAddr)
		}

		receipt, err := tx.Mint(ctx, vault.ReceiptMint)
		if err != nil {
			return err
		}
		amount, err := tx.Balance(ctx, owner, vault.ReceiptMint)
		if err != nil {
			return err
		}

		balance = models.Balance{
			Vault:       vaultAddr,
			Owner:       owner,
			ReceiptMint: vault.ReceiptMint,
			Account:     address.TokenAccount(owner, vault.ReceiptMint),
			Amount:      amount,
			Decimals:    receipt.Decimals,
		}
		return nil
	})
	if err != nil {
		return models.Balance{}, err
	}

	return balance, nil
}

// Position reports what the vault holds at venue. Empty venue and asset
// fall back to the ones pinned on the vault.
func (s *vaultService) Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error) {
	vaultAddr, _, err := address.Vault(s.programID, vaultID)
	if err != nil {
		return models.Position{}, classify(err)
	}

	var position models.Position
	err = s.ledger.View(ctx, func(ctx context.Context, tx ledger.Tx) error {
		vault, err := s.vault(ctx, tx, vaultAddr)
		if err != nil {
			return err
		}

		if venue == "" {
			venue = vault.Venue
		}
		if asset.IsZero() {
			asset = vault.Asset
		}
		if venue == "" || asset.IsZero() {
			return fmt.Errorf("%w: vault %s has no position yet", ErrNotSupported, vaultAddr)
		}

		adapter, yc, err := s.router.Resolve(ctx, yield.Kind(venue), asset, solana.PublicKey{})
		if err != nil {
			return classify(err)
		}

		reader, ok := adapter.(yield.PositionReader)
		if !ok {
			return fmt.Errorf("%w: venue %q does not report positions", ErrNotSupported, venue)
		}

		position, err = reader.Position(ctx, tx, yc, vault.Address)
		if errors.Is(err, ledger.ErrMintNotFound) {
			return wrap(ErrNotSupported, err)
		}
		return err
	})
	if err != nil {
		return models.Position{}, err
	}

	return position, nil
}
