package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/address"
	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

type vaultService struct {
	ledger ledger.Ledger
	router *yield.Router

	programID solana.PublicKey
	operator  solana.PublicKey
	now       func() time.Time

	logger *logger.Logger
}

// NewVaultService returns the vault operation engine. cfg must be validated.
func NewVaultService(l ledger.Ledger, router *yield.Router, cfg config.App, logger *logger.Logger) VaultService {
	return &vaultService{
		ledger:    l,
		router:    router,
		programID: cfg.ProgramKey(),
		operator:  cfg.OperatorKey(),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *vaultService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error) {
	log := logger.FromContext(ctx)

	if !req.Signer.Equals(s.operator) {
		return models.Vault{}, fmt.Errorf("%w: %s is not the operator", ErrUnauthorized, req.Signer)
	}

	vaultAddr, bump, err := address.Vault(s.programID, req.VaultID)
	if err != nil {
		return models.Vault{}, classify(err)
	}

	if req.Venue != "" {
		if err = s.checkVenue(ctx, req.Venue, req.Asset); err != nil {
			return models.Vault{}, err
		}
	}

	vault := models.Vault{
		Address:   vaultAddr,
		VaultID:   req.VaultID,
		Bump:      bump,
		Asset:     req.Asset,
		Venue:     req.Venue,
		CreatedAt: s.now().UTC(),
	}

	err = s.ledger.Atomic(ctx, []solana.PublicKey{vaultAddr}, func(ctx context.Context, tx ledger.Tx) error {
		return tx.CreateVault(ctx, vault)
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultService.CreateVault").Str("vault", vaultAddr.String()).Msg("error creating vault")
		return models.Vault{}, classify(err)
	}

	log.Info().Str("vault", vaultAddr.String()).Uint8("bump", bump).Msg("vault created")
	return vault, nil
}

// checkVenue makes sure a venue pinned at creation can serve the asset, or
// at least exists when no asset is pinned.
func (s *vaultService) checkVenue(ctx context.Context, venue string, asset solana.PublicKey) error {
	if asset.IsZero() {
		_, err := s.router.Adapter(yield.Kind(venue))
		return classify(err)
	}

	_, _, err := s.router.Resolve(ctx, yield.Kind(venue), asset, solana.PublicKey{})
	return classify(err)
}

func (s *vaultService) CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error) {
	log := logger.FromContext(ctx)

	if !req.Signer.Equals(s.operator) {
		return models.Mint{}, fmt.Errorf("%w: %s is not the operator", ErrUnauthorized, req.Signer)
	}
	if req.Decimals > models.MaxDecimals {
		return models.Mint{}, fmt.Errorf("%w: %d is above %d", ErrInvalidDecimals, req.Decimals, models.MaxDecimals)
	}

	vaultAddr, _, err := address.Vault(s.programID, req.VaultID)
	if err != nil {
		return models.Mint{}, classify(err)
	}
	mintAddr, err := address.ReceiptMint(s.programID, vaultAddr)
	if err != nil {
		return models.Mint{}, err
	}

	mint := models.Mint{
		Address:         mintAddr,
		MintAuthority:   vaultAddr,
		FreezeAuthority: vaultAddr,
		Decimals:        req.Decimals,
		NonTransferable: true,
	}

	err = s.ledger.Atomic(ctx, []solana.PublicKey{vaultAddr, mintAddr}, func(ctx context.Context, tx ledger.Tx) error {
		vault, err := s.vault(ctx, tx, vaultAddr)
		if err != nil {
			return err
		}
		if vault.HasReceiptToken() {
			return fmt.Errorf("%w: vault %s already has receipt token %s", ErrAlreadyExists, vaultAddr, vault.ReceiptMint)
		}

		if err = tx.CreateMint(ctx, mint); err != nil {
			return classify(err)
		}

		vault.ReceiptMint = mintAddr
		return tx.UpdateVault(ctx, vault)
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultService.CreateReceiptToken").Str("vault", vaultAddr.String()).Msg("error creating receipt token")
		return models.Mint{}, err
	}

	log.Info().Str("vault", vaultAddr.String()).Str("mint", mintAddr.String()).Uint8("decimals", req.Decimals).Msg("receipt token created")
	return mint, nil
}

func (s *vaultService) Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error) {
	log := logger.FromContext(ctx)

	if req.Amount == 0 || req.Amount > ledger.MaxAmount {
		return models.DepositResult{}, fmt.Errorf("%w: %d", ErrInvalidAmount, req.Amount)
	}

	op, err := s.prepare(ctx, req.VaultID, req.Venue, req.Asset, req.Signer, req.Context)
	if err != nil {
		return models.DepositResult{}, err
	}

	result := models.DepositResult{Vault: op.vault, Minted: req.Amount}
	err = s.ledger.Atomic(ctx, op.lockKeys(req.Signer), func(ctx context.Context, tx ledger.Tx) error {
		vault, err := s.routableVault(ctx, tx, op)
		if err != nil {
			return err
		}

		if err = tx.Transfer(ctx, req.Asset, req.Signer, vault.Address, req.Signer, req.Amount); err != nil {
			return classify(err)
		}

		credited, err := op.adapter.DepositInto(ctx, tx, op.context, yield.Call{Vault: vault.Address, Amount: req.Amount})
		if err != nil {
			return wrap(ErrAdapterFailure, err)
		}
		if credited == 0 {
			return fmt.Errorf("%w: nothing credited", ErrAdapterFailure)
		}

		if err = tx.MintTo(ctx, vault.ReceiptMint, req.Signer, vault.Address, req.Amount); err != nil {
			return classify(err)
		}

		if err = s.pin(ctx, tx, vault, req.Asset, req.Venue); err != nil {
			return err
		}

		result.Credited = credited
		result.ReceiptBalance, err = tx.Balance(ctx, req.Signer, vault.ReceiptMint)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Deposit").
			Str("vault", op.vault.String()).
			Str("signer", req.Signer.String()).
			Uint64("amount", req.Amount).
			Msg("deposit rejected")
		return models.DepositResult{}, err
	}

	log.Info().
		Str("vault", op.vault.String()).
		Str("venue", req.Venue).
		Uint64("amount", req.Amount).
		Uint64("credited", result.Credited).
		Msg("deposit applied")
	return result, nil
}

func (s *vaultService) Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error) {
	log := logger.FromContext(ctx)

	if req.Amount == 0 || req.Amount > ledger.MaxAmount {
		return models.WithdrawResult{}, fmt.Errorf("%w: %d", ErrInvalidAmount, req.Amount)
	}

	op, err := s.prepare(ctx, req.VaultID, req.Venue, req.Asset, req.Signer, req.Context)
	if err != nil {
		return models.WithdrawResult{}, err
	}

	result := models.WithdrawResult{Vault: op.vault, Burned: req.Amount}
	err = s.ledger.Atomic(ctx, op.lockKeys(req.Signer), func(ctx context.Context, tx ledger.Tx) error {
		vault, err := s.routableVault(ctx, tx, op)
		if err != nil {
			return err
		}

		held, err := tx.Balance(ctx, req.Signer, vault.ReceiptMint)
		if err != nil {
			return err
		}
		if held < req.Amount {
			return fmt.Errorf("%w: holds %d receipt tokens, redeems %d", ErrInsufficientBalance, held, req.Amount)
		}

		receipt, err := tx.Mint(ctx, vault.ReceiptMint)
		if err != nil {
			return err
		}
		outstanding := receipt.Supply

		if err = tx.Burn(ctx, vault.ReceiptMint, req.Signer, req.Signer, req.Amount); err != nil {
			return classify(err)
		}

		before, err := tx.Balance(ctx, vault.Address, req.Asset)
		if err != nil {
			return err
		}

		released, err := op.adapter.WithdrawFrom(ctx, tx, op.context, yield.Call{
			Vault:       vault.Address,
			Amount:      req.Amount,
			Outstanding: outstanding,
		})
		if err != nil {
			return wrap(ErrAdapterFailure, err)
		}

		after, err := tx.Balance(ctx, vault.Address, req.Asset)
		if err != nil {
			return err
		}
		if released == 0 || after < before || after-before != released {
			return fmt.Errorf("%w: venue reported %d released, custody moved by %d", ErrAdapterFailure, released, int64(after)-int64(before))
		}

		if err = tx.Transfer(ctx, req.Asset, vault.Address, req.Signer, vault.Address, released); err != nil {
			return classify(err)
		}

		result.Released = released
		result.ReceiptBalance = held - req.Amount
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultService.Withdraw").
			Str("vault", op.vault.String()).
			Str("signer", req.Signer.String()).
			Uint64("amount", req.Amount).
			Msg("withdraw rejected")
		return models.WithdrawResult{}, err
	}

	log.Info().
		Str("vault", op.vault.String()).
		Str("venue", req.Venue).
		Uint64("burned", req.Amount).
		Uint64("released", result.Released).
		Msg("withdraw applied")
	return result, nil
}

// operation is everything a deposit or withdrawal resolves before it
// touches the ledger.
type operation struct {
	vault       solana.PublicKey
	receiptMint solana.PublicKey
	venue       string
	asset       solana.PublicKey
	adapter     yield.Adapter
	context     yield.Context
}

func (op operation) lockKeys(signer solana.PublicKey) []solana.PublicKey {
	return append([]solana.PublicKey{op.vault, op.receiptMint, signer}, op.context.LockKeys()...)
}

// prepare derives the vault addresses and resolves the adapter and its
// context. It never mutates state, so an unsupported asset fails before any
// balance moves.
func (s *vaultService) prepare(ctx context.Context, vaultID solana.PublicKey, venue string, asset, signer solana.PublicKey, bundle *models.AdapterContext) (operation, error) {
	vaultAddr, _, err := address.Vault(s.programID, vaultID)
	if err != nil {
		return operation{}, classify(err)
	}
	receiptMint, err := address.ReceiptMint(s.programID, vaultAddr)
	if err != nil {
		return operation{}, err
	}

	adapter, yc, err := s.router.Resolve(ctx, yield.Kind(venue), asset, signer)
	if err != nil {
		return operation{}, classify(err)
	}
	if err = yield.Match(yc, bundle); err != nil {
		return operation{}, wrap(ErrAdapterFailure, err)
	}

	return operation{
		vault:       vaultAddr,
		receiptMint: receiptMint,
		venue:       venue,
		asset:       asset,
		adapter:     adapter,
		context:     yc,
	}, nil
}

// routableVault loads the vault of op and checks that it can take the
// operation: receipt token in place with vault authority, asset and venue
// matching the pins.
func (s *vaultService) routableVault(ctx context.Context, tx ledger.Tx, op operation) (models.Vault, error) {
	vault, err := s.vault(ctx, tx, op.vault)
	if err != nil {
		return models.Vault{}, err
	}

	if !vault.HasReceiptToken() {
		return models.Vault{}, fmt.Errorf("%w: vault %s", ErrReceiptTokenNotFound, vault.Address)
	}
	if !vault.ReceiptMint.Equals(op.receiptMint) {
		return models.Vault{}, fmt.Errorf("%w: receipt mint %s is not derived from vault %s", ErrAddressMismatch, vault.ReceiptMint, vault.Address)
	}

	receipt, err := tx.Mint(ctx, vault.ReceiptMint)
	if err != nil {
		if errors.Is(err, ledger.ErrMintNotFound) {
			return models.Vault{}, wrap(ErrReceiptTokenNotFound, err)
		}
		return models.Vault{}, err
	}
	if !receipt.MintAuthority.Equals(vault.Address) || !receipt.FreezeAuthority.Equals(vault.Address) {
		return models.Vault{}, fmt.Errorf("%w: receipt mint %s is not controlled by the vault", ErrUnauthorized, receipt.Address)
	}

	if !vault.AcceptsAsset(op.asset) {
		return models.Vault{}, fmt.Errorf("%w: vault takes %s, got %s", ErrWrongAsset, vault.Asset, op.asset)
	}
	if !vault.AcceptsVenue(op.venue) {
		return models.Vault{}, fmt.Errorf("%w: vault routes into %q, got %q", ErrWrongVenue, vault.Venue, op.venue)
	}

	return vault, nil
}

// vault loads a registry entry and re-verifies its derivation.
func (s *vaultService) vault(ctx context.Context, tx ledger.Tx, vaultAddr solana.PublicKey) (models.Vault, error) {
	vault, err := tx.Vault(ctx, vaultAddr)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return models.Vault{}, wrap(ErrVaultNotFound, err)
		}
		return models.Vault{}, err
	}

	if err = address.VerifyVault(s.programID, vault.VaultID, vault.Bump, vault.Address); err != nil {
		return models.Vault{}, classify(err)
	}

	return vault, nil
}

// pin records the asset and venue on the first deposit so that the
// external position of a vault always sits in a single venue.
func (s *vaultService) pin(ctx context.Context, tx ledger.Tx, vault models.Vault, asset solana.PublicKey, venue string) error {
	if !vault.Asset.IsZero() && vault.Venue != "" {
		return nil
	}

	vault.Asset = asset
	vault.Venue = venue
	return tx.UpdateVault(ctx, vault)
}
