package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// VaultValidationService rejects malformed requests before they reach the
// engine. Queries pass through unchanged.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

// NewVaultValidationService returns a wrapper that validates every vault
// request before it reaches the wrapped service.
func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error) {
	if err := v.validate(ctx, req); err != nil {
		return models.Vault{}, err
	}

	return v.inner.CreateVault(ctx, req)
}

func (v *VaultValidationService) CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error) {
	if err := v.validate(ctx, req); err != nil {
		return models.Mint{}, err
	}

	return v.inner.CreateReceiptToken(ctx, req)
}

func (v *VaultValidationService) Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error) {
	if err := v.validate(ctx, req); err != nil {
		return models.DepositResult{}, err
	}

	return v.inner.Deposit(ctx, req)
}

func (v *VaultValidationService) Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error) {
	if err := v.validate(ctx, req); err != nil {
		return models.WithdrawResult{}, err
	}

	return v.inner.Withdraw(ctx, req)
}

func (v *VaultValidationService) GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error) {
	if vaultID.IsZero() {
		return models.VaultView{}, wrap(ErrInvalidVaultID, validators.ErrZeroVaultID)
	}

	return v.inner.GetVault(ctx, vaultID)
}

func (v *VaultValidationService) Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error) {
	if vaultID.IsZero() {
		return models.Balance{}, wrap(ErrInvalidVaultID, validators.ErrZeroVaultID)
	}
	if owner.IsZero() {
		return models.Balance{}, wrap(ErrInvalidDataProvided, validators.ErrMissingSigner)
	}

	return v.inner.Balance(ctx, vaultID, owner)
}

func (v *VaultValidationService) Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error) {
	if vaultID.IsZero() {
		return models.Position{}, wrap(ErrInvalidVaultID, validators.ErrZeroVaultID)
	}

	return v.inner.Position(ctx, vaultID, venue, asset)
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

// validate runs the request validator and lifts its errors onto the service
// taxonomy.
func (v *VaultValidationService) validate(ctx context.Context, req any) error {
	err := v.validator.Validate(ctx, req)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, validators.ErrInvalidAmount):
		return wrap(ErrInvalidAmount, err)
	case errors.Is(err, validators.ErrInvalidDecimals):
		return wrap(ErrInvalidDecimals, err)
	case errors.Is(err, validators.ErrZeroVaultID):
		return wrap(ErrInvalidVaultID, err)
	case errors.Is(err, validators.ErrContextMismatch):
		return wrap(ErrAdapterFailure, err)
	default:
		return wrap(ErrInvalidDataProvided, err)
	}
}
