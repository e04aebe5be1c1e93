package validators

import (
	"context"
	"fmt"
	"math"

	"github.com/MKhiriev/go-vault-keeper/models"
)

// Field names accepted by [VaultValidator.Validate].
const (
	FieldVaultID  = "vault_id"
	FieldSigner   = "signer"
	FieldAsset    = "asset"
	FieldVenue    = "venue"
	FieldAmount   = "amount"
	FieldDecimals = "decimals"
	FieldContext  = "context"
)

// maxAmount mirrors the ledger's largest storable amount.
const maxAmount uint64 = math.MaxInt64

// VaultValidator validates the vault request models. Both value and pointer
// forms are accepted; field names restrict the checks to a subset.
type VaultValidator struct{}

// NewVaultValidator returns a [Validator] for vault requests.
func NewVaultValidator() Validator {
	return &VaultValidator{}
}

func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateVaultRequest:
		return v.validateCreateVault(ctx, value, fields...)
	case *models.CreateVaultRequest:
		return v.validateCreateVault(ctx, *value, fields...)
	case models.CreateReceiptTokenRequest:
		return v.validateCreateReceiptToken(ctx, value, fields...)
	case *models.CreateReceiptTokenRequest:
		return v.validateCreateReceiptToken(ctx, *value, fields...)
	case models.DepositRequest:
		return v.validateMovement(ctx, movement(value), fields...)
	case *models.DepositRequest:
		return v.validateMovement(ctx, movement(*value), fields...)
	case models.WithdrawRequest:
		return v.validateMovement(ctx, movement(value), fields...)
	case *models.WithdrawRequest:
		return v.validateMovement(ctx, movement(*value), fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *VaultValidator) validateCreateVault(_ context.Context, req models.CreateVaultRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultID, FieldSigner}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultID:
			if req.VaultID.IsZero() {
				return ErrZeroVaultID
			}
		case FieldSigner:
			if req.Signer.IsZero() {
				return ErrMissingSigner
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *VaultValidator) validateCreateReceiptToken(_ context.Context, req models.CreateReceiptTokenRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultID, FieldSigner, FieldDecimals}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultID:
			if req.VaultID.IsZero() {
				return ErrZeroVaultID
			}
		case FieldSigner:
			if req.Signer.IsZero() {
				return ErrMissingSigner
			}
		case FieldDecimals:
			if req.Decimals > models.MaxDecimals {
				return fmt.Errorf("%w: %d is above %d", ErrInvalidDecimals, req.Decimals, models.MaxDecimals)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// movement is the shared shape of deposit and withdraw requests.
type movement models.DepositRequest

func (v *VaultValidator) validateMovement(_ context.Context, req movement, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultID, FieldSigner, FieldAmount, FieldVenue, FieldAsset, FieldContext}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultID:
			if req.VaultID.IsZero() {
				return ErrZeroVaultID
			}
		case FieldSigner:
			if req.Signer.IsZero() {
				return ErrMissingSigner
			}
		case FieldAmount:
			if req.Amount == 0 || req.Amount > maxAmount {
				return fmt.Errorf("%w: %d", ErrInvalidAmount, req.Amount)
			}
		case FieldVenue:
			if req.Venue == "" {
				return ErrEmptyVenue
			}
		case FieldAsset:
			if req.Asset.IsZero() {
				return ErrZeroAsset
			}
		case FieldContext:
			if req.Context == nil {
				continue
			}
			if req.Context.Venue != req.Venue || !req.Context.Asset.Equals(req.Asset) {
				return fmt.Errorf("%w: context is for %s/%s", ErrContextMismatch, req.Context.Venue, req.Context.Asset)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}
