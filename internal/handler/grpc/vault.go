package grpc

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

func signer(ctx context.Context) (solana.PublicKey, error) {
	s, ok := utils.GetSignerFromContext(ctx)
	if !ok {
		return solana.PublicKey{}, errMissingToken
	}
	return s, nil
}

func (h *Handler) CreateVault(ctx context.Context, req *models.CreateVaultRequest) (*models.Vault, error) {
	var err error
	if req.Signer, err = signer(ctx); err != nil {
		return nil, toStatus(err)
	}

	vault, err := h.services.VaultService.CreateVault(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}

	logger.FromContext(ctx).Info().Str("func", "*Handler.CreateVault").
		Stringer("vault", vault.Address).
		Msg("vault created")
	return &vault, nil
}

func (h *Handler) CreateReceiptToken(ctx context.Context, req *models.CreateReceiptTokenRequest) (*models.Mint, error) {
	var err error
	if req.Signer, err = signer(ctx); err != nil {
		return nil, toStatus(err)
	}

	mint, err := h.services.VaultService.CreateReceiptToken(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &mint, nil
}

func (h *Handler) Deposit(ctx context.Context, req *models.DepositRequest) (*models.DepositResult, error) {
	var err error
	if req.Signer, err = signer(ctx); err != nil {
		return nil, toStatus(err)
	}

	result, err := h.services.VaultService.Deposit(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &result, nil
}

func (h *Handler) Withdraw(ctx context.Context, req *models.WithdrawRequest) (*models.WithdrawResult, error) {
	var err error
	if req.Signer, err = signer(ctx); err != nil {
		return nil, toStatus(err)
	}

	result, err := h.services.VaultService.Withdraw(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &result, nil
}

func (h *Handler) GetVault(ctx context.Context, req *models.GetVaultRequest) (*models.VaultView, error) {
	view, err := h.services.VaultService.GetVault(ctx, req.VaultID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &view, nil
}
