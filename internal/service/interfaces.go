// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// VaultService is the vault operation engine. Every mutating call runs in a
// single ledger unit of work and either applies completely or not at all.
type VaultService interface {
	CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error)
	CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error)

	Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error)

	GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error)
	Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error)
	Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error)
}

// VenueService exposes the venue registry to callers that build adapter
// contexts themselves.
type VenueService interface {
	Venues(ctx context.Context) []models.VenueInfo
	Context(ctx context.Context, venue string, asset, signer solana.PublicKey) (models.AdapterContext, error)
}

// AuthService authenticates signer tokens. payload is the exact request
// body (HTTP) or encoded request message (gRPC) the token must cover.
type AuthService interface {
	Authenticate(ctx context.Context, token string, payload []byte) (solana.PublicKey, error)

	// PurgeUsedTokens forgets the ids of tokens that have expired and
	// returns how many were dropped.
	PurgeUsedTokens(ctx context.Context) int
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validation or metrics.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}
