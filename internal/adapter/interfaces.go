// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the vault HTTP API.
//
// [ServerAdapter] hides the transport from the CLI. Mutating calls are signed
// with the caller's keypair: every request carries a fresh single-use token
// covering the exact body bytes sent.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the vault server.
type ServerAdapter interface {
	// Signer returns the public key requests are signed with, or the zero
	// key for a read-only adapter.
	Signer() solana.PublicKey

	Version(ctx context.Context) (string, error)
	Venues(ctx context.Context) ([]models.VenueInfo, error)
	VenueContext(ctx context.Context, venue string, asset, owner solana.PublicKey) (models.AdapterContext, error)

	CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error)
	CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error)
	Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error)

	GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error)
	Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error)
	Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error)
}
