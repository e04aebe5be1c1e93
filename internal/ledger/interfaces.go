// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ledger is the asset custody layer of the vault program.
//
// It keeps mints, per-owner token balances, vault registry entries and
// venue accrual state, and applies token-program rules to them: transfers
// need the owner's authority, minting needs the mint authority, and
// non-transferable mints can only be minted and burned.
//
// Every mutation happens inside a unit of work opened with [Ledger.Atomic].
// The unit locks the given account keys in sorted order, stages all writes
// and commits them only when the callback returns nil.
package ledger

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, tx Tx) error

// Ledger opens units of work over the custody state.
type Ledger interface {
	// Atomic runs fn with exclusive access to keys. Writes made through tx
	// are applied if and only if fn returns nil.
	Atomic(ctx context.Context, keys []solana.PublicKey, fn TxFunc) error

	// View runs fn against the committed state. Writes are discarded.
	View(ctx context.Context, fn TxFunc) error
}

// Tx is the token-program view of the ledger inside a unit of work.
type Tx interface {
	Vault(ctx context.Context, address solana.PublicKey) (models.Vault, error)
	CreateVault(ctx context.Context, vault models.Vault) error
	UpdateVault(ctx context.Context, vault models.Vault) error

	Mint(ctx context.Context, address solana.PublicKey) (models.Mint, error)
	CreateMint(ctx context.Context, mint models.Mint) error

	Balance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error)
	Transfer(ctx context.Context, mint, from, to, authority solana.PublicKey, amount uint64) error
	MintTo(ctx context.Context, mint, to, authority solana.PublicKey, amount uint64) error
	Burn(ctx context.Context, mint, from, authority solana.PublicKey, amount uint64) error

	VenueState(ctx context.Context, address solana.PublicKey) (models.VenueState, error)
	PutVenueState(ctx context.Context, state models.VenueState) error
}

// Records is the raw record access a storage backend provides to [NewTx].
// Implementations report missing records with [ErrAccountNotFound] and
// duplicate inserts with [ErrAccountExists]. A missing balance reads as zero.
type Records interface {
	GetVault(ctx context.Context, address solana.PublicKey) (models.Vault, error)
	InsertVault(ctx context.Context, vault models.Vault) error
	UpdateVault(ctx context.Context, vault models.Vault) error

	GetMint(ctx context.Context, address solana.PublicKey) (models.Mint, error)
	InsertMint(ctx context.Context, mint models.Mint) error
	UpdateMintSupply(ctx context.Context, address solana.PublicKey, supply uint64) error

	GetBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error)
	SetBalance(ctx context.Context, owner, mint solana.PublicKey, amount uint64) error

	GetVenueState(ctx context.Context, address solana.PublicKey) (models.VenueState, error)
	SetVenueState(ctx context.Context, state models.VenueState) error
}
