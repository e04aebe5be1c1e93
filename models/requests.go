// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/gagliardetto/solana-go"

// Signer fields are never read from request bodies. Transports fill them with
// the authenticated public key of the caller.

// CreateVaultRequest opens a new vault.
type CreateVaultRequest struct {
	VaultID solana.PublicKey `json:"vault_id"`
	Asset   solana.PublicKey `json:"asset,omitempty"`
	Venue   string           `json:"venue,omitempty"`
	Signer  solana.PublicKey `json:"-"`
}

// CreateReceiptTokenRequest creates the receipt mint of an existing vault.
type CreateReceiptTokenRequest struct {
	VaultID  solana.PublicKey `json:"vault_id"`
	Decimals uint8            `json:"decimals"`
	Signer   solana.PublicKey `json:"-"`
}

// DepositRequest moves Amount of Asset from the signer into the vault and
// routes it into Venue.
type DepositRequest struct {
	VaultID solana.PublicKey `json:"vault_id"`
	Amount  uint64           `json:"amount"`
	Venue   string           `json:"venue"`
	Asset   solana.PublicKey `json:"asset"`
	// Context is optional. When set it must match the server-resolved
	// account bundle exactly.
	Context *AdapterContext  `json:"context,omitempty"`
	Signer  solana.PublicKey `json:"-"`
}

// WithdrawRequest redeems Amount receipt tokens for the underlying asset.
type WithdrawRequest struct {
	VaultID solana.PublicKey `json:"vault_id"`
	Amount  uint64           `json:"amount"`
	Venue   string           `json:"venue"`
	Asset   solana.PublicKey `json:"asset"`
	Context *AdapterContext  `json:"context,omitempty"`
	Signer  solana.PublicKey `json:"-"`
}

// GetVaultRequest names the vault to describe.
type GetVaultRequest struct {
	VaultID solana.PublicKey `json:"vault_id"`
}
