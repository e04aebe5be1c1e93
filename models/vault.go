// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Vault is the persisted registry entry of a single vault.
//
// Address is derived from VaultID and the program ID and never changes.
// ReceiptMint stays zero until the operator creates the receipt token.
// Asset and Venue pin the single asset and yield venue the vault routes
// into. Either may be set at creation; the first deposit pins whatever is
// still unset.
type Vault struct {
	Address     solana.PublicKey `json:"address"`
	VaultID     solana.PublicKey `json:"vault_id"`
	Bump        uint8            `json:"bump"`
	ReceiptMint solana.PublicKey `json:"receipt_mint"`
	Asset       solana.PublicKey `json:"asset"`
	Venue       string           `json:"venue,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// HasReceiptToken reports whether a receipt mint was created for the vault.
func (v Vault) HasReceiptToken() bool {
	return !v.ReceiptMint.IsZero()
}

// AcceptsAsset reports whether the vault may take deposits of asset.
func (v Vault) AcceptsAsset(asset solana.PublicKey) bool {
	return v.Asset.IsZero() || v.Asset.Equals(asset)
}

// AcceptsVenue reports whether the vault may route into venue.
func (v Vault) AcceptsVenue(venue string) bool {
	return v.Venue == "" || v.Venue == venue
}

// VaultView is the read model returned by vault queries.
type VaultView struct {
	Vault        Vault `json:"vault"`
	ReceiptToken *Mint `json:"receipt_token,omitempty"`
}
