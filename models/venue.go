// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// VenueState is the accrual bookkeeping of one external venue account
// (a lender market or a single reserve).
type VenueState struct {
	Address     solana.PublicKey `json:"address"`
	Kind        string           `json:"kind"`
	RateBps     uint32           `json:"rate_bps"`
	LastAccrual time.Time        `json:"last_accrual"`
}

// AccountRef is one entry of an adapter's variable-length account list.
type AccountRef struct {
	Address  solana.PublicKey `json:"address"`
	Writable bool             `json:"writable"`
}

// AdapterContext is the wire form of the account bundle a yield-source
// adapter needs for a single call. Accounts holds the venue's fixed accounts
// by name; Remaining holds the venue-defined variable-length list in order.
type AdapterContext struct {
	Venue     string                      `json:"venue"`
	Asset     solana.PublicKey            `json:"asset"`
	Accounts  map[string]solana.PublicKey `json:"accounts"`
	Remaining []AccountRef                `json:"remaining,omitempty"`
}

// Position is the vault's holding at an external venue.
type Position struct {
	Venue      string           `json:"venue"`
	Asset      solana.PublicKey `json:"asset"`
	ShareMint  solana.PublicKey `json:"share_mint"`
	Shares     uint64           `json:"shares"`
	Underlying uint64           `json:"underlying"`
}

// VenueInfo lists a configured venue market for one asset.
type VenueInfo struct {
	Venue string           `json:"venue"`
	Name  string           `json:"name"`
	Asset solana.PublicKey `json:"asset"`
}
