package models

import "github.com/gagliardetto/solana-go"

// MaxDecimals is the largest number of decimals a receipt token may have.
const MaxDecimals uint8 = 9

// Mint describes a token mint held by the custody ledger.
type Mint struct {
	Address         solana.PublicKey `json:"address"`
	MintAuthority   solana.PublicKey `json:"mint_authority"`
	FreezeAuthority solana.PublicKey `json:"freeze_authority"`
	Decimals        uint8            `json:"decimals"`
	Supply          uint64           `json:"supply"`
	NonTransferable bool             `json:"non_transferable"`
}

// TokenAccount is a holder's balance of a single mint.
//
// Address is the associated token address of (Owner, Mint) and is only used
// for display; balances are keyed by owner and mint.
type TokenAccount struct {
	Address solana.PublicKey `json:"address"`
	Owner   solana.PublicKey `json:"owner"`
	Mint    solana.PublicKey `json:"mint"`
	Amount  uint64           `json:"amount"`
}
