// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/gagliardetto/solana-go"

// DepositResult reports the effects of a successful deposit.
type DepositResult struct {
	Vault          solana.PublicKey `json:"vault"`
	Minted         uint64           `json:"minted"`
	Credited       uint64           `json:"credited"`
	ReceiptBalance uint64           `json:"receipt_balance"`
}

// WithdrawResult reports the effects of a successful withdrawal.
type WithdrawResult struct {
	Vault          solana.PublicKey `json:"vault"`
	Burned         uint64           `json:"burned"`
	Released       uint64           `json:"released"`
	ReceiptBalance uint64           `json:"receipt_balance"`
}

// Balance is a holder's receipt token balance in one vault.
type Balance struct {
	Vault       solana.PublicKey `json:"vault"`
	Owner       solana.PublicKey `json:"owner"`
	ReceiptMint solana.PublicKey `json:"receipt_mint"`
	Account     solana.PublicKey `json:"account"`
	Amount      uint64           `json:"amount"`
	Decimals    uint8            `json:"decimals"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}
