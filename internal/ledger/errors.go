// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrMintNotFound       = errors.New("mint not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNonTransferable    = errors.New("token is non-transferable")
	ErrOwnerMismatch      = errors.New("authority is not the account owner")
	ErrAuthorityMismatch  = errors.New("authority is not the mint authority")
	ErrAmountOverflow     = errors.New("amount overflows the supported range")
	ErrWriteConflict      = errors.New("concurrent write to an unlocked account")
	ErrReadOnlyUnitOfWork = errors.New("unit of work is read-only")
)
