// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package venue

import "errors"

var (
	ErrInvalidRegistry       = errors.New("invalid venue registry")
	ErrNotProvisioned        = errors.New("venue is not provisioned")
	ErrMissingReserve        = errors.New("reserve account missing from remaining accounts")
	ErrUnknownReserve        = errors.New("account is not a reserve of this vault")
	ErrReadOnlyReserve       = errors.New("reserve is not writable")
	ErrInsufficientLiquidity = errors.New("insufficient venue liquidity")
	ErrZeroShares            = errors.New("amount converts to zero shares")
	ErrZeroAssets            = errors.New("shares convert to zero assets")
	ErrMathOverflow          = errors.New("math overflow")
)
