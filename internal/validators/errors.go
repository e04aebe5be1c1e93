// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrZeroVaultID     = errors.New("vault id is required")
	ErrMissingSigner   = errors.New("signer is required")
	ErrZeroAsset       = errors.New("asset mint is required")
	ErrEmptyVenue      = errors.New("venue is required")
	ErrInvalidAmount   = errors.New("amount must be positive and fit a signed 64-bit integer")
	ErrInvalidDecimals = errors.New("decimals out of range")
	ErrContextMismatch = errors.New("adapter context does not match the request")
)
