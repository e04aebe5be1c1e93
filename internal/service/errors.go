// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/address"
	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
)

var (
	ErrVaultNotFound       = errors.New("vault not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDecimals     = errors.New("invalid decimals")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAdapterFailure      = errors.New("yield adapter failure")
	ErrNotSupported        = errors.New("not supported")
	ErrUnauthorized        = errors.New("unauthorized signer")

	ErrReceiptTokenNotFound = errors.New("receipt token not found")
	ErrWrongAsset           = errors.New("vault does not accept this asset")
	ErrWrongVenue           = errors.New("vault routes into another venue")
	ErrInvalidVaultID       = errors.New("invalid vault id")
	ErrAddressMismatch      = errors.New("vault address mismatch")

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Signer token errors. Transports answer all of them with an
// authentication failure.
var (
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenLifetimeTooLong    = errors.New("token lifetime exceeds the allowed maximum")
	ErrTokenReplayed           = errors.New("token was already used")
	ErrPayloadHashMismatch     = errors.New("token does not cover this payload")
)

// wrap prefixes err with a service sentinel so callers can match both.
func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}

// classify maps custody and addressing errors onto the service taxonomy.
// Errors it does not know are returned unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return wrap(ErrInsufficientBalance, err)
	case errors.Is(err, ledger.ErrAccountExists):
		return wrap(ErrAlreadyExists, err)
	case errors.Is(err, ledger.ErrAmountOverflow):
		return wrap(ErrInvalidAmount, err)
	case errors.Is(err, address.ErrAddressMismatch):
		return wrap(ErrAddressMismatch, err)
	case errors.Is(err, address.ErrZeroVaultID):
		return wrap(ErrInvalidVaultID, err)
	case errors.Is(err, yield.ErrNotSupported):
		return wrap(ErrNotSupported, err)
	}

	return err
}
