// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package yield

import "errors"

var (
	ErrNotSupported = errors.New("no venue configured for asset")
	ErrUnknownVenue = errors.New("unknown venue kind")

	ErrContextMismatch = errors.New("adapter context does not match the venue registry")
	ErrWrongContext    = errors.New("adapter context belongs to another venue")

	ErrNothingCredited = errors.New("venue credited nothing")
	ErrCreditMismatch  = errors.New("venue credit does not match the position change")
	ErrNoPosition      = errors.New("vault has no position to redeem")
	ErrInvalidCall     = errors.New("invalid adapter call")
)
