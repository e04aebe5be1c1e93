// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("operation not possible")
	ErrBadGateway          = errors.New("venue failure")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoSigner is returned for mutating calls of an adapter built
	// without a keypair.
	ErrNoSigner = errors.New("no signer keypair configured")
)
