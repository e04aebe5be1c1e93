// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrUnknownOutput     = errors.New("unknown output format")
	ErrNoReceiptToken    = errors.New("vault has no receipt token, pass --raw to use base units")
	ErrAdapterNotCreated = errors.New("server adapter is not created")
)
