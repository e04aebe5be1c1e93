// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault requests for structural errors before they
// reach the engine: zero keys, zero or oversized amounts, decimals out of
// range and adapter bundles naming another venue or asset.
//
// Rules that need ledger state (vault existence, balances, pinned asset and
// venue) belong to the engine.
package validators

import "context"

// Validator checks a request value. fields optionally limits the check to
// the named fields; an unsupported value type is an error.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
