// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the server's periodic background jobs: venue interest
// accrual and pruning of expired signer token ids.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled and returns
// nil on a clean stop.
type Worker interface {
	Name() string
	Run(ctx context.Context) error
}
