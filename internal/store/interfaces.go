// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the SQL backends of the custody ledger.
//
// Records are kept in four tables (vaults, mints, token_balances,
// venue_states) created by the embedded goose migrations. Keys are stored
// as base58 text and amounts as BIGINT, which holds every amount the ledger
// accepts. A unit of work is one database transaction; on PostgreSQL it
// takes a transaction-scoped advisory lock per account key, on SQLite the
// pool is limited to a single connection.
package store

import (
	"context"
	"database/sql"
)

// ErrorClassificator decides whether a failed database call may succeed on
// a later attempt. The ledger only logs the classification; it never
// retries on its own.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// querier is the subset of *sql.Tx the records use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
