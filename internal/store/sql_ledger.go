package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/gagliardetto/solana-go"
)

// SQLLedger is a [ledger.Ledger] backed by a SQL database. Each unit of
// work runs in its own transaction.
type SQLLedger struct {
	db *DB
}

// NewSQLLedger returns a [ledger.Ledger] persisted in db.
//
// Parameters:
//   - db: connected database with migrations applied; its dialect decides
//     the placeholder format and whether accounts are locked.
//
// On PostgreSQL every Atomic call takes transaction-scoped advisory locks on
// its keys in sorted order before running.
func NewSQLLedger(db *DB) *SQLLedger {
	return &SQLLedger{db: db}
}

func (l *SQLLedger) Atomic(ctx context.Context, keys []solana.PublicKey, fn ledger.TxFunc) error {
	log := logger.FromContext(ctx)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*SQLLedger.Atomic").Msg("error starting transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = l.lock(ctx, tx, keys); err != nil {
		log.Err(err).Str("func", "*SQLLedger.Atomic").Msg("error locking accounts")
		return fmt.Errorf("acquire account locks: %w", err)
	}

	if err = fn(ctx, ledger.NewTx(newSQLRecords(tx, l.db.builder, l.db.dialect))); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		ev := log.Err(err).Str("func", "*SQLLedger.Atomic")
		if l.db.errorClassificator != nil {
			ev = ev.Stringer("classification", l.db.errorClassificator.Classify(err))
		}
		ev.Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (l *SQLLedger) View(ctx context.Context, fn ledger.TxFunc) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLLedger.View").Msg("error starting transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	records := newSQLRecords(tx, l.db.builder, l.db.dialect)
	return fn(ctx, ledger.NewTx(ledger.ReadOnly(records)))
}

// lock takes one advisory lock per key in sorted order. SQLite needs none:
// its pool has a single connection.
func (l *SQLLedger) lock(ctx context.Context, tx *sql.Tx, keys []solana.PublicKey) error {
	if l.db.dialect != DialectPostgres {
		return nil
	}

	for _, k := range ledger.SortKeys(keys) {
		query, args, err := buildAdvisoryLockQuery(l.db.builder, k)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("%w %s: %w", ErrLockingAccounts, k, err)
		}
	}

	return nil
}

func (l *SQLLedger) Close() error {
	return l.db.Close()
}
