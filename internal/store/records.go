package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/gagliardetto/solana-go"
	"github.com/jackc/pgerrcode"
)

// keyColumn scans a base58 text column into a public key. An empty string
// reads as the zero key.
type keyColumn struct {
	key *solana.PublicKey
}

func (c keyColumn) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*c.key = solana.PublicKey{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("unsupported key column type %T", src)
	}

	if s == "" {
		*c.key = solana.PublicKey{}
		return nil
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return err
	}
	*c.key = key

	return nil
}

func key(k *solana.PublicKey) keyColumn {
	return keyColumn{key: k}
}

// sqlRecords implements [ledger.Records] over one open transaction.
type sqlRecords struct {
	q       querier
	builder sq.StatementBuilderType
	dialect Dialect
}

func newSQLRecords(q querier, builder sq.StatementBuilderType, dialect Dialect) *sqlRecords {
	return &sqlRecords{q: q, builder: builder, dialect: dialect}
}

func (r *sqlRecords) GetVault(ctx context.Context, address solana.PublicKey) (models.Vault, error) {
	query, args, err := buildSelectVaultQuery(r.builder, address)
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var v models.Vault
	err = r.q.QueryRowContext(ctx, query, args...).Scan(
		key(&v.Address), key(&v.VaultID), &v.Bump, key(&v.ReceiptMint), key(&v.Asset), &v.Venue, &v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vault{}, fmt.Errorf("%w: vault %s", ledger.ErrAccountNotFound, address)
	}
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	v.CreatedAt = v.CreatedAt.UTC()

	return v, nil
}

func (r *sqlRecords) InsertVault(ctx context.Context, vault models.Vault) error {
	query, args, err := buildInsertVaultQuery(r.builder, vault)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.insert(ctx, query, args, "vault", vault.Address)
}

func (r *sqlRecords) UpdateVault(ctx context.Context, vault models.Vault) error {
	query, args, err := buildUpdateVaultQuery(r.builder, vault)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.update(ctx, query, args, "vault", vault.Address)
}

func (r *sqlRecords) GetMint(ctx context.Context, address solana.PublicKey) (models.Mint, error) {
	query, args, err := buildSelectMintQuery(r.builder, address)
	if err != nil {
		return models.Mint{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		m      models.Mint
		supply int64
	)
	err = r.q.QueryRowContext(ctx, query, args...).Scan(
		key(&m.Address), key(&m.MintAuthority), key(&m.FreezeAuthority), &m.Decimals, &supply, &m.NonTransferable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Mint{}, fmt.Errorf("%w: mint %s", ledger.ErrAccountNotFound, address)
	}
	if err != nil {
		return models.Mint{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	m.Supply = uint64(supply)

	return m, nil
}

func (r *sqlRecords) InsertMint(ctx context.Context, mint models.Mint) error {
	if mint.Supply > ledger.MaxAmount {
		return ledger.ErrAmountOverflow
	}
	query, args, err := buildInsertMintQuery(r.builder, mint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.insert(ctx, query, args, "mint", mint.Address)
}

func (r *sqlRecords) UpdateMintSupply(ctx context.Context, address solana.PublicKey, supply uint64) error {
	if supply > ledger.MaxAmount {
		return ledger.ErrAmountOverflow
	}
	query, args, err := buildUpdateMintSupplyQuery(r.builder, address, supply)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.update(ctx, query, args, "mint", address)
}

func (r *sqlRecords) GetBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	query, args, err := buildSelectBalanceQuery(r.builder, owner, mint)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var amount int64
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return uint64(amount), nil
}

func (r *sqlRecords) SetBalance(ctx context.Context, owner, mint solana.PublicKey, amount uint64) error {
	if amount > ledger.MaxAmount {
		return ledger.ErrAmountOverflow
	}
	query, args, err := buildUpsertBalanceQuery(r.builder, owner, mint, amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqlRecords) GetVenueState(ctx context.Context, address solana.PublicKey) (models.VenueState, error) {
	query, args, err := buildSelectVenueStateQuery(r.builder, address)
	if err != nil {
		return models.VenueState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.VenueState
	err = r.q.QueryRowContext(ctx, query, args...).Scan(key(&s.Address), &s.Kind, &s.RateBps, &s.LastAccrual)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VenueState{}, fmt.Errorf("%w: venue state %s", ledger.ErrAccountNotFound, address)
	}
	if err != nil {
		return models.VenueState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	s.LastAccrual = s.LastAccrual.UTC()

	return s, nil
}

func (r *sqlRecords) SetVenueState(ctx context.Context, state models.VenueState) error {
	query, args, err := buildUpsertVenueStateQuery(r.builder, state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqlRecords) insert(ctx context.Context, query string, args []any, what string, address solana.PublicKey) error {
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if r.uniqueViolation(err) {
			return fmt.Errorf("%w: %s %s", ledger.ErrAccountExists, what, address)
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sqlRecords) update(ctx context.Context, query string, args []any, what string, address solana.PublicKey) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ledger.ErrAccountNotFound, what, address)
	}

	return nil
}

func (r *sqlRecords) uniqueViolation(err error) bool {
	if r.dialect == DialectSQLite {
		return sqliteUniqueViolation(err)
	}

	return postgresError(err) == pgerrcode.UniqueViolation
}
