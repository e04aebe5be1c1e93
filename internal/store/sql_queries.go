package store

import (
	"github.com/MKhiriev/go-vault-keeper/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/gagliardetto/solana-go"
)

const (
	tableVaults        = "vaults"
	tableMints         = "mints"
	tableTokenBalances = "token_balances"
	tableVenueStates   = "venue_states"
)

var (
	vaultColumns      = []string{"address", "vault_id", "bump", "receipt_mint", "asset", "venue", "created_at"}
	mintColumns       = []string{"address", "mint_authority", "freeze_authority", "decimals", "supply", "non_transferable"}
	venueStateColumns = []string{"address", "kind", "rate_bps", "last_accrual"}
)

func buildSelectVaultQuery(b sq.StatementBuilderType, address solana.PublicKey) (string, []any, error) {
	return b.Select(vaultColumns...).
		From(tableVaults).
		Where(sq.Eq{"address": address.String()}).
		ToSql()
}

func buildInsertVaultQuery(b sq.StatementBuilderType, v models.Vault) (string, []any, error) {
	return b.Insert(tableVaults).
		Columns(vaultColumns...).
		Values(v.Address.String(), v.VaultID.String(), v.Bump, v.ReceiptMint.String(), v.Asset.String(), v.Venue, v.CreatedAt.UTC()).
		ToSql()
}

// buildUpdateVaultQuery writes the mutable part of a vault entry. Identity
// columns are never rewritten.
func buildUpdateVaultQuery(b sq.StatementBuilderType, v models.Vault) (string, []any, error) {
	return b.Update(tableVaults).
		Set("receipt_mint", v.ReceiptMint.String()).
		Set("asset", v.Asset.String()).
		Set("venue", v.Venue).
		Where(sq.Eq{"address": v.Address.String()}).
		ToSql()
}

func buildSelectMintQuery(b sq.StatementBuilderType, address solana.PublicKey) (string, []any, error) {
	return b.Select(mintColumns...).
		From(tableMints).
		Where(sq.Eq{"address": address.String()}).
		ToSql()
}

func buildInsertMintQuery(b sq.StatementBuilderType, m models.Mint) (string, []any, error) {
	return b.Insert(tableMints).
		Columns(mintColumns...).
		Values(m.Address.String(), m.MintAuthority.String(), m.FreezeAuthority.String(), m.Decimals, int64(m.Supply), m.NonTransferable).
		ToSql()
}

func buildUpdateMintSupplyQuery(b sq.StatementBuilderType, address solana.PublicKey, supply uint64) (string, []any, error) {
	return b.Update(tableMints).
		Set("supply", int64(supply)).
		Where(sq.Eq{"address": address.String()}).
		ToSql()
}

func buildSelectBalanceQuery(b sq.StatementBuilderType, owner, mint solana.PublicKey) (string, []any, error) {
	return b.Select("amount").
		From(tableTokenBalances).
		Where(sq.Eq{"owner": owner.String(), "mint": mint.String()}).
		ToSql()
}

func buildUpsertBalanceQuery(b sq.StatementBuilderType, owner, mint solana.PublicKey, amount uint64) (string, []any, error) {
	return b.Insert(tableTokenBalances).
		Columns("owner", "mint", "amount").
		Values(owner.String(), mint.String(), int64(amount)).
		Suffix("ON CONFLICT (owner, mint) DO UPDATE SET amount = EXCLUDED.amount").
		ToSql()
}

func buildSelectVenueStateQuery(b sq.StatementBuilderType, address solana.PublicKey) (string, []any, error) {
	return b.Select(venueStateColumns...).
		From(tableVenueStates).
		Where(sq.Eq{"address": address.String()}).
		ToSql()
}

func buildUpsertVenueStateQuery(b sq.StatementBuilderType, s models.VenueState) (string, []any, error) {
	return b.Insert(tableVenueStates).
		Columns(venueStateColumns...).
		Values(s.Address.String(), s.Kind, s.RateBps, s.LastAccrual.UTC()).
		Suffix("ON CONFLICT (address) DO UPDATE SET kind = EXCLUDED.kind, rate_bps = EXCLUDED.rate_bps, last_accrual = EXCLUDED.last_accrual").
		ToSql()
}

// buildAdvisoryLockQuery takes a PostgreSQL advisory lock on key that is
// released with the surrounding transaction.
func buildAdvisoryLockQuery(b sq.StatementBuilderType, key solana.PublicKey) (string, []any, error) {
	return b.Select().
		Column(sq.Expr("pg_advisory_xact_lock(hashtext(?))", key.String())).
		ToSql()
}
