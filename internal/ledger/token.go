package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// MaxAmount is the largest balance or supply the ledger stores. It fits a
// signed 64-bit column in every storage backend.
const MaxAmount uint64 = math.MaxInt64

type tokenTx struct {
	records Records
}

// NewTx applies token-program rules on top of raw records.
func NewTx(records Records) Tx {
	return &tokenTx{records: records}
}

func (t *tokenTx) Vault(ctx context.Context, address solana.PublicKey) (models.Vault, error) {
	return t.records.GetVault(ctx, address)
}

func (t *tokenTx) CreateVault(ctx context.Context, vault models.Vault) error {
	return t.records.InsertVault(ctx, vault)
}

func (t *tokenTx) UpdateVault(ctx context.Context, vault models.Vault) error {
	return t.records.UpdateVault(ctx, vault)
}

func (t *tokenTx) Mint(ctx context.Context, address solana.PublicKey) (models.Mint, error) {
	mint, err := t.records.GetMint(ctx, address)
	if errors.Is(err, ErrAccountNotFound) {
		return models.Mint{}, fmt.Errorf("%w: %s", ErrMintNotFound, address)
	}

	return mint, err
}

func (t *tokenTx) CreateMint(ctx context.Context, mint models.Mint) error {
	if mint.Supply != 0 {
		return fmt.Errorf("new mint %s must start with zero supply", mint.Address)
	}

	return t.records.InsertMint(ctx, mint)
}

func (t *tokenTx) Balance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	return t.records.GetBalance(ctx, owner, mint)
}

func (t *tokenTx) Transfer(ctx context.Context, mint, from, to, authority solana.PublicKey, amount uint64) error {
	m, err := t.Mint(ctx, mint)
	if err != nil {
		return err
	}
	if m.NonTransferable {
		return fmt.Errorf("%w: %s", ErrNonTransferable, mint)
	}
	if !authority.Equals(from) {
		return fmt.Errorf("%w: %s cannot move funds of %s", ErrOwnerMismatch, authority, from)
	}
	if amount == 0 || from.Equals(to) {
		return nil
	}

	fromBalance, err := t.records.GetBalance(ctx, from, mint)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d of %s, needs %d", ErrInsufficientFunds, from, fromBalance, mint, amount)
	}

	toBalance, err := t.records.GetBalance(ctx, to, mint)
	if err != nil {
		return err
	}
	if toBalance > MaxAmount-amount {
		return ErrAmountOverflow
	}

	if err = t.records.SetBalance(ctx, from, mint, fromBalance-amount); err != nil {
		return err
	}

	return t.records.SetBalance(ctx, to, mint, toBalance+amount)
}

func (t *tokenTx) MintTo(ctx context.Context, mint, to, authority solana.PublicKey, amount uint64) error {
	m, err := t.Mint(ctx, mint)
	if err != nil {
		return err
	}
	if !authority.Equals(m.MintAuthority) {
		return fmt.Errorf("%w: %s", ErrAuthorityMismatch, mint)
	}
	if amount == 0 {
		return nil
	}
	if m.Supply > MaxAmount-amount {
		return ErrAmountOverflow
	}

	balance, err := t.records.GetBalance(ctx, to, mint)
	if err != nil {
		return err
	}

	if err = t.records.SetBalance(ctx, to, mint, balance+amount); err != nil {
		return err
	}

	return t.records.UpdateMintSupply(ctx, mint, m.Supply+amount)
}

func (t *tokenTx) Burn(ctx context.Context, mint, from, authority solana.PublicKey, amount uint64) error {
	m, err := t.Mint(ctx, mint)
	if err != nil {
		return err
	}
	if !authority.Equals(from) {
		return fmt.Errorf("%w: %s cannot burn tokens of %s", ErrOwnerMismatch, authority, from)
	}
	if amount == 0 {
		return nil
	}

	balance, err := t.records.GetBalance(ctx, from, mint)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: %s holds %d of %s, burns %d", ErrInsufficientFunds, from, balance, mint, amount)
	}

	if err = t.records.SetBalance(ctx, from, mint, balance-amount); err != nil {
		return err
	}

	return t.records.UpdateMintSupply(ctx, mint, m.Supply-amount)
}

func (t *tokenTx) VenueState(ctx context.Context, address solana.PublicKey) (models.VenueState, error) {
	return t.records.GetVenueState(ctx, address)
}

func (t *tokenTx) PutVenueState(ctx context.Context, state models.VenueState) error {
	return t.records.SetVenueState(ctx, state)
}

// readOnly rejects every write. View hands it to NewTx.
type readOnly struct {
	Records
}

func (readOnly) InsertVault(context.Context, models.Vault) error { return ErrReadOnlyUnitOfWork }
func (readOnly) UpdateVault(context.Context, models.Vault) error { return ErrReadOnlyUnitOfWork }
func (readOnly) InsertMint(context.Context, models.Mint) error   { return ErrReadOnlyUnitOfWork }

func (readOnly) UpdateMintSupply(context.Context, solana.PublicKey, uint64) error {
	return ErrReadOnlyUnitOfWork
}

func (readOnly) SetBalance(context.Context, solana.PublicKey, solana.PublicKey, uint64) error {
	return ErrReadOnlyUnitOfWork
}

func (readOnly) SetVenueState(context.Context, models.VenueState) error {
	return ErrReadOnlyUnitOfWork
}

// ReadOnly wraps records so that every write fails with
// [ErrReadOnlyUnitOfWork].
func ReadOnly(records Records) Records {
	return readOnly{Records: records}
}
