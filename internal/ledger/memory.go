package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

type recordKind uint8

const (
	vaultRecord recordKind = iota + 1
	mintRecord
	balanceRecord
	venueRecord
)

type recordKey struct {
	kind  recordKind
	key   solana.PublicKey
	owner solana.PublicKey
}

type entry struct {
	value   any
	version uint64
}

// Memory is an in-process [Ledger]. Each unit of work reads through a
// private overlay; commit validates that nothing it read changed since and
// then applies the overlay in one step.
type Memory struct {
	mu      sync.RWMutex
	records map[recordKey]entry
	locks   *KeyLocks

	logger *logger.Logger
}

// NewMemory returns an empty in-memory ledger.
func NewMemory(logger *logger.Logger) *Memory {
	logger.Debug().Msg("creating in-memory ledger")
	return &Memory{
		records: make(map[recordKey]entry),
		locks:   NewKeyLocks(),
		logger:  logger,
	}
}

func (m *Memory) Atomic(ctx context.Context, keys []solana.PublicKey, fn TxFunc) error {
	release, err := m.locks.Acquire(ctx, keys)
	if err != nil {
		return fmt.Errorf("acquire account locks: %w", err)
	}
	defer release()

	st := newStage(m)
	if err = fn(ctx, NewTx(st)); err != nil {
		return err
	}

	if err = m.commit(st); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Memory.Atomic").Msg("commit rejected")
		return err
	}

	return nil
}

func (m *Memory) View(ctx context.Context, fn TxFunc) error {
	return fn(ctx, NewTx(ReadOnly(newStage(m))))
}

func (m *Memory) commit(st *stage) error {
	if len(st.writes) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, version := range st.reads {
		if m.records[k].version != version {
			return ErrWriteConflict
		}
	}
	for k, v := range st.writes {
		m.records[k] = entry{value: v, version: m.records[k].version + 1}
	}

	return nil
}

func (m *Memory) load(k recordKey) entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.records[k]
}

// stage is the overlay of one unit of work.
type stage struct {
	m      *Memory
	reads  map[recordKey]uint64
	writes map[recordKey]any
}

func newStage(m *Memory) *stage {
	return &stage{
		m:      m,
		reads:  make(map[recordKey]uint64),
		writes: make(map[recordKey]any),
	}
}

func (s *stage) get(k recordKey) (any, bool) {
	if v, ok := s.writes[k]; ok {
		return v, true
	}

	e := s.m.load(k)
	if _, seen := s.reads[k]; !seen {
		s.reads[k] = e.version
	}

	return e.value, e.value != nil
}

func (s *stage) put(k recordKey, v any) {
	s.writes[k] = v
}

func (s *stage) GetVault(_ context.Context, address solana.PublicKey) (models.Vault, error) {
	v, ok := s.get(recordKey{kind: vaultRecord, key: address})
	if !ok {
		return models.Vault{}, fmt.Errorf("%w: vault %s", ErrAccountNotFound, address)
	}

	return v.(models.Vault), nil
}

func (s *stage) InsertVault(_ context.Context, vault models.Vault) error {
	k := recordKey{kind: vaultRecord, key: vault.Address}
	if _, ok := s.get(k); ok {
		return fmt.Errorf("%w: vault %s", ErrAccountExists, vault.Address)
	}
	s.put(k, vault)

	return nil
}

func (s *stage) UpdateVault(_ context.Context, vault models.Vault) error {
	k := recordKey{kind: vaultRecord, key: vault.Address}
	if _, ok := s.get(k); !ok {
		return fmt.Errorf("%w: vault %s", ErrAccountNotFound, vault.Address)
	}
	s.put(k, vault)

	return nil
}

func (s *stage) GetMint(_ context.Context, address solana.PublicKey) (models.Mint, error) {
	v, ok := s.get(recordKey{kind: mintRecord, key: address})
	if !ok {
		return models.Mint{}, fmt.Errorf("%w: mint %s", ErrAccountNotFound, address)
	}

	return v.(models.Mint), nil
}

func (s *stage) InsertMint(_ context.Context, mint models.Mint) error {
	k := recordKey{kind: mintRecord, key: mint.Address}
	if _, ok := s.get(k); ok {
		return fmt.Errorf("%w: mint %s", ErrAccountExists, mint.Address)
	}
	s.put(k, mint)

	return nil
}

func (s *stage) UpdateMintSupply(ctx context.Context, address solana.PublicKey, supply uint64) error {
	mint, err := s.GetMint(ctx, address)
	if err != nil {
		return err
	}
	mint.Supply = supply
	s.put(recordKey{kind: mintRecord, key: address}, mint)

	return nil
}

func (s *stage) GetBalance(_ context.Context, owner, mint solana.PublicKey) (uint64, error) {
	v, ok := s.get(recordKey{kind: balanceRecord, key: mint, owner: owner})
	if !ok {
		return 0, nil
	}

	return v.(uint64), nil
}

func (s *stage) SetBalance(_ context.Context, owner, mint solana.PublicKey, amount uint64) error {
	s.put(recordKey{kind: balanceRecord, key: mint, owner: owner}, amount)
	return nil
}

func (s *stage) GetVenueState(_ context.Context, address solana.PublicKey) (models.VenueState, error) {
	v, ok := s.get(recordKey{kind: venueRecord, key: address})
	if !ok {
		return models.VenueState{}, fmt.Errorf("%w: venue state %s", ErrAccountNotFound, address)
	}

	return v.(models.VenueState), nil
}

func (s *stage) SetVenueState(_ context.Context, state models.VenueState) error {
	s.put(recordKey{kind: venueRecord, key: state.Address}, state)
	return nil
}
