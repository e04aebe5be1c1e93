package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// seedMint creates a mint with the given authority and funds holder.
func seedMint(t *testing.T, l Ledger, authority, holder solana.PublicKey, amount uint64, nonTransferable bool) solana.PublicKey {
	t.Helper()
	mint := newKey()
	err := l.Atomic(context.Background(), []solana.PublicKey{mint, holder}, func(ctx context.Context, tx Tx) error {
		if err := tx.CreateMint(ctx, models.Mint{
			Address:         mint,
			MintAuthority:   authority,
			Decimals:        6,
			NonTransferable: nonTransferable,
		}); err != nil {
			return err
		}
		return tx.MintTo(ctx, mint, holder, authority, amount)
	})
	require.NoError(t, err)
	return mint
}

func balanceOf(t *testing.T, l Ledger, owner, mint solana.PublicKey) uint64 {
	t.Helper()
	var got uint64
	require.NoError(t, l.View(context.Background(), func(ctx context.Context, tx Tx) error {
		var err error
		got, err = tx.Balance(ctx, owner, mint)
		return err
	}))
	return got
}

func supplyOf(t *testing.T, l Ledger, mint solana.PublicKey) uint64 {
	t.Helper()
	var got models.Mint
	require.NoError(t, l.View(context.Background(), func(ctx context.Context, tx Tx) error {
		var err error
		got, err = tx.Mint(ctx, mint)
		return err
	}))
	return got.Supply
}

// ── token rules ───────────────────────────────────────────────────────────────

func TestMemory_MintToAndTransfer(t *testing.T) {
	l := NewMemory(logger.Nop())
	authority, alice, bob := newKey(), newKey(), newKey()
	mint := seedMint(t, l, authority, alice, 1_000, false)

	err := l.Atomic(context.Background(), []solana.PublicKey{alice, bob}, func(ctx context.Context, tx Tx) error {
		return tx.Transfer(ctx, mint, alice, bob, alice, 400)
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(600), balanceOf(t, l, alice, mint))
	assert.Equal(t, uint64(400), balanceOf(t, l, bob, mint))
	assert.Equal(t, uint64(1_000), supplyOf(t, l, mint))
}

func TestMemory_TokenRules(t *testing.T) {
	authority, alice, bob := newKey(), newKey(), newKey()

	tests := []struct {
		name            string
		nonTransferable bool
		op              func(ctx context.Context, tx Tx, mint solana.PublicKey) error
		wantErr         error
	}{
		{
			name: "transfer without owner authority",
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.Transfer(ctx, mint, alice, bob, bob, 1)
			},
			wantErr: ErrOwnerMismatch,
		},
		{
			name: "transfer more than held",
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.Transfer(ctx, mint, alice, bob, alice, 101)
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:            "transfer of non-transferable token",
			nonTransferable: true,
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.Transfer(ctx, mint, alice, bob, alice, 1)
			},
			wantErr: ErrNonTransferable,
		},
		{
			name: "mint by foreign authority",
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.MintTo(ctx, mint, bob, bob, 1)
			},
			wantErr: ErrAuthorityMismatch,
		},
		{
			name: "mint past max amount",
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.MintTo(ctx, mint, bob, authority, MaxAmount)
			},
			wantErr: ErrAmountOverflow,
		},
		{
			name: "burn more than held",
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.Burn(ctx, mint, alice, alice, 101)
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name: "burn by non-owner",
			op: func(ctx context.Context, tx Tx, mint solana.PublicKey) error {
				return tx.Burn(ctx, mint, alice, authority, 1)
			},
			wantErr: ErrOwnerMismatch,
		},
		{
			name: "unknown mint",
			op: func(ctx context.Context, tx Tx, _ solana.PublicKey) error {
				return tx.Transfer(ctx, newKey(), alice, bob, alice, 1)
			},
			wantErr: ErrMintNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewMemory(logger.Nop())
			mint := seedMint(t, l, authority, alice, 100, tt.nonTransferable)

			err := l.Atomic(context.Background(), []solana.PublicKey{alice, bob, mint}, func(ctx context.Context, tx Tx) error {
				return tt.op(ctx, tx, mint)
			})
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, uint64(100), balanceOf(t, l, alice, mint))
			assert.Equal(t, uint64(0), balanceOf(t, l, bob, mint))
			assert.Equal(t, uint64(100), supplyOf(t, l, mint))
		})
	}
}

func TestMemory_NonTransferableMintAndBurn(t *testing.T) {
	l := NewMemory(logger.Nop())
	authority, alice := newKey(), newKey()
	mint := seedMint(t, l, authority, alice, 50, true)

	err := l.Atomic(context.Background(), []solana.PublicKey{alice, mint}, func(ctx context.Context, tx Tx) error {
		return tx.Burn(ctx, mint, alice, alice, 20)
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(30), balanceOf(t, l, alice, mint))
	assert.Equal(t, uint64(30), supplyOf(t, l, mint))
}

// ── units of work ─────────────────────────────────────────────────────────────

func TestMemory_Atomic_RollsBackOnError(t *testing.T) {
	l := NewMemory(logger.Nop())
	authority, alice, bob := newKey(), newKey(), newKey()
	mint := seedMint(t, l, authority, alice, 100, false)
	boom := errors.New("boom")

	err := l.Atomic(context.Background(), []solana.PublicKey{alice, bob}, func(ctx context.Context, tx Tx) error {
		require.NoError(t, tx.Transfer(ctx, mint, alice, bob, alice, 60))

		got, err := tx.Balance(ctx, bob, mint)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), got, "unit of work sees its own writes")

		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, uint64(100), balanceOf(t, l, alice, mint))
	assert.Equal(t, uint64(0), balanceOf(t, l, bob, mint))
}

func TestMemory_CreateVaultTwice(t *testing.T) {
	l := NewMemory(logger.Nop())
	vault := models.Vault{Address: newKey(), VaultID: newKey(), Bump: 254}

	create := func(v models.Vault) error {
		return l.Atomic(context.Background(), []solana.PublicKey{v.Address}, func(ctx context.Context, tx Tx) error {
			return tx.CreateVault(ctx, v)
		})
	}

	require.NoError(t, create(vault))

	changed := vault
	changed.Bump = 1
	require.ErrorIs(t, create(changed), ErrAccountExists)

	require.NoError(t, l.View(context.Background(), func(ctx context.Context, tx Tx) error {
		got, err := tx.Vault(ctx, vault.Address)
		require.NoError(t, err)
		assert.Equal(t, vault, got)
		return nil
	}))
}

func TestMemory_View_IsReadOnly(t *testing.T) {
	l := NewMemory(logger.Nop())

	err := l.View(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.CreateVault(ctx, models.Vault{Address: newKey()})
	})
	assert.ErrorIs(t, err, ErrReadOnlyUnitOfWork)
}

func TestMemory_ConcurrentTransfersSerialize(t *testing.T) {
	l := NewMemory(logger.Nop())
	authority, sink := newKey(), newKey()

	const senders = 16
	const each = 10

	holders := make([]solana.PublicKey, senders)
	for i := range holders {
		holders[i] = newKey()
	}
	mint := seedMint(t, l, authority, holders[0], senders*each, false)
	for i := 1; i < senders; i++ {
		require.NoError(t, l.Atomic(context.Background(), []solana.PublicKey{holders[0], holders[i]}, func(ctx context.Context, tx Tx) error {
			return tx.Transfer(ctx, mint, holders[0], holders[i], holders[0], each)
		}))
	}

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(from solana.PublicKey) {
			defer wg.Done()
			for j := 0; j < each; j++ {
				err := l.Atomic(context.Background(), []solana.PublicKey{from, sink}, func(ctx context.Context, tx Tx) error {
					return tx.Transfer(ctx, mint, from, sink, from, 1)
				})
				assert.NoError(t, err)
			}
		}(holders[i])
	}
	wg.Wait()

	assert.Equal(t, uint64(senders*each), balanceOf(t, l, sink, mint))
	assert.Equal(t, 0, l.locks.size())
}

func TestMemory_CommitDetectsUnlockedWrites(t *testing.T) {
	l := NewMemory(logger.Nop())
	authority, alice, bob := newKey(), newKey(), newKey()
	mint := seedMint(t, l, authority, alice, 10, false)

	inside := make(chan struct{})
	proceed := make(chan struct{})
	done := make(chan error, 1)

	// the first unit reads alice without locking her account
	go func() {
		done <- l.Atomic(context.Background(), []solana.PublicKey{bob}, func(ctx context.Context, tx Tx) error {
			if _, err := tx.Balance(ctx, alice, mint); err != nil {
				return err
			}
			close(inside)
			<-proceed
			return tx.MintTo(ctx, mint, alice, authority, 1)
		})
	}()

	<-inside
	require.NoError(t, l.Atomic(context.Background(), []solana.PublicKey{alice}, func(ctx context.Context, tx Tx) error {
		return tx.Burn(ctx, mint, alice, alice, 5)
	}))
	close(proceed)

	assert.ErrorIs(t, <-done, ErrWriteConflict)
	assert.Equal(t, uint64(5), balanceOf(t, l, alice, mint))
}

func TestMemory_Atomic_ContextCancelledWhileWaiting(t *testing.T) {
	l := NewMemory(logger.Nop())
	key := newKey()

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = l.Atomic(context.Background(), []solana.PublicKey{key}, func(context.Context, Tx) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	called := false
	err := l.Atomic(ctx, []solana.PublicKey{key}, func(context.Context, Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)

	close(release)
}
