package ledger

import (
	"bytes"
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortKeys(t *testing.T) {
	a, b, c := newKey(), newKey(), newKey()

	sorted := SortKeys([]solana.PublicKey{c, a, b, a, solana.PublicKey{}, c})

	require.Len(t, sorted, 3)
	for i := 1; i < len(sorted); i++ {
		assert.Negative(t, bytes.Compare(sorted[i-1][:], sorted[i][:]))
	}
}

func TestKeyLocks_ReleaseFreesTable(t *testing.T) {
	l := NewKeyLocks()
	keys := []solana.PublicKey{newKey(), newKey()}

	release, err := l.Acquire(context.Background(), keys)
	require.NoError(t, err)
	assert.Equal(t, 2, l.size())

	release()
	assert.Equal(t, 0, l.size())

	// the same keys can be taken again
	release, err = l.Acquire(context.Background(), keys)
	require.NoError(t, err)
	release()
}

func TestKeyLocks_CancelledAcquireLeavesNoState(t *testing.T) {
	l := NewKeyLocks()
	shared, other := newKey(), newKey()

	release, err := l.Acquire(context.Background(), []solana.PublicKey{shared})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Acquire(ctx, []solana.PublicKey{shared, other})
	require.ErrorIs(t, err, context.Canceled)

	release()
	assert.Equal(t, 0, l.size())
}
