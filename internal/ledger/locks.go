package ledger

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// KeyLocks hands out exclusive per-account locks. Keys are always taken in
// ascending byte order so two units of work can never wait on each other in
// a cycle.
type KeyLocks struct {
	mu   sync.Mutex
	held map[solana.PublicKey]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewKeyLocks returns an empty lock table.
func NewKeyLocks() *KeyLocks {
	return &KeyLocks{held: make(map[solana.PublicKey]*keyLock)}
}

// SortKeys returns keys in lock order with duplicates and zero keys removed.
func SortKeys(keys []solana.PublicKey) []solana.PublicKey {
	sorted := make([]solana.PublicKey, 0, len(keys))
	for _, k := range keys {
		if !k.IsZero() {
			sorted = append(sorted, k)
		}
	}

	slices.SortFunc(sorted, func(a, b solana.PublicKey) int {
		return bytes.Compare(a[:], b[:])
	})

	return slices.Compact(sorted)
}

// Acquire blocks until every key is held or ctx is done. The returned func
// releases all keys and must be called exactly once.
func (l *KeyLocks) Acquire(ctx context.Context, keys []solana.PublicKey) (func(), error) {
	sorted := SortKeys(keys)
	acquired := make([]solana.PublicKey, 0, len(sorted))

	for _, k := range sorted {
		kl := l.ref(k)
		select {
		case kl.ch <- struct{}{}:
			acquired = append(acquired, k)
		case <-ctx.Done():
			l.unref(k)
			l.release(acquired)
			return nil, ctx.Err()
		}
	}

	return func() { l.release(acquired) }, nil
}

func (l *KeyLocks) ref(k solana.PublicKey) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl, ok := l.held[k]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.held[k] = kl
	}
	kl.refs++

	return kl
}

func (l *KeyLocks) unref(k solana.PublicKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.drop(k)
}

func (l *KeyLocks) drop(k solana.PublicKey) {
	kl := l.held[k]
	kl.refs--
	if kl.refs == 0 {
		delete(l.held, k)
	}
}

func (l *KeyLocks) release(keys []solana.PublicKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(keys) - 1; i >= 0; i-- {
		<-l.held[keys[i]].ch
		l.drop(keys[i])
	}
}

// size reports how many keys currently have holders or waiters.
func (l *KeyLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.held)
}
