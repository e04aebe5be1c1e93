package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/gagliardetto/solana-go"
)

// Accruer brings venue interest up to date inside a unit of work.
type Accruer interface {
	AccrualKeys() []solana.PublicKey
	AccrueAll(ctx context.Context, tx ledger.Tx) (uint64, error)
}

// NewAccrualWorker accrues interest of every venue each interval, so idle
// venues do not build up a large payment for the next caller.
func NewAccrualWorker(l ledger.Ledger, venues Accruer, interval time.Duration, logger *logger.Logger) Worker {
	keys := venues.AccrualKeys()

	return newTickerWorker("accrual", interval, func(ctx context.Context) error {
		var paid uint64
		err := l.Atomic(ctx, keys, func(ctx context.Context, tx ledger.Tx) error {
			var err error
			paid, err = venues.AccrueAll(ctx, tx)
			return err
		})
		if err != nil {
			return err
		}

		if paid > 0 {
			logger.Debug().Uint64("paid", paid).Msg("venue interest accrued")
		}
		return nil
	}, logger)
}
