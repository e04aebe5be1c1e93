package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

// TokenPurger forgets signer token ids that can no longer be replayed.
type TokenPurger interface {
	PurgeUsedTokens(ctx context.Context) int
}

// NewTokenPurgeWorker drops expired token ids from purger every interval.
func NewTokenPurgeWorker(purger TokenPurger, interval time.Duration, logger *logger.Logger) Worker {
	return newTickerWorker("token_purge", interval, func(ctx context.Context) error {
		if n := purger.PurgeUsedTokens(ctx); n > 0 {
			logger.Debug().Int("purged", n).Msg("expired token ids dropped")
		}
		return nil
	}, logger)
}
