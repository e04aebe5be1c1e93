package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

// defaultInterval is used when a worker is configured with a non-positive
// interval.
const defaultInterval = time.Minute

// tickerWorker calls tick every interval until its context is cancelled.
// A failed tick is logged and the worker keeps going.
type tickerWorker struct {
	name     string
	interval time.Duration
	tick     func(ctx context.Context) error

	logger *logger.Logger
}

func newTickerWorker(name string, interval time.Duration, tick func(ctx context.Context) error, logger *logger.Logger) *tickerWorker {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &tickerWorker{name: name, interval: interval, tick: tick, logger: logger}
}

func (w *tickerWorker) Name() string {
	return w.name
}

func (w *tickerWorker) Run(ctx context.Context) error {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := w.tick(ctx); err != nil && ctx.Err() == nil {
				w.logger.Err(err).Str("worker", w.name).Msg("tick failed")
			}
		}
	}
}
