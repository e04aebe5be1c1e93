package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/handler"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/workers"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	transports []transport
	workers    *workers.Workers

	logger *logger.Logger
}

// NewServer creates a transport server for every handler. workers may be nil.
func NewServer(handlers *handler.Handlers, ws *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{workers: ws, logger: logger}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		s.transports = append(s.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		s.transports = append(s.transports, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// Run binds every listener, then serves until ctx is cancelled or a
// transport fails. Transports get shutdownTimeout to finish running calls.
func (s *server) Run(ctx context.Context) error {
	listeners := make([]net.Listener, 0, len(s.transports))
	for _, t := range s.transports {
		lis, err := t.listen()
		if err != nil {
			for _, l := range listeners {
				l.Close()
			}
			return fmt.Errorf("listen %s: %w", t.name(), err)
		}
		listeners = append(listeners, lis)
		s.logger.Info().Str("transport", t.name()).Stringer("address", lis.Addr()).Msg("listening")
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range s.transports {
		g.Go(func() error {
			if err := t.serve(listeners[i]); err != nil {
				return fmt.Errorf("serve %s: %w", t.name(), err)
			}
			return nil
		})
	}
	if s.workers != nil {
		g.Go(func() error {
			return s.workers.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, t := range s.transports {
			if err := t.shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", t.name(), err))
			}
		}
		return errors.Join(errs...)
	})

	err := g.Wait()
	if err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
