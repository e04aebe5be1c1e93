// Package app assembles the vault server from its configuration: storage,
// venue simulators, services, transports and background workers.
package app

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/handler"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/server"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/internal/workers"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	storages *store.Storages
	server   server.Server

	logger *logger.Logger
}

// New opens storage, provisions the venue accounts and builds every
// component. The returned App owns the storage until Run returns.
func New(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	registry, err := loadRegistry(cfg.Venues)
	if err != nil {
		return nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	a, err := build(ctx, cfg, registry, storages, log)
	if err != nil {
		storages.Close()
		return nil, err
	}

	return a, nil
}

func loadRegistry(cfg config.Venues) (*venue.Registry, error) {
	if cfg.RegistryPath == "" {
		registry, err := venue.DefaultRegistry()
		if err != nil {
			return nil, fmt.Errorf("default venue registry: %w", err)
		}
		return registry, nil
	}

	registry, err := venue.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("load venue registry %s: %w", cfg.RegistryPath, err)
	}
	return registry, nil
}

func build(ctx context.Context, cfg *config.StructuredConfig, registry *venue.Registry, storages *store.Storages, log *logger.Logger) (*App, error) {
	venues := venue.New(registry, nil, log)
	if err := venues.Provision(ctx, storages.Ledger); err != nil {
		return nil, fmt.Errorf("provision venues: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	services, err := service.NewServices(storages.Ledger, yield.NewVenueRouter(venues), *cfg, reg, log)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, reg, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	ws := workers.NewWorkers(log,
		workers.NewAccrualWorker(storages.Ledger, venues, cfg.Workers.AccrualInterval, log),
		workers.NewTokenPurgeWorker(services.AuthService, cfg.Server.TokenMaxAge, log),
	)

	srv, err := server.NewServer(handlers, ws, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &App{storages: storages, server: srv, logger: log}, nil
}

// Run serves until ctx is cancelled and closes the storage afterwards.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storages.Close(); err != nil {
			a.logger.Err(err).Msg("close storages")
		}
	}()

	return a.server.Run(ctx)
}
