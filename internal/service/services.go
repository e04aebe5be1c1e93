package service

import (
	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/prometheus/client_golang/prometheus"
)

type Services struct {
	VaultService   VaultService
	VenueService   VenueService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices assembles the server-side services. Vault calls pass metrics
// first, then validation, then the engine.
func NewServices(l ledger.Ledger, router *yield.Router, cfg config.StructuredConfig, reg prometheus.Registerer, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	vaults := NewVaultService(l, router, cfg.App, logger)
	vaults = NewVaultValidationService().Wrap(vaults)
	vaults = NewVaultMetricsService(reg).Wrap(vaults)

	return &Services{
		VaultService:   vaults,
		VenueService:   NewVenueService(router, logger),
		AuthService:    NewAuthService(cfg.Server, logger),
		AppInfoService: appInfo,
	}, nil
}
