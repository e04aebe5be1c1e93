package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds every request body the handler reads.
const maxBodyBytes = 1 << 20

type Handler struct {
	services *service.Services
	metrics  http.Handler

	logger *logger.Logger
}

// NewHandler serves metrics from gatherer on /metrics.
func NewHandler(services *service.Services, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		logger:   logger,
	}
}
