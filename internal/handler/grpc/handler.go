// Package grpc serves the vault operations as the vault.v1.VaultService gRPC
// service. Messages are the JSON encodings of the models request and result
// types, carried by a registered "json" codec.
package grpc

import (
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"google.golang.org/grpc"
)

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler creates the gRPC transport handler.
//
// Parameters:
//   - services: application service layer used by gRPC method handlers.
//   - logger: structured logger used for transport diagnostics.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// ServerOptions returns the codec and interceptors a server needs to serve
// this handler.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ForceServerCodec(Codec{}),
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging, h.auth),
	}
}

// Register adds the vault service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(&VaultServiceDesc, h)
}
