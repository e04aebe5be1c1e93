package server

import (
	"context"
	"errors"
	"net"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-vault-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	address string

	server *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	opts := handler.ServerOptions()
	if cfg.RequestTimeout > 0 {
		opts = append(opts, grpc.ConnectionTimeout(cfg.RequestTimeout))
	}
	server := grpc.NewServer(opts...)
	handler.Register(server)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) name() string {
	return "grpc"
}

func (g *grpcServer) listen() (net.Listener, error) {
	return net.Listen("tcp", g.address)
}

func (g *grpcServer) serve(lis net.Listener) error {
	if err := g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// shutdown waits for running calls and falls back to a hard stop when ctx
// expires first.
func (g *grpcServer) shutdown(ctx context.Context) error {
	g.logger.Info().Msg("GRPC server Shutdown")

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
		return ctx.Err()
	}
}
