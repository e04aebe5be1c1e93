package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-vault-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/internal/workers"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeAppInfo struct{}

func (fakeAppInfo) GetAppVersion(context.Context) string { return "9.9.9" }

// notFoundVaults answers every vault lookup with ErrVaultNotFound.
type notFoundVaults struct {
	service.VaultService
}

func (notFoundVaults) GetVault(context.Context, solana.PublicKey) (models.VaultView, error) {
	return models.VaultView{}, service.ErrVaultNotFound
}

type countingWorker struct {
	runs atomic.Int64
}

func (w *countingWorker) Name() string { return "counting" }

func (w *countingWorker) Run(ctx context.Context) error {
	w.runs.Add(1)
	<-ctx.Done()
	return nil
}

func newTestHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()
	services := &service.Services{AppInfoService: fakeAppInfo{}, VaultService: notFoundVaults{}}
	h, err := handler.NewHandlers(services, prometheus.NewRegistry(), cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

// ─────────────────────────────────────────────
// Transports
// ─────────────────────────────────────────────

func TestHTTPServer_ServeAndShutdown(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	h := newTestHandlers(t, cfg)
	srv := newHTTPServer(h.HTTP.Init(), cfg, logger.Nop())

	lis, err := srv.listen()
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- srv.serve(lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/api/version")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "9.9.9", string(body))

	require.NoError(t, srv.shutdown(context.Background()))
	assert.NoError(t, <-done)
}

func TestGRPCServer_ServeAndShutdown(t *testing.T) {
	cfg := config.Server{GRPCAddress: "127.0.0.1:0"}
	h := newTestHandlers(t, cfg)
	srv := newGRPCServer(h.GRPC, cfg, logger.Nop())

	lis, err := srv.listen()
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- srv.serve(lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	_, err = myGRPC.NewVaultClient(conn).GetVault(context.Background(), &models.GetVaultRequest{VaultID: solana.SystemProgramID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, srv.shutdown(context.Background()))
	assert.NoError(t, <-done)
}

// ─────────────────────────────────────────────
// Server
// ─────────────────────────────────────────────

func TestNewServer_NoTransports(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestServer_RunUntilCancelled(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}
	worker := &countingWorker{}
	srv, err := NewServer(newTestHandlers(t, cfg), workers.NewWorkers(logger.Nop(), worker), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool { return worker.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: busy.Addr().String()}
	srv, err := NewServer(newTestHandlers(t, cfg), nil, cfg, logger.Nop())
	require.NoError(t, err)

	err = srv.Run(context.Background())
	assert.ErrorContains(t, err, "listen grpc")
}
