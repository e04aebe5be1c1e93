package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/internal/venue/venuetest"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testEnv struct {
	lis      *bufconn.Listener
	conn     *grpc.ClientConn
	operator solana.PrivateKey
	holder   solana.PrivateKey
	asset    solana.PublicKey
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	operator, holder := solana.NewWallet(), solana.NewWallet()

	fx := venuetest.Registry(venuetest.Options{
		LenderRateBps:   1000,
		ReservesRateBps: 500,
		AllocationBps:   8000,
		TreasuryFunding: 1_000_000_000_000,
		Holders:         map[solana.PublicKey]uint64{holder.PublicKey(): 1_000_000_000},
	})
	l := ledger.NewMemory(logger.Nop())
	v := venue.New(fx.Registry, venuetest.NewClock().Now, logger.Nop())
	require.NoError(t, v.Provision(context.Background(), l))

	cfg := config.StructuredConfig{
		App:    config.App{ProgramID: config.DefaultProgramID, Operator: operator.PublicKey().String(), Version: "grpc"},
		Server: config.Server{TokenMaxAge: time.Minute},
	}
	services, err := service.NewServices(l, yield.NewVenueRouter(v), cfg, prometheus.NewRegistry(), logger.Nop())
	require.NoError(t, err)

	h := NewHandler(services, logger.Nop())
	srv := grpc.NewServer(h.ServerOptions()...)
	h.Register(srv)

	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	env := &testEnv{lis: lis, operator: operator.PrivateKey, holder: holder.PrivateKey, asset: fx.Asset}
	env.conn = env.dial(t)

	return env
}

func (e *testEnv) dial(t *testing.T, opts ...grpc.DialOption) *grpc.ClientConn {
	t.Helper()
	opts = append(opts,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return e.lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// signedClient signs every call with key.
func (e *testEnv) signedClient(t *testing.T, key solana.PrivateKey) *VaultClient {
	return NewVaultClient(e.dial(t, grpc.WithUnaryInterceptor(SignerInterceptor(key, 30*time.Second))))
}

// ─────────────────────────────────────────────
// End to end over bufconn
// ─────────────────────────────────────────────

func TestVaultService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := solana.NewWallet().PublicKey()

	operatorConn := env.signedClient(t, env.operator)
	holderConn := env.signedClient(t, env.holder)

	vault, err := operatorConn.CreateVault(ctx, &models.CreateVaultRequest{VaultID: id})
	require.NoError(t, err)
	assert.Equal(t, id, vault.VaultID)

	mint, err := operatorConn.CreateReceiptToken(ctx, &models.CreateReceiptTokenRequest{VaultID: id, Decimals: 6})
	require.NoError(t, err)
	assert.Equal(t, uint8(6), mint.Decimals)

	dep, err := holderConn.Deposit(ctx, &models.DepositRequest{VaultID: id, Amount: 100_000_000, Venue: "lender", Asset: env.asset})
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), dep.ReceiptBalance)

	wd, err := holderConn.Withdraw(ctx, &models.WithdrawRequest{VaultID: id, Amount: 50_000_000, Venue: "lender", Asset: env.asset})
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), wd.ReceiptBalance)

	var header metadata.MD
	view, err := NewVaultClient(env.conn).GetVault(ctx, &models.GetVaultRequest{VaultID: id}, grpc.Header(&header))
	require.NoError(t, err)
	require.NotNil(t, view.ReceiptToken)
	assert.Equal(t, uint64(50_000_000), view.ReceiptToken.Supply)
	assert.NotEmpty(t, header.Get(traceIDKey))
}

func TestVaultService_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := solana.NewWallet().PublicKey()

	t.Run("unsigned", func(t *testing.T) {
		_, err := NewVaultClient(env.conn).CreateVault(ctx, &models.CreateVaultRequest{VaultID: id})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("holder is not the operator", func(t *testing.T) {
		c := env.signedClient(t, env.holder)
		_, err := c.CreateVault(ctx, &models.CreateVaultRequest{VaultID: id})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("token for another message", func(t *testing.T) {
		payload, err := Codec{}.Marshal(&models.CreateVaultRequest{VaultID: solana.NewWallet().PublicKey()})
		require.NoError(t, err)
		token, err := utils.GenerateSignerToken(env.operator, payload, 30*time.Second)
		require.NoError(t, err)

		md := metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
		_, err = NewVaultClient(env.conn).CreateVault(md, &models.CreateVaultRequest{VaultID: id})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("missing vault", func(t *testing.T) {
		_, err := NewVaultClient(env.conn).GetVault(ctx, &models.GetVaultRequest{VaultID: solana.NewWallet().PublicKey()})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("zero deposit", func(t *testing.T) {
		c := env.signedClient(t, env.holder)
		_, err := c.Deposit(ctx, &models.DepositRequest{VaultID: id, Venue: "lender", Asset: env.asset})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

// ─────────────────────────────────────────────
// Error mapping
// ─────────────────────────────────────────────

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{service.ErrTokenReplayed, codes.Unauthenticated},
		{service.ErrUnauthorized, codes.PermissionDenied},
		{service.ErrInvalidAmount, codes.InvalidArgument},
		{service.ErrVaultNotFound, codes.NotFound},
		{service.ErrAlreadyExists, codes.AlreadyExists},
		{service.ErrInsufficientBalance, codes.FailedPrecondition},
		{service.ErrNotSupported, codes.Unimplemented},
		{service.ErrAdapterFailure, codes.Unavailable},
		{errors.New("pq: connection refused"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			st, ok := status.FromError(toStatus(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.want, st.Code())
			if tt.want == codes.Internal {
				assert.NotContains(t, st.Message(), "connection refused")
			}
		})
	}
}

func TestCodec(t *testing.T) {
	c := Codec{}
	assert.Equal(t, "json", c.Name())

	data, err := c.Marshal(&models.GetVaultRequest{VaultID: solana.SystemProgramID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"vault_id":"11111111111111111111111111111111"}`, string(data))

	var req models.GetVaultRequest
	require.NoError(t, c.Unmarshal(data, &req))
	assert.Equal(t, solana.SystemProgramID, req.VaultID)
}
