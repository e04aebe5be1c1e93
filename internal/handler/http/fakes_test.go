package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeVaultService struct {
	createVaultFn        func(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error)
	createReceiptTokenFn func(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error)
	depositFn            func(ctx context.Context, req models.DepositRequest) (models.DepositResult, error)
	withdrawFn           func(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error)
	getVaultFn           func(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error)
	balanceFn            func(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error)
	positionFn           func(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error)
}

func (f *fakeVaultService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error) {
	if f.createVaultFn != nil {
		return f.createVaultFn(ctx, req)
	}
	return models.Vault{}, nil
}

func (f *fakeVaultService) CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error) {
	if f.createReceiptTokenFn != nil {
		return f.createReceiptTokenFn(ctx, req)
	}
	return models.Mint{}, nil
}

func (f *fakeVaultService) Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error) {
	if f.depositFn != nil {
		return f.depositFn(ctx, req)
	}
	return models.DepositResult{}, nil
}

func (f *fakeVaultService) Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error) {
	if f.withdrawFn != nil {
		return f.withdrawFn(ctx, req)
	}
	return models.WithdrawResult{}, nil
}

func (f *fakeVaultService) GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error) {
	if f.getVaultFn != nil {
		return f.getVaultFn(ctx, vaultID)
	}
	return models.VaultView{}, nil
}

func (f *fakeVaultService) Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error) {
	if f.balanceFn != nil {
		return f.balanceFn(ctx, vaultID, owner)
	}
	return models.Balance{}, nil
}

func (f *fakeVaultService) Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error) {
	if f.positionFn != nil {
		return f.positionFn(ctx, vaultID, venue, asset)
	}
	return models.Position{}, nil
}

type fakeVenueService struct {
	venuesFn  func(ctx context.Context) []models.VenueInfo
	contextFn func(ctx context.Context, venue string, asset, signer solana.PublicKey) (models.AdapterContext, error)
}

func (f *fakeVenueService) Venues(ctx context.Context) []models.VenueInfo {
	if f.venuesFn != nil {
		return f.venuesFn(ctx)
	}
	return nil
}

func (f *fakeVenueService) Context(ctx context.Context, venue string, asset, signer solana.PublicKey) (models.AdapterContext, error) {
	if f.contextFn != nil {
		return f.contextFn(ctx, venue, asset, signer)
	}
	return models.AdapterContext{}, nil
}

type fakeAuthService struct {
	authenticateFn func(ctx context.Context, token string, payload []byte) (solana.PublicKey, error)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string, payload []byte) (solana.PublicKey, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, token, payload)
	}
	return testSigner, nil
}

func (f *fakeAuthService) PurgeUsedTokens(context.Context) int { return 0 }

type fakeAppInfoService struct{ version string }

func (f *fakeAppInfoService) GetAppVersion(context.Context) string { return f.version }

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	testSigner  = solana.MustPublicKeyFromBase58("6RdP9KmhSwuUHRJ3T72TsVi3t4F2Luf7m3BRjh1w3Sor")
	testVaultID = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testAsset   = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

type testServices struct {
	vaults *fakeVaultService
	venues *fakeVenueService
	auth   *fakeAuthService
}

func newTestRouter(t *testing.T) (http.Handler, *testServices) {
	t.Helper()
	fakes := &testServices{
		vaults: &fakeVaultService{},
		venues: &fakeVenueService{},
		auth:   &fakeAuthService{},
	}
	services := &service.Services{
		VaultService:   fakes.vaults,
		VenueService:   fakes.venues,
		AuthService:    fakes.auth,
		AppInfoService: &fakeAppInfoService{version: "1.2.3"},
	}

	return NewHandler(services, prometheus.NewRegistry(), logger.Nop()).Init(), fakes
}
