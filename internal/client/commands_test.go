package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/adapter"
	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/mock"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testVaultID = solana.MustPublicKeyFromBase58("6RdP9KmhSwuUHRJ3T72TsVi3t4F2Luf7m3BRjh1w3Sor")
	testAsset   = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	testSigner  = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testMint    = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

func testConfig() config.ClientConfig {
	return config.ClientConfig{
		ServerAddress:  "http://vault.local",
		RequestTimeout: time.Second,
		TokenLifetime:  time.Minute,
	}
}

// run executes the CLI with args against server and returns stdout.
func run(t *testing.T, server adapter.ServerAdapter, args ...string) (string, error) {
	t.Helper()

	factory := func(config.ClientConfig, solana.PrivateKey, *logger.Logger) (adapter.ServerAdapter, error) {
		return server, nil
	}
	root := NewRootCommand(testConfig(), factory, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func vaultView(decimals uint8) models.VaultView {
	return models.VaultView{
		Vault: models.Vault{
			VaultID:     testVaultID,
			ReceiptMint: testMint,
			Asset:       testAsset,
			Venue:       "lender",
		},
		ReceiptToken: &models.Mint{Address: testMint, Decimals: decimals},
	}
}

// ─────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────

func TestRoot_FlagsReachFactory(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	path := writeKeypair(t, key)

	var got config.ClientConfig
	var gotKey solana.PrivateKey
	factory := func(cfg config.ClientConfig, k solana.PrivateKey, _ *logger.Logger) (adapter.ServerAdapter, error) {
		got, gotKey = cfg, k
		ctrl := gomock.NewController(t)
		m := mock.NewMockServerAdapter(ctrl)
		m.EXPECT().Signer().Return(k.PublicKey()).AnyTimes()
		m.EXPECT().Version(gomock.Any()).Return("9.9.9", nil)
		return m, nil
	}

	root := NewRootCommand(testConfig(), factory, models.NewAppBuildInfo("1.2.3", "", ""))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--server", "http://other:9000", "--keypair", path, "--timeout", "5s", "version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "http://other:9000", got.ServerAddress)
	assert.Equal(t, 5*time.Second, got.RequestTimeout)
	assert.Equal(t, time.Minute, got.TokenLifetime)
	assert.Equal(t, key.PublicKey(), gotKey.PublicKey())
}

func TestRoot_Rejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)

	_, err := run(t, m, "--output", "yaml", "venues")
	assert.ErrorIs(t, err, ErrUnknownOutput)

	_, err = run(t, m, "--server", "", "venues")
	assert.ErrorIs(t, err, config.ErrInvalidAdapterConfigs)

	_, err = run(t, m, "--keypair", filepath.Join(t.TempDir(), "missing.json"), "venues")
	assert.ErrorContains(t, err, "load keypair")
}

func TestRoot_FactoryError(t *testing.T) {
	factory := func(config.ClientConfig, solana.PrivateKey, *logger.Logger) (adapter.ServerAdapter, error) {
		return nil, errors.New("bad url")
	}
	root := NewRootCommand(testConfig(), factory, models.AppBuildInfo{})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"venues"})

	assert.ErrorContains(t, root.Execute(), "create server adapter: bad url")
}

func writeKeypair(t *testing.T, key solana.PrivateKey) string {
	t.Helper()

	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// ─────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(solana.PublicKey{}).AnyTimes()

	m.EXPECT().Version(gomock.Any()).Return("2.0.0", nil)
	out, err := run(t, m, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "2.0.0")

	m.EXPECT().Version(gomock.Any()).Return("", adapter.ErrBadGateway)
	out, err = run(t, m, "-o", "json", "version")
	require.NoError(t, err)

	var got versionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1.2.3", got.Client)
	assert.Empty(t, got.Server)
	assert.Equal(t, adapter.ErrBadGateway.Error(), got.ServerError)
}

func TestVenues(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(solana.PublicKey{}).AnyTimes()
	m.EXPECT().Venues(gomock.Any()).Return([]models.VenueInfo{
		{Venue: "lender", Name: "Lending market", Asset: testAsset},
		{Venue: "reserves", Name: "Reserve pool", Asset: testAsset},
	}, nil)

	out, err := run(t, m, "venues")
	require.NoError(t, err)
	assert.Contains(t, out, "VENUE")
	assert.Contains(t, out, "Lending market")
	assert.Contains(t, out, "reserves")
	assert.Contains(t, out, testAsset.String())
}

func TestVenueContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()

	c := models.AdapterContext{
		Venue:     "reserves",
		Asset:     testAsset,
		Accounts:  map[string]solana.PublicKey{"reserve": testMint, "liquidity": testVaultID},
		Remaining: []models.AccountRef{{Address: testMint, Writable: true}},
	}
	m.EXPECT().VenueContext(gomock.Any(), "reserves", testAsset, testSigner).Return(c, nil)

	out, err := run(t, m, "venue-context", "reserves", "--asset", testAsset.String())
	require.NoError(t, err)
	assert.Contains(t, out, "liquidity")
	assert.Contains(t, out, "remaining[0]")
	assert.Contains(t, out, "writable")
	assert.Less(t, bytes.Index([]byte(out), []byte("liquidity")), bytes.Index([]byte(out), []byte("reserve:")))

	_, err = run(t, m, "venue-context", "reserves")
	assert.ErrorContains(t, err, `required flag(s) "asset" not set`)

	_, err = run(t, m, "venue-context", "reserves", "--asset", "not-a-key")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()

	m.EXPECT().Balance(gomock.Any(), testVaultID, testSigner).Return(models.Balance{
		Vault: testVaultID, Owner: testSigner, ReceiptMint: testMint, Amount: 50_000_000, Decimals: 6,
	}, nil)

	out, err := run(t, m, "balance", testVaultID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "50.000000")

	m.EXPECT().Balance(gomock.Any(), testVaultID, testAsset).Return(models.Balance{Amount: 7, Decimals: 2}, nil)
	out, err = run(t, m, "-o", "json", "balance", testVaultID.String(), "--owner", testAsset.String())
	require.NoError(t, err)

	var got balanceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint64(7), got.Amount)
	assert.Equal(t, "0.07", got.Display)
}

func TestPosition(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()

	m.EXPECT().Position(gomock.Any(), testVaultID, "", solana.PublicKey{}).Return(models.Position{
		Venue: "lender", Asset: testAsset, Shares: 100, Underlying: 105,
	}, nil)
	out, err := run(t, m, "position", testVaultID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "lender")
	assert.Contains(t, out, "105")

	m.EXPECT().Position(gomock.Any(), testVaultID, "reserves", testAsset).Return(models.Position{}, adapter.ErrUnprocessable)
	_, err = run(t, m, "position", testVaultID.String(), "--venue", "reserves", "--asset", testAsset.String())
	assert.ErrorIs(t, err, adapter.ErrUnprocessable)
}

// ─────────────────────────────────────────────
// Vault
// ─────────────────────────────────────────────

func TestVaultCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()

	m.EXPECT().CreateVault(gomock.Any(), models.CreateVaultRequest{VaultID: testVaultID, Asset: testAsset, Venue: "lender"}).
		Return(models.Vault{VaultID: testVaultID, Asset: testAsset, Venue: "lender"}, nil)
	out, err := run(t, m, "vault", "create", testVaultID.String(), "--asset", testAsset.String(), "--venue", "lender")
	require.NoError(t, err)
	assert.Contains(t, out, testVaultID.String())
	assert.Contains(t, out, "lender")

	m.EXPECT().CreateVault(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.CreateVaultRequest) (models.Vault, error) {
			assert.False(t, req.VaultID.IsZero(), "a vault id is generated")
			assert.True(t, req.Asset.IsZero())
			return models.Vault{VaultID: req.VaultID}, nil
		})
	_, err = run(t, m, "vault", "create")
	require.NoError(t, err)

	m.EXPECT().CreateVault(gomock.Any(), gomock.Any()).Return(models.Vault{}, adapter.ErrForbidden)
	_, err = run(t, m, "vault", "create")
	assert.ErrorIs(t, err, adapter.ErrForbidden)
}

func TestVaultReceiptToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()

	m.EXPECT().CreateReceiptToken(gomock.Any(), models.CreateReceiptTokenRequest{VaultID: testVaultID, Decimals: 9}).
		Return(models.Mint{Address: testMint, Decimals: 9}, nil)
	out, err := run(t, m, "vault", "receipt-token", testVaultID.String(), "--decimals", "9")
	require.NoError(t, err)
	assert.Contains(t, out, testMint.String())
	assert.Contains(t, out, "0.000000000")
}

func TestVaultShow(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()

	view := vaultView(6)
	view.ReceiptToken.Supply = 2_500_000
	m.EXPECT().GetVault(gomock.Any(), testVaultID).Return(view, nil)

	out, err := run(t, m, "vault", "show", testVaultID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "2.500000")

	m.EXPECT().GetVault(gomock.Any(), testVaultID).Return(models.VaultView{}, adapter.ErrNotFound)
	_, err = run(t, m, "vault", "show", testVaultID.String())
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

// ─────────────────────────────────────────────
// Transfers
// ─────────────────────────────────────────────

func TestDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()
	m.EXPECT().GetVault(gomock.Any(), testVaultID).Return(vaultView(6), nil).AnyTimes()

	m.EXPECT().Deposit(gomock.Any(), models.DepositRequest{
		VaultID: testVaultID, Amount: 100_000_000, Venue: "lender", Asset: testAsset,
	}).Return(models.DepositResult{Vault: testVaultID, Minted: 100_000_000, Credited: 100_000_000, ReceiptBalance: 100_000_000}, nil)

	out, err := run(t, m, "deposit", testVaultID.String(), "100")
	require.NoError(t, err)
	assert.Contains(t, out, "100.000000")

	m.EXPECT().Deposit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.DepositRequest) (models.DepositResult, error) {
			assert.Equal(t, uint64(250), req.Amount)
			assert.Equal(t, "reserves", req.Venue)
			return models.DepositResult{}, adapter.ErrUnprocessable
		})
	_, err = run(t, m, "deposit", testVaultID.String(), "250", "--raw", "--venue", "reserves")
	assert.ErrorIs(t, err, adapter.ErrUnprocessable)

	_, err = run(t, m, "deposit", testVaultID.String(), "0.0000001")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDeposit_WithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()
	m.EXPECT().GetVault(gomock.Any(), testVaultID).Return(vaultView(6), nil)

	c := models.AdapterContext{Venue: "lender", Asset: testAsset, Accounts: map[string]solana.PublicKey{"market": testMint}}
	m.EXPECT().VenueContext(gomock.Any(), "lender", testAsset, testSigner).Return(c, nil)
	m.EXPECT().Deposit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.DepositRequest) (models.DepositResult, error) {
			require.NotNil(t, req.Context)
			assert.Equal(t, c, *req.Context)
			return models.DepositResult{Minted: req.Amount}, nil
		})

	_, err := run(t, m, "deposit", testVaultID.String(), "1.5", "--with-context")
	require.NoError(t, err)
}

func TestDeposit_NoReceiptToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()
	m.EXPECT().GetVault(gomock.Any(), testVaultID).Return(models.VaultView{Vault: models.Vault{VaultID: testVaultID}}, nil)

	_, err := run(t, m, "deposit", testVaultID.String(), "1", "--venue", "lender", "--asset", testAsset.String())
	assert.ErrorIs(t, err, ErrNoReceiptToken)
}

func TestWithdraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock.NewMockServerAdapter(ctrl)
	m.EXPECT().Signer().Return(testSigner).AnyTimes()
	m.EXPECT().GetVault(gomock.Any(), testVaultID).Return(vaultView(6), nil)
	m.EXPECT().Withdraw(gomock.Any(), models.WithdrawRequest{
		VaultID: testVaultID, Amount: 50_000_000, Venue: "lender", Asset: testAsset,
	}).Return(models.WithdrawResult{Vault: testVaultID, Burned: 50_000_000, Released: 50_000_000, ReceiptBalance: 50_000_000}, nil)

	out, err := run(t, m, "-o", "json", "withdraw", testVaultID.String(), "50")
	require.NoError(t, err)

	var got models.WithdrawResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint64(50_000_000), got.Released)
}
