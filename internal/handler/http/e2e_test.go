package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
)

type e2e struct {
	server   *httptest.Server
	operator *solana.Wallet
	holder   *solana.Wallet
	fx       *venuetest.Fixture
}

func newE2E(t *testing.T) *e2e {
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
		App:    config.App{ProgramID: config.DefaultProgramID, Operator: operator.PublicKey().String(), Version: "e2e"},
		Server: config.Server{TokenMaxAge: time.Minute},
	}
	reg := prometheus.NewRegistry()
	services, err := service.NewServices(l, yield.NewVenueRouter(v), cfg, reg, logger.Nop())
	require.NoError(t, err)

	server := httptest.NewServer(NewHandler(services, reg, logger.Nop()).Init())
	t.Cleanup(server.Close)

	return &e2e{server: server, operator: operator, holder: holder, fx: fx}
}

// post sends body signed by signer and decodes a successful response into out.
func (e *e2e) post(t *testing.T, signer *solana.Wallet, path string, body any, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	token, err := utils.GenerateSignerToken(signer.PrivateKey, raw, 30*time.Second)
	require.NoError(t, err)

	return e.send(t, token, path, raw, out)
}

func (e *e2e) send(t *testing.T, token, path string, raw []byte, out any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *e2e) get(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := e.server.Client().Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestE2E_VaultLifecycle(t *testing.T) {
	e := newE2E(t)
	id := solana.NewWallet().PublicKey()
	vaultPath := "/api/vaults/" + id.String()

	var vault models.Vault
	require.Equal(t, http.StatusCreated, e.post(t, e.operator, "/api/vaults", models.CreateVaultRequest{VaultID: id}, &vault))
	assert.Equal(t, id, vault.VaultID)

	var mint models.Mint
	require.Equal(t, http.StatusCreated, e.post(t, e.operator, vaultPath+"/receipt-token", map[string]any{"decimals": 6}, &mint))
	assert.Equal(t, vault.Address, mint.MintAuthority)

	var dep models.DepositResult
	require.Equal(t, http.StatusOK, e.post(t, e.holder, vaultPath+"/deposit", models.DepositRequest{
		Amount: 100_000_000, Venue: "lender", Asset: e.fx.Asset,
	}, &dep))
	assert.Equal(t, uint64(100_000_000), dep.Minted)

	var bal models.Balance
	require.Equal(t, http.StatusOK, e.get(t, vaultPath+"/balances/"+e.holder.PublicKey().String(), &bal))
	assert.Equal(t, uint64(100_000_000), bal.Amount)

	var pos models.Position
	require.Equal(t, http.StatusOK, e.get(t, vaultPath+"/position", &pos))
	assert.Equal(t, "lender", pos.Venue)
	assert.Equal(t, uint64(100_000_000), pos.Underlying)

	var wd models.WithdrawResult
	require.Equal(t, http.StatusOK, e.post(t, e.holder, vaultPath+"/withdraw", models.WithdrawRequest{
		Amount: 40_000_000, Venue: "lender", Asset: e.fx.Asset,
	}, &wd))
	assert.Equal(t, uint64(60_000_000), wd.ReceiptBalance)

	var view models.VaultView
	require.Equal(t, http.StatusOK, e.get(t, vaultPath, &view))
	require.NotNil(t, view.ReceiptToken)
	assert.Equal(t, uint64(60_000_000), view.ReceiptToken.Supply)
}

func TestE2E_Rejections(t *testing.T) {
	e := newE2E(t)
	id := solana.NewWallet().PublicKey()

	t.Run("holder cannot create vaults", func(t *testing.T) {
		status := e.post(t, e.holder, "/api/vaults", models.CreateVaultRequest{VaultID: id}, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("token replay", func(t *testing.T) {
		raw, err := json.Marshal(models.CreateVaultRequest{VaultID: id})
		require.NoError(t, err)
		token, err := utils.GenerateSignerToken(e.operator.PrivateKey, raw, 30*time.Second)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, e.send(t, token, "/api/vaults", raw, nil))
		assert.Equal(t, http.StatusUnauthorized, e.send(t, token, "/api/vaults", raw, nil))
	})

	t.Run("tampered body", func(t *testing.T) {
		raw, err := json.Marshal(models.CreateVaultRequest{VaultID: solana.NewWallet().PublicKey()})
		require.NoError(t, err)
		token, err := utils.GenerateSignerToken(e.operator.PrivateKey, raw, 30*time.Second)
		require.NoError(t, err)

		other, err := json.Marshal(models.CreateVaultRequest{VaultID: solana.NewWallet().PublicKey()})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, e.send(t, token, "/api/vaults", other, nil))
	})

	t.Run("token outlives max age", func(t *testing.T) {
		status := func() int {
			raw, _ := json.Marshal(models.CreateVaultRequest{VaultID: solana.NewWallet().PublicKey()})
			token, err := utils.GenerateSignerToken(e.operator.PrivateKey, raw, time.Hour)
			require.NoError(t, err)
			return e.send(t, token, "/api/vaults", raw, nil)
		}()
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("deposit into missing vault", func(t *testing.T) {
		status := e.post(t, e.holder, "/api/vaults/"+solana.NewWallet().PublicKey().String()+"/deposit", models.DepositRequest{
			Amount: 1, Venue: "lender", Asset: e.fx.Asset,
		}, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("unknown venue context", func(t *testing.T) {
		status := e.get(t, "/api/venues/staking/context?asset="+e.fx.Asset.String(), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}
