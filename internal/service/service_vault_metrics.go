package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultOK = "ok"

// resultLabels lists the sentinels reported as the result label, most
// specific first. Anything else is "error".
var resultLabels = []struct {
	err   error
	label string
}{
	{ErrVaultNotFound, "vault_not_found"},
	{ErrAlreadyExists, "already_exists"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInvalidDecimals, "invalid_decimals"},
	{ErrInsufficientBalance, "insufficient_balance"},
	{ErrAdapterFailure, "adapter_failure"},
	{ErrNotSupported, "not_supported"},
	{ErrUnauthorized, "unauthorized"},
	{ErrReceiptTokenNotFound, "receipt_token_not_found"},
	{ErrWrongAsset, "wrong_asset"},
	{ErrWrongVenue, "wrong_venue"},
	{ErrInvalidVaultID, "invalid_vault_id"},
	{ErrAddressMismatch, "address_mismatch"},
	{ErrInvalidDataProvided, "invalid_data"},
}

func resultLabel(err error) string {
	if err == nil {
		return resultOK
	}
	for _, rl := range resultLabels {
		if errors.Is(err, rl.err) {
			return rl.label
		}
	}

	return "error"
}

// VaultMetricsService counts vault operations by outcome and observes their
// latency. Deposit and withdraw volumes are added per venue.
type VaultMetricsService struct {
	inner VaultService

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	volume     *prometheus.CounterVec
}

// NewVaultMetricsService registers the vault metrics with reg.
func NewVaultMetricsService(reg prometheus.Registerer) VaultServiceWrapper {
	factory := promauto.With(reg)

	return &VaultMetricsService{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_operations_total",
			Help: "Vault operations by operation and result",
		}, []string{"operation", "result"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vault_operation_duration_seconds",
			Help:    "Duration of vault operations including the ledger commit",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		volume: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_asset_volume_total",
			Help: "Asset amount moved by successful deposits and withdrawals, in smallest units",
		}, []string{"operation", "venue"}),
	}
}

func (m *VaultMetricsService) observe(operation string, start time.Time, err error) {
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.operations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func (m *VaultMetricsService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error) {
	start := time.Now()
	vault, err := m.inner.CreateVault(ctx, req)
	m.observe("create_vault", start, err)

	return vault, err
}

func (m *VaultMetricsService) CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error) {
	start := time.Now()
	mint, err := m.inner.CreateReceiptToken(ctx, req)
	m.observe("create_receipt_token", start, err)

	return mint, err
}

func (m *VaultMetricsService) Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error) {
	start := time.Now()
	result, err := m.inner.Deposit(ctx, req)
	m.observe("deposit", start, err)
	if err == nil {
		m.volume.WithLabelValues("deposit", req.Venue).Add(float64(req.Amount))
	}

	return result, err
}

func (m *VaultMetricsService) Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error) {
	start := time.Now()
	result, err := m.inner.Withdraw(ctx, req)
	m.observe("withdraw", start, err)
	if err == nil {
		m.volume.WithLabelValues("withdraw", req.Venue).Add(float64(result.Released))
	}

	return result, err
}

func (m *VaultMetricsService) GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error) {
	return m.inner.GetVault(ctx, vaultID)
}

func (m *VaultMetricsService) Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error) {
	return m.inner.Balance(ctx, vaultID, owner)
}

func (m *VaultMetricsService) Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error) {
	return m.inner.Position(ctx, vaultID, venue, asset)
}

func (m *VaultMetricsService) Wrap(inner VaultService) VaultService {
	m.inner = inner
	return m
}
