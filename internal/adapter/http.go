package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	key      solana.PrivateKey
	tokenTTL time.Duration

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// key signs mutating requests; a nil key gives a read-only adapter.
//
// Returns an error if cfg.ServerAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, key solana.PrivateKey, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpServerAdapter{
		client:   utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		key:      key,
		tokenTTL: cfg.TokenLifetime,
		logger:   logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) Signer() solana.PublicKey {
	if h.key == nil {
		return solana.PublicKey{}
	}
	return h.key.PublicKey()
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) Venues(ctx context.Context) ([]models.VenueInfo, error) {
	var venues []models.VenueInfo
	if err := h.get(ctx, "/api/venues", nil, &venues); err != nil {
		return nil, fmt.Errorf("venues request: %w", err)
	}
	return venues, nil
}

func (h *httpServerAdapter) VenueContext(ctx context.Context, venue string, asset, owner solana.PublicKey) (models.AdapterContext, error) {
	query := map[string]string{"asset": asset.String()}
	if !owner.IsZero() {
		query["owner"] = owner.String()
	}

	var yc models.AdapterContext
	if err := h.get(ctx, "/api/venues/"+url.PathEscape(venue)+"/context", query, &yc); err != nil {
		return models.AdapterContext{}, fmt.Errorf("venue context request: %w", err)
	}
	return yc, nil
}

func (h *httpServerAdapter) CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.Vault, error) {
	var vault models.Vault
	if err := h.signedPost(ctx, "/api/vaults", req, &vault); err != nil {
		return models.Vault{}, fmt.Errorf("create vault request: %w", err)
	}
	return vault, nil
}

func (h *httpServerAdapter) CreateReceiptToken(ctx context.Context, req models.CreateReceiptTokenRequest) (models.Mint, error) {
	var mint models.Mint
	if err := h.signedPost(ctx, vaultPath(req.VaultID, "/receipt-token"), req, &mint); err != nil {
		return models.Mint{}, fmt.Errorf("create receipt token request: %w", err)
	}
	return mint, nil
}

func (h *httpServerAdapter) Deposit(ctx context.Context, req models.DepositRequest) (models.DepositResult, error) {
	var result models.DepositResult
	if err := h.signedPost(ctx, vaultPath(req.VaultID, "/deposit"), req, &result); err != nil {
		return models.DepositResult{}, fmt.Errorf("deposit request: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) Withdraw(ctx context.Context, req models.WithdrawRequest) (models.WithdrawResult, error) {
	var result models.WithdrawResult
	if err := h.signedPost(ctx, vaultPath(req.VaultID, "/withdraw"), req, &result); err != nil {
		return models.WithdrawResult{}, fmt.Errorf("withdraw request: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) GetVault(ctx context.Context, vaultID solana.PublicKey) (models.VaultView, error) {
	var view models.VaultView
	if err := h.get(ctx, vaultPath(vaultID, ""), nil, &view); err != nil {
		return models.VaultView{}, fmt.Errorf("get vault request: %w", err)
	}
	return view, nil
}

func (h *httpServerAdapter) Balance(ctx context.Context, vaultID, owner solana.PublicKey) (models.Balance, error) {
	var balance models.Balance
	if err := h.get(ctx, vaultPath(vaultID, "/balances/"+owner.String()), nil, &balance); err != nil {
		return models.Balance{}, fmt.Errorf("balance request: %w", err)
	}
	return balance, nil
}

func (h *httpServerAdapter) Position(ctx context.Context, vaultID solana.PublicKey, venue string, asset solana.PublicKey) (models.Position, error) {
	query := map[string]string{}
	if venue != "" {
		query["venue"] = venue
	}
	if !asset.IsZero() {
		query["asset"] = asset.String()
	}

	var position models.Position
	if err := h.get(ctx, vaultPath(vaultID, "/position"), query, &position); err != nil {
		return models.Position{}, fmt.Errorf("position request: %w", err)
	}
	return position, nil
}

func vaultPath(vaultID solana.PublicKey, suffix string) string {
	return "/api/vaults/" + vaultID.String() + suffix
}

func (h *httpServerAdapter) get(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out).
		Get(path)
	if err != nil {
		return err
	}

	return mapHTTPError(resp)
}

// signedPost sends body with a token covering its exact encoding.
func (h *httpServerAdapter) signedPost(ctx context.Context, path string, body, out any) error {
	if h.key == nil {
		return ErrNoSigner
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	token, err := utils.GenerateSignerToken(h.key, raw, h.tokenTTL)
	if err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	resp, err := h.authedRequest(ctx, token).
		SetHeader("Content-Type", "application/json").
		SetBody(raw).
		SetResult(out).
		Post(path)
	if err != nil {
		return err
	}
	h.logger.Debug().Str("path", path).Int("status", resp.StatusCode()).Msg("signed request sent")

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context, token string) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)
}
