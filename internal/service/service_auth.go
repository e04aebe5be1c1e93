package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/golang-jwt/jwt/v5"
)

type authService struct {
	maxAge time.Duration
	now    func() time.Time

	mu   sync.Mutex
	used map[string]time.Time

	logger *logger.Logger
}

// NewAuthService verifies signer tokens. A token is accepted once; its jti
// is remembered until the token expires.
func NewAuthService(cfg config.Server, logger *logger.Logger) AuthService {
	return &authService{
		maxAge: cfg.TokenMaxAge,
		now:    time.Now,
		used:   make(map[string]time.Time),
		logger: logger,
	}
}

func (a *authService) Authenticate(ctx context.Context, token string, payload []byte) (solana.PublicKey, error) {
	log := logger.FromContext(ctx)
	now := a.now()

	claims, signer, err := utils.ParseSignerToken(token, now)
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("token rejected")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return solana.PublicKey{}, wrap(ErrTokenIsExpired, err)
		}
		return solana.PublicKey{}, wrap(ErrTokenIsExpiredOrInvalid, err)
	}

	expiresAt := claims.ExpiresAt.Time
	if expiresAt.After(now.Add(a.maxAge)) {
		log.Error().Str("func", "*authService.Authenticate").
			Stringer("signer", signer).
			Time("exp", expiresAt).
			Msg("token outlives the allowed age")
		return solana.PublicKey{}, ErrTokenLifetimeTooLong
	}

	if claims.BodyHash != utils.BodyHash(payload) {
		log.Error().Str("func", "*authService.Authenticate").
			Stringer("signer", signer).
			Msg("payload hash mismatch")
		return solana.PublicKey{}, ErrPayloadHashMismatch
	}

	jti := signer.String() + ":" + claims.ID

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, seen := a.used[jti]; seen {
		log.Error().Str("func", "*authService.Authenticate").
			Stringer("signer", signer).
			Str("jti", claims.ID).
			Msg("token replayed")
		return solana.PublicKey{}, ErrTokenReplayed
	}
	a.used[jti] = expiresAt

	return signer, nil
}

func (a *authService) PurgeUsedTokens(ctx context.Context) int {
	now := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	purged := 0
	for jti, exp := range a.used {
		if !exp.After(now) {
			delete(a.used, jti)
			purged++
		}
	}
	if purged > 0 {
		logger.FromContext(ctx).Debug().Int("purged", purged).Msg("forgot expired token ids")
	}

	return purged
}
