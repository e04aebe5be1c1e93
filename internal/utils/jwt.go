package utils

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams = errors.New("invalid params for generating signer token")
	ErrInvalidSubject     = errors.New("token subject is not a public key")
	ErrMissingTokenID     = errors.New("token has no jti")
)

var jtiGenerator = NewUUIDGenerator()

// GenerateSignerToken signs a short-lived EdDSA token with key. The token
// authorizes exactly one request whose payload is body.
func GenerateSignerToken(key solana.PrivateKey, body []byte, ttl time.Duration) (string, error) {
	if len(key) != ed25519.PrivateKeySize || ttl <= 0 {
		return "", ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &models.SignerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   key.PublicKey().String(),
			ID:        jtiGenerator.Generate(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		BodyHash: BodyHash(body),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(ed25519.PrivateKey(key))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return signed, nil
}

// ParseSignerToken verifies tokenString against the public key named in its
// own subject and checks expiry at now. It returns the claims and the signer.
func ParseSignerToken(tokenString string, now time.Time) (*models.SignerClaims, solana.PublicKey, error) {
	var signer solana.PublicKey

	claims := &models.SignerClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		sub, err := token.Claims.GetSubject()
		if err != nil {
			return nil, err
		}
		signer, err = solana.PublicKeyFromBase58(sub)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSubject, err)
		}
		return ed25519.PublicKey(signer[:]), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}
	if claims.ID == "" {
		return nil, solana.PublicKey{}, ErrMissingTokenID
	}

	return claims, signer, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
