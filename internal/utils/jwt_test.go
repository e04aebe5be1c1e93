package utils

import (
	"crypto/ed25519"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateSignerToken_Success(t *testing.T) {
	key := solana.NewWallet().PrivateKey
	body := []byte(`{"amount":100}`)

	token, err := GenerateSignerToken(key, body, time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, signer, err := ParseSignerToken(token, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !signer.Equals(key.PublicKey()) {
		t.Errorf("expected signer %s, got %s", key.PublicKey(), signer)
	}
	if claims.BodyHash != BodyHash(body) {
		t.Errorf("expected body hash %s, got %s", BodyHash(body), claims.BodyHash)
	}
	if claims.ID == "" {
		t.Error("expected non-empty jti")
	}
}

func TestGenerateSignerToken_UniqueIDs(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	a, _ := GenerateSignerToken(key, nil, time.Minute)
	b, _ := GenerateSignerToken(key, nil, time.Minute)
	ca, _, _ := ParseSignerToken(a, time.Now())
	cb, _, _ := ParseSignerToken(b, time.Now())

	if ca == nil || cb == nil || ca.ID == cb.ID {
		t.Fatal("expected two tokens with distinct jti")
	}
}

func TestGenerateSignerToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name string
		key  solana.PrivateKey
		ttl  time.Duration
	}{
		{"short key", solana.PrivateKey{1, 2, 3}, time.Minute},
		{"zero ttl", solana.NewWallet().PrivateKey, 0},
		{"negative ttl", solana.NewWallet().PrivateKey, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSignerToken(tt.key, nil, tt.ttl)
			if !errors.Is(err, ErrInvalidTokenParams) {
				t.Errorf("expected ErrInvalidTokenParams, got %v", err)
			}
		})
	}
}

func TestParseSignerToken_Expired(t *testing.T) {
	token, err := GenerateSignerToken(solana.NewWallet().PrivateKey, nil, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = ParseSignerToken(token, time.Now().Add(2*time.Minute))
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

// signWith builds a token whose subject and signing key may disagree.
func signWith(t *testing.T, signKey solana.PrivateKey, claims *models.SignerClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(ed25519.PrivateKey(signKey))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParseSignerToken_Rejections(t *testing.T) {
	victim := solana.NewWallet().PrivateKey
	attacker := solana.NewWallet().PrivateKey
	exp := jwt.NewNumericDate(time.Now().Add(time.Minute))

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "subject signed by someone else",
			token: signWith(t, attacker, &models.SignerClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: victim.PublicKey().String(), ID: "1", ExpiresAt: exp,
			}}),
		},
		{
			name: "subject is not a key",
			token: signWith(t, victim, &models.SignerClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: "alice", ID: "1", ExpiresAt: exp,
			}}),
		},
		{
			name: "no expiry",
			token: signWith(t, victim, &models.SignerClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: victim.PublicKey().String(), ID: "1",
			}}),
		},
		{
			name: "no jti",
			token: signWith(t, victim, &models.SignerClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: victim.PublicKey().String(), ExpiresAt: exp,
			}}),
		},
		{
			name: "hmac token",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
					Subject: victim.PublicKey().String(), ID: "1", ExpiresAt: exp,
				}).SignedString([]byte("secret"))
				return s
			}(),
		},
		{name: "malformed", token: "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseSignerToken(tt.token, time.Now()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "  bearer abc  ", want: "abc"},
		{header: "Bearer", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.header), func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
