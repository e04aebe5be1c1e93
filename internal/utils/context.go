// Package utils holds small helpers shared by the transports and the client:
// the authenticated signer in a context, request body hashing, EdDSA signer
// tokens, JSON responses, id generation and the resty client.
package utils

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// contextKey is a private type for context keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SignerCtxKey stores the authenticated signer public key of a request.
var SignerCtxKey = contextKey("signer")

// WithSigner returns a copy of ctx carrying signer.
func WithSigner(ctx context.Context, signer solana.PublicKey) context.Context {
	return context.WithValue(ctx, SignerCtxKey, signer)
}

// GetSignerFromContext returns the authenticated signer. ok is false when
// the request was not authenticated.
func GetSignerFromContext(ctx context.Context) (solana.PublicKey, bool) {
	signer, ok := ctx.Value(SignerCtxKey).(solana.PublicKey)
	return signer, ok && !signer.IsZero()
}
