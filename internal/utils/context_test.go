// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestContextKeyString(t *testing.T) {
	if SignerCtxKey.String() != "signer" {
		t.Errorf("expected 'signer', got '%s'", SignerCtxKey.String())
	}
}

func TestGetSignerFromContext_Success(t *testing.T) {
	signer := solana.NewWallet().PublicKey()
	ctx := WithSigner(context.Background(), signer)

	got, ok := GetSignerFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if !got.Equals(signer) {
		t.Errorf("expected signer %s, got %s", signer, got)
	}
}

func TestGetSignerFromContext_Missing(t *testing.T) {
	if _, ok := GetSignerFromContext(context.Background()); ok {
		t.Error("expected ok=false for empty context")
	}
}

func TestGetSignerFromContext_WrongTypeOrZero(t *testing.T) {
	ctx := context.WithValue(context.Background(), SignerCtxKey, "not-a-key")
	if _, ok := GetSignerFromContext(ctx); ok {
		t.Error("expected ok=false for wrong type")
	}

	ctx = WithSigner(context.Background(), solana.PublicKey{})
	if _, ok := GetSignerFromContext(ctx); ok {
		t.Error("expected ok=false for zero key")
	}
}
