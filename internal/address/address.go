// Package address derives the deterministic addresses used by the vault
// program: vault addresses, receipt mint addresses and token account
// addresses. All derivations are pure functions of their inputs.
package address

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	vaultSeed   = []byte("vault")
	receiptSeed = []byte("receipt")
)

var (
	// ErrZeroVaultID is returned when a vault identity is all zeroes.
	ErrZeroVaultID = errors.New("vault id must not be zero")
	// ErrAddressMismatch is returned when a stored bump no longer derives the
	// stored address.
	ErrAddressMismatch = errors.New("derived address does not match")
)

// Vault returns the canonical vault address and bump for vaultID.
func Vault(programID, vaultID solana.PublicKey) (solana.PublicKey, uint8, error) {
	if vaultID.IsZero() {
		return solana.PublicKey{}, 0, ErrZeroVaultID
	}

	addr, bump, err := solana.FindProgramAddress([][]byte{vaultSeed, vaultID[:]}, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive vault address: %w", err)
	}

	return addr, bump, nil
}

// VerifyVault recomputes the vault address from vaultID and a stored bump and
// checks it equals expected.
func VerifyVault(programID, vaultID solana.PublicKey, bump uint8, expected solana.PublicKey) error {
	addr, err := solana.CreateProgramAddress([][]byte{vaultSeed, vaultID[:], {bump}}, programID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAddressMismatch, err)
	}
	if !addr.Equals(expected) {
		return fmt.Errorf("%w: got %s, want %s", ErrAddressMismatch, addr, expected)
	}

	return nil
}

// ReceiptMint returns the receipt token mint address of a vault.
func ReceiptMint(programID, vault solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{receiptSeed, vault[:]}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive receipt mint address: %w", err)
	}

	return addr, nil
}

// TokenAccount returns the associated token address holding owner's balance
// of mint.
func TokenAccount(owner, mint solana.PublicKey) solana.PublicKey {
	addr, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		// only reachable when no bump produces an off-curve point
		return solana.PublicKey{}
	}

	return addr
}

// Derive returns a program derived address for arbitrary seeds. Venue
// registries use it to lay out deterministic account sets.
func Derive(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive address: %w", err)
	}

	return addr, nil
}
