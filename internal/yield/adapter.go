// Package yield is the boundary between the vault engine and the external
// yield venues.
//
// Every venue kind has one [Adapter]. An adapter resolves the account
// bundle ([Context]) its venue needs for an asset and performs deposits and
// withdrawals of vault custody through that bundle. The engine only sees the
// capability set; account shapes stay inside the adapters.
package yield

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// Kind tags a venue variant.
type Kind string

const (
	KindLender   Kind = "lender"
	KindReserves Kind = "reserves"
)

// Call is a single adapter invocation on behalf of a vault.
type Call struct {
	// Vault is the vault address. It holds custody of the asset and owns the
	// external position.
	Vault solana.PublicKey
	// Amount is the asset amount to deposit, or the receipt amount being
	// redeemed on withdrawal.
	Amount uint64
	// Outstanding is the receipt supply before the redemption. Withdrawals
	// release Amount/Outstanding of the external position's value, and at
	// least Amount while the position covers it.
	Outstanding uint64
}

// Adapter performs venue calls for one venue kind.
type Adapter interface {
	Kind() Kind
	// Markets lists the assets the adapter has a venue for.
	Markets() []models.VenueInfo
	// ResolveContext returns the account bundle for asset. It fails with
	// ErrNotSupported when no venue serves asset.
	ResolveContext(ctx context.Context, asset, signer solana.PublicKey) (Context, error)
	// DepositInto moves call.Amount of vault custody into the venue and
	// returns the external units credited to the vault.
	DepositInto(ctx context.Context, tx ledger.Tx, c Context, call Call) (uint64, error)
	// WithdrawFrom redeems the vault's share of the position and returns the
	// underlying released into vault custody.
	WithdrawFrom(ctx context.Context, tx ledger.Tx, c Context, call Call) (uint64, error)
}

// PositionReader is implemented by adapters that can value a position
// without changing it.
type PositionReader interface {
	Position(ctx context.Context, tx ledger.Tx, c Context, owner solana.PublicKey) (models.Position, error)
}

// credited runs deposit and checks that the owner's share balance grew by
// exactly the reported units.
func credited(ctx context.Context, tx ledger.Tx, owner, shareMint solana.PublicKey, deposit func() (uint64, error)) (uint64, error) {
	before, err := tx.Balance(ctx, owner, shareMint)
	if err != nil {
		return 0, err
	}

	units, err := deposit()
	if err != nil {
		return 0, err
	}

	after, err := tx.Balance(ctx, owner, shareMint)
	if err != nil {
		return 0, err
	}

	if units == 0 || after <= before {
		return 0, ErrNothingCredited
	}
	if after-before != units {
		return 0, fmt.Errorf("%w: reported %d, balance moved by %d", ErrCreditMismatch, units, after-before)
	}

	return units, nil
}

// redemption returns the underlying a withdrawal of call.Amount receipts out
// of call.Outstanding should release from a position worth value. The vault
// gets its pro-rata share and never less than the receipts it burns, capped
// by the position. Redeeming the whole outstanding supply takes the whole
// position so no dust is left behind.
func redemption(value uint64, call Call) (uint64, error) {
	if call.Outstanding == 0 || call.Amount == 0 || call.Amount > call.Outstanding {
		return 0, fmt.Errorf("%w: redeem %d of %d", ErrInvalidCall, call.Amount, call.Outstanding)
	}
	if value == 0 {
		return 0, ErrNoPosition
	}
	if call.Amount == call.Outstanding {
		return value, nil
	}

	share, err := venue.MulDiv(value, call.Amount, call.Outstanding)
	if err != nil {
		return 0, err
	}

	return min(max(share, call.Amount), value), nil
}
