package yield_test

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/ledger"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/internal/venue/venuetest"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type env struct {
	fx     *venuetest.Fixture
	clock  *venuetest.Clock
	ledger *ledger.Memory
	router *yield.Router
	holder solana.PublicKey
	vault  solana.PublicKey
}

func newEnv(t *testing.T, opts venuetest.Options) *env {
	t.Helper()
	holder := solana.NewWallet().PublicKey()
	opts.Holders = map[solana.PublicKey]uint64{holder: 1_000_000_000}

	fx := venuetest.Registry(opts)
	clock := venuetest.NewClock()
	l := ledger.NewMemory(logger.Nop())
	v := venue.New(fx.Registry, clock.Now, logger.Nop())
	require.NoError(t, v.Provision(context.Background(), l))

	return &env{
		fx:     fx,
		clock:  clock,
		ledger: l,
		router: yield.NewVenueRouter(v),
		holder: holder,
		vault:  solana.NewWallet().PublicKey(),
	}
}

func (e *env) resolve(t *testing.T, kind yield.Kind) (yield.Adapter, yield.Context) {
	t.Helper()
	a, c, err := e.router.Resolve(context.Background(), kind, e.fx.Asset, e.holder)
	require.NoError(t, err)
	return a, c
}

// deposit funds the vault from the holder and routes the amount into the
// venue, the way the vault engine does.
func (e *env) deposit(t *testing.T, a yield.Adapter, c yield.Context, amount uint64) uint64 {
	t.Helper()
	var credited uint64
	keys := append(c.LockKeys(), e.vault, e.holder)
	require.NoError(t, e.ledger.Atomic(context.Background(), keys, func(ctx context.Context, tx ledger.Tx) error {
		if err := tx.Transfer(ctx, e.fx.Asset, e.holder, e.vault, e.holder, amount); err != nil {
			return err
		}
		var err error
		credited, err = a.DepositInto(ctx, tx, c, yield.Call{Vault: e.vault, Amount: amount})
		return err
	}))
	return credited
}

func (e *env) withdraw(t *testing.T, a yield.Adapter, c yield.Context, amount, outstanding uint64) (uint64, error) {
	t.Helper()
	var released uint64
	keys := append(c.LockKeys(), e.vault)
	err := e.ledger.Atomic(context.Background(), keys, func(ctx context.Context, tx ledger.Tx) error {
		var err error
		released, err = a.WithdrawFrom(ctx, tx, c, yield.Call{Vault: e.vault, Amount: amount, Outstanding: outstanding})
		return err
	})
	return released, err
}

func (e *env) balance(t *testing.T, owner, mint solana.PublicKey) uint64 {
	t.Helper()
	var got uint64
	require.NoError(t, e.ledger.View(context.Background(), func(ctx context.Context, tx ledger.Tx) error {
		var err error
		got, err = tx.Balance(ctx, owner, mint)
		return err
	}))
	return got
}

// ── router ────────────────────────────────────────────────────────────────────

func TestRouter_Resolve(t *testing.T) {
	e := newEnv(t, venuetest.Options{})

	t.Run("unknown venue kind", func(t *testing.T) {
		_, _, err := e.router.Resolve(context.Background(), "perps", e.fx.Asset, e.holder)
		assert.ErrorIs(t, err, yield.ErrNotSupported)
		assert.ErrorIs(t, err, yield.ErrUnknownVenue)
	})

	for _, kind := range []yield.Kind{yield.KindLender, yield.KindReserves} {
		t.Run(string(kind)+" unconfigured asset", func(t *testing.T) {
			_, _, err := e.router.Resolve(context.Background(), kind, solana.NewWallet().PublicKey(), e.holder)
			assert.ErrorIs(t, err, yield.ErrNotSupported)
		})

		t.Run(string(kind)+" is a pure function of the asset", func(t *testing.T) {
			a1, c1 := e.resolve(t, kind)
			a2, c2 := e.resolve(t, kind)
			assert.Same(t, a1, a2)
			assert.Equal(t, c1.Model(), c2.Model())
			assert.Equal(t, kind, c1.Kind())
		})
	}
}

func TestRouter_Markets(t *testing.T) {
	e := newEnv(t, venuetest.Options{})

	markets := e.router.Markets()
	require.Len(t, markets, 2)
	assert.Equal(t, models.VenueInfo{Venue: "lender", Name: "TEST", Asset: e.fx.Asset}, markets[0])
	assert.Equal(t, models.VenueInfo{Venue: "reserves", Name: "TEST", Asset: e.fx.Asset}, markets[1])
}

func TestContext_Shapes(t *testing.T) {
	e := newEnv(t, venuetest.Options{})

	_, lender := e.resolve(t, yield.KindLender)
	assert.Empty(t, lender.Remaining())
	assert.Equal(t, e.fx.Lender.FTokenMint, lender.ShareMint())
	assert.Equal(t, e.fx.Lender.ClaimAccount, lender.Accounts()["claim_account"])
	assert.Equal(t, e.fx.Registry.Lender.LiquidityProgram, lender.Accounts()["liquidity_program"])
	assert.NotContains(t, lender.Accounts(), "reserve")

	_, reserves := e.resolve(t, yield.KindReserves)
	assert.Equal(t, e.fx.Reserves.Reserves, reserves.Remaining())
	assert.Equal(t, e.fx.Reserves.MainReserve.Address, reserves.Accounts()["reserve"])
	assert.Equal(t, e.fx.Reserves.MainReserve.CollateralMint, reserves.Accounts()["reserve_collateral_mint"])

	accounts := reserves.Accounts()
	delete(accounts, "reserve")
	assert.Contains(t, reserves.Accounts(), "reserve", "accounts are returned by copy")
}

// ── Match ─────────────────────────────────────────────────────────────────────

func TestMatch(t *testing.T) {
	e := newEnv(t, venuetest.Options{})
	_, resolved := e.resolve(t, yield.KindReserves)

	tests := []struct {
		name    string
		mutate  func(b *models.AdapterContext)
		wantErr bool
	}{
		{name: "identical", mutate: func(*models.AdapterContext) {}},
		{name: "other venue", mutate: func(b *models.AdapterContext) { b.Venue = "lender" }, wantErr: true},
		{name: "other asset", mutate: func(b *models.AdapterContext) { b.Asset = solana.NewWallet().PublicKey() }, wantErr: true},
		{name: "replaced account", mutate: func(b *models.AdapterContext) { b.Accounts["token_vault"] = solana.NewWallet().PublicKey() }, wantErr: true},
		{name: "missing account", mutate: func(b *models.AdapterContext) { delete(b.Accounts, "event_authority") }, wantErr: true},
		{name: "dropped reserve", mutate: func(b *models.AdapterContext) { b.Remaining = b.Remaining[1:] }, wantErr: true},
		{
			name: "reordered reserves",
			mutate: func(b *models.AdapterContext) {
				b.Remaining[0], b.Remaining[1] = b.Remaining[1], b.Remaining[0]
			},
			wantErr: true,
		},
		{name: "writability flipped", mutate: func(b *models.AdapterContext) { b.Remaining[2].Writable = true }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := resolved.Model()
			tt.mutate(&bundle)

			err := yield.Match(resolved, &bundle)
			if tt.wantErr {
				assert.ErrorIs(t, err, yield.ErrContextMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.NoError(t, yield.Match(resolved, nil))
}

// ── lender adapter ────────────────────────────────────────────────────────────

func TestLenderAdapter_DepositWithdraw(t *testing.T) {
	e := newEnv(t, venuetest.Options{LenderRateBps: 1_000, TreasuryFunding: 1_000_000_000})
	a, c := e.resolve(t, yield.KindLender)

	credited := e.deposit(t, a, c, 100_000_000)
	assert.Equal(t, uint64(100_000_000), credited)
	assert.Equal(t, credited, e.balance(t, e.vault, e.fx.Lender.FTokenMint))
	assert.Zero(t, e.balance(t, e.vault, e.fx.Asset), "custody moved into the venue")

	e.clock.Advance(365 * 24 * time.Hour)

	released, err := e.withdraw(t, a, c, 50_000_000, 100_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(55_000_000), released, "half the position including accrued interest")
	assert.Equal(t, released, e.balance(t, e.vault, e.fx.Asset))
	assert.Equal(t, uint64(50_000_000), e.balance(t, e.vault, e.fx.Lender.FTokenMint))

	released, err = e.withdraw(t, a, c, 50_000_000, 50_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(55_000_000), released)
	assert.Zero(t, e.balance(t, e.vault, e.fx.Lender.FTokenMint), "full redemption leaves no shares")
}

func TestLenderAdapter_Position(t *testing.T) {
	e := newEnv(t, venuetest.Options{})
	a, c := e.resolve(t, yield.KindLender)
	e.deposit(t, a, c, 2_000)

	reader, ok := a.(yield.PositionReader)
	require.True(t, ok)

	var pos models.Position
	require.NoError(t, e.ledger.View(context.Background(), func(ctx context.Context, tx ledger.Tx) error {
		var err error
		pos, err = reader.Position(ctx, tx, c, e.vault)
		return err
	}))

	assert.Equal(t, models.Position{
		Venue:      "lender",
		Asset:      e.fx.Asset,
		ShareMint:  e.fx.Lender.FTokenMint,
		Shares:     2_000,
		Underlying: 2_000,
	}, pos)
}

// ── reserves adapter ──────────────────────────────────────────────────────────

func TestReservesAdapter_DepositWithdraw(t *testing.T) {
	e := newEnv(t, venuetest.Options{AllocationBps: 8_000})
	a, c := e.resolve(t, yield.KindReserves)

	credited := e.deposit(t, a, c, 100_000_000)
	assert.Equal(t, uint64(100_000_000), credited)
	assert.Equal(t, uint64(80_000_000), e.balance(t, e.fx.Reserves.MainReserve.Address, e.fx.Asset))

	released, err := e.withdraw(t, a, c, 50_000_000, 100_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), released)
	assert.Equal(t, uint64(50_000_000), e.balance(t, e.vault, e.fx.Reserves.SharesMint))
}

// ── failures ──────────────────────────────────────────────────────────────────

func TestAdapter_Failures(t *testing.T) {
	e := newEnv(t, venuetest.Options{})
	lenderAdapter, lenderCtx := e.resolve(t, yield.KindLender)
	_, reservesCtx := e.resolve(t, yield.KindReserves)

	t.Run("context of another venue", func(t *testing.T) {
		_, err := e.withdraw(t, lenderAdapter, reservesCtx, 1, 1)
		assert.ErrorIs(t, err, yield.ErrWrongContext)
	})

	t.Run("nothing to redeem", func(t *testing.T) {
		_, err := e.withdraw(t, lenderAdapter, lenderCtx, 1, 1)
		assert.ErrorIs(t, err, yield.ErrNoPosition)
	})

	t.Run("redeem more than outstanding", func(t *testing.T) {
		_, err := e.withdraw(t, lenderAdapter, lenderCtx, 2, 1)
		assert.ErrorIs(t, err, yield.ErrInvalidCall)
	})

	t.Run("deposit without custody rolls back", func(t *testing.T) {
		keys := append(lenderCtx.LockKeys(), e.vault)
		err := e.ledger.Atomic(context.Background(), keys, func(ctx context.Context, tx ledger.Tx) error {
			_, err := lenderAdapter.DepositInto(ctx, tx, lenderCtx, yield.Call{Vault: e.vault, Amount: 10})
			return err
		})
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
		assert.Zero(t, e.balance(t, e.vault, e.fx.Lender.FTokenMint))
	})
}
