// Package venuetest builds throwaway venue registries and clocks for tests.
package venuetest

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// Options tunes [Registry].
type Options struct {
	LenderRateBps   uint32
	ReservesRateBps uint32
	AllocationBps   uint32
	TreasuryFunding uint64
	Holders         map[solana.PublicKey]uint64
}

// Fixture is a registry with one lender market and one reserve vault for a
// freshly generated asset.
type Fixture struct {
	Registry       *venue.Registry
	Asset          solana.PublicKey
	AssetAuthority solana.PublicKey
	Lender         *venue.LenderMarket
	Reserves       *venue.ReservesVault
	// ReadOnlyReserve is a non-writable entry of the reserve list.
	ReadOnlyReserve solana.PublicKey
}

func key() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// Registry returns a validated registry with random accounts. Both venue
// treasuries and every holder are funded through genesis.
func Registry(opts Options) *Fixture {
	asset, authority := key(), key()

	lender := &venue.LenderMarket{
		Name:                             "TEST",
		Asset:                            asset,
		Lending:                          key(),
		LendingAdmin:                     key(),
		FTokenMint:                       key(),
		SupplyTokenReservesLiquidity:     key(),
		LendingSupplyPositionOnLiquidity: key(),
		RateModel:                        key(),
		Vault:                            key(),
		ClaimAccount:                     key(),
		Liquidity:                        key(),
		RewardsRateModel:                 key(),
		Treasury:                         key(),
		RateBps:                          opts.LenderRateBps,
	}

	main, side, readOnly := key(), key(), key()
	reserves := &venue.ReservesVault{
		Name:                   "TEST",
		Asset:                  asset,
		VaultState:             key(),
		TokenVault:             key(),
		BaseVaultAuthority:     key(),
		SharesMint:             key(),
		EventAuthority:         key(),
		LendingMarket:          key(),
		LendingMarketAuthority: key(),
		MainReserve: venue.Reserve{
			Address:         main,
			CTokenVault:     key(),
			LiquiditySupply: key(),
			CollateralMint:  key(),
		},
		Reserves: []models.AccountRef{
			{Address: side, Writable: true},
			{Address: main, Writable: true},
			{Address: readOnly},
		},
		Treasury:      key(),
		RateBps:       opts.ReservesRateBps,
		AllocationBps: opts.AllocationBps,
	}

	genesis := venue.Genesis{
		Mints: []venue.GenesisMint{{Address: asset, Authority: authority, Decimals: 6}},
	}
	if opts.TreasuryFunding > 0 {
		genesis.Balances = append(genesis.Balances,
			venue.GenesisBalance{Owner: lender.Treasury, Mint: asset, Amount: opts.TreasuryFunding},
			venue.GenesisBalance{Owner: reserves.Treasury, Mint: asset, Amount: opts.TreasuryFunding},
		)
	}
	for owner, amount := range opts.Holders {
		genesis.Balances = append(genesis.Balances, venue.GenesisBalance{Owner: owner, Mint: asset, Amount: amount})
	}

	reg := &venue.Registry{
		Lender:   venue.LenderProgram{ProgramID: key(), LiquidityProgram: key(), RewardsProgram: key(), Markets: []*venue.LenderMarket{lender}},
		Reserves: venue.ReservesProgram{ProgramID: key(), LendingProgramID: key(), Vaults: []*venue.ReservesVault{reserves}},
		Genesis:  genesis,
	}
	if err := reg.Validate(); err != nil {
		panic(err)
	}

	return &Fixture{
		Registry:        reg,
		Asset:           asset,
		AssetAuthority:  authority,
		Lender:          lender,
		Reserves:        reserves,
		ReadOnlyReserve: readOnly,
	}
}

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// Now implements [venue.Clock].
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
