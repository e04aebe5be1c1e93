// Package venue simulates the external yield venues the vault program routes
// deposits into: an aggregating lender market and a vault of lending
// reserves. Venues keep their state in the same custody ledger as the vaults
// so their effects commit or roll back together with the calling operation.
//
// The static [Registry] maps each asset to the venue accounts serving it.
package venue

import (
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// Venue state kinds.
const (
	LenderKind  = "lender"
	ReserveKind = "reserve"
)

// Registry is the static venue configuration, keyed by asset.
type Registry struct {
	Lender   LenderProgram
	Reserves ReservesProgram
	Genesis  Genesis

	lenderByAsset   map[solana.PublicKey]*LenderMarket
	reservesByAsset map[solana.PublicKey]*ReservesVault
}

// LenderProgram groups the aggregating lender markets.
type LenderProgram struct {
	ProgramID        solana.PublicKey
	LiquidityProgram solana.PublicKey
	RewardsProgram   solana.PublicKey
	Markets          []*LenderMarket
}

// LenderMarket is one asset market of the aggregating lender. Deposited
// liquidity sits in SupplyTokenReservesLiquidity; depositors hold fTokens.
type LenderMarket struct {
	Name                             string
	Asset                            solana.PublicKey
	Lending                          solana.PublicKey
	LendingAdmin                     solana.PublicKey
	FTokenMint                       solana.PublicKey
	SupplyTokenReservesLiquidity     solana.PublicKey
	LendingSupplyPositionOnLiquidity solana.PublicKey
	RateModel                        solana.PublicKey
	Vault                            solana.PublicKey
	ClaimAccount                     solana.PublicKey
	Liquidity                        solana.PublicKey
	RewardsRateModel                 solana.PublicKey
	// Treasury funds interest and share rounding. It never pays more than it
	// holds.
	Treasury solana.PublicKey
	RateBps  uint32
}

// ReservesProgram groups the reserve vaults.
type ReservesProgram struct {
	ProgramID        solana.PublicKey
	LendingProgramID solana.PublicKey
	Vaults           []*ReservesVault
}

// ReservesVault spreads deposits over lending reserves. Idle liquidity sits
// in TokenVault; every writable reserve holds its allocation under its own
// address.
type ReservesVault struct {
	Name                   string
	Asset                  solana.PublicKey
	VaultState             solana.PublicKey
	TokenVault             solana.PublicKey
	BaseVaultAuthority     solana.PublicKey
	SharesMint             solana.PublicKey
	EventAuthority         solana.PublicKey
	LendingMarket          solana.PublicKey
	LendingMarketAuthority solana.PublicKey
	MainReserve            Reserve
	Reserves               []models.AccountRef
	Treasury               solana.PublicKey
	RateBps                uint32
	AllocationBps          uint32
}

// Reserve is the reserve withdrawals draw from when idle liquidity runs out.
type Reserve struct {
	Address         solana.PublicKey
	CTokenVault     solana.PublicKey
	LiquiditySupply solana.PublicKey
	CollateralMint  solana.PublicKey
}

// Genesis lists ledger-native asset mints and balances created at startup
// when absent.
type Genesis struct {
	Mints    []GenesisMint
	Balances []GenesisBalance
}

type GenesisMint struct {
	Address   solana.PublicKey
	Authority solana.PublicKey
	Decimals  uint8
}

type GenesisBalance struct {
	Owner  solana.PublicKey
	Mint   solana.PublicKey
	Amount uint64
}

// Validate checks required accounts and indexes markets by asset. It must
// be called before lookups.
func (r *Registry) Validate() error {
	r.lenderByAsset = make(map[solana.PublicKey]*LenderMarket, len(r.Lender.Markets))
	for _, m := range r.Lender.Markets {
		if err := requireKeys(m.Name, map[string]solana.PublicKey{
			"asset":                           m.Asset,
			"lending":                         m.Lending,
			"f_token_mint":                    m.FTokenMint,
			"supply_token_reserves_liquidity": m.SupplyTokenReservesLiquidity,
			"treasury":                        m.Treasury,
		}); err != nil {
			return err
		}
		if _, dup := r.lenderByAsset[m.Asset]; dup {
			return fmt.Errorf("%w: two lender markets for asset %s", ErrInvalidRegistry, m.Asset)
		}
		r.lenderByAsset[m.Asset] = m
	}

	r.reservesByAsset = make(map[solana.PublicKey]*ReservesVault, len(r.Reserves.Vaults))
	for _, v := range r.Reserves.Vaults {
		if err := requireKeys(v.Name, map[string]solana.PublicKey{
			"asset":                v.Asset,
			"vault_state":          v.VaultState,
			"token_vault":          v.TokenVault,
			"base_vault_authority": v.BaseVaultAuthority,
			"shares_mint":          v.SharesMint,
			"main_reserve":         v.MainReserve.Address,
			"treasury":             v.Treasury,
		}); err != nil {
			return err
		}
		if v.AllocationBps > 10_000 {
			return fmt.Errorf("%w: %s allocation above 100%%", ErrInvalidRegistry, v.Name)
		}
		if ref, ok := v.reserve(v.MainReserve.Address); !ok || !ref.Writable {
			return fmt.Errorf("%w: %s main reserve must be a writable reserve", ErrInvalidRegistry, v.Name)
		}
		if _, dup := r.reservesByAsset[v.Asset]; dup {
			return fmt.Errorf("%w: two reserve vaults for asset %s", ErrInvalidRegistry, v.Asset)
		}
		r.reservesByAsset[v.Asset] = v
	}

	return nil
}

// LenderMarketFor returns the lender market serving asset.
func (r *Registry) LenderMarketFor(asset solana.PublicKey) (*LenderMarket, bool) {
	m, ok := r.lenderByAsset[asset]
	return m, ok
}

// ReservesVaultFor returns the reserve vault serving asset.
func (r *Registry) ReservesVaultFor(asset solana.PublicKey) (*ReservesVault, bool) {
	v, ok := r.reservesByAsset[asset]
	return v, ok
}

// LockKeys lists every account a lender call may write.
func (m *LenderMarket) LockKeys() []solana.PublicKey {
	return []solana.PublicKey{m.Lending, m.FTokenMint, m.SupplyTokenReservesLiquidity, m.Treasury}
}

// LockKeys lists every account a reserve vault call may write.
func (v *ReservesVault) LockKeys() []solana.PublicKey {
	keys := []solana.PublicKey{v.VaultState, v.TokenVault, v.SharesMint, v.Treasury}
	for _, r := range v.Reserves {
		if r.Writable {
			keys = append(keys, r.Address)
		}
	}

	return keys
}

func (v *ReservesVault) reserve(address solana.PublicKey) (models.AccountRef, bool) {
	for _, r := range v.Reserves {
		if r.Address.Equals(address) {
			return r, true
		}
	}

	return models.AccountRef{}, false
}

func requireKeys(name string, keys map[string]solana.PublicKey) error {
	for field, key := range keys {
		if key.IsZero() {
			return fmt.Errorf("%w: %s: %s is required", ErrInvalidRegistry, name, field)
		}
	}

	return nil
}
