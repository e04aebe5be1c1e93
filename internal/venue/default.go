package venue

import (
	"errors"

	"github.com/MKhiriev/go-vault-keeper/internal/address"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// Mainnet identifiers used by the built-in registry.
const (
	USDCMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

	lenderProgram          = "jup3YeL8QhtSx1e253b2FDvsMNC87fDrgQZivbrndc9"
	lenderLiquidityProgram = "jupeiUmn818Jg1ekPURTpr4mFo29p46vygyykFJ3wZC"
	lenderRewardsProgram   = "jup7TthsMgcR9Y3L277b8Eo9uboVSmu1utkuXHNUKar"

	reservesProgram        = "KvauGMspG5k6rtzrqqn7WNn3oZdyKqLKwK2XWQ8FLjd"
	reservesLendingProgram = "KLend2g3cP87fffoy8q1mQqGKjrxjC8boSyAYavgmjD"
)

// DefaultRegistry returns the built-in USDC registry. The reserve vault
// uses its mainnet accounts. Lender market accounts are derived from the
// lender programs so the layout is stable without a registry file.
func DefaultRegistry() (*Registry, error) {
	p := &keyParser{}
	usdc := p.key("usdc", USDCMint)

	lender := LenderProgram{
		ProgramID:        p.key("lender", lenderProgram),
		LiquidityProgram: p.key("lender.liquidity", lenderLiquidityProgram),
		RewardsProgram:   p.key("lender.rewards", lenderRewardsProgram),
	}
	if p.err != nil {
		return nil, p.err
	}

	d := &deriver{}
	lending := d.derive(lender.ProgramID, []byte("lending"), usdc[:])
	lender.Markets = []*LenderMarket{{
		Name:                             "USDC",
		Asset:                            usdc,
		Lending:                          lending,
		LendingAdmin:                     d.derive(lender.ProgramID, []byte("lending_admin")),
		FTokenMint:                       d.derive(lender.ProgramID, []byte("f_token_mint"), usdc[:]),
		SupplyTokenReservesLiquidity:     d.derive(lender.LiquidityProgram, []byte("reserve"), usdc[:]),
		LendingSupplyPositionOnLiquidity: d.derive(lender.LiquidityProgram, []byte("user_supply_position"), usdc[:], lending[:]),
		RateModel:                        d.derive(lender.LiquidityProgram, []byte("rate_model"), usdc[:]),
		Vault:                            d.derive(lender.LiquidityProgram, []byte("vault"), usdc[:]),
		ClaimAccount:                     d.derive(lender.LiquidityProgram, []byte("user_claim"), lending[:], usdc[:]),
		Liquidity:                        d.derive(lender.LiquidityProgram, []byte("liquidity")),
		RewardsRateModel:                 d.derive(lender.RewardsProgram, []byte("lending_rewards_rate_model"), usdc[:]),
		Treasury:                         d.derive(lender.ProgramID, []byte("treasury"), usdc[:]),
		RateBps:                          500,
	}}

	reserves := ReservesProgram{
		ProgramID:        p.key("reserves", reservesProgram),
		LendingProgramID: p.key("reserves.lending", reservesLendingProgram),
	}
	vaultState := p.key("vault_state", "HDsayqAsDWy3QvANGqh2yNraqcD8Fnjgh73Mhb3WRS5E")
	mainReserve := p.key("main_reserve", "D6q6wuQSrifJKZYpR1M8R4YawnLDtDsMmWM1NbBmgJ59")
	lendingMarket := p.key("lending_market", "7u3HeHxYDLhnCoErrtycNokbQYbWGzLs6JSDqGAv5PfF")
	reserves.Vaults = []*ReservesVault{{
		Name:                   "USDC",
		Asset:                  usdc,
		VaultState:             vaultState,
		TokenVault:             p.key("token_vault", "CKTEDx5z19CntAB9B66AxuS98S1NuCgMvfpsew7TQwi"),
		BaseVaultAuthority:     p.key("base_vault_authority", "AyY6VCkHfTWdFs7SqBbu6AnCqLUhgzVHBzW3WcJu5Jc8"),
		SharesMint:             p.key("shares_mint", "7D8C5pDFxug58L9zkwK7bCiDg4kD4AygzbcZUmf5usHS"),
		EventAuthority:         p.key("event_authority", "24tHwQyJJ9akVXxnvkekGfAoeUJXXS7mE6kQNioNySsK"),
		LendingMarket:          lendingMarket,
		LendingMarketAuthority: p.key("lending_market_authority", "9DrvZvyWh1HuAoZxvYWMvkf2XCzryCpGgHqrMjyDWpmo"),
		MainReserve: Reserve{
			Address:         mainReserve,
			CTokenVault:     p.key("ctoken_vault", "CZg8x8oqB7FYUfURq15F5AcjRTymcXsc8ann76CrpJrf"),
			LiquiditySupply: p.key("liquidity_supply", "Bgq7trRgVMeq33yt235zM2onQ4bRDBsY5EWiTetF4qw6"),
			CollateralMint:  p.key("collateral_mint", "B8V6WVjPxW1UGwVDfxH2d2r8SyT4cqn7dQRK6XneVa7D"),
		},
		Reserves: []models.AccountRef{
			{Address: p.key("reserve", "Ga4rZytCpq1unD4DbEJ5bkHeUz9g3oh9AAFEi6vSauXp"), Writable: true},
			{Address: mainReserve, Writable: true},
			{Address: p.key("reserve", "DxXdAyU3kCjnyggvHmY5nAwg5cRbbmdyX3npfDMjjMek")},
			{Address: lendingMarket},
		},
		Treasury:      d.derive(reserves.ProgramID, []byte("treasury"), vaultState[:]),
		RateBps:       700,
		AllocationBps: 8_000,
	}}

	genesis := Genesis{Mints: []GenesisMint{{
		Address:   usdc,
		Authority: d.derive(lender.ProgramID, []byte("mint_authority"), usdc[:]),
		Decimals:  6,
	}}}

	if err := errors.Join(p.err, d.err); err != nil {
		return nil, err
	}

	reg := &Registry{Lender: lender, Reserves: reserves, Genesis: genesis}
	return reg, reg.Validate()
}

type deriver struct {
	err error
}

func (d *deriver) derive(programID solana.PublicKey, seeds ...[]byte) solana.PublicKey {
	key, err := address.Derive(programID, seeds...)
	if err != nil {
		d.err = errors.Join(d.err, err)
	}

	return key
}
