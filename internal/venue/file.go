package venue

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"
)

type registryFile struct {
	Lender struct {
		Program          string             `yaml:"program"`
		LiquidityProgram string             `yaml:"liquidity_program"`
		RewardsProgram   string             `yaml:"rewards_program"`
		Markets          []lenderMarketFile `yaml:"markets"`
	} `yaml:"lender"`

	Reserves struct {
		Program        string              `yaml:"program"`
		LendingProgram string              `yaml:"lending_program"`
		Vaults         []reservesVaultFile `yaml:"vaults"`
	} `yaml:"reserves"`

	Genesis struct {
		Mints []struct {
			Address   string `yaml:"address"`
			Authority string `yaml:"authority"`
			Decimals  uint8  `yaml:"decimals"`
		} `yaml:"mints"`
		Balances []struct {
			Owner  string `yaml:"owner"`
			Mint   string `yaml:"mint"`
			Amount uint64 `yaml:"amount"`
		} `yaml:"balances"`
	} `yaml:"genesis"`
}

type lenderMarketFile struct {
	Name                             string `yaml:"name"`
	Asset                            string `yaml:"asset"`
	Lending                          string `yaml:"lending"`
	LendingAdmin                     string `yaml:"lending_admin"`
	FTokenMint                       string `yaml:"f_token_mint"`
	SupplyTokenReservesLiquidity     string `yaml:"supply_token_reserves_liquidity"`
	LendingSupplyPositionOnLiquidity string `yaml:"lending_supply_position_on_liquidity"`
	RateModel                        string `yaml:"rate_model"`
	Vault                            string `yaml:"vault"`
	ClaimAccount                     string `yaml:"claim_account"`
	Liquidity                        string `yaml:"liquidity"`
	RewardsRateModel                 string `yaml:"rewards_rate_model"`
	Treasury                         string `yaml:"treasury"`
	RateBps                          uint32 `yaml:"rate_bps"`
}

type reservesVaultFile struct {
	Name                   string `yaml:"name"`
	Asset                  string `yaml:"asset"`
	VaultState             string `yaml:"vault_state"`
	TokenVault             string `yaml:"token_vault"`
	BaseVaultAuthority     string `yaml:"base_vault_authority"`
	SharesMint             string `yaml:"shares_mint"`
	EventAuthority         string `yaml:"event_authority"`
	LendingMarket          string `yaml:"lending_market"`
	LendingMarketAuthority string `yaml:"lending_market_authority"`
	MainReserve            struct {
		Address         string `yaml:"address"`
		CTokenVault     string `yaml:"ctoken_vault"`
		LiquiditySupply string `yaml:"liquidity_supply"`
		CollateralMint  string `yaml:"collateral_mint"`
	} `yaml:"main_reserve"`
	Reserves []struct {
		Address  string `yaml:"address"`
		Writable bool   `yaml:"writable"`
	} `yaml:"reserves"`
	Treasury      string `yaml:"treasury"`
	RateBps       uint32 `yaml:"rate_bps"`
	AllocationBps uint32 `yaml:"allocation_bps"`
}

// LoadRegistry reads and validates a YAML registry file.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening venue registry: %w", err)
	}
	defer f.Close()

	return ParseRegistry(f)
}

// ParseRegistry decodes and validates a YAML registry.
func ParseRegistry(r io.Reader) (*Registry, error) {
	var file registryFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistry, err)
	}

	p := &keyParser{}
	reg := &Registry{
		Lender: LenderProgram{
			ProgramID:        p.key("lender.program", file.Lender.Program),
			LiquidityProgram: p.key("lender.liquidity_program", file.Lender.LiquidityProgram),
			RewardsProgram:   p.key("lender.rewards_program", file.Lender.RewardsProgram),
		},
		Reserves: ReservesProgram{
			ProgramID:        p.key("reserves.program", file.Reserves.Program),
			LendingProgramID: p.key("reserves.lending_program", file.Reserves.LendingProgram),
		},
	}

	for _, m := range file.Lender.Markets {
		reg.Lender.Markets = append(reg.Lender.Markets, &LenderMarket{
			Name:                             m.Name,
			Asset:                            p.key(m.Name+".asset", m.Asset),
			Lending:                          p.key(m.Name+".lending", m.Lending),
			LendingAdmin:                     p.key(m.Name+".lending_admin", m.LendingAdmin),
			FTokenMint:                       p.key(m.Name+".f_token_mint", m.FTokenMint),
			SupplyTokenReservesLiquidity:     p.key(m.Name+".supply_token_reserves_liquidity", m.SupplyTokenReservesLiquidity),
			LendingSupplyPositionOnLiquidity: p.key(m.Name+".lending_supply_position_on_liquidity", m.LendingSupplyPositionOnLiquidity),
			RateModel:                        p.key(m.Name+".rate_model", m.RateModel),
			Vault:                            p.key(m.Name+".vault", m.Vault),
			ClaimAccount:                     p.key(m.Name+".claim_account", m.ClaimAccount),
			Liquidity:                        p.key(m.Name+".liquidity", m.Liquidity),
			RewardsRateModel:                 p.key(m.Name+".rewards_rate_model", m.RewardsRateModel),
			Treasury:                         p.key(m.Name+".treasury", m.Treasury),
			RateBps:                          m.RateBps,
		})
	}

	for _, v := range file.Reserves.Vaults {
		vault := &ReservesVault{
			Name:                   v.Name,
			Asset:                  p.key(v.Name+".asset", v.Asset),
			VaultState:             p.key(v.Name+".vault_state", v.VaultState),
			TokenVault:             p.key(v.Name+".token_vault", v.TokenVault),
			BaseVaultAuthority:     p.key(v.Name+".base_vault_authority", v.BaseVaultAuthority),
			SharesMint:             p.key(v.Name+".shares_mint", v.SharesMint),
			EventAuthority:         p.key(v.Name+".event_authority", v.EventAuthority),
			LendingMarket:          p.key(v.Name+".lending_market", v.LendingMarket),
			LendingMarketAuthority: p.key(v.Name+".lending_market_authority", v.LendingMarketAuthority),
			MainReserve: Reserve{
				Address:         p.key(v.Name+".main_reserve.address", v.MainReserve.Address),
				CTokenVault:     p.key(v.Name+".main_reserve.ctoken_vault", v.MainReserve.CTokenVault),
				LiquiditySupply: p.key(v.Name+".main_reserve.liquidity_supply", v.MainReserve.LiquiditySupply),
				CollateralMint:  p.key(v.Name+".main_reserve.collateral_mint", v.MainReserve.CollateralMint),
			},
			Treasury:      p.key(v.Name+".treasury", v.Treasury),
			RateBps:       v.RateBps,
			AllocationBps: v.AllocationBps,
		}
		for _, r := range v.Reserves {
			vault.Reserves = append(vault.Reserves, models.AccountRef{
				Address:  p.key(v.Name+".reserves", r.Address),
				Writable: r.Writable,
			})
		}
		reg.Reserves.Vaults = append(reg.Reserves.Vaults, vault)
	}

	for _, m := range file.Genesis.Mints {
		reg.Genesis.Mints = append(reg.Genesis.Mints, GenesisMint{
			Address:   p.key("genesis.mints.address", m.Address),
			Authority: p.key("genesis.mints.authority", m.Authority),
			Decimals:  m.Decimals,
		})
	}
	for _, b := range file.Genesis.Balances {
		reg.Genesis.Balances = append(reg.Genesis.Balances, GenesisBalance{
			Owner:  p.key("genesis.balances.owner", b.Owner),
			Mint:   p.key("genesis.balances.mint", b.Mint),
			Amount: b.Amount,
		})
	}

	if p.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistry, p.err)
	}

	return reg, reg.Validate()
}

// keyParser collects base58 errors so a registry reports all of them at once.
type keyParser struct {
	err error
}

func (p *keyParser) key(field, value string) solana.PublicKey {
	if value == "" {
		return solana.PublicKey{}
	}

	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %w", field, err))
		return solana.PublicKey{}
	}

	return key
}
