package yield

import (
	"fmt"
	"maps"
	"slices"

	"github.com/MKhiriev/go-vault-keeper/internal/address"
	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// Context is the account bundle of one adapter call. The set of
// implementations is closed: [*LenderContext] and [*ReservesContext].
type Context interface {
	Kind() Kind
	Asset() solana.PublicKey
	// ShareMint is the mint of the external position the venue issues.
	ShareMint() solana.PublicKey
	// Accounts returns the fixed accounts by name.
	Accounts() map[string]solana.PublicKey
	// Remaining returns the variable-length account list in venue order.
	Remaining() []models.AccountRef
	// LockKeys lists the ledger accounts a call through this context writes.
	LockKeys() []solana.PublicKey
	// Model is the wire form.
	Model() models.AdapterContext

	isContext()
}

// LenderContext addresses one aggregating lender market.
type LenderContext struct {
	market   *venue.LenderMarket
	accounts map[string]solana.PublicKey
}

func newLenderContext(p venue.LenderProgram, m *venue.LenderMarket, signer solana.PublicKey) *LenderContext {
	accounts := map[string]solana.PublicKey{
		"lending":                              m.Lending,
		"lending_admin":                        m.LendingAdmin,
		"f_token_mint":                         m.FTokenMint,
		"supply_token_reserves_liquidity":      m.SupplyTokenReservesLiquidity,
		"lending_supply_position_on_liquidity": m.LendingSupplyPositionOnLiquidity,
		"rate_model":                           m.RateModel,
		"vault":                                m.Vault,
		"claim_account":                        m.ClaimAccount,
		"liquidity":                            m.Liquidity,
		"liquidity_program":                    p.LiquidityProgram,
		"rewards_rate_model":                   m.RewardsRateModel,
	}
	addSignerAccount(accounts, signer, m.Asset)

	return &LenderContext{market: m, accounts: accounts}
}

func (c *LenderContext) Kind() Kind                  { return KindLender }
func (c *LenderContext) Asset() solana.PublicKey     { return c.market.Asset }
func (c *LenderContext) ShareMint() solana.PublicKey { return c.market.FTokenMint }
func (c *LenderContext) Remaining() []models.AccountRef {
	return nil
}

func (c *LenderContext) Accounts() map[string]solana.PublicKey {
	return maps.Clone(c.accounts)
}

func (c *LenderContext) LockKeys() []solana.PublicKey {
	return c.market.LockKeys()
}

func (c *LenderContext) Model() models.AdapterContext {
	return models.AdapterContext{Venue: string(KindLender), Asset: c.Asset(), Accounts: c.Accounts()}
}

func (*LenderContext) isContext() {}

// ReservesContext addresses one vault of lending reserves. Remaining lists
// every reserve the vault is exposed to; withdrawals draw from the main
// reserve.
type ReservesContext struct {
	vault    *venue.ReservesVault
	accounts map[string]solana.PublicKey
}

func newReservesContext(rv *venue.ReservesVault, signer solana.PublicKey) *ReservesContext {
	accounts := map[string]solana.PublicKey{
		"vault_state":              rv.VaultState,
		"token_vault":              rv.TokenVault,
		"base_vault_authority":     rv.BaseVaultAuthority,
		"shares_mint":              rv.SharesMint,
		"event_authority":          rv.EventAuthority,
		"lending_market":           rv.LendingMarket,
		"lending_market_authority": rv.LendingMarketAuthority,
		"reserve":                  rv.MainReserve.Address,
		"ctoken_vault":             rv.MainReserve.CTokenVault,
		"reserve_liquidity_supply": rv.MainReserve.LiquiditySupply,
		"reserve_collateral_mint":  rv.MainReserve.CollateralMint,
	}
	addSignerAccount(accounts, signer, rv.Asset)

	return &ReservesContext{vault: rv, accounts: accounts}
}

func (c *ReservesContext) Kind() Kind                  { return KindReserves }
func (c *ReservesContext) Asset() solana.PublicKey     { return c.vault.Asset }
func (c *ReservesContext) ShareMint() solana.PublicKey { return c.vault.SharesMint }

func (c *ReservesContext) Accounts() map[string]solana.PublicKey {
	return maps.Clone(c.accounts)
}

func (c *ReservesContext) Remaining() []models.AccountRef {
	return slices.Clone(c.vault.Reserves)
}

func (c *ReservesContext) LockKeys() []solana.PublicKey {
	return c.vault.LockKeys()
}

func (c *ReservesContext) Model() models.AdapterContext {
	return models.AdapterContext{
		Venue:     string(KindReserves),
		Asset:     c.Asset(),
		Accounts:  c.Accounts(),
		Remaining: c.Remaining(),
	}
}

func (*ReservesContext) isContext() {}

// addSignerAccount records the signer's token account of asset. It is only
// informational; custody moves between ledger owners.
func addSignerAccount(accounts map[string]solana.PublicKey, signer, asset solana.PublicKey) {
	if signer.IsZero() {
		return
	}
	accounts["signer_token_account"] = address.TokenAccount(signer, asset)
}

// Match checks a client-supplied bundle against the resolved context
// account for account. A nil bundle always matches.
func Match(resolved Context, bundle *models.AdapterContext) error {
	if bundle == nil {
		return nil
	}

	if Kind(bundle.Venue) != resolved.Kind() {
		return fmt.Errorf("%w: venue %q, want %q", ErrContextMismatch, bundle.Venue, resolved.Kind())
	}
	if !bundle.Asset.Equals(resolved.Asset()) {
		return fmt.Errorf("%w: asset %s, want %s", ErrContextMismatch, bundle.Asset, resolved.Asset())
	}

	want := resolved.Accounts()
	if len(bundle.Accounts) != len(want) {
		return fmt.Errorf("%w: %d fixed accounts, want %d", ErrContextMismatch, len(bundle.Accounts), len(want))
	}
	for name, addr := range want {
		got, ok := bundle.Accounts[name]
		if !ok {
			return fmt.Errorf("%w: missing account %q", ErrContextMismatch, name)
		}
		if !got.Equals(addr) {
			return fmt.Errorf("%w: account %q is %s, want %s", ErrContextMismatch, name, got, addr)
		}
	}

	remaining := resolved.Remaining()
	if len(bundle.Remaining) != len(remaining) {
		return fmt.Errorf("%w: %d remaining accounts, want %d", ErrContextMismatch, len(bundle.Remaining), len(remaining))
	}
	for i, ref := range remaining {
		if bundle.Remaining[i] != ref {
			return fmt.Errorf("%w: remaining account %d is %+v, want %+v", ErrContextMismatch, i, bundle.Remaining[i], ref)
		}
	}

	return nil
}
