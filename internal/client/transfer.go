package client

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-vault-keeper/internal/adapter"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

// transferFlags are shared by deposit and withdraw.
type transferFlags struct {
	venue       string
	asset       string
	raw         bool
	withContext bool
}

func (f *transferFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.venue, "venue", "", "venue kind, defaults to the vault venue")
	cmd.Flags().StringVar(&f.asset, "asset", "", "asset mint, defaults to the vault asset")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "amount is given in base units")
	cmd.Flags().BoolVar(&f.withContext, "with-context", false, "resolve the venue accounts first and send them along")
}

// transfer is a resolved deposit or withdraw call.
type transfer struct {
	vaultID  solana.PublicKey
	amount   uint64
	decimals uint8
	venue    string
	asset    solana.PublicKey
	context  *models.AdapterContext
}

// resolve fills venue and asset from the vault when the flags leave them
// empty, and converts the amount with the receipt token decimals.
func (f *transferFlags) resolve(ctx context.Context, server adapter.ServerAdapter, vaultArg, amountArg string) (transfer, error) {
	var t transfer

	vaultID, err := parseKey(vaultArg, "vault id")
	if err != nil {
		return t, err
	}
	t.vaultID = vaultID

	view, err := server.GetVault(ctx, vaultID)
	if err != nil {
		return t, fmt.Errorf("get vault: %w", err)
	}

	t.venue = f.venue
	if t.venue == "" {
		t.venue = view.Vault.Venue
	}
	if t.asset, err = parseOptionalKey(f.asset, "asset"); err != nil {
		return t, err
	}
	if t.asset.IsZero() {
		t.asset = view.Vault.Asset
	}

	if view.ReceiptToken != nil {
		t.decimals = view.ReceiptToken.Decimals
	}
	switch {
	case f.raw:
		t.amount, err = ParseAmount(amountArg, 0)
	case view.ReceiptToken == nil:
		err = ErrNoReceiptToken
	default:
		t.amount, err = ParseAmount(amountArg, t.decimals)
	}
	if err != nil {
		return t, err
	}

	if f.withContext {
		c, err := server.VenueContext(ctx, t.venue, t.asset, server.Signer())
		if err != nil {
			return t, fmt.Errorf("venue context: %w", err)
		}
		t.context = &c
	}

	return t, nil
}

// NewDepositCommand deposits an asset amount into a vault venue.
func NewDepositCommand(opts *RootOptions) *cobra.Command {
	var flags transferFlags

	cmd := &cobra.Command{
		Use:   "deposit <vault-id> <amount>",
		Short: "Deposit into a vault and receive receipt tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			t, err := flags.resolve(opts.ctx(cmd), server, args[0], args[1])
			if err != nil {
				return err
			}

			result, err := server.Deposit(opts.ctx(cmd), models.DepositRequest{
				VaultID: t.vaultID,
				Amount:  t.amount,
				Venue:   t.venue,
				Asset:   t.asset,
				Context: t.context,
			})
			if err != nil {
				return fmt.Errorf("deposit: %w", err)
			}

			return opts.render(cmd, result, func(w io.Writer) {
				row(w, "vault", result.Vault)
				row(w, "minted", FormatAmount(result.Minted, t.decimals))
				row(w, "credited", FormatAmount(result.Credited, t.decimals))
				row(w, "receipt balance", FormatAmount(result.ReceiptBalance, t.decimals))
			})
		},
	}
	flags.bind(cmd)

	return cmd
}

// NewWithdrawCommand burns receipt tokens and releases the underlying asset.
func NewWithdrawCommand(opts *RootOptions) *cobra.Command {
	var flags transferFlags

	cmd := &cobra.Command{
		Use:   "withdraw <vault-id> <amount>",
		Short: "Redeem receipt tokens for the underlying asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			t, err := flags.resolve(opts.ctx(cmd), server, args[0], args[1])
			if err != nil {
				return err
			}

			result, err := server.Withdraw(opts.ctx(cmd), models.WithdrawRequest{
				VaultID: t.vaultID,
				Amount:  t.amount,
				Venue:   t.venue,
				Asset:   t.asset,
				Context: t.context,
			})
			if err != nil {
				return fmt.Errorf("withdraw: %w", err)
			}

			return opts.render(cmd, result, func(w io.Writer) {
				row(w, "vault", result.Vault)
				row(w, "burned", FormatAmount(result.Burned, t.decimals))
				row(w, "released", FormatAmount(result.Released, t.decimals))
				row(w, "receipt balance", FormatAmount(result.ReceiptBalance, t.decimals))
			})
		},
	}
	flags.bind(cmd)

	return cmd
}
