package client

import (
	"fmt"
	"io"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

// NewVaultCommand groups the vault registry commands.
func NewVaultCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Create and inspect vaults",
	}

	cmd.AddCommand(
		newVaultCreateCommand(opts),
		newVaultReceiptTokenCommand(opts),
		newVaultShowCommand(opts),
	)

	return cmd
}

func newVaultCreateCommand(opts *RootOptions) *cobra.Command {
	var asset, venue string

	cmd := &cobra.Command{
		Use:   "create [vault-id]",
		Short: "Create a vault (operator only)",
		Long:  "Create a vault. A random vault id is generated when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			req := models.CreateVaultRequest{Venue: venue}
			if len(args) == 1 {
				if req.VaultID, err = parseKey(args[0], "vault id"); err != nil {
					return err
				}
			} else {
				req.VaultID = solana.NewWallet().PublicKey()
			}
			if req.Asset, err = parseOptionalKey(asset, "asset"); err != nil {
				return err
			}

			vault, err := server.CreateVault(opts.ctx(cmd), req)
			if err != nil {
				return fmt.Errorf("create vault: %w", err)
			}

			return opts.render(cmd, vault, func(w io.Writer) { writeVault(w, vault) })
		},
	}

	cmd.Flags().StringVar(&asset, "asset", "", "pin the vault to an asset mint")
	cmd.Flags().StringVar(&venue, "venue", "", "pin the vault to a venue kind")

	return cmd
}

func newVaultReceiptTokenCommand(opts *RootOptions) *cobra.Command {
	var decimals uint8

	cmd := &cobra.Command{
		Use:   "receipt-token <vault-id>",
		Short: "Create the receipt token of a vault (operator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			vaultID, err := parseKey(args[0], "vault id")
			if err != nil {
				return err
			}

			mint, err := server.CreateReceiptToken(opts.ctx(cmd), models.CreateReceiptTokenRequest{
				VaultID:  vaultID,
				Decimals: decimals,
			})
			if err != nil {
				return fmt.Errorf("create receipt token: %w", err)
			}

			return opts.render(cmd, mint, func(w io.Writer) { writeMint(w, mint) })
		},
	}

	cmd.Flags().Uint8Var(&decimals, "decimals", 6, "receipt token decimals (0-9)")

	return cmd
}

func newVaultShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <vault-id>",
		Short: "Show a vault and its receipt token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			vaultID, err := parseKey(args[0], "vault id")
			if err != nil {
				return err
			}

			view, err := server.GetVault(opts.ctx(cmd), vaultID)
			if err != nil {
				return fmt.Errorf("get vault: %w", err)
			}

			return opts.render(cmd, view, func(w io.Writer) {
				writeVault(w, view.Vault)
				if view.ReceiptToken != nil {
					row(w, "decimals", view.ReceiptToken.Decimals)
					row(w, "supply", FormatAmount(view.ReceiptToken.Supply, view.ReceiptToken.Decimals))
				}
			})
		},
	}
}

func writeVault(w io.Writer, v models.Vault) {
	row(w, "vault id", v.VaultID)
	row(w, "address", v.Address)
	row(w, "bump", v.Bump)
	row(w, "receipt mint", optional(v.ReceiptMint))
	row(w, "asset", optional(v.Asset))
	if v.Venue == "" {
		row(w, "venue", "-")
	} else {
		row(w, "venue", v.Venue)
	}
	row(w, "created at", v.CreatedAt.Format("2006-01-02 15:04:05 MST"))
}

func writeMint(w io.Writer, m models.Mint) {
	row(w, "mint", m.Address)
	row(w, "mint authority", m.MintAuthority)
	row(w, "freeze authority", m.FreezeAuthority)
	row(w, "decimals", m.Decimals)
	row(w, "supply", FormatAmount(m.Supply, m.Decimals))
	row(w, "non-transferable", m.NonTransferable)
}

func optional(key solana.PublicKey) string {
	if key.IsZero() {
		return "-"
	}
	return key.String()
}
