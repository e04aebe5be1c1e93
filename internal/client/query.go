package client

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/spf13/cobra"
)

type versionOutput struct {
	Client      string `json:"client"`
	BuildDate   string `json:"build_date"`
	BuildCommit string `json:"build_commit"`
	Server      string `json:"server,omitempty"`
	ServerError string `json:"server_error,omitempty"`
}

// NewVersionCommand prints the client build and the server version. An
// unreachable server is reported, not treated as a failure.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			out := versionOutput{
				Client:      opts.build.BuildVersion(),
				BuildDate:   opts.build.BuildDate(),
				BuildCommit: opts.build.BuildCommit(),
			}
			if v, err := server.Version(opts.ctx(cmd)); err != nil {
				out.ServerError = err.Error()
			} else {
				out.Server = v
			}

			return opts.render(cmd, out, func(w io.Writer) {
				row(w, "client", out.Client)
				row(w, "build date", out.BuildDate)
				row(w, "build commit", out.BuildCommit)
				if out.ServerError != "" {
					row(w, "server", "unavailable ("+out.ServerError+")")
				} else {
					row(w, "server", out.Server)
				}
			})
		},
	}
}

// NewVenuesCommand lists the yield venues and the asset each one accepts.
func NewVenuesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List yield venues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			venues, err := server.Venues(opts.ctx(cmd))
			if err != nil {
				return fmt.Errorf("list venues: %w", err)
			}

			return opts.render(cmd, venues, func(w io.Writer) {
				fmt.Fprintln(w, "VENUE\tNAME\tASSET")
				for _, v := range venues {
					fmt.Fprintf(w, "%s\t%s\t%s\n", v.Venue, v.Name, v.Asset)
				}
			})
		},
	}
}

// NewVenueContextCommand prints the account bundle a venue needs for asset.
// The owner defaults to the signer.
func NewVenueContextCommand(opts *RootOptions) *cobra.Command {
	var asset, owner string

	cmd := &cobra.Command{
		Use:   "venue-context <venue>",
		Short: "Show the accounts a venue uses for an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := opts.server()
			if err != nil {
				return err
			}

			assetKey, err := parseKey(asset, "asset")
			if err != nil {
				return err
			}
			ownerKey, err := parseOptionalKey(owner, "owner")
			if err != nil {
				return err
			}
			if ownerKey.IsZero() {
				ownerKey = server.Signer()
			}

			c, err := server.VenueContext(opts.ctx(cmd), args[0], assetKey, ownerKey)
			if err != nil {
				return fmt.Errorf("venue context: %w", err)
			}

			return opts.render(cmd, c, func(w io.Writer) { writeContext(w, c) })
		},
	}

	cmd.Flags().StringVar(&asset, "asset", "", "asset mint (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "token owner, defaults to the signer")
	_ = cmd.MarkFlagRequired("asset")

	return cmd
}

func writeContext(w io.Writer, c models.AdapterContext) {
	row(w, "venue", c.Venue)
	row(w, "asset", c.Asset)
	for _, name := range slices.Sorted(maps.Keys(c.Accounts)) {
		row(w, name, c.Accounts[name])
	}
	for i, ref := range c.Remaining {
		mode := "readonly"
		if ref.Writable {
			mode = "writable"
		}
		row(w, fmt.Sprintf("remaining[%d]", i), fmt.Sprintf("%s (%s)", ref.Address, mode))
	}
}

type balanceOutput struct {
	models.Balance
	Display string `json:"display"`
}

// NewBalanceCommand prints a holder's receipt token balance. The owner
// defaults to the signer.
func NewBalanceCommand(opts *RootOptions) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "balance <vault-id>",
		Short: "Show a receipt token balance",
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
			ownerKey, err := parseOptionalKey(owner, "owner")
			if err != nil {
				return err
			}
			if ownerKey.IsZero() {
				ownerKey = server.Signer()
			}

			b, err := server.Balance(opts.ctx(cmd), vaultID, ownerKey)
			if err != nil {
				return fmt.Errorf("balance: %w", err)
			}

			out := balanceOutput{Balance: b, Display: FormatAmount(b.Amount, b.Decimals)}
			return opts.render(cmd, out, func(w io.Writer) {
				row(w, "vault", b.Vault)
				row(w, "owner", b.Owner)
				row(w, "receipt mint", b.ReceiptMint)
				row(w, "account", b.Account)
				row(w, "amount", out.Display)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "receipt token holder, defaults to the signer")

	return cmd
}

// NewPositionCommand prints the vault position held in a venue. Without
// flags the venue and asset pinned by the vault are used.
func NewPositionCommand(opts *RootOptions) *cobra.Command {
	var venue, asset string

	cmd := &cobra.Command{
		Use:   "position <vault-id>",
		Short: "Show the vault position in a venue",
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
			assetKey, err := parseOptionalKey(asset, "asset")
			if err != nil {
				return err
			}

			p, err := server.Position(opts.ctx(cmd), vaultID, venue, assetKey)
			if err != nil {
				return fmt.Errorf("position: %w", err)
			}

			return opts.render(cmd, p, func(w io.Writer) {
				row(w, "venue", p.Venue)
				row(w, "asset", p.Asset)
				row(w, "share mint", p.ShareMint)
				row(w, "shares", p.Shares)
				row(w, "underlying", p.Underlying)
			})
		},
	}

	cmd.Flags().StringVar(&venue, "venue", "", "venue kind, defaults to the vault venue")
	cmd.Flags().StringVar(&asset, "asset", "", "asset mint, defaults to the vault asset")

	return cmd
}
