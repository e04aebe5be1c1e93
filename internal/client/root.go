package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/adapter"
	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

const role = "vault-cli"

// AdapterFactory creates the server adapter once flags are parsed. A zero
// key yields a read-only adapter.
type AdapterFactory func(cfg config.ClientConfig, key solana.PrivateKey, logger *logger.Logger) (adapter.ServerAdapter, error)

// RootOptions holds the persistent flags and the adapter shared by all
// subcommands.
type RootOptions struct {
	Config  config.ClientConfig
	Verbose bool
	Output  string

	build      models.AppBuildInfo
	newAdapter AdapterFactory
	adapter    adapter.ServerAdapter
	logger     *logger.Logger
}

// NewRootCommand builds the vault CLI. cfg holds the environment defaults
// that the persistent flags override.
func NewRootCommand(cfg config.ClientConfig, newAdapter AdapterFactory, build models.AppBuildInfo) *cobra.Command {
	opts := &RootOptions{
		Config:     cfg,
		build:      build,
		newAdapter: newAdapter,
	}

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Command-line client of the vault server",
		Long: `vault talks to a vault server over HTTP.

Queries need no keypair. Creating vaults, depositing and withdrawing sign
each request with the solana-keygen keypair given by --keypair.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.connect,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Config.ServerAddress, "server", cfg.ServerAddress, "vault server base URL")
	flags.StringVar(&opts.Config.KeypairPath, "keypair", cfg.KeypairPath, "solana-keygen keypair file used to sign requests")
	flags.DurationVar(&opts.Config.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	flags.DurationVar(&opts.Config.TokenLifetime, "token-lifetime", cfg.TokenLifetime, "lifetime of each signed request token")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests to stderr")
	flags.StringVarP(&opts.Output, "output", "o", outputText, "output format: text or json")

	cmd.AddCommand(
		NewVersionCommand(opts),
		NewVenuesCommand(opts),
		NewVenueContextCommand(opts),
		NewVaultCommand(opts),
		NewDepositCommand(opts),
		NewWithdrawCommand(opts),
		NewBalanceCommand(opts),
		NewPositionCommand(opts),
	)

	return cmd
}

func (o *RootOptions) connect(cmd *cobra.Command, _ []string) error {
	if err := validOutput(o.Output); err != nil {
		return err
	}
	if err := o.Config.Validate(); err != nil {
		return fmt.Errorf("client config: %w", err)
	}

	var key solana.PrivateKey
	if o.Config.KeypairPath != "" {
		k, err := solana.PrivateKeyFromSolanaKeygenFile(o.Config.KeypairPath)
		if err != nil {
			return fmt.Errorf("load keypair %s: %w", o.Config.KeypairPath, err)
		}
		key = k
	}

	o.logger = logger.NewClientLogger(role, cmd.ErrOrStderr(), o.Verbose)
	a, err := o.newAdapter(o.Config, key, o.logger)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}
	o.adapter = a

	o.logger.Debug().
		Str("server", o.Config.ServerAddress).
		Str("signer", a.Signer().String()).
		Str("command", cmd.CommandPath()).
		Msg("adapter ready")

	return nil
}

func (o *RootOptions) server() (adapter.ServerAdapter, error) {
	if o.adapter == nil {
		return nil, ErrAdapterNotCreated
	}
	return o.adapter, nil
}

func (o *RootOptions) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseKey(s, what string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %s %q", ErrInvalidPublicKey, what, s)
	}
	return key, nil
}

// parseOptionalKey returns the zero key for an empty flag value.
func parseOptionalKey(s, what string) (solana.PublicKey, error) {
	if s == "" {
		return solana.PublicKey{}, nil
	}
	return parseKey(s, what)
}
