package config

import (
	"fmt"
	"time"
)

// ClientConfig configures the command-line client. Values come from the
// environment; the CLI overrides them with its persistent flags.
type ClientConfig struct {
	// ServerAddress is the base URL of the vault HTTP API.
	// Env: CLIENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"http://localhost:8080"`

	// RequestTimeout bounds every outbound request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// KeypairPath is a solana-keygen JSON keypair used to sign requests.
	// Env: CLIENT_KEYPAIR
	KeypairPath string `env:"KEYPAIR"`

	// TokenLifetime is the lifetime of each signed request token.
	// Env: CLIENT_TOKEN_LIFETIME
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"1m"`
}

// GetClientConfig reads the client configuration from CLIENT_* environment
// variables.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnvWithPrefix(cfg, "CLIENT_"); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	return cfg, nil
}

// Validate checks the client configuration after flags were applied.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}
