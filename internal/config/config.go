// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// StructuredConfig is the top-level configuration container for the vault
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, an optional JSON
// file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the program identity, the operator key and the version.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the custody ledger backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and request limits for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Venues points at the venue registry.
	Venues Venues `envPrefix:"VENUES_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the identity of the vault program.
type App struct {
	// ProgramID is the base58 program address every vault and receipt mint
	// address is derived under.
	// Env: APP_PROGRAM_ID
	ProgramID string `env:"PROGRAM_ID"`

	// Operator is the base58 public key allowed to create vaults and
	// receipt tokens.
	// Env: APP_OPERATOR
	Operator string `env:"OPERATOR"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// ProgramKey returns the parsed program address. The config must be
// validated first.
func (a App) ProgramKey() solana.PublicKey {
	key, _ := solana.PublicKeyFromBase58(a.ProgramID)
	return key
}

// OperatorKey returns the parsed operator key. The config must be validated
// first.
func (a App) OperatorKey() solana.PublicKey {
	key, _ := solana.PublicKeyFromBase58(a.Operator)
	return key
}

// Storage groups the ledger backend settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB selects the ledger backend by DSN:
//   - "memory" keeps everything in process;
//   - "postgres://..." or "postgresql://..." uses PostgreSQL through pgx;
//   - "sqlite://path" or "file:path" uses SQLite.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC server. Empty disables gRPC.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenMaxAge is the longest lifetime a signer token may declare.
	// Env: SERVER_TOKEN_MAX_AGE
	TokenMaxAge time.Duration `env:"TOKEN_MAX_AGE"`
}

// Venues holds the location of the venue registry.
type Venues struct {
	// RegistryPath is a YAML venue registry. Empty means the built-in USDC
	// registry.
	// Env: VENUES_REGISTRY_PATH
	RegistryPath string `env:"REGISTRY_PATH"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// AccrualInterval is how often venue interest is brought up to date.
	// Env: WORKERS_ACCRUAL_INTERVAL
	AccrualInterval time.Duration `env:"ACCRUAL_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration.
// Sources are merged with mergo, so for every field the first source that
// sets it wins:
//  1. Environment variables
//  2. Command-line flags from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
