// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Every violation is reported.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if _, err := solana.PublicKeyFromBase58(cfg.App.ProgramID); err != nil {
		errs = append(errs, fmt.Errorf("%w: program id: %w", ErrInvalidAppConfigs, err))
	}
	if _, err := solana.PublicKeyFromBase58(cfg.App.Operator); err != nil {
		errs = append(errs, fmt.Errorf("%w: operator: %w", ErrInvalidAppConfigs, err))
	}
	if cfg.App.Version == "" {
		errs = append(errs, fmt.Errorf("%w: version is required", ErrInvalidAppConfigs))
	}

	if !supportedDSN(cfg.Storage.DB.DSN) {
		errs = append(errs, fmt.Errorf("%w: unsupported dsn %q", ErrInvalidStorageConfigs, cfg.Storage.DB.DSN))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs))
	}
	if cfg.Server.RequestTimeout <= 0 || cfg.Server.TokenMaxAge <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout and token max age must be positive", ErrInvalidServerConfigs))
	}

	if cfg.Workers.AccrualInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: negative accrual interval", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}

func supportedDSN(dsn string) bool {
	if dsn == DefaultDSN {
		return true
	}
	for _, prefix := range []string{"postgres://", "postgresql://", "sqlite://", "file:"} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}

	return false
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.TokenLifetime <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
