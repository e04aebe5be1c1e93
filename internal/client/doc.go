// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the vault command-line client.
//
// [NewRootCommand] builds a cobra command tree on top of an
// [adapter.ServerAdapter]. Persistent flags override the CLIENT_* environment
// configuration; the adapter is created once per invocation, right before the
// selected command runs, and signs mutating requests with the keypair given
// by --keypair.
//
// Amounts are read and printed in display units of the vault receipt token
// (e.g. "12.5" with 6 decimals is 12500000 base units) unless --raw is set.
package client
