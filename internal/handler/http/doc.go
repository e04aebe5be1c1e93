// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the REST transport of the vault program.
//
// Vault creation, receipt token creation, deposits and withdrawals require a
// signer token in the Authorization header; queries, the venue registry, the
// version and the Prometheus metrics are public. Trace ids, access logging
// and gzip are applied to every route before requests reach the services.
package http
