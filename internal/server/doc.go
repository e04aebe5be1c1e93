// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's transport servers.
//
// It binds the HTTP and gRPC listeners, runs them next to the background
// workers and shuts everything down gracefully once the run context is
// cancelled.
package server
