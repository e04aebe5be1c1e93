// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
)

// Server runs every configured transport until ctx is cancelled.
type Server interface {
	Run(ctx context.Context) error
}

// transport is one listening server.
type transport interface {
	name() string
	listen() (net.Listener, error)
	// serve blocks until shutdown is called.
	serve(lis net.Listener) error
	shutdown(ctx context.Context) error
}
