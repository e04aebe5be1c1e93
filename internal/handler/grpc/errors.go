// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import "errors"

var (
	errMissingToken = errors.New("missing `authorization` metadata")
	errInvalidToken = errors.New("invalid `authorization` metadata")
)
