// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-keeper/internal/service"
)

// errorStatuses is checked in order; the first sentinel matched by
// [errors.Is] decides the status. Anything unmatched is a 500.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenLifetimeTooLong, http.StatusUnauthorized},
	{service.ErrTokenReplayed, http.StatusUnauthorized},
	{service.ErrPayloadHashMismatch, http.StatusUnauthorized},
	{service.ErrUnauthorized, http.StatusForbidden},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidKeyParam, http.StatusBadRequest},
	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrInvalidAmount, http.StatusBadRequest},
	{service.ErrInvalidDecimals, http.StatusBadRequest},
	{service.ErrInvalidVaultID, http.StatusBadRequest},
	{service.ErrAddressMismatch, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},

	{service.ErrVaultNotFound, http.StatusNotFound},
	{service.ErrReceiptTokenNotFound, http.StatusNotFound},
	{service.ErrAlreadyExists, http.StatusConflict},
	{service.ErrInsufficientBalance, http.StatusConflict},
	{service.ErrWrongAsset, http.StatusUnprocessableEntity},
	{service.ErrWrongVenue, http.StatusUnprocessableEntity},
	{service.ErrNotSupported, http.StatusUnprocessableEntity},
	{service.ErrAdapterFailure, http.StatusBadGateway},
}

func statusFromError(err error) int {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage hides internal failures from callers.
func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
