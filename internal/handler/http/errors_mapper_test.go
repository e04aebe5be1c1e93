package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
		{service.ErrTokenReplayed, http.StatusUnauthorized},
		{fmt.Errorf("outer: %w", service.ErrPayloadHashMismatch), http.StatusUnauthorized},
		{service.ErrUnauthorized, http.StatusForbidden},
		{fmt.Errorf("%w: bad", ErrInvalidJSON), http.StatusBadRequest},
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
		{service.ErrVaultNotFound, http.StatusNotFound},
		{service.ErrInsufficientBalance, http.StatusConflict},
		{service.ErrAlreadyExists, http.StatusConflict},
		{service.ErrWrongVenue, http.StatusUnprocessableEntity},
		{service.ErrNotSupported, http.StatusUnprocessableEntity},
		{service.ErrAdapterFailure, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestErrorMessage_HidesInternalErrors(t *testing.T) {
	err := errors.New("dsn postgres://user:secret@db")
	assert.Equal(t, "Internal Server Error", errorMessage(err, http.StatusInternalServerError))
	assert.Equal(t, service.ErrVaultNotFound.Error(), errorMessage(service.ErrVaultNotFound, http.StatusNotFound))
}
