package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, errorMessage(err, status), status)
}

func decodeJSON(r *http.Request, v any) error {
	if !isJSON(r) {
		return fmt.Errorf("%w: unsupported content type %q", ErrInvalidJSON, r.Header.Get("Content-Type"))
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		// Negative, fractional and oversized amounts fail the uint64 decode.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "amount" {
			return fmt.Errorf("%w: got %s, want %s", service.ErrInvalidAmount, typeErr.Value, typeErr.Type)
		}
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return nil
}

// pathKey parses a base58 URL parameter.
func pathKey(r *http.Request, name string) (solana.PublicKey, error) {
	return parseKey(name, chi.URLParam(r, name))
}

// queryKey parses an optional base58 query parameter. Missing reads as the
// zero key.
func queryKey(r *http.Request, name string) (solana.PublicKey, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return solana.PublicKey{}, nil
	}
	return parseKey(name, raw)
}

func parseKey(name, raw string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w %s: %w", ErrInvalidKeyParam, name, err)
	}
	return key, nil
}

// bindVaultID puts the path vault id into a decoded body. A body that names
// another vault is rejected.
func bindVaultID(r *http.Request, bodyID *solana.PublicKey) error {
	pathID, err := pathKey(r, "vaultID")
	if err != nil {
		return err
	}
	if !bodyID.IsZero() && !bodyID.Equals(pathID) {
		return fmt.Errorf("%w vaultID: body names %s", ErrInvalidKeyParam, bodyID)
	}
	*bodyID = pathID

	return nil
}

// signer returns the authenticated signer stored by the auth middleware.
func signer(r *http.Request) (solana.PublicKey, error) {
	s, ok := utils.GetSignerFromContext(r.Context())
	if !ok {
		return solana.PublicKey{}, ErrEmptyAuthorizationHeader
	}
	return s, nil
}
