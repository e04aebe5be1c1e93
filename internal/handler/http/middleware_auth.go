package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
)

// auth authenticates the signer of a request.
//
// The bearer token must be signed by the key in its subject, be unused, not
// outlive the configured maximum age, and carry the hash of the exact body.
// The body is restored for the next handler and the signer is stored under
// [utils.SignerCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			h.writeError(w, r, err)
			return
		}

		body, err := readBody(w, r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		signer, err := h.services.AuthService.Authenticate(r.Context(), tokenString, body)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := utils.WithSigner(r.Context(), signer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token of "Authorization: Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}

// readBody reads the whole body and puts it back on r.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/json")
}
