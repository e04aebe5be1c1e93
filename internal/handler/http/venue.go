package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) venues(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.VenueService.Venues(r.Context()), http.StatusOK)
}

// venueContext resolves the account bundle of {venue} for ?asset=. With
// ?owner= the signer-specific accounts are included.
func (h *Handler) venueContext(w http.ResponseWriter, r *http.Request) {
	asset, err := queryKey(r, "asset")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if asset.IsZero() {
		h.writeError(w, r, fmt.Errorf("%w asset: missing", ErrInvalidKeyParam))
		return
	}
	owner, err := queryKey(r, "owner")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	yc, err := h.services.VenueService.Context(r.Context(), chi.URLParam(r, "venue"), asset, owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, yc, http.StatusOK)
}
