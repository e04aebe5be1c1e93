package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/metrics", h.metrics.ServeHTTP)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/venues", h.venues)
		r.Get("/api/venues/{venue}/context", h.venueContext)
		r.Get("/api/vaults/{vaultID}", h.getVault)
		r.Get("/api/vaults/{vaultID}/balances/{owner}", h.balance)
		r.Get("/api/vaults/{vaultID}/position", h.position)
	})

	// signed routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/vaults", h.createVault)
		r.Post("/api/vaults/{vaultID}/receipt-token", h.createReceiptToken)
		r.Post("/api/vaults/{vaultID}/deposit", h.deposit)
		r.Post("/api/vaults/{vaultID}/withdraw", h.withdraw)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}

// notFound also answers unsupported methods so they do not reveal which
// routes exist.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
