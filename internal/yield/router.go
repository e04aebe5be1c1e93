package yield

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-keeper/internal/venue"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

// Router selects the adapter of a venue kind.
type Router struct {
	adapters map[Kind]Adapter
	order    []Kind
}

// NewRouter registers adapters in the given order. A later adapter of the
// same kind replaces an earlier one.
func NewRouter(adapters ...Adapter) *Router {
	r := &Router{adapters: make(map[Kind]Adapter, len(adapters))}
	for _, a := range adapters {
		if _, ok := r.adapters[a.Kind()]; !ok {
			r.order = append(r.order, a.Kind())
		}
		r.adapters[a.Kind()] = a
	}

	return r
}

// NewVenueRouter returns a router over every built-in venue kind.
func NewVenueRouter(venues *venue.Venues) *Router {
	return NewRouter(NewLenderAdapter(venues), NewReservesAdapter(venues))
}

// Adapter returns the adapter for kind.
func (r *Router) Adapter(kind Kind) (Adapter, error) {
	a, ok := r.adapters[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", ErrNotSupported, ErrUnknownVenue, kind)
	}

	return a, nil
}

// Resolve selects the adapter for kind and resolves its context for asset.
// The result depends only on kind and asset, apart from the informational
// signer account.
func (r *Router) Resolve(ctx context.Context, kind Kind, asset, signer solana.PublicKey) (Adapter, Context, error) {
	a, err := r.Adapter(kind)
	if err != nil {
		return nil, nil, err
	}

	c, err := a.ResolveContext(ctx, asset, signer)
	if err != nil {
		return nil, nil, err
	}

	return a, c, nil
}

// Markets lists every configured venue market, grouped by kind in
// registration order.
func (r *Router) Markets() []models.VenueInfo {
	var infos []models.VenueInfo
	for _, kind := range r.order {
		infos = append(infos, r.adapters[kind].Markets()...)
	}

	return infos
}
