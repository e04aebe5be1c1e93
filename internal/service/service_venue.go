package service

import (
	"context"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/yield"
	"github.com/MKhiriev/go-vault-keeper/models"
	"github.com/gagliardetto/solana-go"
)

type venueService struct {
	router *yield.Router

	logger *logger.Logger
}

// NewVenueService returns the read-only venue catalogue backed by router.
func NewVenueService(router *yield.Router, logger *logger.Logger) VenueService {
	return &venueService{router: router, logger: logger}
}

func (s *venueService) Venues(_ context.Context) []models.VenueInfo {
	return s.router.Markets()
}

// Context resolves the account bundle a caller has to present for venue and
// asset. A zero signer leaves out the signer token account.
func (s *venueService) Context(ctx context.Context, venue string, asset, signer solana.PublicKey) (models.AdapterContext, error) {
	_, yc, err := s.router.Resolve(ctx, yield.Kind(venue), asset, signer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("venue", venue).Str("asset", asset.String()).Msg("venue context not resolved")
		return models.AdapterContext{}, classify(err)
	}

	return yc.Model(), nil
}
