package promo

import (
	"context"
	"fmt"

	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder loads coupon definitions through a Loader and upserts them into
// the promotions store.
type Seeder struct {
	loader     Loader
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewSeeder creates a new coupon seeder.
func NewSeeder(loader Loader, couponRepo repository.CouponRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:     loader,
		couponRepo: couponRepo,
		logger:     logger.With().Str("component", "coupon-seeder").Logger(),
	}
}

// Seed reads the coupon file at location and upserts every definition.
// Re-running with the same file is a no-op apart from refreshing rows.
func (s *Seeder) Seed(ctx context.Context, location string) error {
	coupons, err := s.loader.Load(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to load coupon definitions: %w", err)
	}

	for i := range coupons {
		if err := s.couponRepo.Upsert(ctx, &coupons[i]); err != nil {
			return fmt.Errorf("failed to seed coupon %s: %w", coupons[i].Code, err)
		}
	}

	s.logger.Info().
		Int("coupon_count", len(coupons)).
		Str("source", location).
		Msg("coupons seeded")

	return nil
}
