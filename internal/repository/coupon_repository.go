package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// GetByCode retrieves a coupon by its code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT id, code, discount_percentage, active, expiry_date
		FROM coupons
		WHERE code = $1
	`

	var c model.Coupon
	var expiry *time.Time
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.Code, &c.DiscountPercentage, &c.Active, &expiry,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	if expiry != nil {
		d := model.NewDate(*expiry)
		c.ExpiryDate = &d
	}

	return &c, nil
}

// Upsert inserts or updates a coupon definition keyed by code. Used by the
// startup seeder; there is no coupon management API.
func (r *couponRepository) Upsert(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (code, discount_percentage, active, expiry_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE SET
			discount_percentage = EXCLUDED.discount_percentage,
			active = EXCLUDED.active,
			expiry_date = EXCLUDED.expiry_date
		RETURNING id
	`

	var expiry *time.Time
	if c.ExpiryDate != nil {
		expiry = &c.ExpiryDate.Time
	}

	err := r.pool.QueryRow(ctx, query, c.Code, c.DiscountPercentage, c.Active, expiry).Scan(&c.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("code", c.Code).Msg("failed to upsert coupon")
		return fmt.Errorf("failed to upsert coupon: %w", err)
	}

	r.logger.Debug().Str("code", c.Code).Msg("coupon upserted")
	return nil
}
