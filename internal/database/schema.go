package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the full relational schema. Address rows cascade with their
// user, line items cascade with their order; both are aggregate-root
// relationships, not incidental ORM behaviour.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		brand VARCHAR(255) NOT NULL DEFAULT '',
		price NUMERIC(10, 2) NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		release_date DATE,
		create_date DATE,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		image_name VARCHAR(255) NOT NULL DEFAULT '',
		image_type VARCHAR(100) NOT NULL DEFAULT '',
		image_data BYTEA
	);

	CREATE TABLE IF NOT EXISTS app_users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		password VARCHAR(255) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		street VARCHAR(255) NOT NULL,
		city VARCHAR(100) NOT NULL,
		zip_code VARCHAR(20) NOT NULL,
		user_id BIGINT NOT NULL REFERENCES app_users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS coupons (
		id BIGSERIAL PRIMARY KEY,
		code VARCHAR(50) NOT NULL UNIQUE,
		discount_percentage NUMERIC(5, 2) NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		expiry_date DATE
	);

	CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		order_id VARCHAR(8) NOT NULL UNIQUE,
		customer_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL,
		order_date DATE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		total_price NUMERIC(10, 2) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_addresses_user_id ON addresses(user_id);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
	CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id);
`

// Migrate applies the schema. All statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info().Msg("database schema applied")

	return nil
}
