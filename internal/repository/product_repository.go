package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, title, description, brand, price, category,
	release_date, create_date, available, stock_quantity,
	image_name, image_type, image_data`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Brand, &p.Price, &p.Category,
		&p.ReleaseDate.Time, &p.CreateDate.Time, &p.Available, &p.StockQuantity,
		&p.ImageName, &p.ImageType, &p.ImageData,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves every product in the catalogue.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ANY($1) ORDER BY id`, productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return r.collect(rows)
}

// Save creates or replaces a product. A zero ID inserts a fresh row; a
// non-zero ID replaces the existing row wholesale, image bytes included.
func (r *productRepository) Save(ctx context.Context, p *model.Product) error {
	if p.ID == 0 {
		query := `
			INSERT INTO products (title, description, brand, price, category,
				release_date, create_date, available, stock_quantity,
				image_name, image_type, image_data)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		`
		err := r.pool.QueryRow(ctx, query,
			p.Title, p.Description, p.Brand, p.Price, p.Category,
			p.ReleaseDate.Time, p.CreateDate.Time, p.Available, p.StockQuantity,
			p.ImageName, p.ImageType, p.ImageData,
		).Scan(&p.ID)
		if err != nil {
			r.logger.Error().Err(err).Str("title", p.Title).Msg("failed to insert product")
			return fmt.Errorf("failed to insert product: %w", err)
		}

		r.logger.Debug().Int("product_id", p.ID).Msg("product created")
		return nil
	}

	query := `
		INSERT INTO products (id, title, description, brand, price, category,
			release_date, create_date, available, stock_quantity,
			image_name, image_type, image_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			brand = EXCLUDED.brand,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			release_date = EXCLUDED.release_date,
			create_date = EXCLUDED.create_date,
			available = EXCLUDED.available,
			stock_quantity = EXCLUDED.stock_quantity,
			image_name = EXCLUDED.image_name,
			image_type = EXCLUDED.image_type,
			image_data = EXCLUDED.image_data
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Brand, p.Price, p.Category,
		p.ReleaseDate.Time, p.CreateDate.Time, p.Available, p.StockQuantity,
		p.ImageName, p.ImageType, p.ImageData,
	)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", p.ID).Msg("failed to save product")
		return fmt.Errorf("failed to save product: %w", err)
	}

	r.logger.Debug().Int("product_id", p.ID).Msg("product saved")
	return nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Int("product_id", id).Msg("product deleted")
	return nil
}

// Search performs a case-insensitive substring match across title,
// description, brand and category. The OR-union query collapses duplicates
// by row identity.
func (r *productRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE title ILIKE '%%' || $1 || '%%'
			OR description ILIKE '%%' || $1 || '%%'
			OR brand ILIKE '%%' || $1 || '%%'
			OR category ILIKE '%%' || $1 || '%%'
		ORDER BY id
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, keyword)
	if err != nil {
		r.logger.Error().Err(err).Str("keyword", keyword).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return r.collect(rows)
}

// UpdateStock sets a product's stock quantity.
func (r *productRepository) UpdateStock(ctx context.Context, id, stockQuantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET stock_quantity = $2 WHERE id = $1`,
		id, stockQuantity,
	)
	if err != nil {
		r.logger.Error().Err(err).Int("product_id", id).Msg("failed to update stock")
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Int("product_id", id).
		Int("stock_quantity", stockQuantity).
		Msg("stock updated")

	return nil
}
