package repository

import (
	"context"
	"errors"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProductRepository defines the interface for catalogue data access.
// Lookup methods return (nil, nil) when no row matches; the service layer
// decides what absence means.
type ProductRepository interface {
	// GetAll retrieves every product in the catalogue.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []int) ([]model.Product, error)

	// Save creates or replaces a product, image bytes included, and fills
	// in the generated ID on create.
	Save(ctx context.Context, p *model.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id int) error

	// Search performs a case-insensitive substring match across title,
	// description, brand and category.
	Search(ctx context.Context, keyword string) ([]model.Product, error)

	// UpdateStock sets a product's stock quantity. Each call is its own
	// write; the order workflow persists decrements line by line.
	UpdateStock(ctx context.Context, id, stockQuantity int) error
}

// UserRepository defines the interface for account and address data access.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID. Returns
	// model.ErrEmailExists when the email is already registered.
	Create(ctx context.Context, u *model.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateAddress inserts a new address for an existing user.
	CreateAddress(ctx context.Context, a *model.Address) error

	// GetAddressByID retrieves an address by ID.
	GetAddressByID(ctx context.Context, id int64) (*model.Address, error)

	// Delete removes a user; addresses cascade with the row.
	Delete(ctx context.Context, id int64) error
}

// CouponRepository defines the interface for coupon lookups and seeding.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its code.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// Upsert inserts or updates a coupon definition keyed by code.
	Upsert(ctx context.Context, c *model.Coupon) error
}

// OrderRepository defines the interface for order aggregate persistence.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in the generated ID. Returns model.ErrOrderTokenTaken when the
	// public token collides with an existing order.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided
	// transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetAll retrieves every order with its line items populated.
	GetAll(ctx context.Context) ([]model.Order, error)
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation, optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
