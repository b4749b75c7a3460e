package service

import (
	"context"

	"storefront/internal/model"
)

// ImageUpload carries the decoded file part of a multipart product request:
// original filename, declared content type, raw bytes.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// CatalogService defines operations for product management.
type CatalogService interface {
	// GetAll retrieves the full catalogue.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product, model.ErrProductNotFound when absent.
	GetByID(ctx context.Context, id int) (*model.Product, error)

	// Save creates or replaces a product together with its uploaded image.
	Save(ctx context.Context, p *model.Product, image *ImageUpload) error

	// Delete removes a product, model.ErrProductNotFound when absent.
	Delete(ctx context.Context, id int) error

	// Search performs a case-insensitive keyword search across title,
	// description, brand and category.
	Search(ctx context.Context, keyword string) ([]model.Product, error)
}

// AccountService defines operations for user registration, login and
// address management.
type AccountService interface {
	// Register creates a new account, model.ErrEmailExists on duplicates.
	Register(ctx context.Context, req *model.AuthRequest) (*model.User, error)

	// Login authenticates by email and password,
	// model.ErrInvalidCredentials otherwise.
	Login(ctx context.Context, email, password string) (*model.User, error)

	// AddAddress attaches an address to an existing user.
	AddAddress(ctx context.Context, userID int64, addr *model.Address) error
}

// OrderService defines operations for order placement and retrieval.
type OrderService interface {
	// PlaceOrder runs the full placement workflow: user, address and stock
	// validation, per-line stock decrement, coupon application, aggregate
	// persistence.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetAll retrieves every order as a public summary.
	GetAll(ctx context.Context) ([]model.OrderResponse, error)

	// CheckCoupon verifies a coupon code is known, active and unexpired.
	CheckCoupon(ctx context.Context, code string) (*model.Coupon, error)
}
