package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// GetAll retrieves the full catalogue.
func (s *catalogService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product.
func (s *catalogService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Save creates or replaces a product together with its uploaded image. The
// image's filename, content type and bytes are stored verbatim.
func (s *catalogService) Save(ctx context.Context, p *model.Product, image *ImageUpload) error {
	if image != nil {
		p.ImageName = image.Name
		p.ImageType = image.ContentType
		p.ImageData = image.Data
	}
	if p.CreateDate.IsZero() {
		p.CreateDate = model.Today()
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("title", p.Title).Msg("failed to save product")
		return fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info().
		Int("product_id", p.ID).
		Str("title", p.Title).
		Int("image_bytes", len(p.ImageData)).
		Msg("product saved")

	return nil
}

// Delete removes a product after confirming it exists.
func (s *catalogService) Delete(ctx context.Context, id int) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to get product for delete")
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int("product_id", id).Msg("product deleted")
	return nil
}

// Search performs a case-insensitive keyword search.
func (s *catalogService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	products, err := s.productRepo.Search(ctx, keyword)
	if err != nil {
		s.logger.Error().Err(err).Str("keyword", keyword).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	s.logger.Debug().
		Str("keyword", keyword).
		Int("matches", len(products)).
		Msg("product search")

	return products, nil
}
