package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// CreateProduct stores a listing attributed to input.SellerID. Fields are kept
// exactly as submitted.
func (s *ProductService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.SellerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	p := &domain.Product{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		SellerID:    input.SellerID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Str("seller_id", p.SellerID).Msg("product created")
	return p, nil
}

// ListProducts returns every listing, unpaginated.
func (s *ProductService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// SearchProducts returns listings whose title contains query. An empty query
// matches everything.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.repo.SearchByTitle(ctx, query)
}
