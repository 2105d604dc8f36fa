package ports

import (
	"context"

	"github.com/tinymarket/market/internal/core/domain"
)

// ProductRepository defines persistence operations for listings.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	List(ctx context.Context) ([]*domain.Product, error)
	// SearchByTitle returns products whose title contains query.
	SearchByTitle(ctx context.Context, query string) ([]*domain.Product, error)
}
