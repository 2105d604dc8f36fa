package sqlite

import (
	"context"
	"fmt"

	"github.com/tinymarket/market/internal/core/domain"
)

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO product (id, title, description, price, seller_id) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Price, p.SellerID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// List returns every product in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT id, title, description, price, seller_id FROM product ORDER BY rowid`)
}

// SearchByTitle wraps query in % wildcards and matches it against the title
// with LIKE, so case folding follows SQLite's LIKE rules.
func (r *ProductRepository) SearchByTitle(ctx context.Context, query string) ([]*domain.Product, error) {
	return r.query(ctx,
		`SELECT id, title, description, price, seller_id FROM product WHERE title LIKE ? ORDER BY rowid`,
		"%"+query+"%")
}

func (r *ProductRepository) query(ctx context.Context, q string, args ...any) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.SellerID); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
