package ports

import (
	"context"

	"github.com/tinymarket/market/internal/core/domain"
)

// CreateProductInput carries the listing form as submitted.
type CreateProductInput struct {
	Title       string
	Description string
	Price       string
	SellerID    string
}

// ProductService defines use-case operations for listings.
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*domain.Product, error)
}

// ProfileService reads and edits the caller's own account.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateBio(ctx context.Context, userID, bio string) error
}

// SubmitReportInput carries the report form as submitted.
type SubmitReportInput struct {
	ReporterID string
	TargetID   string
	Reason     string
}

// ReportService files reports.
type ReportService interface {
	SubmitReport(ctx context.Context, input SubmitReportInput) (*domain.Report, error)
}
