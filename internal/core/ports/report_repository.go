package ports

import (
	"context"

	"github.com/tinymarket/market/internal/core/domain"
)

// ReportRepository is a write-only sink for user reports.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
}
