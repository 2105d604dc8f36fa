package sqlite

import (
	"context"
	"fmt"

	"github.com/tinymarket/market/internal/core/domain"
)

type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report (id, reporter_id, target_id, reason) VALUES (?, ?, ?, ?)`,
		rep.ID, rep.ReporterID, rep.TargetID, rep.Reason)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}
