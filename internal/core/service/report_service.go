package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
)

type ReportService struct {
	repo   ports.ReportRepository
	logger zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

// SubmitReport records one report row. The target is not resolved.
func (s *ReportService) SubmitReport(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, error) {
	if input.ReporterID == "" {
		return nil, domain.ErrUnauthenticated
	}

	r := &domain.Report{
		ID:         uuid.NewString(),
		ReporterID: input.ReporterID,
		TargetID:   input.TargetID,
		Reason:     input.Reason,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Msg("failed to store report")
		return nil, err
	}

	s.logger.Info().Str("report_id", r.ID).Str("reporter_id", r.ReporterID).Str("target_id", r.TargetID).Msg("report submitted")
	return r, nil
}
