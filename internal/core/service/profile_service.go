package service

import (
	"context"

	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
)

type ProfileService struct {
	repo ports.UserRepository
}

func NewProfileService(repo ports.UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, userID)
}

// UpdateBio overwrites the bio. Concurrent edits are last-writer-wins.
func (s *ProfileService) UpdateBio(ctx context.Context, userID, bio string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return s.repo.UpdateBio(ctx, userID, bio)
}
