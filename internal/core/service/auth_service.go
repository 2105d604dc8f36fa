package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinymarket/market/internal/core/domain"
	"github.com/tinymarket/market/internal/core/ports"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	limiter ports.LoginLimiter
	log     zerolog.Logger
	cost    int
}

func NewAuthService(repo ports.UserRepository, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	if limiter == nil {
		limiter = NoopLimiter{}
	}
	return &AuthService{repo: repo, limiter: limiter, log: log, cost: bcrypt.DefaultCost}
}

// Register creates an active account with a bcrypt-hashed password.
// Usernames are compared exactly; a taken name yields domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if len(password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Status:       domain.StatusActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")
	return user, nil
}

// Login verifies the password and returns the account on success. Unknown
// usernames and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, allowing attempt")
	} else if !allowed {
		s.log.Debug().Str("username", username).Msg("login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if ferr := s.limiter.Fail(ctx, username); ferr != nil {
			s.log.Warn().Err(ferr).Str("username", username).Msg("failed to record login failure")
		}
		s.log.Debug().Str("username", username).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	if rerr := s.limiter.Reset(ctx, username); rerr != nil {
		s.log.Warn().Err(rerr).Str("username", username).Msg("failed to reset login failures")
	}
	s.log.Debug().Str("username", user.Username).Msg("user logged in")
	return user, nil
}

// NoopLimiter never throttles. It is used when no Redis is configured.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (NoopLimiter) Fail(context.Context, string) error          { return nil }
func (NoopLimiter) Reset(context.Context, string) error         { return nil }
