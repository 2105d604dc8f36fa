package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/tinymarket/market/internal/core/domain"
)

// handle is what the repositories need from *sql.DB: plain statements plus
// the ability to open a transaction.
type handle interface {
	DBTX
	Beginner
}

type UserRepository struct {
	db handle
}

func NewUserRepository(db handle) *UserRepository {
	return &UserRepository{db: db}
}

// Create checks the username and inserts the row in one transaction.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM user WHERE username = ?`, user.Username).Scan(&one)
		switch {
		case err == nil:
			return domain.ErrUserExists
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("find user: %w", err)
		}

		status := user.Status
		if status == "" {
			status = domain.StatusActive
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user (id, username, password, bio, status) VALUES (?, ?, ?, ?, ?)`,
			user.ID, user.Username, user.PasswordHash, user.Bio, status)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserExists
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT id, username, password, bio, status FROM user WHERE username = ?`, username)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT id, username, password, bio, status FROM user WHERE id = ?`, id)
}

// UpdateBio overwrites the bio. Updating a missing id is not an error.
func (r *UserRepository) UpdateBio(ctx context.Context, id, bio string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `UPDATE user SET bio = ? WHERE id = ?`, bio, id); err != nil {
		return fmt.Errorf("update bio: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		u      domain.User
		bio    sql.NullString
		status sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &bio, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	u.Status = status.String
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
