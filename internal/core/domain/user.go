package domain

import "errors"

// StatusActive is the status every account is created with.
const StatusActive = "active"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrUnauthenticated    = errors.New("authentication required")
)

// User models a marketplace account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Bio          *string // nil until the owner sets one
	Status       string
}

// BioText returns the bio or an empty string when none was set.
func (u *User) BioText() string {
	if u.Bio == nil {
		return ""
	}
	return *u.Bio
}
