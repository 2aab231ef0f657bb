package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups that match no user.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned by Create when the email is already taken.
	ErrDuplicate = errors.New("email already registered")
)

// UserUpdate describes a partial update of a single user record. Nil pointer
// fields are left untouched. The Clear* flags null the corresponding token
// pair in the same statement as any value changes, so token consumption is a
// single atomic write.
type UserUpdate struct {
	FirstName       *string
	LastName        *string
	Phone           *string
	DateOfBirth     *time.Time
	ProfileImageURL *string
	PasswordHash    *string
	IsEmailVerified *bool
	LastLoginAt     *time.Time

	EmailVerificationToken   *string
	EmailVerificationExpires *time.Time
	PasswordResetToken       *string
	PasswordResetExpires     *time.Time

	ClearEmailVerification bool
	ClearPasswordReset     bool
}

// UserRepository defines persistence operations over the User entity.
// Token lookups filter out expired tokens at the store so callers only
// ever see a consumable match.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*entity.User, error)
}
