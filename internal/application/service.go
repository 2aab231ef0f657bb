package application

import (
	"context"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	"github.com/tourbook/tourbook-api/pkg/helpers"
)

// Notifier delivers account emails. Verification mail is best-effort in the
// register flow; reset mail failure aborts the forgot-password flow.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, u *entity.User, token string) error
	SendPasswordResetEmail(ctx context.Context, u *entity.User, token string) error
}

// Uploader stores a profile image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
}

// Identity is the authenticated caller, produced by session-token
// verification and passed explicitly into service operations.
type Identity struct {
	UserID string
	Email  string
	Role   entity.Role
}

// Service orchestrates the account lifecycle: registration, login,
// verify/reset token flows and authenticated profile mutation. All durable
// state lives in the repository; the service holds none between calls.
type Service struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	Notifier     Notifier
	Uploader     Uploader
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, notifier Notifier, uploader Uploader, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         r,
		JWT:          jwt,
		Notifier:     notifier,
		Uploader:     uploader,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

// PublicUser is the subset of User attributes safe to return to a client.
// Secrets and raw tokens never appear here.
type PublicUser struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Phone           *string    `json:"phone,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	ProfileImageURL *string    `json:"profileImage,omitempty"`
	Role            entity.Role   `json:"role"`
	Status          entity.Status `json:"status"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// PublicView maps a stored user to its public representation.
func PublicView(u *entity.User) PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		DateOfBirth:     u.DateOfBirth,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		Status:          u.Status,
		IsEmailVerified: u.IsEmailVerified,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}
