package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	"github.com/tourbook/tourbook-api/pkg/helpers"
)

// ImageInput is an optional uploaded profile image.
type ImageInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       *string
	DateOfBirth *time.Time
	Role        entity.Role
	Image       *ImageInput
}

// AuthResult is a session token plus the public view of its owner.
type AuthResult struct {
	Token string
	User  PublicUser
}

// Register creates an account: duplicate check, optional image upload,
// password hashing, verification-token issue and best-effort notification.
// A failed notification never rolls back the created account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if existing, err := s.Repo.GetByEmail(ctx, in.Email); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup by email: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicateEmail
	}

	var imageURL *string
	if in.Image != nil {
		url, err := s.Uploader.Upload(ctx, in.Image.Reader, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			s.Logger.WithError(err).Warn("profile image upload failed")
			return nil, ErrUpload
		}
		imageURL = &url
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verifyToken, err := helpers.GenerateToken(helpers.TokenByteLength)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}
	verifyExpires := helpers.ExpiryAfter(helpers.EmailVerificationTTL)

	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}

	u := &entity.User{
		Email:                    in.Email,
		PasswordHash:             hash,
		FirstName:                in.FirstName,
		LastName:                 in.LastName,
		Phone:                    in.Phone,
		DateOfBirth:              in.DateOfBirth,
		ProfileImageURL:          imageURL,
		Role:                     role,
		Status:                   entity.StatusActive,
		EmailVerificationToken:   &verifyToken,
		EmailVerificationExpires: &verifyExpires,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.Notifier.SendVerificationEmail(ctx, u, verifyToken); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("verification email failed")
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.indexUser(ctx, u)
	return &AuthResult{Token: token, User: PublicView(u)}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller; non-ACTIVE accounts
// fail with a distinct account-state error.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup by email: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	if u.Status != entity.StatusActive {
		return nil, ErrAccountInactive
	}

	now := time.Now()
	u, err = s.Repo.Update(ctx, u.ID, repo.UserUpdate{LastLoginAt: &now})
	if err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	token, _, err := s.JWT.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("login successful")
	return &AuthResult{Token: token, User: PublicView(u)}, nil
}

// ForgotPassword issues a fresh reset token, superseding any outstanding
// one, and emails the reset link. The notification is awaited here: a reset
// link the user never receives is a dead end, so delivery failure fails the
// whole flow.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup by email: %w", err)
	}

	resetToken, err := helpers.GenerateToken(helpers.TokenByteLength)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	resetExpires := helpers.ExpiryAfter(helpers.PasswordResetTTL)

	u, err = s.Repo.Update(ctx, u.ID, repo.UserUpdate{
		PasswordResetToken:   &resetToken,
		PasswordResetExpires: &resetExpires,
	})
	if err != nil {
		return fmt.Errorf("persist reset token: %w", err)
	}

	if err := s.Notifier.SendPasswordResetEmail(ctx, u, resetToken); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset email failed")
		return ErrNotification
	}
	return nil
}

// ResetPassword consumes a reset token: the password change and the nulling
// of both token fields are one atomic update, so the token cannot be
// replayed.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.Repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup by reset token: %w", err)
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.Repo.Update(ctx, u.ID, repo.UserUpdate{
		PasswordHash:       &hash,
		ClearPasswordReset: true,
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// VerifyEmail consumes a verification token, marking the account verified
// and clearing the token pair in the same update.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.Repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup by verification token: %w", err)
	}

	verified := true
	_, err = s.Repo.Update(ctx, u.ID, repo.UserUpdate{
		IsEmailVerified:        &verified,
		ClearEmailVerification: true,
	})
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}
