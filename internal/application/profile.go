package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	repo "github.com/tourbook/tourbook-api/internal/domain/repository"
	"github.com/tourbook/tourbook-api/pkg/helpers"
)

// GetProfile returns the caller's public view.
func (s *Service) GetProfile(ctx context.Context, id Identity) (*PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup by id: %w", err)
	}
	pv := PublicView(u)
	return &pv, nil
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	DateOfBirth *time.Time
	Image       *ImageInput
}

// UpdateProfile applies only the supplied fields; absent fields are left
// untouched. The image upload runs before any persistence so a failed
// upload rejects the whole update.
func (s *Service) UpdateProfile(ctx context.Context, id Identity, in UpdateProfileInput) (*PublicUser, error) {
	upd := repo.UserUpdate{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
	}

	if in.Image != nil {
		url, err := s.Uploader.Upload(ctx, in.Image.Reader, in.Image.Filename, in.Image.ContentType)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", id.UserID).Warn("profile image upload failed")
			return nil, ErrUpload
		}
		upd.ProfileImageURL = &url
	}

	u, err := s.Repo.Update(ctx, id.UserID, upd)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.indexUser(ctx, u)
	pv := PublicView(u)
	return &pv, nil
}

// UpdatePassword changes the caller's password after verifying the current
// one. A failed current-password check leaves the stored hash untouched.
func (s *Service) UpdatePassword(ctx context.Context, id Identity, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup by id: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, currentPassword) {
		return ErrWrongPassword
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.Repo.Update(ctx, u.ID, repo.UserUpdate{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
