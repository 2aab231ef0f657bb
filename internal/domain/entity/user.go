package entity

import (
	"time"
)

// Role is the authorization role assigned to an account at creation.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleGuide  Role = "GUIDE"
	RoleAdmin  Role = "ADMIN"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleClient, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// Status is the account state. Only ACTIVE accounts may authenticate.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusInactive  Status = "INACTIVE"
)

// User is the aggregate root for the accounts domain.
// PasswordHash holds a bcrypt digest and is never serialized in responses;
// the verification/reset token pairs are nulled together on consumption.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Phone           *string
	DateOfBirth     *time.Time
	ProfileImageURL *string
	Role            Role
	Status          Status
	IsEmailVerified bool

	EmailVerificationToken   *string
	EmailVerificationExpires *time.Time
	PasswordResetToken       *string
	PasswordResetExpires     *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
