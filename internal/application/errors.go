package application

import "errors"

// Service-level failure taxonomy. Credential failures are intentionally
// generic so callers cannot learn which field was wrong; token failures are
// surfaced to end users as a single "invalid or expired" message.
var (
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is suspended or inactive")
	ErrUserNotFound       = errors.New("no user found with this email")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUpload             = errors.New("error uploading profile image")
	ErrNotification       = errors.New("error sending email")
)
