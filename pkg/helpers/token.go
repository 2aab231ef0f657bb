package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// TokenByteLength is the entropy of a verification/reset token in bytes.
const TokenByteLength = 32

// Canonical expiry windows for the two out-of-band token purposes.
const (
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = 10 * time.Minute
)

// GenerateToken returns a hex-encoded token of n random bytes from the
// crypto source.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		n = TokenByteLength
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ExpiryAfter returns the wall-clock instant at which a token issued now
// stops being valid.
func ExpiryAfter(d time.Duration) time.Time {
	return time.Now().Add(d)
}
