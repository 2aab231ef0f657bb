package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is the bcrypt cost used for all stored credentials.
const PasswordHashCost = 12

// HashPassword hashes the plain text password using bcrypt with a per-call
// random salt embedded in the digest.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// Malformed digests compare as false, never as an error.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
