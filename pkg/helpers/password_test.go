package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "Str0ng!Pass"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	a, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)
	b, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_Cost(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordHashCost, cost)
}

func TestCompareHashAndPassword_MalformedDigest(t *testing.T) {
	assert.False(t, CompareHashAndPassword("not-a-bcrypt-digest", "anything"))
	assert.False(t, CompareHashAndPassword("", "anything"))
}
