package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("password124", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_SaltDivergence(t *testing.T) {
	first, err := HashPassword("password123")
	assert.NoError(t, err)
	second, err := HashPassword("password123")
	assert.NoError(t, err)

	// Random salt: same input, different opaque values, both verifiable.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("password123", first))
	assert.True(t, CheckPassword("password123", second))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("password123", ""))
	assert.False(t, CheckPassword("password123", "not-a-bcrypt-hash"))
}
