package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, VerifyPassword(hash, "s3cret-pass"))
	assert.Error(t, VerifyPassword(hash, "wrong-pass"))
}

func TestVerifyPassword_EmptyStoredHash(t *testing.T) {
	assert.Error(t, VerifyPassword("", "anything"))
	assert.Error(t, VerifyPassword("   ", "anything"))
}
