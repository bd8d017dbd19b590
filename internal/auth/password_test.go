package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)

	// same password hashes differently every time (random salt)
	hash2, err := HashPassword("p1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("p1")
	require.NoError(t, err)

	assert.True(t, CheckPassword("p1", hash))
	assert.False(t, CheckPassword("p2", hash))
	assert.False(t, CheckPassword("", hash))
}
