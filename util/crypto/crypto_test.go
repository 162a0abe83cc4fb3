package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash(hash, "secret123"))
	assert.False(t, CheckPasswordHash(hash, "secret124"))
	assert.False(t, CheckPasswordHash("not-a-hash", "secret123"))
}
