package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	require.NotEqual(t, "sup3rsecret", hash)

	assert.True(t, ComparePassword("sup3rsecret", hash))
	assert.False(t, ComparePassword("wrong", hash))
}
