package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	token, err := GenerateToken("user-1", "sami@example.com", "CARRIER", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, role, err := ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, "CARRIER", role)
}

func TestExtractIDFromToken(t *testing.T) {
	token, err := GenerateToken("user-42", "ops@example.com", "OPERATOR", time.Minute)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestExtractClaims_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", "sami@example.com", "CARRIER", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaims(token)
	assert.Error(t, err)
}

func TestExtractClaims_Garbage(t *testing.T) {
	_, _, err := ExtractClaims("not.a.token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	a := HashToken("refresh-token")
	b := HashToken("refresh-token")
	c := HashToken("other-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
