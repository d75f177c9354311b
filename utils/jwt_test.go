package utils

import (
	"testing"

	"homigo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	user := &models.User{ID: 42, Role: models.RoleHost}

	token, err := GenerateToken(secret, user)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleHost, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("one"), &models.User{ID: 1})
	require.NoError(t, err)

	_, err = ParseToken([]byte("two"), token)
	assert.Error(t, err)
}
