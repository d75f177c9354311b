package services

import (
	"testing"

	"homigo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_HashesAndLowercases(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register("Asha", "Asha@Example.COM", "secret123", "")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, models.RoleGuest, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register("", "a@b.com", "pw", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register("A", "not-an-email", "pw", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register("A", "a@b.com", "pw", "admin")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register("Asha", "asha@example.com", "secret123", models.RoleHost)
	require.NoError(t, err)

	_, err = svc.Register("Other", "asha@example.com", "different", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	registered, err := svc.Register("Asha", "asha@example.com", "secret123", "")
	require.NoError(t, err)

	user, err := svc.Authenticate("ASHA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown account looks the same as a bad password.
	_, err = svc.Authenticate("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
