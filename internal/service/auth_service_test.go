package service

import (
	"errors"
	"testing"

	"go-farm-ledger/internal/apperr"
	"go-farm-ledger/internal/model"
	"go-farm-ledger/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username, password string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLoginAndValidate(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(repository.NewUserRepo(db), nil)

	seedUser(t, db, "mazen", "secret123")

	resp, err := auth.Login("mazen", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "mazen", resp.User.Username)

	validated, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "mazen", validated.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(repository.NewUserRepo(db), nil)

	seedUser(t, db, "mazen", "secret123")

	_, err := auth.Login("mazen", "wrong")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = auth.Login("nobody", "secret123")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestLoginInactiveUser(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(repository.NewUserRepo(db), nil)

	user := seedUser(t, db, "mazen", "secret123")
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err := auth.Login("mazen", "secret123")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSecondLoginInvalidatesFirstToken(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(repository.NewUserRepo(db), nil)

	seedUser(t, db, "mazen", "secret123")

	first, err := auth.Login("mazen", "secret123")
	require.NoError(t, err)

	_, err = auth.Login("mazen", "secret123")
	require.NoError(t, err)

	// The earlier session's token version no longer matches the DB.
	_, err = auth.ValidateToken(first.Token)
	assert.Error(t, err)
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(repository.NewUserRepo(db), nil)

	seedUser(t, db, "mazen", "secret123")

	assert.Error(t, auth.ResetPassword("mazen", "wrong", "newpass123"))
	assert.Error(t, auth.ResetPassword("mazen", "secret123", "tiny"))

	require.NoError(t, auth.ResetPassword("mazen", "secret123", "newpass123"))
	_, err := auth.Login("mazen", "newpass123")
	assert.NoError(t, err)
}
