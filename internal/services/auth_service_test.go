package services

import (
	"testing"

	"github.com/heartwatch-app/backend/internal/dto"
	"github.com/heartwatch-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "  Alice@Example.COM ", Password: "hunter2secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	login, err := svc.Login(&dto.LoginRequest{Email: "ALICE@example.com", Password: "hunter2secret"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthService_RegisterRejectsEmptyFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "", Password: "secret"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Register(&dto.RegisterRequest{Email: "a@b.com", Password: ""})
	assert.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Register(&dto.RegisterRequest{Email: "   ", Password: "secret"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestAuthService_DuplicateEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "BOB@Example.com", Password: "other456"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_LoginFailsGenerically(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Email: "carol@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, wrongPassErr := svc.Login(&dto.LoginRequest{Email: "carol@example.com", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthService_LoginRevokesPriorSessions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	first, err := svc.Register(&dto.RegisterRequest{Email: "dave@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "dave@example.com", Password: "secret123"})
	require.NoError(t, err)

	// The refresh token from before the second login is dead.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{Email: "erin@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The presented token was single-use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	reg, err := svc.Register(&dto.RegisterRequest{Email: "frank@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: reg.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Logging out an unknown token is a no-op, not an error.
	assert.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: "never-issued"}))
}
