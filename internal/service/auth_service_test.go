package service

import (
	"testing"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.InitJWT("test-access", "test-refresh", 15*time.Minute, 24*time.Hour)
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: hash}
	require.NoError(t, repo.CreateUser(user))
	return user
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "drsmith", "hunter2hunter2")
	svc := NewAuthService(userRepo, &fakeEmployeeRepo{}, &fakeAuditRepo{})

	t.Run("valid credentials", func(t *testing.T) {
		pair, user, err := svc.Login(LoginRequest{Username: "drsmith", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "drsmith", user.Username)

		claims, err := utils.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	// Unknown usernames and wrong passwords must produce the same error.
	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(LoginRequest{Username: "drsmith", Password: "wrong"})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "invalid username or password", ve.Fields["credentials"])
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, err := svc.Login(LoginRequest{Username: "nobody", Password: "whatever"})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "invalid username or password", ve.Fields["credentials"])
	})
}

func TestRefresh_RotatesToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "drsmith", "hunter2hunter2")
	svc := NewAuthService(userRepo, &fakeEmployeeRepo{}, &fakeAuditRepo{})

	pair, _, err := svc.Login(LoginRequest{Username: "drsmith", Password: "hunter2hunter2"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old token is revoked and cannot be replayed.
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The new one still works.
	_, err = svc.Refresh(rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "drsmith", "hunter2hunter2")
	svc := NewAuthService(userRepo, &fakeEmployeeRepo{}, &fakeAuditRepo{})

	raw, err := utils.GenerateRefreshToken()
	require.NoError(t, err)
	require.NoError(t, userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(raw),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	_, err = svc.Refresh(raw)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLogout_RevokesToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedUser(t, userRepo, "drsmith", "hunter2hunter2")
	svc := NewAuthService(userRepo, &fakeEmployeeRepo{}, &fakeAuditRepo{})

	pair, _, err := svc.Login(LoginRequest{Username: "drsmith", Password: "hunter2hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(pair.RefreshToken))
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "drsmith", "hunter2hunter2")
	hospitalID := uint(5)
	employeeRepo := &fakeEmployeeRepo{employees: map[uint]*models.Employee{
		10: {ID: 10, UserID: user.ID, HospitalID: &hospitalID, Role: models.RoleDoctor},
	}}
	svc := NewAuthService(userRepo, employeeRepo, &fakeAuditRepo{})

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.User.ID)
	require.NotNil(t, profile.Employee)
	assert.Equal(t, models.RoleDoctor, profile.Employee.Role)

	// A superadmin without an employee row still gets a profile.
	bare := seedUser(t, userRepo, "platform", "hunter2hunter2")
	profile, err = svc.GetProfile(bare.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.Employee)
}
