package service

import (
	"errors"
	"time"

	"github.com/Yogesh-MG/Meditrackpro/internal/models"
	"github.com/Yogesh-MG/Meditrackpro/internal/repository"
	"github.com/Yogesh-MG/Meditrackpro/pkg/apperrors"
	"github.com/Yogesh-MG/Meditrackpro/pkg/logger"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"go.uber.org/zap"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenPair carries a fresh access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile is the authenticated caller's combined identity
type Profile struct {
	User     *models.User     `json:"user"`
	Employee *models.Employee `json:"employee,omitempty"`
}

// AuthService handles login, token rotation and profile lookup.
type AuthService interface {
	Login(req LoginRequest) (*TokenPair, *models.User, error)
	Refresh(refreshToken string) (*TokenPair, error)
	Logout(refreshToken string) error
	GetProfile(userID uint) (*Profile, error)
}

type authService struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	auditRepo    repository.AuditRepository
}

func NewAuthService(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository, auditRepo repository.AuditRepository) AuthService {
	return &authService{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
	}
}

// Login verifies credentials and issues a token pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *authService) Login(req LoginRequest) (*TokenPair, *models.User, error) {
	user, err := s.userRepo.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewValidation("credentials", "invalid username or password")
		}
		return nil, nil, err
	}

	if !utils.ComparePassword(user.PasswordHash, req.Password) {
		return nil, nil, apperrors.NewValidation("credentials", "invalid username or password")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.auditRepo.CreateAuditLog(&user.ID, "login", "user logged in"); err != nil {
		logger.Get().Warn("audit log write failed", zap.Error(err))
	}
	return pair, user, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// new pair is issued.
func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	hash := utils.HashRefreshToken(refreshToken)
	stored, err := s.userRepo.FindRefreshTokenByHash(hash)
	if err != nil {
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.NotFound("refresh token")
	}

	if err := s.userRepo.RevokeRefreshTokenByHash(hash); err != nil {
		return nil, err
	}
	return s.issueTokens(&stored.User)
}

// Logout revokes the presented refresh token
func (s *authService) Logout(refreshToken string) error {
	return s.userRepo.RevokeRefreshTokenByHash(utils.HashRefreshToken(refreshToken))
}

// GetProfile returns the user plus the employee profile when one exists.
// Platform superadmins may have no employee row.
func (s *authService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}
	employee, err := s.employeeRepo.GetEmployeeByUserID(userID)
	if err == nil {
		profile.Employee = employee
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return profile, nil
}

func (s *authService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.IsSuperAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.userRepo.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refresh),
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
