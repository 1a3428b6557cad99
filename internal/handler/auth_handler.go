package handler

import (
	"net/http"

	"github.com/Yogesh-MG/Meditrackpro/internal/middleware"
	"github.com/Yogesh-MG/Meditrackpro/internal/service"
	"github.com/Yogesh-MG/Meditrackpro/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes login, token rotation and profile endpoints.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "username and password are required")
		return
	}

	pair, user, err := h.authService.Login(req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          user,
	})
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, pair)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	if err := h.authService.Logout(req.RefreshToken); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.MessageResponse(c, "logged out")
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, profile)
}
