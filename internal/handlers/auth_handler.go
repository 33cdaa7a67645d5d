package handlers

import (
	"strings"

	"github.com/Pincessis17/MerchFlow/internal/models"
	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/jwt"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// LoginRequest login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest new workspace signup
type RegisterRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

// ChangePasswordRequest password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ElevateRequest password re-confirmation for the platform console
type ElevateRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login issues a token for valid credentials
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	result, err := h.authService.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Register creates a workspace and its first admin
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "company name, name, email and a password of at least 6 characters are required")
		return
	}

	result, err := h.authService.Register(req.CompanyName, req.Name, req.Email, req.Password)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "workspace created", result)
}

// Logout acknowledges the client discarding its token. Tokens are
// stateless, so there is nothing to revoke server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.SuccessWithMessage(c, "logged out", nil)
}

// Me returns the authenticated user with its workspace
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		response.Unauthorized(c, "please log in first")
		return
	}
	response.Success(c, user.(*models.User))
}

// ChangePassword updates the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "old password and a new password of at least 6 characters are required")
		return
	}

	if err := h.userService.ChangePassword(c.GetUint("user_id"), req.OldPassword, req.NewPassword); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "password updated", nil)
}

// RefreshToken re-issues a token from a still valid one
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "invalid authorization header format")
		return
	}

	token, err := jwt.GetJWTManager().RefreshToken(authHeader[7:])
	if err != nil {
		response.Unauthorized(c, "token invalid or expired")
		return
	}

	response.Success(c, gin.H{"token": token})
}

// Elevate opens the timed elevation window for platform actions
func (h *AuthHandler) Elevate(c *gin.Context) {
	var req ElevateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "password is required")
		return
	}

	if err := h.authService.Elevate(c.GetUint("user_id"), req.Password); err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "elevated session opened", nil)
}
