package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/equihire-api/internal/handler/dto"
	"github.com/yourusername/equihire-api/internal/middleware"
	apperrors "github.com/yourusername/equihire-api/internal/pkg/errors"
	"github.com/yourusername/equihire-api/internal/service"
)

// AuthHandler handles registration, the two-factor login flow and profile reads.
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=CANDIDATE COMPANY"`
}

// Register creates an inactive account and emails a verification code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    dto.NewUserResponse(user),
		"message": "Verification code sent. Confirm your email to activate the account.",
	})
}

// ConfirmCodeRequest carries a submitted one-time code.
type ConfirmCodeRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Code   string `json:"code" binding:"required,len=6,numeric"`
}

// ConfirmRegistration verifies the registration code and activates the account.
func (h *AuthHandler) ConfirmRegistration(c *gin.Context) {
	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.ConfirmRegistration(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.NewUserResponse(user)})
}

// LoginRequest is the first-factor payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and emails a login code. No token yet.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"message": "Login code sent. Confirm to receive an access token.",
	})
}

// ConfirmLogin verifies the login code and returns the access token.
func (h *AuthHandler) ConfirmLogin(c *gin.Context) {
	var req ConfirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.authService.ConfirmLogin(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         dto.NewUserResponse(user),
	})
}

// GetMe returns the authenticated user with its role profile.
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// handleAuthError maps service errors to HTTP statuses with stable error_type values.
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password", "error_type": "invalid_credentials"})
	case errors.Is(err, service.ErrAccountNotActive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is not activated. Verify your email first.", "error_type": "account_not_active"})
	case errors.Is(err, service.ErrInvalidVerificationCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid verification code", "error_type": "invalid_verification_code"})
	case errors.Is(err, service.ErrVerificationExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Verification code expired. Request a new one.", "error_type": "verification_expired"})
	case errors.Is(err, service.ErrVerificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending verification. Start over.", "error_type": "verification_not_found"})
	case errors.Is(err, service.ErrNotificationFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not send verification email. Please try again later.", "error_type": "notification_failed"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "error_type": "validation_failed"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	default:
		log.Printf("ERROR: internal server error in AuthHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
