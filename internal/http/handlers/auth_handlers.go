package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents a password reset code request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a password reset. OTP accepts a JSON number or a
// numeric string.
type ResetPasswordRequest struct {
	Email                string      `json:"email" binding:"required,email"`
	Password             string      `json:"password" binding:"required,min=6"`
	PasswordConfirmation string      `json:"password_confirmation" binding:"required"`
	OTP                  json.Number `json:"otp" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgSuccess})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	envelope, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// Logout clears the caller's active token
func (h *AuthHandlers) Logout(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), account); err != nil {
		respondError(c, err, http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// Profile returns the caller's account
func (h *AuthHandlers) Profile(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, account)
}

// Refresh issues a new token for the caller
func (h *AuthHandlers) Refresh(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	envelope, err := h.authSvc.Refresh(c.Request.Context(), account)
	if err != nil {
		respondError(c, err, http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// ForgotPassword emails a password reset code
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Check your email for the OTP code"})
}

// ResetPassword sets a new password using an emailed code
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	code, err := strconv.Atoi(req.OTP.String())
	if err != nil {
		respondValidation(c, map[string][]string{"otp": {"The otp field must be an integer."}})
		return
	}

	err = h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.Password, req.PasswordConfirmation, code)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}
