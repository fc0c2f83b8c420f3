package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
)

// UserHandlers handles the users resource
type UserHandlers struct {
	accountSvc domain.AccountService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(accountSvc domain.AccountService) *UserHandlers {
	return &UserHandlers{accountSvc: accountSvc}
}

// CreateUserRequest represents a new account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest changes an account's email
type UpdateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// List returns accounts whose email contains the q query parameter
func (h *UserHandlers) List(c *gin.Context) {
	accounts, err := h.accountSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// Create registers an account on behalf of an authenticated caller
func (h *UserHandlers) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountSvc.Create(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, account)
}

// Get returns the account with the id path parameter
func (h *UserHandlers) Get(c *gin.Context) {
	account, err := h.accountSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, account)
}

// Update changes the email of the account with the id path parameter
func (h *UserHandlers) Update(c *gin.Context) {
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountSvc.UpdateEmail(c.Request.Context(), c.Param("id"), req.Email)
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, account)
}

// Delete removes the account with the id path parameter
func (h *UserHandlers) Delete(c *gin.Context) {
	if err := h.accountSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgSuccess})
}
