package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
)

// BillingHandlers serves billing details
type BillingHandlers struct {
	billingSvc domain.BillingService
}

// NewBillingHandlers creates new billing handlers
func NewBillingHandlers(billingSvc domain.BillingService) *BillingHandlers {
	return &BillingHandlers{billingSvc: billingSvc}
}

// Details returns the denominations of at least the minimum amount
func (h *BillingHandlers) Details(c *gin.Context) {
	denominations, err := h.billingSvc.Denominations(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, denominations)
}
