package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
)

// Response messages
const (
	msgSuccess            = "success"
	msgInvalidCredentials = "Email or password does not match"
	msgUserNotFound       = "User not found"
	msgNoAccountForEmail  = "There is no account with the email you provided"
	msgBookNotFound       = "Book not found"
	msgOTPExpired         = "The OTP code has expired."
	msgOTPInvalid         = "The OTP code does not match."
	msgOTPNotFound        = "No OTP code was requested for this account."
	msgConfirmMismatch    = "The password confirmation does not match."
	msgUnauthenticated    = "Unauthenticated."
	msgUpstream           = "Service temporarily unavailable, please try again"
	msgInternal           = "Internal server error"
	msgEmailTaken         = "The email has already been taken."
)

// respondError writes the status and message for err. userNotFound is the status used for
// domain.ErrUserNotFound, which differs between auth flows and resource lookups.
func respondError(c *gin.Context, err error, userNotFound int) {
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{"email": []string{msgEmailTaken}}})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidCredentials})
	case errors.Is(err, domain.ErrUserNotFound):
		msg := msgUserNotFound
		if userNotFound == http.StatusBadRequest {
			msg = msgNoAccountForEmail
		}
		c.JSON(userNotFound, gin.H{"message": msg})
	case errors.Is(err, domain.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgBookNotFound})
	case errors.Is(err, domain.ErrConfirmationMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgConfirmMismatch})
	case errors.Is(err, domain.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgOTPExpired})
	case errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgOTPInvalid})
	case errors.Is(err, domain.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgOTPNotFound})
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, gin.H{"message": msgUnauthenticated})
	case errors.Is(err, domain.ErrUpstream):
		slog.Warn("upstream failure",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": msgUpstream})
	default:
		slog.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}
