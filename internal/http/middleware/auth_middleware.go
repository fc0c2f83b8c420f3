package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
)

const accountKey = "account"

// AuthMiddleware verifies the bearer token and loads the caller's account. With
// enforceRevocation the token must also be the one currently stored on the account,
// so a logged-out token is rejected before it expires.
func AuthMiddleware(tokenSvc domain.TokenService, authSvc domain.AuthService, enforceRevocation bool) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthenticated(c)
			return
		}

		claims, err := tokenSvc.Verify(token)
		if err != nil {
			unauthenticated(c)
			return
		}

		account, err := authSvc.Profile(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrUpstream) {
				slog.Warn("failed to load account for token",
					slog.String("account_id", claims.Subject),
					slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "Service temporarily unavailable, please try again"})
				return
			}
			unauthenticated(c)
			return
		}

		if enforceRevocation && account.ActiveToken != token {
			unauthenticated(c)
			return
		}

		c.Set(accountKey, account)
		c.Next()
	})
}

// CurrentAccount returns the account loaded by AuthMiddleware
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	v, exists := c.Get(accountKey)
	if !exists {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok && account != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}
