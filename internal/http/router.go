package httpx

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/internal/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth    *handlers.AuthHandlers
	Users   *handlers.UserHandlers
	Books   *handlers.BookHandlers
	Billing *handlers.BillingHandlers
	System  *handlers.SystemHandlers
}

func BuildRouter(h Handlers, auth gin.HandlerFunc, allowOrigins []string, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(allowOrigins)))
	r.Use(middlewares...)

	r.GET("/", h.System.Version)
	r.GET("/health", h.System.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/forgote-password", h.Auth.ForgotPassword)
	api.POST("/reset-password", h.Auth.ResetPassword)

	v := api.Group("/").Use(auth)
	v.POST("/logout", h.Auth.Logout)
	v.GET("/profile", h.Auth.Profile)
	v.POST("/refresh-token", h.Auth.Refresh)

	v.GET("/users", h.Users.List)
	v.POST("/users/create", h.Users.Create)
	v.GET("/users/:id", h.Users.Get)
	v.PUT("/users/:id/update", h.Users.Update)
	v.DELETE("/users/:id/delete", h.Users.Delete)

	v.GET("/books", h.Books.List)
	v.POST("/books/create", h.Books.Create)
	v.GET("/books/:id", h.Books.Get)
	v.PUT("/books/:id/update", h.Books.Update)
	v.DELETE("/books/:id/delete", h.Books.Delete)

	v.GET("/billings-detail", h.Billing.Details)

	return r
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	return cfg
}
