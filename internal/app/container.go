package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/config"
	httpx "github.com/marifyahya/test-backenddev/internal/http"
	"github.com/marifyahya/test-backenddev/internal/http/handlers"
	"github.com/marifyahya/test-backenddev/internal/http/middleware"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/audit"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/auth"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/database"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/metrics"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/notifications"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/repositories"
	"github.com/marifyahya/test-backenddev/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB    *gorm.DB
	Mongo *mongo.Client
	Redis *database.RedisClient

	// Repositories
	AccountRepo domain.AccountRepository
	BookRepo    domain.BookRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	AccountSvc      domain.AccountService
	BookSvc         domain.BookService
	BillingSvc      domain.BillingService
	AuditLogger     domain.AuditLogger
	Metrics         *metrics.AuthMetrics
}

// Option adjusts the container before services are built
type Option func(*Container)

// WithNotificationService replaces the mail transport
func WithNotificationService(n domain.NotificationService) Option {
	return func(c *Container) { c.NotificationSvc = n }
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	container := &Container{Config: cfg}
	for _, opt := range opts {
		opt(container)
	}

	// Initialize infrastructure
	if err := container.initAccountStore(); err != nil {
		container.Close()
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize services
	if err := container.initServices(); err != nil {
		container.Close()
		return nil, err
	}

	return container, nil
}

func (c *Container) initAccountStore() error {
	cfg := c.Config
	switch cfg.DBDriver {
	case "mongo":
		client, err := database.OpenMongo(cfg.MongoURI, cfg.MongoMaxPoolSize, cfg.StoreTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to mongo: %w", err)
		}
		c.Mongo = client

		repo := repositories.NewMongoAccountRepository(client.Database(cfg.MongoDatabase), cfg.StoreTimeout)
		if err := repo.EnsureIndexes(context.Background()); err != nil {
			return fmt.Errorf("failed to create account indexes: %w", err)
		}
		c.AccountRepo = repo
	default:
		db, err := database.OpenSQL(cfg.DBDriver, cfg.DSN)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", cfg.DBDriver, err)
		}
		c.DB = db

		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		c.AccountRepo = repositories.NewGormAccountRepository(db, cfg.StoreTimeout)
	}
	return nil
}

func (c *Container) initRedis() error {
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB, c.Config.StoreTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), c.Config.StoreTimeout)
	defer cancel()
	if err := c.Redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.BookRepo = repositories.NewRedisBookRepository(c.Redis.Client, c.Config.BooksKey, c.Config.StoreTimeout)
	return nil
}

func (c *Container) initServices() error {
	var err error

	// Initialize basic services
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc, err = auth.NewJWTService(c.Config.JWTSecret)
	if err != nil {
		return err
	}
	if c.NotificationSvc == nil {
		c.NotificationSvc, err = notifications.NewEmailService(c.Config)
		if err != nil {
			return err
		}
	}
	c.AuditLogger = audit.NewSlogAuditLogger(slog.Default())
	c.Metrics = metrics.Prometheus()

	c.OTPSvc = services.NewOTPService(c.AccountRepo, c.PasswordSvc, c.NotificationSvc)

	// Auth service depends on all of the above
	c.AuthSvc = services.NewAuthService(
		c.AccountRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.AuditLogger,
		c.Metrics,
	)

	// Resources
	c.AccountSvc = services.NewAccountService(c.AccountRepo, c.PasswordSvc)
	c.BookSvc = services.NewBookService(c.BookRepo)
	c.BillingSvc = services.NewBillingService(c.Config.BillingDataPath)

	return nil
}

// Router builds the HTTP handler for the container's services
func (c *Container) Router() *gin.Engine {
	h := httpx.Handlers{
		Auth:    handlers.NewAuthHandlers(c.AuthSvc),
		Users:   handlers.NewUserHandlers(c.AccountSvc),
		Books:   handlers.NewBookHandlers(c.BookSvc),
		Billing: handlers.NewBillingHandlers(c.BillingSvc),
		System:  handlers.NewSystemHandlers(c.Config.Version),
	}
	authMW := middleware.AuthMiddleware(c.TokenSvc, c.AuthSvc, c.Config.EnforceRevocation)

	return httpx.BuildRouter(h, authMW, c.Config.AllowOrigins, middleware.ClientContext())
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		c.Redis.Close()
	}

	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(context.Background()); err != nil {
			return err
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
