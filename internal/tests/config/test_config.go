package config

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/marifyahya/test-backenddev/internal/config"
)

const testJWTSecret = "test-jwt-secret-for-e2e-validation"

// NewTestConfig builds the configuration for end-to-end tests: an in-memory sqlite account
// store, the given Redis address for books and the bundled billing fixture.
func NewTestConfig(t *testing.T, redisAddr string, enforceRevocation bool) *config.Config {
	t.Helper()

	// keep developer environment out of the test configuration
	for _, key := range []string{
		config.ENV_DATABASE_DSN,
		config.ENV_MONGO_URI,
		config.ENV_REDIS_PASSWORD,
		config.ENV_SMTP_USERNAME,
		config.ENV_SMTP_PASSWORD,
		config.ENV_MAIL_FROM,
		config.ENV_MAIL_TO_OVERRIDE,
		config.ENV_PORT,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.ENV_JWT_SECRET, testJWTSecret)

	cfg, err := config.FromFile(&config.ConfigFile{
		App: config.AppConfig{
			GinMode: "test",
			Version: "test",
		},
		Logging: config.LoggingConfig{Level: "error"},
		Database: config.DatabaseConfig{
			Driver:  config.DriverSQLite,
			DSN:     ":memory:",
			Timeout: "2s",
		},
		Redis: config.RedisConfig{
			Addr:     redisAddr,
			BooksKey: "books",
		},
		Auth: config.AuthConfig{
			EnforceRevocation: &enforceRevocation,
		},
		Mail: config.MailConfig{
			Driver: config.MailDriverLog,
			From:   "support@example.com",
		},
		Billing: config.BillingConfig{
			DataPath: BillingFixturePath(),
		},
	})
	if err != nil {
		t.Fatalf("failed to build test configuration: %v", err)
	}
	return cfg
}

// BillingFixturePath returns the absolute path of storage/json/filter-data.json
func BillingFixturePath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "storage", "json", "filter-data.json")
}
