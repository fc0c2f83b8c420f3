package database

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/marifyahya/test-backenddev/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newGormLogger reports warnings and slow queries to w. Lookups that find nothing are
// expected results and stay quiet.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(
		log.New(w, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// OpenSQL opens the GORM-backed account store for the postgres or sqlite driver
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         newGormLogger(os.Stdout),
		TranslateError: true,
	}

	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), config)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(dsn), config)
		if err != nil {
			return nil, err
		}
		// one connection keeps ":memory:" databases shared across queries
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}
}

// AutoMigrate creates the accounts table and its unique email index
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBAccount{}); err != nil {
		return fmt.Errorf("failed to migrate accounts table: %w", err)
	}
	return nil
}
