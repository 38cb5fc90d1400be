package database

import (
	"fmt"
	"log/slog"

	"github.com/sangkips/order-notifier/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(dsn string, debug bool, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	log.Info("connected to PostgreSQL order store")
	return db, nil
}

// AutoMigrate creates or updates the orders table
func AutoMigrate(db *gorm.DB, log *slog.Logger) error {
	if err := db.AutoMigrate(&entity.OrderRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("order store migrations completed")
	return nil
}
