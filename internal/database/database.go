package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "host", cfg.DBHost, "name", cfg.DBName)
	return db, nil
}

// Migrate creates or updates the system log table and every model passed
// in, usually the store's own tables.
func Migrate(db *gorm.DB, modelList ...interface{}) error {
	all := append([]interface{}{&models.SystemLog{}}, modelList...)
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	slog.Info("database migrated", "tables", len(all))
	return nil
}
