package database

import (
	"fmt"

	"github.com/slipframe/core/internal/config"
	"github.com/slipframe/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.DSN,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// migrate runs GORM auto-migration for all models.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CarouselModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "mysql" {
		// Slides of long decks overflow the default column size.
		if err := db.Exec("ALTER TABLE `carousels` MODIFY COLUMN `slides` LONGTEXT NULL").Error; err != nil {
			return err
		}
	}
	return nil
}
