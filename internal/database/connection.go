package database

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"speedwatch-api-server/internal/models"
)

// Connect opens the sqlite database named by DB_PATH and bootstraps the
// violations table. The returned handle is shared for the process lifetime.
func Connect() (*gorm.DB, error) {
	config, err := NewConfig()
	if err != nil {
		return nil, err
	}
	return Open(config.Path)
}

// Open opens the sqlite file at path, creating parent directories as needed.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single writer keeps each insert atomic; the busy timeout covers
	// interleaved readers while a write holds the file lock.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		return nil, err
	}

	if err := bootstrap(db); err != nil {
		return nil, err
	}
	return db, nil
}

func bootstrap(db *gorm.DB) error {
	return db.AutoMigrate(&models.Violation{})
}
