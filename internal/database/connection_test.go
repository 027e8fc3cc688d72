package database

import (
	"path/filepath"
	"testing"

	"speedwatch-api-server/internal/models"
)

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "violations.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := db.Create(&models.Violation{
		Device: "D1",
		Tier:   models.TierMinor,
	}).Error; err != nil {
		t.Fatalf("insert after bootstrap: %v", err)
	}
}

func TestOpen_BootstrapIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "violations.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := db.Create(&models.Violation{Device: "D1", Tier: models.TierMinor}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}

	var count int64
	if err := db.Model(&models.Violation{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 surviving record", count)
	}
}
