package database

import (
	"fmt"
	"os"
	"path/filepath"

	"obstetrics-record-service/config"

	_ "github.com/ncruces/go-sqlite3/embed" // bundled sqlite build
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection opens the local database file, creating its directory if needed.
func NewSQLiteConnection(cfg config.SQLiteConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := "file:" + cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	logrus.Infof("Opened SQLite database at %s", cfg.Path)

	return db, nil
}
