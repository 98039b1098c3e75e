// Package db holds the gorm models and database bootstrap for protokoll.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the sqlite database at path and migrates all tables.
// The parent directory is created if missing.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database dir %s: %w", dir, err)
		}
	}

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if err := AutoMigrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// OpenInMemory opens a fresh in-memory database, used by tests.
func OpenInMemory() (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	if err := AutoMigrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// AutoMigrate creates or updates all protokoll tables.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&Committee{},
		&Company{},
		&Member{},
		&Protocol{},
		&ProtocolMember{},
		&AgendaItem{},
		&Attachment{},
		&Task{},
	)
}
