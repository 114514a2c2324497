package database

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

var (
	// ErrNoStore is returned by callers that need a store when none is configured.
	ErrNoStore = errors.New("no snapshot store configured")
	// ErrNoSnapshot is returned by LoadKitchen when nothing was saved yet.
	ErrNoSnapshot = errors.New("no kitchen snapshot saved")
)

// Store persists kitchen snapshots through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to the database and migrates the snapshot schema. Dialect is
// "sqlite3" or "postgres".
func Open(dialect, url string) (*Store, error) {
	db, err := gorm.Open(dialect, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if dialect == "sqlite3" {
		// one connection keeps in-memory databases alive and serialises writers
		db.DB().SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates or updates every snapshot table.
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&Snapshot{},
		&StationRecord{},
		&IngredientRecord{},
		&DishRecord{},
		&BackupRecord{},
		&QueuedDishRecord{},
	).Error
	if err != nil {
		return fmt.Errorf("failed to migrate snapshot schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
