package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the relational engine holding the users table (and, unless
// the file backend is active, the topics table). Each request-scoped query
// borrows from the driver's pool; there is no shared mutable state here.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		// Unique-constraint violations become gorm.ErrDuplicatedKey so
		// the repositories can map them to named outcomes.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	if cfg.Backend == BackendPostgres {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	if err != nil {
		return nil, err
	}
	// WAL keeps readers from blocking on writers; writes serialize at the
	// engine level.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}
	return db, nil
}
