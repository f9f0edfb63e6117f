package repositories

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"topic-board/models"
)

// EnsureSchema idempotently applies the declarative sqlite schema from
// migrationDir: init.sql (topics and users tables) must succeed, while
// fts.sql (the optional full-text index) is best-effort. Engines built
// without FTS5 fall back to substring search.
func EnsureSchema(db *gorm.DB, migrationDir string) error {
	if err := runSQLFile(db, filepath.Join(migrationDir, "init.sql")); err != nil {
		return errors.Join(models.ErrStorageUnavailable, err)
	}
	if err := runSQLFile(db, filepath.Join(migrationDir, "fts.sql")); err != nil {
		log.Warn().Err(err).Msg("full-text index unavailable, search will use substring fallback")
	}
	return nil
}

func runSQLFile(db *gorm.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return db.Exec(string(content)).Error
}
