package main

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/agiletec/airis/internal/config"
	"github.com/agiletec/airis/internal/db"
)

// openLearningDB opens the learning database named by the config, creating
// parent directories on first use.
func openLearningDB(cfg config.Config) (*sql.DB, func(), error) {
	path, err := config.ExpandHome(cfg.LearningDB)
	if err != nil {
		return nil, func() {}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, func() {}, err
	}
	storeDB, err := db.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return storeDB, func() { _ = storeDB.Close() }, nil
}
