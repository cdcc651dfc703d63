package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/halmertz/vertrag/internal/config"
	"github.com/halmertz/vertrag/internal/storage"
)

// openStorage opens the configured contract database and brings its schema
// up to date. Callers own the returned store and must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath(viper.GetString("database.path")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}
