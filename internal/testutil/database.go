// Package testutil provides test helpers for packages that need a real
// store: an in-memory SQLite database with migrations applied, and contract
// fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/halmertz/vertrag/internal/model"
	"github.com/halmertz/vertrag/internal/storage"
)

// SetupTestDB creates a migrated in-memory database and registers cleanup.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Fixture returns a minimal valid contract; override fields as needed.
func Fixture(name string) *model.Contract {
	cost := 9.99
	return &model.Contract{
		Name:          name,
		Category:      "streaming-video",
		Provider:      "Netflix",
		BillingCost:   &cost,
		BillingPeriod: model.BillingMonthly,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ReminderDays:  30,
	}
}
