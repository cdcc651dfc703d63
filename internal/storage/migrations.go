package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial contracts schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS contracts (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					category TEXT NOT NULL,
					subcategory TEXT,
					provider TEXT,
					contract_number TEXT,
					monthly_cost REAL NOT NULL DEFAULT 0,
					start_date DATETIME NOT NULL,
					end_date DATETIME,
					cancellation_period INTEGER NOT NULL DEFAULT 0,
					cancellation_date DATETIME,
					renewal_period INTEGER NOT NULL DEFAULT 0,
					reminder_days INTEGER NOT NULL DEFAULT 30,
					payment_method TEXT,
					notes TEXT,
					created_at DATETIME NOT NULL,
					updated_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_contracts_category ON contracts(category)`,
				`CREATE INDEX idx_contracts_provider ON contracts(provider)`,
				`CREATE INDEX idx_contracts_cancellation_date ON contracts(cancellation_date)`,
				`CREATE INDEX idx_contracts_created_at ON contracts(created_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add contract status",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE contracts ADD COLUMN status TEXT`,
				// Existing rows predate the lifecycle field and were all live.
				`UPDATE contracts SET status = 'aktiv' WHERE status IS NULL`,
				`CREATE INDEX idx_contracts_status ON contracts(status)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add billing cost and billing period",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE contracts ADD COLUMN billing_cost REAL`,
				`ALTER TABLE contracts ADD COLUMN billing_period TEXT`,
				`UPDATE contracts SET billing_period = 'monthly' WHERE billing_period IS NULL`,
				// Pre-billing-period rows were all billed monthly, so the
				// monthly cost is the billing cost.
				`UPDATE contracts SET billing_cost = monthly_cost WHERE billing_cost IS NULL`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
