package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/halmertz/vertrag/internal/common"
	"github.com/halmertz/vertrag/internal/model"
	"github.com/halmertz/vertrag/internal/normalize"
)

const contractColumns = `id, name, category, subcategory, provider, contract_number,
	monthly_cost, billing_cost, billing_period, start_date, end_date,
	cancellation_period, cancellation_date, renewal_period, reminder_days,
	status, payment_method, notes, created_at, updated_at`

// SaveContract persists a contract, computing the derived fields first.
//
// MonthlyCost and CancellationDate are always recomputed from the supplied
// billing and end-date fields, UpdatedAt is set to now, CreatedAt is kept
// when supplied (update) or set to now (first write), and a missing status
// defaults to active. A numeric ID that matches an existing row updates that
// row in place; anything else inserts and lets SQLite assign the ID. The
// returned ID is always the string form of the row ID.
func (s *SQLiteStorage) SaveContract(ctx context.Context, c *model.Contract) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateContract(c); err != nil {
		return "", err
	}

	now := time.Now()
	c.MonthlyCost = normalize.MonthlyCost(c.BillingCost, c.BillingPeriod, c.MonthlyCost)
	c.CancellationDate = normalize.CancellationDate(c.EndDate, c.CancellationPeriod)
	c.UpdatedAt = now
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.Status == "" {
		c.Status = model.StatusActive
	}
	if c.Category == "" {
		c.Category = model.CategoryCustom
	}

	if id, ok := numericID(c.ID); ok {
		res, err := s.db.ExecContext(ctx, `
			UPDATE contracts SET
				name = ?, category = ?, subcategory = ?, provider = ?,
				contract_number = ?, monthly_cost = ?, billing_cost = ?,
				billing_period = ?, start_date = ?, end_date = ?,
				cancellation_period = ?, cancellation_date = ?,
				renewal_period = ?, reminder_days = ?, status = ?,
				payment_method = ?, notes = ?, created_at = ?, updated_at = ?
			WHERE id = ?
		`, contractArgs(c, id)...)
		if err != nil {
			return "", fmt.Errorf("failed to update contract %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return "", fmt.Errorf("failed to check update result: %w", err)
		}
		if affected > 0 {
			return strconv.FormatInt(id, 10), nil
		}
		// ID did not resolve to an existing row; fall through to insert.
	}

	c.ID = ""
	return s.insertContractTx(ctx, s.db, c)
}

// InsertContract writes a contract verbatim, without recomputing derived
// fields or bookkeeping timestamps. The backup restore path uses it so that
// restored records keep their stored derivations.
func (s *SQLiteStorage) InsertContract(ctx context.Context, c *model.Contract) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateContract(c); err != nil {
		return "", err
	}
	return s.insertContractTx(ctx, s.db, c)
}

// InsertContracts bulk-inserts contracts in a single transaction. Either all
// records are committed or none are; callers that can live with partial
// success fall back to InsertContract per record.
func (s *SQLiteStorage) InsertContracts(ctx context.Context, contracts []model.Contract) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateContracts(contracts); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range contracts {
		if _, err := s.insertContractTx(ctx, tx, &contracts[i]); err != nil {
			return fmt.Errorf("failed to insert contract %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) insertContractTx(ctx context.Context, q queryable, c *model.Contract) (string, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO contracts (
			name, category, subcategory, provider, contract_number,
			monthly_cost, billing_cost, billing_period, start_date, end_date,
			cancellation_period, cancellation_date, renewal_period,
			reminder_days, status, payment_method, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contractArgs(c)...)
	if err != nil {
		return "", fmt.Errorf("failed to insert contract: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("failed to get inserted contract ID: %w", err)
	}
	c.ID = strconv.FormatInt(id, 10)
	return c.ID, nil
}

// GetContract retrieves a single contract by ID.
func (s *SQLiteStorage) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	numID, ok := numericID(id)
	if !ok {
		return nil, fmt.Errorf("%w: contract %q", common.ErrNotFound, id)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = ?`, numID)
	c, err := scanContract(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: contract %q", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

// ListContracts returns all contracts ordered by creation time.
func (s *SQLiteStorage) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return s.queryContracts(ctx,
		`SELECT `+contractColumns+` FROM contracts ORDER BY created_at ASC, id ASC`)
}

// GetContractsByStatus returns all contracts in the given lifecycle state.
func (s *SQLiteStorage) GetContractsByStatus(ctx context.Context, status model.ContractStatus) ([]model.Contract, error) {
	return s.queryContracts(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE status = ? ORDER BY created_at ASC, id ASC`,
		string(status))
}

// GetContractsByCategory returns all contracts with the given category tag.
func (s *SQLiteStorage) GetContractsByCategory(ctx context.Context, category model.Category) ([]model.Contract, error) {
	return s.queryContracts(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE category = ? ORDER BY created_at ASC, id ASC`,
		string(category))
}

// GetContractsByProvider returns all contracts with the given provider.
func (s *SQLiteStorage) GetContractsByProvider(ctx context.Context, provider string) ([]model.Contract, error) {
	if err := validateString(provider, "provider"); err != nil {
		return nil, err
	}
	return s.queryContracts(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE provider = ? ORDER BY created_at ASC, id ASC`,
		provider)
}

// GetContractsWithDeadlines returns active contracts that have a cancellation
// deadline, soonest first. The reminder check reads these; it never writes.
func (s *SQLiteStorage) GetContractsWithDeadlines(ctx context.Context) ([]model.Contract, error) {
	return s.queryContracts(ctx, `
		SELECT `+contractColumns+` FROM contracts
		WHERE status = ? AND cancellation_date IS NOT NULL
		ORDER BY cancellation_date ASC, id ASC`,
		string(model.StatusActive))
}

// DeleteContract removes a contract by ID.
func (s *SQLiteStorage) DeleteContract(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	numID, ok := numericID(id)
	if !ok {
		return fmt.Errorf("%w: contract %q", common.ErrNotFound, id)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, numID)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: contract %q", common.ErrNotFound, id)
	}
	return nil
}

// Clear removes every contract. Backup restore runs it before bulk-loading;
// restoring is a full replace, not a merge.
func (s *SQLiteStorage) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contracts`); err != nil {
		return fmt.Errorf("failed to clear contracts: %w", err)
	}
	return nil
}

// CountContracts returns the total number of stored contracts.
func (s *SQLiteStorage) CountContracts(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contracts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contracts: %w", err)
	}
	return count, nil
}

// GetMonthlyCostSummary returns the summed monthly cost of active contracts
// per category, highest first.
func (s *SQLiteStorage) GetMonthlyCostSummary(ctx context.Context) (map[model.Category]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(monthly_cost) AS total
		FROM contracts
		WHERE status = ?
		GROUP BY category
		ORDER BY total DESC
	`, string(model.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly cost summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[model.Category]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly cost summary: %w", err)
		}
		summary[model.Category(category)] = total
	}

	return summary, rows.Err()
}

// GetActiveMonthlyTotal returns the summed monthly cost of all active contracts.
func (s *SQLiteStorage) GetActiveMonthlyTotal(ctx context.Context) (float64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(monthly_cost), 0) FROM contracts WHERE status = ?
	`, string(model.StatusActive)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get monthly total: %w", err)
	}
	return total, nil
}

func (s *SQLiteStorage) queryContracts(ctx context.Context, query string, args ...any) ([]model.Contract, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var contracts []model.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, *c)
	}

	return contracts, rows.Err()
}

// numericID parses a store identifier. Contracts created through the UI
// carry the string form of their SQLite rowid; anything unparsable means
// "no identifier" and triggers an insert.
func numericID(id string) (int64, bool) {
	if id == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// contractArgs flattens a contract into SQL arguments in column order
// (without the ID); extra args are appended at the end.
func contractArgs(c *model.Contract, extra ...any) []any {
	args := []any{
		c.Name,
		string(c.Category),
		nullString(c.Subcategory),
		nullString(c.Provider),
		nullString(c.ContractNumber),
		c.MonthlyCost,
		nullFloat(c.BillingCost),
		nullString(string(c.BillingPeriod)),
		c.StartDate,
		nullTime(c.EndDate),
		c.CancellationPeriod,
		nullTime(c.CancellationDate),
		c.RenewalPeriod,
		c.ReminderDays,
		string(c.Status),
		nullString(string(c.PaymentMethod)),
		nullString(c.Notes),
		c.CreatedAt,
		c.UpdatedAt,
	}
	return append(args, extra...)
}

// scannable is satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanContract(row scannable) (*model.Contract, error) {
	var (
		c                 model.Contract
		id                int64
		subcategory       sql.NullString
		provider          sql.NullString
		contractNumber    sql.NullString
		billingCost       sql.NullFloat64
		billingPeriod     sql.NullString
		endDate           sql.NullTime
		cancellationDate  sql.NullTime
		status            sql.NullString
		paymentMethod     sql.NullString
		notes             sql.NullString
	)

	err := row.Scan(
		&id,
		&c.Name,
		(*string)(&c.Category),
		&subcategory,
		&provider,
		&contractNumber,
		&c.MonthlyCost,
		&billingCost,
		&billingPeriod,
		&c.StartDate,
		&endDate,
		&c.CancellationPeriod,
		&cancellationDate,
		&c.RenewalPeriod,
		&c.ReminderDays,
		&status,
		&paymentMethod,
		&notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ID = strconv.FormatInt(id, 10)
	c.Subcategory = subcategory.String
	c.Provider = provider.String
	c.ContractNumber = contractNumber.String
	if billingCost.Valid {
		v := billingCost.Float64
		c.BillingCost = &v
	}
	c.BillingPeriod = model.BillingPeriod(billingPeriod.String)
	if endDate.Valid {
		t := endDate.Time
		c.EndDate = &t
	}
	if cancellationDate.Valid {
		t := cancellationDate.Time
		c.CancellationDate = &t
	}
	c.Status = model.ContractStatus(status.String)
	c.PaymentMethod = model.PaymentMethod(paymentMethod.String)
	c.Notes = notes.String

	return &c, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
