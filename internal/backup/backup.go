// Package backup implements the versioned JSON export/import format.
//
// A backup is a full snapshot of the contract collection. Payloads from
// older releases declare an older version number (or none at all, which
// means version 1) and are upgraded through an ordered chain of additive
// migration steps before import.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/halmertz/vertrag/internal/common"
	"github.com/halmertz/vertrag/internal/model"
)

// CurrentVersion is the backup schema version this release writes.
const CurrentVersion = 3

// Payload is the serialized backup envelope. Date fields are RFC 3339
// strings rather than native times so the file stays portable.
type Payload struct {
	ExportDate string   `json:"exportDate"`
	Contracts  []Record `json:"contracts"`
	Version    int      `json:"version"`
}

// Record is a contract as it appears inside a backup payload. Optional
// fields are pointers so a migration step can tell "absent" apart from a
// zero value.
type Record struct {
	BillingCost        *float64 `json:"billingCost,omitempty"`
	StartDate          string   `json:"startDate,omitempty"`
	EndDate            string   `json:"endDate,omitempty"`
	CancellationDate   string   `json:"cancellationDate,omitempty"`
	CreatedAt          string   `json:"createdAt,omitempty"`
	UpdatedAt          string   `json:"updatedAt,omitempty"`
	ID                 string   `json:"id,omitempty"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Subcategory        string   `json:"subcategory,omitempty"`
	Provider           string   `json:"provider,omitempty"`
	ContractNumber     string   `json:"contractNumber,omitempty"`
	BillingPeriod      string   `json:"billingPeriod,omitempty"`
	Status             string   `json:"status,omitempty"`
	PaymentMethod      string   `json:"paymentMethod,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	MonthlyCost        float64  `json:"monthlyCost"`
	CancellationPeriod int      `json:"cancellationPeriod"`
	RenewalPeriod      int      `json:"renewalPeriod,omitempty"`
	ReminderDays       int      `json:"reminderDays"`
}

// migration upgrades records written before Version. Steps are additive and
// check per-field presence, so a record that already carries some of the
// newer fields is only backfilled for the missing ones.
type migration struct {
	Apply       func(*Record)
	Description string
	Version     int
}

var migrations = []migration{
	{
		Version:     2,
		Description: "Add contract status",
		Apply: func(r *Record) {
			if r.Status == "" {
				r.Status = string(model.StatusActive)
			}
		},
	},
	{
		Version:     3,
		Description: "Add billing cost and billing period",
		Apply: func(r *Record) {
			if r.BillingPeriod == "" {
				r.BillingPeriod = string(model.BillingMonthly)
			}
			if r.BillingCost == nil {
				cost := r.MonthlyCost
				r.BillingCost = &cost
			}
		},
	},
}

// Migrate upgrades a payload of any historical version to CurrentVersion.
// A missing version is treated as version 1, the oldest known format. The
// output version is always stamped to CurrentVersion and the export date is
// preserved when present. Migrating an already-current payload is a no-op.
func Migrate(p Payload) Payload {
	version := p.Version
	if version == 0 {
		version = 1
	}

	for _, m := range migrations {
		if version >= m.Version {
			continue
		}
		for i := range p.Contracts {
			m.Apply(&p.Contracts[i])
		}
	}

	p.Version = CurrentVersion
	if p.ExportDate == "" {
		p.ExportDate = time.Now().UTC().Format(time.RFC3339)
	}
	return p
}

// ImportResult reports how a restore went.
type ImportResult struct {
	Imported int
}

// Store is the subset of the storage layer a restore needs.
type Store interface {
	Clear(ctx context.Context) error
	InsertContracts(ctx context.Context, contracts []model.Contract) error
	InsertContract(ctx context.Context, c *model.Contract) (string, error)
	ListContracts(ctx context.Context) ([]model.Contract, error)
}

// Import restores a backup file into the store. The existing collection is
// cleared first: restoring is a full replace. Records are bulk-inserted when
// possible; if the bulk write fails, records are retried one at a time and a
// partial import counts as success as long as at least one record landed.
func Import(ctx context.Context, store Store, data []byte) (ImportResult, error) {
	var raw struct {
		Contracts  json.RawMessage `json:"contracts"`
		ExportDate string          `json:"exportDate"`
		Version    int             `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}
	// A missing key leaves the raw message nil; an explicit null stores the
	// literal. Both mean there is no contracts list to restore from.
	if raw.Contracts == nil || string(raw.Contracts) == "null" {
		return ImportResult{}, fmt.Errorf("%w: missing contracts list", common.ErrInvalidBackup)
	}

	var records []Record
	if err := json.Unmarshal(raw.Contracts, &records); err != nil {
		return ImportResult{}, fmt.Errorf("%w: contracts is not a list", common.ErrInvalidBackup)
	}

	payload := Migrate(Payload{
		Version:    raw.Version,
		ExportDate: raw.ExportDate,
		Contracts:  records,
	})

	if err := store.Clear(ctx); err != nil {
		return ImportResult{}, fmt.Errorf("failed to clear existing contracts: %w", err)
	}

	contracts := make([]model.Contract, 0, len(payload.Contracts))
	for i := range payload.Contracts {
		contracts = append(contracts, payload.Contracts[i].toContract())
	}

	if len(contracts) == 0 {
		return ImportResult{}, common.ErrNothingImported
	}

	// Try the atomic bulk path first; fall back to record-by-record inserts
	// so a single bad record cannot sink the whole restore.
	bulkErr := store.InsertContracts(ctx, contracts)
	if bulkErr == nil {
		return ImportResult{Imported: len(contracts)}, nil
	}
	slog.Warn("Bulk insert failed, retrying contracts individually", "error", bulkErr)

	imported := 0
	for i := range contracts {
		if _, err := store.InsertContract(ctx, &contracts[i]); err != nil {
			slog.Warn("Failed to import contract",
				"name", contracts[i].Name,
				"error", err)
			continue
		}
		imported++
	}

	if imported == 0 {
		return ImportResult{}, common.ErrNothingImported
	}
	return ImportResult{Imported: imported}, nil
}

// Export serializes every stored contract into a current-version payload.
func Export(ctx context.Context, store Store) ([]byte, error) {
	contracts, err := store.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}

	payload := Payload{
		Version:    CurrentVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Contracts:  make([]Record, 0, len(contracts)),
	}
	for i := range contracts {
		payload.Contracts = append(payload.Contracts, newRecord(&contracts[i]))
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// toContract rebuilds a native contract from a migrated record. The stored
// identifier is dropped (the store assigns a fresh one), a missing start
// date falls back to now rather than failing the record, and optional dates
// stay absent. UpdatedAt is refreshed to the import time.
func (r *Record) toContract() model.Contract {
	now := time.Now()
	return model.Contract{
		Name:               r.Name,
		Category:           model.Category(r.Category),
		Subcategory:        r.Subcategory,
		Provider:           r.Provider,
		ContractNumber:     r.ContractNumber,
		MonthlyCost:        r.MonthlyCost,
		BillingCost:        r.BillingCost,
		BillingPeriod:      model.BillingPeriod(r.BillingPeriod),
		StartDate:          parseTimeOr(r.StartDate, now),
		EndDate:            parseTimePtr(r.EndDate),
		CancellationPeriod: r.CancellationPeriod,
		CancellationDate:   parseTimePtr(r.CancellationDate),
		RenewalPeriod:      r.RenewalPeriod,
		ReminderDays:       r.ReminderDays,
		Status:             model.ContractStatus(r.Status),
		PaymentMethod:      model.PaymentMethod(r.PaymentMethod),
		Notes:              r.Notes,
		CreatedAt:          parseTimeOr(r.CreatedAt, now),
		UpdatedAt:          now,
	}
}

func newRecord(c *model.Contract) Record {
	return Record{
		ID:                 c.ID,
		Name:               c.Name,
		Category:           string(c.Category),
		Subcategory:        c.Subcategory,
		Provider:           c.Provider,
		ContractNumber:     c.ContractNumber,
		MonthlyCost:        c.MonthlyCost,
		BillingCost:        c.BillingCost,
		BillingPeriod:      string(c.BillingPeriod),
		StartDate:          formatTime(c.StartDate),
		EndDate:            formatTimePtr(c.EndDate),
		CancellationPeriod: c.CancellationPeriod,
		CancellationDate:   formatTimePtr(c.CancellationDate),
		RenewalPeriod:      c.RenewalPeriod,
		ReminderDays:       c.ReminderDays,
		Status:             string(c.Status),
		PaymentMethod:      string(c.PaymentMethod),
		Notes:              c.Notes,
		CreatedAt:          formatTime(c.CreatedAt),
		UpdatedAt:          formatTime(c.UpdatedAt),
	}
}

func parseTimeOr(s string, fallback time.Time) time.Time {
	if t := parseTimePtr(s); t != nil {
		return *t
	}
	return fallback
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
