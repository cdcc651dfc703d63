// Package importer ingests contracts from spreadsheet-shaped files.
//
// Rows arrive as flat key-value maps whose keys are presentation labels
// ("Name", "Kategorie", ...) or canonical field names, depending on where
// the file came from. Each field is resolved through an ordered alias list,
// each row is validated independently, and every valid row goes through the
// same save path as manual entry so the derivation rules apply uniformly.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/halmertz/vertrag/internal/model"
)

// Row is one decoded spreadsheet row. Presence of a key means the source
// file had that column for this row, even if the cell was empty.
type Row map[string]string

// Result reports a finished batch: how many rows were saved and a
// human-readable, 1-indexed error per skipped row.
type Result struct {
	Errors    []string
	Succeeded int
}

// Saver is the subset of the storage layer the reconciler needs.
type Saver interface {
	SaveContract(ctx context.Context, c *model.Contract) (string, error)
}

// ProcessRows reconciles and saves a batch of rows. A bad row records an
// error and is skipped; it never aborts the batch. progress, when non-nil,
// is called once per processed row.
func ProcessRows(ctx context.Context, saver Saver, rows []Row, progress func()) Result {
	var result Result

	for i, row := range rows {
		if progress != nil {
			progress()
		}

		contract, err := reconcileRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}

		if _, err := saver.SaveContract(ctx, contract); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}
		result.Succeeded++
	}

	return result
}

// reconcileRow maps one loosely-typed row onto a contract.
func reconcileRow(row Row) (*model.Contract, error) {
	name := stringValue(row, "Name", "name")
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	category := model.Category(stringValue(row, "Kategorie", "category"))
	if category == "" {
		category = model.CategoryCustom
	}

	period := model.BillingPeriod(stringValue(row, "Abrechnungszeitraum", "billingPeriod"))
	if period == "" {
		period = model.BillingMonthly
	}

	// Billing cost falls back to the monthly figure so quarterly or yearly
	// imports without an explicit cost column keep a usable approximation
	// instead of being zeroed.
	billingCost := floatValue(row, "Kosten", "billingCost", "Monatliche Kosten", "monthlyCost")

	startDate := time.Now()
	if t := parseDate(stringValue(row, "Vertragsbeginn", "startDate")); t != nil {
		startDate = *t
	}

	cancellationPeriod := intValue(row, "Kündigungsfrist (Tage)", "cancellationPeriod")
	if cancellationPeriod == 0 {
		cancellationPeriod = 30
	}
	reminderDays := intValue(row, "Erinnerung", "reminderDays")
	if reminderDays == 0 {
		reminderDays = 30
	}

	return &model.Contract{
		Name:               name,
		Category:           category,
		Provider:           stringValue(row, "Anbieter", "provider"),
		ContractNumber:     stringValue(row, "Vertragsnummer", "contractNumber"),
		MonthlyCost:        floatValue(row, "Monatliche Kosten", "monthlyCost"),
		BillingCost:        &billingCost,
		BillingPeriod:      period,
		StartDate:          startDate,
		EndDate:            parseDate(stringValue(row, "Vertragsende", "endDate")),
		CancellationPeriod: cancellationPeriod,
		ReminderDays:       reminderDays,
		PaymentMethod:      model.PaymentMethod(stringValue(row, "Zahlungsart", "paymentMethod")),
		Notes:              stringValue(row, "Notizen", "notes"),
	}, nil
}

// stringValue returns the value of the first alias present in the row. An
// existing column with an empty cell still counts as present; missing
// columns fall through to the next alias.
func stringValue(row Row, aliases ...string) string {
	for _, key := range aliases {
		if v, ok := row[key]; ok {
			return v
		}
	}
	return ""
}

// floatValue resolves the aliases like stringValue and parses the result,
// returning 0 for missing or unparsable values.
func floatValue(row Row, aliases ...string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(stringValue(row, aliases...)), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// intValue resolves the aliases and parses an integer, returning 0 for
// missing or unparsable values.
func intValue(row Row, aliases ...string) int {
	v, err := strconv.Atoi(strings.TrimSpace(stringValue(row, aliases...)))
	if err != nil {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02.01.2006",
}

// parseDate accepts the export date format, full timestamps, and the German
// day-first form. Anything else is treated as absent.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
