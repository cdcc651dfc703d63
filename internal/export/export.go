// Package export renders contracts into the spreadsheet formats the
// importer reads back: semicolon-delimited CSV and XLSX, both with the
// German presentation-label headers and dates as YYYY-MM-DD.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/halmertz/vertrag/internal/model"
)

// SheetName is the worksheet contracts are written to.
const SheetName = "Verträge"

// Headers is the exported column order. The importer accepts these labels
// as field aliases, so an exported file re-imports cleanly.
var Headers = []string{
	"Name",
	"Kategorie",
	"Anbieter",
	"Vertragsnummer",
	"Monatliche Kosten",
	"Kosten",
	"Abrechnungszeitraum",
	"Vertragsbeginn",
	"Vertragsende",
	"Kündigungsfrist (Tage)",
	"Kündigungsdatum",
	"Zahlungsart",
	"Notizen",
}

// EncodeCSV renders contracts as semicolon-delimited CSV.
func EncodeCSV(contracts []model.Contract) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range contracts {
		if err := w.Write(rowValues(&contracts[i])); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeXLSX renders contracts as an XLSX workbook with a single sheet.
func EncodeXLSX(contracts []model.Contract) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(SheetName, cell, &row)
	}

	if err := writeRow(1, Headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i := range contracts {
		if err := writeRow(i+2, rowValues(&contracts[i])); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(c *model.Contract) []string {
	period := c.BillingPeriod
	if period == "" {
		period = model.BillingMonthly
	}
	return []string{
		c.Name,
		string(c.Category),
		c.Provider,
		c.ContractNumber,
		formatAmount(c.MonthlyCost),
		formatAmount(c.BillingCostOrMonthly()),
		string(period),
		formatDate(&c.StartDate),
		formatDate(c.EndDate),
		strconv.Itoa(c.CancellationPeriod),
		formatDate(c.CancellationDate),
		string(c.PaymentMethod),
		c.Notes,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
