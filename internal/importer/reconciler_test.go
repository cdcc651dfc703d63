package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halmertz/vertrag/internal/importer"
	"github.com/halmertz/vertrag/internal/model"
	"github.com/halmertz/vertrag/internal/testutil"
)

func TestProcessRowsSkipsBadRowsAndContinues(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	rows := []importer.Row{
		{"Name": "", "Kategorie": "strom"},
		{"Name": "Stadtwerke", "Kategorie": "strom", "Kosten": "45,50"},
	}

	result := importer.ProcessRows(ctx, store, rows, nil)

	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "line 1:"), "error should name the 1-indexed row: %s", result.Errors[0])

	contracts, err := store.ListContracts(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, "Stadtwerke", contracts[0].Name)
	assert.Equal(t, 45.50, contracts[0].MonthlyCost, "comma decimal should parse")
}

func TestProcessRowsDerivesMonthlyCost(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	rows := []importer.Row{
		{
			"Name":                "KFZ-Versicherung",
			"Kategorie":           "kfz-versicherung",
			"Kosten":              "90",
			"Abrechnungszeitraum": "quarterly",
		},
	}

	result := importer.ProcessRows(ctx, store, rows, nil)
	require.Empty(t, result.Errors)
	require.Equal(t, 1, result.Succeeded)

	contracts, err := store.ListContracts(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 1)

	c := contracts[0]
	assert.Equal(t, 30.0, c.MonthlyCost, "quarterly 90 should normalize to 30 per month")
	require.NotNil(t, c.BillingCost)
	assert.Equal(t, 90.0, *c.BillingCost)
	assert.Equal(t, model.BillingQuarterly, c.BillingPeriod)
	assert.Equal(t, model.StatusActive, c.Status, "imported rows default to active")
}

func TestProcessRowsCallsProgress(t *testing.T) {
	store := testutil.SetupTestDB(t)

	rows := []importer.Row{
		{"Name": "Eins"},
		{"Name": ""},
		{"Name": "Drei"},
	}

	calls := 0
	importer.ProcessRows(context.Background(), store, rows, func() { calls++ })

	assert.Equal(t, len(rows), calls, "progress should tick for skipped rows too")
}

func TestReconcileAliasesAndDefaults(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		row    importer.Row
		verify func(t *testing.T, c model.Contract)
		name   string
	}{
		{
			name: "german labels",
			row: importer.Row{
				"Name":                   "DSL",
				"Kategorie":              "internet",
				"Anbieter":               "Telekom",
				"Vertragsnummer":         "K-123",
				"Kosten":                 "39,95",
				"Vertragsbeginn":         "2023-04-01",
				"Kündigungsfrist (Tage)": "90",
				"Erinnerung":             "14",
				"Zahlungsart":            "sepa",
				"Notizen":                "Aktionspreis",
			},
			verify: func(t *testing.T, c model.Contract) {
				assert.Equal(t, "Telekom", c.Provider)
				assert.Equal(t, "K-123", c.ContractNumber)
				assert.Equal(t, 39.95, c.MonthlyCost)
				assert.Equal(t, 90, c.CancellationPeriod)
				assert.Equal(t, 14, c.ReminderDays)
				assert.Equal(t, model.PaymentSEPA, c.PaymentMethod)
				assert.Equal(t, "Aktionspreis", c.Notes)
				assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), c.StartDate.UTC())
			},
		},
		{
			name: "canonical field names",
			row: importer.Row{
				"name":          "Cloud",
				"category":      "cloud-speicher",
				"provider":      "Hetzner",
				"billingCost":   "60",
				"billingPeriod": "yearly",
				"startDate":     "01.02.2024",
			},
			verify: func(t *testing.T, c model.Contract) {
				assert.Equal(t, "Hetzner", c.Provider)
				assert.Equal(t, 5.0, c.MonthlyCost)
				assert.Equal(t, model.BillingYearly, c.BillingPeriod)
				assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), c.StartDate.UTC())
			},
		},
		{
			name: "billing cost falls back to monthly column",
			row: importer.Row{
				"Name":              "Zeitung",
				"Monatliche Kosten": "12,50",
			},
			verify: func(t *testing.T, c model.Contract) {
				require.NotNil(t, c.BillingCost)
				assert.Equal(t, 12.50, *c.BillingCost)
				assert.Equal(t, 12.50, c.MonthlyCost)
			},
		},
		{
			name: "unknown category becomes custom, defaults applied",
			row: importer.Row{
				"Name": "Sonstiges",
			},
			verify: func(t *testing.T, c model.Contract) {
				assert.Equal(t, model.CategoryCustom, c.Category)
				assert.Equal(t, model.BillingMonthly, c.BillingPeriod)
				assert.Equal(t, 30, c.CancellationPeriod)
				assert.Equal(t, 30, c.ReminderDays)
				assert.False(t, c.StartDate.IsZero(), "missing start date should default to now")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Clear(ctx))

			result := importer.ProcessRows(ctx, store, []importer.Row{tt.row}, nil)
			require.Empty(t, result.Errors)
			require.Equal(t, 1, result.Succeeded)

			contracts, err := store.ListContracts(ctx)
			require.NoError(t, err)
			require.Len(t, contracts, 1)
			tt.verify(t, contracts[0])
		})
	}
}

func TestProcessRowsPresentButEmptyColumnWins(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	// The CSV decoder materializes every header column, so an empty Kosten
	// cell is present and must NOT fall through to the monthly alias.
	rows := []importer.Row{
		{
			"Name":              "Hosting",
			"Kosten":            "",
			"Monatliche Kosten": "25",
		},
	}

	result := importer.ProcessRows(ctx, store, rows, nil)
	require.Equal(t, 1, result.Succeeded)

	contracts, err := store.ListContracts(ctx)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	require.NotNil(t, contracts[0].BillingCost)
	assert.Equal(t, 0.0, *contracts[0].BillingCost)
	assert.Equal(t, 0.0, contracts[0].MonthlyCost, "an explicit empty cost column means zero, not the monthly fallback")
}
