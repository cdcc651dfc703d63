// Package normalize derives the computed contract fields from their source
// fields. The functions are pure: every caller that writes a contract
// (manual entry, spreadsheet import, backup restore) funnels through the
// same derivations via the storage layer.
package normalize

import (
	"time"

	"github.com/halmertz/vertrag/internal/model"
)

// MonthlyCost normalizes a billing cost to a one-month cadence.
//
// When both billingCost and a valid period are supplied, the result is
// billingCost divided by the period's month count. Otherwise the existing
// monthly cost is returned unchanged; legacy records and partial updates
// only carry MonthlyCost, and recomputing from stale inputs would corrupt
// them.
func MonthlyCost(billingCost *float64, period model.BillingPeriod, existing float64) float64 {
	if billingCost == nil || !period.IsValid() {
		return existing
	}
	return *billingCost / float64(period.Months())
}

// CancellationDate computes the last day notice can be given: endDate minus
// cancellationPeriod days. It returns nil when the contract has no end date;
// an open-ended contract has no cancellation deadline.
//
// The subtraction is done on the UTC instant in whole 24h increments, so a
// cancellation period of n days always moves the deadline exactly n calendar
// days in UTC regardless of local daylight-saving transitions.
func CancellationDate(endDate *time.Time, cancellationPeriod int) *time.Time {
	if endDate == nil {
		return nil
	}
	d := endDate.UTC().Add(-time.Duration(cancellationPeriod) * 24 * time.Hour)
	return &d
}
