package model

import "time"

// ContractStatus tracks the lifecycle of a contract. The wire values are the
// German terms used by the original data format so that existing backups and
// spreadsheet exports stay readable.
type ContractStatus string

const (
	// StatusActive is the default status for newly saved contracts.
	StatusActive ContractStatus = "aktiv"
	// StatusCancelled marks contracts the user has given notice on.
	StatusCancelled ContractStatus = "gekündigt"
	// StatusEnded marks contracts that have run out.
	StatusEnded ContractStatus = "beendet"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s ContractStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusEnded:
		return true
	}
	return false
}

// BillingPeriod is the cadence at which BillingCost is charged.
type BillingPeriod string

const (
	// BillingMonthly bills once per month.
	BillingMonthly BillingPeriod = "monthly"
	// BillingQuarterly bills every three months.
	BillingQuarterly BillingPeriod = "quarterly"
	// BillingHalfYearly bills every six months.
	BillingHalfYearly BillingPeriod = "half-yearly"
	// BillingYearly bills once per year.
	BillingYearly BillingPeriod = "yearly"
)

// Months returns the canonical month count of the billing period, or 0 for
// an unknown period.
func (p BillingPeriod) Months() int {
	switch p {
	case BillingMonthly:
		return 1
	case BillingQuarterly:
		return 3
	case BillingHalfYearly:
		return 6
	case BillingYearly:
		return 12
	}
	return 0
}

// IsValid reports whether p is one of the supported billing periods.
func (p BillingPeriod) IsValid() bool {
	return p.Months() > 0
}

// PaymentMethod describes how a contract is paid.
type PaymentMethod string

const (
	// PaymentSEPA is direct debit.
	PaymentSEPA PaymentMethod = "sepa"
	// PaymentInvoice is payment on invoice.
	PaymentInvoice PaymentMethod = "rechnung"
	// PaymentCreditCard is credit card payment.
	PaymentCreditCard PaymentMethod = "kreditkarte"
	// PaymentCash is cash payment.
	PaymentCash PaymentMethod = "bar"
	// PaymentOther covers everything else.
	PaymentOther PaymentMethod = "other"
)

// Contract represents a recurring obligation tracked by the user.
//
// MonthlyCost and CancellationDate are derived fields; the storage layer
// recomputes them on every save. BillingCost is a pointer because older
// records only carry MonthlyCost, and the derivation must be able to tell
// "no billing cost recorded" apart from a genuine zero.
type Contract struct {
	StartDate          time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	EndDate            *time.Time
	CancellationDate   *time.Time
	BillingCost        *float64
	ID                 string
	Name               string
	Category           Category
	Subcategory        string
	Provider           string
	ContractNumber     string
	Notes              string
	Status             ContractStatus
	BillingPeriod      BillingPeriod
	PaymentMethod      PaymentMethod
	MonthlyCost        float64
	CancellationPeriod int
	RenewalPeriod      int
	ReminderDays       int
}

// BillingCostOrMonthly returns the recorded billing cost, falling back to
// the monthly cost for records that predate per-period billing.
func (c *Contract) BillingCostOrMonthly() float64 {
	if c.BillingCost != nil {
		return *c.BillingCost
	}
	return c.MonthlyCost
}
