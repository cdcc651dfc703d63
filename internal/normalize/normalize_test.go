package normalize

import (
	"testing"
	"time"

	"github.com/halmertz/vertrag/internal/model"
)

func TestMonthlyCost(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }

	tests := []struct {
		billingCost *float64
		name        string
		period      model.BillingPeriod
		existing    float64
		want        float64
	}{
		{
			name:        "monthly billing passes through",
			billingCost: ptr(9.99),
			period:      model.BillingMonthly,
			existing:    0,
			want:        9.99,
		},
		{
			name:        "quarterly billing divides by three",
			billingCost: ptr(90),
			period:      model.BillingQuarterly,
			existing:    0,
			want:        30,
		},
		{
			name:        "half-yearly billing divides by six",
			billingCost: ptr(120),
			period:      model.BillingHalfYearly,
			existing:    0,
			want:        20,
		},
		{
			name:        "yearly billing divides by twelve",
			billingCost: ptr(240),
			period:      model.BillingYearly,
			existing:    0,
			want:        20,
		},
		{
			name:        "missing billing cost keeps existing monthly cost",
			billingCost: nil,
			period:      model.BillingYearly,
			existing:    29.99,
			want:        29.99,
		},
		{
			name:        "unknown period keeps existing monthly cost",
			billingCost: ptr(100),
			period:      model.BillingPeriod("weekly"),
			existing:    12.50,
			want:        12.50,
		},
		{
			name:        "empty period keeps existing monthly cost",
			billingCost: ptr(100),
			period:      "",
			existing:    7,
			want:        7,
		},
		{
			name:        "zero billing cost is a real value",
			billingCost: ptr(0),
			period:      model.BillingMonthly,
			existing:    15,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyCost(tt.billingCost, tt.period, tt.existing)
			if got != tt.want {
				t.Errorf("MonthlyCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMonthlyCostLongerPeriodsCostLess(t *testing.T) {
	cost := 100.0
	periods := []model.BillingPeriod{
		model.BillingMonthly,
		model.BillingQuarterly,
		model.BillingHalfYearly,
		model.BillingYearly,
	}

	prev := MonthlyCost(&cost, periods[0], 0)
	for _, period := range periods[1:] {
		got := MonthlyCost(&cost, period, 0)
		if got >= prev {
			t.Errorf("MonthlyCost(%v) = %v, want less than %v for the shorter period", period, got, prev)
		}
		prev = got
	}
}

func TestCancellationDate(t *testing.T) {
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		endDate            *time.Time
		want               *time.Time
		name               string
		cancellationPeriod int
	}{
		{
			name:               "thirty day notice",
			endDate:            date(2024, time.December, 31),
			cancellationPeriod: 30,
			want:               date(2024, time.December, 1),
		},
		{
			name:               "zero notice keeps the end date",
			endDate:            date(2025, time.June, 15),
			cancellationPeriod: 0,
			want:               date(2025, time.June, 15),
		},
		{
			name:               "notice crossing a year boundary",
			endDate:            date(2025, time.January, 10),
			cancellationPeriod: 90,
			want:               date(2024, time.October, 12),
		},
		{
			name:               "no end date means no deadline",
			endDate:            nil,
			cancellationPeriod: 30,
			want:               nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CancellationDate(tt.endDate, tt.cancellationPeriod)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("CancellationDate() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("CancellationDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCancellationDateLongerNoticeMeansEarlierDeadline(t *testing.T) {
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	short := CancellationDate(&end, 60)
	long := CancellationDate(&end, 90)

	if short == nil || long == nil {
		t.Fatal("expected deadlines for both notice periods")
	}
	if !long.Before(*short) {
		t.Errorf("90 day notice deadline %v is not before 60 day notice deadline %v", long, short)
	}
}

func TestCancellationDateDoesNotMutateInput(t *testing.T) {
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	endCopy := end

	_ = CancellationDate(&end, 30)

	if !end.Equal(endCopy) {
		t.Errorf("end date changed from %v to %v", endCopy, end)
	}
}
