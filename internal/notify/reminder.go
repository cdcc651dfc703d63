// Package notify surfaces upcoming cancellation deadlines. It only ever
// reads contract data; all writes stay with the user-facing save paths.
package notify

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/halmertz/vertrag/internal/model"
)

// DailyInterval is the cadence of the background deadline check.
const DailyInterval = 24 * time.Hour

// Store is the read-only view of the contract store the checker needs.
type Store interface {
	GetContractsWithDeadlines(ctx context.Context) ([]model.Contract, error)
}

// Reminder is one contract whose cancellation deadline is close enough to
// alert on.
type Reminder struct {
	Contract  model.Contract
	DaysUntil int
}

// Checker finds contracts inside their reminder window.
type Checker struct {
	store Store
}

// NewChecker creates a deadline checker backed by the given store.
func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

// Due returns the contracts whose cancellation deadline lies within their
// per-contract reminder window, soonest deadline first. A deadline that has
// already passed is not a reminder; the chance to cancel is gone.
func (c *Checker) Due(ctx context.Context, now time.Time) ([]Reminder, error) {
	contracts, err := c.store.GetContractsWithDeadlines(ctx)
	if err != nil {
		return nil, err
	}

	var due []Reminder
	for i := range contracts {
		contract := contracts[i]
		if contract.CancellationDate == nil {
			continue
		}

		daysUntil := int(math.Ceil(contract.CancellationDate.Sub(now).Hours() / 24))
		if daysUntil > 0 && daysUntil <= contract.ReminderDays {
			due = append(due, Reminder{Contract: contract, DaysUntil: daysUntil})
		}
	}

	return due, nil
}

// Watch runs the deadline check on a fixed interval until the context is
// canceled, passing each batch of due reminders to handle. The first check
// runs immediately.
func (c *Checker) Watch(ctx context.Context, interval time.Duration, handle func([]Reminder)) error {
	if interval <= 0 {
		interval = DailyInterval
	}

	check := func() {
		due, err := c.Due(ctx, time.Now())
		if err != nil {
			slog.Error("Deadline check failed", "error", err)
			return
		}
		handle(due)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			check()
		}
	}
}
