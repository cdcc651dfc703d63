package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/halmertz/vertrag/internal/model"
)

type stubStore struct {
	err       error
	contracts []model.Contract
}

func (s *stubStore) GetContractsWithDeadlines(_ context.Context) ([]model.Contract, error) {
	return s.contracts, s.err
}

func deadlineContract(name string, deadline time.Time, reminderDays int) model.Contract {
	return model.Contract{
		Name:             name,
		Status:           model.StatusActive,
		CancellationDate: &deadline,
		ReminderDays:     reminderDays,
	}
}

func TestDue(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		contracts []model.Contract
		wantNames []string
	}{
		{
			name: "inside the window",
			contracts: []model.Contract{
				deadlineContract("Fitnessstudio", now.AddDate(0, 0, 10), 30),
			},
			wantNames: []string{"Fitnessstudio"},
		},
		{
			name: "outside the window",
			contracts: []model.Contract{
				deadlineContract("Hosting", now.AddDate(0, 0, 60), 30),
			},
			wantNames: nil,
		},
		{
			name: "deadline already passed",
			contracts: []model.Contract{
				deadlineContract("Zeitung", now.AddDate(0, 0, -1), 30),
			},
			wantNames: nil,
		},
		{
			name: "boundary day counts",
			contracts: []model.Contract{
				deadlineContract("Versicherung", now.AddDate(0, 0, 30), 30),
			},
			wantNames: []string{"Versicherung"},
		},
		{
			name: "per-contract window",
			contracts: []model.Contract{
				deadlineContract("Kurz", now.AddDate(0, 0, 10), 7),
				deadlineContract("Lang", now.AddDate(0, 0, 10), 14),
			},
			wantNames: []string{"Lang"},
		},
		{
			name: "no deadline is skipped",
			contracts: []model.Contract{
				{Name: "Girokonto", Status: model.StatusActive, ReminderDays: 30},
			},
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(&stubStore{contracts: tt.contracts})
			due, err := checker.Due(context.Background(), now)
			if err != nil {
				t.Fatalf("Due() error = %v", err)
			}

			var names []string
			for _, r := range due {
				names = append(names, r.Contract.Name)
			}
			if len(names) != len(tt.wantNames) {
				t.Fatalf("Due() = %v, want %v", names, tt.wantNames)
			}
			for i := range names {
				if names[i] != tt.wantNames[i] {
					t.Errorf("Due()[%d] = %q, want %q", i, names[i], tt.wantNames[i])
				}
			}
		})
	}
}

func TestDueCountsDays(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.AddDate(0, 0, 10)

	checker := NewChecker(&stubStore{contracts: []model.Contract{
		deadlineContract("Fitnessstudio", deadline, 30),
	}})

	due, err := checker.Due(context.Background(), now)
	if err != nil {
		t.Fatalf("Due() error = %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("Due() returned %d reminders, want 1", len(due))
	}
	if due[0].DaysUntil != 10 {
		t.Errorf("DaysUntil = %d, want 10", due[0].DaysUntil)
	}
}

func TestDuePropagatesStoreError(t *testing.T) {
	wantErr := errors.New("database locked")
	checker := NewChecker(&stubStore{err: wantErr})

	if _, err := checker.Due(context.Background(), time.Now()); !errors.Is(err, wantErr) {
		t.Errorf("Due() error = %v, want %v", err, wantErr)
	}
}

func TestWatchStopsOnContextCancel(t *testing.T) {
	checker := NewChecker(&stubStore{})

	ctx, cancel := context.WithCancel(context.Background())

	checks := 0
	done := make(chan error, 1)
	go func() {
		done <- checker.Watch(ctx, time.Hour, func([]Reminder) {
			checks++
			cancel()
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not stop after cancel")
	}

	if checks == 0 {
		t.Error("Watch() never ran the immediate first check")
	}
}
