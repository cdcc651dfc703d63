// Package storage provides the SQLite persistence layer for contracts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/halmertz/vertrag/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrEmptySlice      = errors.New("slice cannot be empty")
	ErrInvalidContract = errors.New("invalid contract")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateContract validates a single contract before it is written.
func validateContract(c *model.Contract) error {
	if c == nil {
		return fmt.Errorf("%w: contract", ErrNilParameter)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidContract)
	}
	if c.StartDate.IsZero() {
		return fmt.Errorf("%w: missing start date", ErrInvalidContract)
	}
	if c.BillingPeriod != "" && !c.BillingPeriod.IsValid() {
		return fmt.Errorf("%w: unknown billing period %q", ErrInvalidContract, c.BillingPeriod)
	}
	if c.Status != "" && !c.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidContract, c.Status)
	}
	return nil
}

// validateContracts validates a slice of contracts.
func validateContracts(contracts []model.Contract) error {
	if contracts == nil {
		return fmt.Errorf("%w: contracts", ErrNilParameter)
	}
	if len(contracts) == 0 {
		return fmt.Errorf("%w: contracts", ErrEmptySlice)
	}
	for i := range contracts {
		if err := validateContract(&contracts[i]); err != nil {
			return fmt.Errorf("contract at index %d: %w", i, err)
		}
	}
	return nil
}
