// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"testing"

	"github.com/iwvelando/loan-calculator/internal/report"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/format"
)

// PlainFormatter renders amounts as "<currency> <amount>" with no locale
// data, which keeps assertions on rendered output stable.
type PlainFormatter struct{}

// Format implements format.Formatter.
func (PlainFormatter) Format(amount float64, languageTag string, opts format.Options) (string, error) {
	return fmt.Sprintf("%s %.0f", opts.Currency, amount), nil
}

// MustReport computes a schedule and builds a report with PlainFormatter,
// failing the test on error.
func MustReport(t testing.TB, principal, rate float64, years int) report.Report {
	t.Helper()
	result, err := amortization.ComputeSchedule(principal, rate, years)
	if err != nil {
		t.Fatalf("ComputeSchedule() error = %v", err)
	}
	rep, err := report.Build(result, PlainFormatter{}, "en-US", "USD")
	if err != nil {
		t.Fatalf("report.Build() error = %v", err)
	}
	return rep
}

// FindRow finds a row by month number in a report.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rep report.Report, month int) *report.Row {
	for i := range rep.Rows {
		if rep.Rows[i].Month == month {
			return &rep.Rows[i]
		}
	}
	return nil
}
