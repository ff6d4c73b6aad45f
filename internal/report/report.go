// Package report turns raw calculator input into a formatted amortization
// report: it parses the text fields, computes the schedule and formats every
// figure for the selected language and currency.
package report

import (
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"go.uber.org/zap"
)

// Request holds the calculator form exactly as entered.
type Request struct {
	Principal    string `json:"principal" yaml:"principal"`
	InterestRate string `json:"interestRate" yaml:"interestRate"`
	Years        string `json:"years" yaml:"years"`
	Language     string `json:"language" yaml:"language"`
	Currency     string `json:"currency" yaml:"currency"`
}

// WithDefaults fills empty selections with the calculator defaults. Loan
// fields are left alone so that a missing value is reported as invalid input.
func (r Request) WithDefaults() Request {
	if r.Language == "" {
		r.Language = constants.DefaultLanguage
	}
	if r.Currency == "" {
		r.Currency = constants.DefaultCurrency
	}
	return r
}

// Summary holds the formatted headline figures.
type Summary struct {
	MonthlyPayment string `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalPayback   string `json:"totalPayback" yaml:"totalPayback"`
	TotalInterest  string `json:"totalInterest" yaml:"totalInterest"`
}

// Row is one formatted schedule line.
type Row struct {
	Month        int    `json:"month" yaml:"month"`
	LoanLeft     string `json:"loanLeft" yaml:"loanLeft"`
	LoanPaid     string `json:"loanPaid" yaml:"loanPaid"`
	InterestLeft string `json:"interestLeft" yaml:"interestLeft"`
	InterestPaid string `json:"interestPaid" yaml:"interestPaid"`
}

// Report is a computed schedule together with its formatted rendering.
type Report struct {
	Language string                      `json:"language" yaml:"language"`
	Currency string                      `json:"currency" yaml:"currency"`
	Schedule amortization.ScheduleResult `json:"schedule" yaml:"schedule"`
	Summary  Summary                     `json:"summary" yaml:"summary"`
	Rows     []Row                       `json:"rows" yaml:"rows"`
}

// Column headings of the schedule table.
var Columns = []string{"Month", "Loan left", "Loan paid in month", "Interest left", "Interest paid in month"}

// Summary labels.
const (
	LabelMonthlyPayment = "Paid monthly"
	LabelTotalPayback   = "Full payback"
	LabelTotalInterest  = "Full interest"
)

// Build formats a computed schedule for the given selection.
func Build(result amortization.ScheduleResult, f format.Formatter, languageTag, currencyCode string) (Report, error) {
	bound, err := format.Bind(f, languageTag, currencyCode)
	if err != nil {
		return Report{}, err
	}

	var summary Summary
	for _, field := range []struct {
		dst    *string
		amount float64
	}{
		{&summary.MonthlyPayment, result.MonthlyPayment},
		{&summary.TotalPayback, result.TotalPayback},
		{&summary.TotalInterest, result.TotalInterest},
	} {
		if *field.dst, err = bound.Format(field.amount); err != nil {
			return Report{}, fmt.Errorf("failed to format summary: %w", err)
		}
	}

	rows := make([]Row, 0, len(result.Records))
	for _, record := range result.Records {
		row, err := formatRow(bound, record)
		if err != nil {
			return Report{}, fmt.Errorf("failed to format month %d: %w", record.Month, err)
		}
		rows = append(rows, row)
	}

	return Report{
		Language: bound.Language(),
		Currency: bound.Currency(),
		Schedule: result,
		Summary:  summary,
		Rows:     rows,
	}, nil
}

func formatRow(bound *format.Bound, record amortization.MonthlyRecord) (Row, error) {
	row := Row{Month: record.Month}
	var err error
	if row.LoanLeft, err = bound.Format(record.RemainingLoanBalance); err != nil {
		return Row{}, err
	}
	if row.LoanPaid, err = bound.Format(record.PrincipalPaid); err != nil {
		return Row{}, err
	}
	if row.InterestLeft, err = bound.Format(record.RemainingInterestBalance); err != nil {
		return Row{}, err
	}
	if row.InterestPaid, err = bound.Format(record.InterestPaid); err != nil {
		return Row{}, err
	}
	return row, nil
}

// Calculate parses the request, computes the schedule and builds the report.
// The language and currency are checked before any computation happens.
func Calculate(logger *zap.Logger, f format.Formatter, req Request) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	req = req.WithDefaults()

	if err := format.ValidateLanguage(req.Language); err != nil {
		return Report{}, err
	}
	if err := format.ValidateCurrency(req.Currency); err != nil {
		return Report{}, err
	}

	params, err := amortization.ParseParameters(req.Principal, req.InterestRate, req.Years)
	if err != nil {
		logger.Debug("failed to parse loan parameters",
			zap.String("op", "report.Calculate"),
			zap.Error(err),
		)
		return Report{}, err
	}

	result, err := amortization.NewCalculator(logger).Compute(params)
	if err != nil {
		return Report{}, err
	}

	return Build(result, f, req.Language, req.Currency)
}
