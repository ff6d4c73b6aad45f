package report

import (
	"errors"
	"fmt"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// plainFormatter renders amounts as "<currency> <amount>" so assertions stay
// independent of locale data.
type plainFormatter struct{}

func (plainFormatter) Format(amount float64, languageTag string, opts format.Options) (string, error) {
	return fmt.Sprintf("%s %.0f", opts.Currency, amount), nil
}

type failingFormatter struct{}

func (failingFormatter) Format(float64, string, format.Options) (string, error) {
	return "", errors.New("formatter unavailable")
}

func TestCalculateReferenceMortgage(t *testing.T) {
	rep, err := Calculate(zap.NewNop(), plainFormatter{}, Request{
		Principal:    "50000000",
		InterestRate: "3.00",
		Years:        "25",
		Language:     "hu-HU",
		Currency:     "HUF",
	})
	require.NoError(t, err)

	assert.Equal(t, "hu-HU", rep.Language)
	assert.Equal(t, "HUF", rep.Currency)
	assert.Equal(t, Summary{
		MonthlyPayment: "HUF 237106",
		TotalPayback:   "HUF 71131800",
		TotalInterest:  "HUF 21131800",
	}, rep.Summary)

	require.Len(t, rep.Rows, 300)
	assert.Equal(t, Row{
		Month:        1,
		LoanLeft:     "HUF 49887894",
		LoanPaid:     "HUF 112106",
		InterestLeft: "HUF 21006800",
		InterestPaid: "HUF 125000",
	}, rep.Rows[0])
	assert.Equal(t, Row{
		Month:        300,
		LoanLeft:     "HUF 0",
		LoanPaid:     "HUF 236373",
		InterestLeft: "HUF 0",
		InterestPaid: "HUF 733",
	}, rep.Rows[299])
	assert.Len(t, rep.Schedule.Records, 300)
}

func TestCalculateAppliesDefaultSelection(t *testing.T) {
	rep, err := Calculate(nil, plainFormatter{}, Request{Principal: "1200", InterestRate: "0", Years: "1"})
	require.NoError(t, err)
	assert.Equal(t, "hu-HU", rep.Language)
	assert.Equal(t, "HUF", rep.Currency)
	assert.Equal(t, "HUF 100", rep.Summary.MonthlyPayment)
}

func TestCalculateWithLocaleFormatter(t *testing.T) {
	rep, err := Calculate(nil, format.NewLocaleFormatter(), Request{
		Principal:    "100000",
		InterestRate: "5",
		Years:        "1",
		Language:     "en-US",
		Currency:     "USD",
	})
	require.NoError(t, err)
	assert.Contains(t, rep.Summary.MonthlyPayment, "8,561.00")
	assert.Contains(t, rep.Summary.TotalPayback, "102,732.00")
	assert.Contains(t, rep.Rows[0].LoanLeft, "91,856.00")
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name   string
		req    Request
		target error
	}{
		{
			name:   "Non-numeric principal",
			req:    Request{Principal: "abc", InterestRate: "3", Years: "25"},
			target: amortization.ErrInvalidInput,
		},
		{
			name:   "Negative principal",
			req:    Request{Principal: "-1", InterestRate: "3", Years: "25"},
			target: amortization.ErrInvalidInput,
		},
		{
			name:   "Zero years",
			req:    Request{Principal: "1000", InterestRate: "3", Years: "0"},
			target: amortization.ErrInvalidInput,
		},
		{
			name:   "Unsupported language",
			req:    Request{Principal: "1000", InterestRate: "3", Years: "1", Language: "ja-JP"},
			target: format.ErrUnsupportedLanguage,
		},
		{
			name:   "Unsupported currency",
			req:    Request{Principal: "1000", InterestRate: "3", Years: "1", Currency: "CHF"},
			target: format.ErrUnsupportedCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := Calculate(zap.NewNop(), plainFormatter{}, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, rep.Rows)
		})
	}
}

func TestBuildPropagatesFormatterErrors(t *testing.T) {
	result, err := amortization.ComputeSchedule(1200, 0, 1)
	require.NoError(t, err)

	_, err = Build(result, failingFormatter{}, "en-US", "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatter unavailable")
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"Month", "Loan left", "Loan paid in month", "Interest left", "Interest paid in month"}, Columns)
}
