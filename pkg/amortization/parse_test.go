package amortization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameters(t *testing.T) {
	params, err := ParseParameters("50000000", "3.00", "25")
	require.NoError(t, err)
	assert.Equal(t, LoanParameters{Principal: 50000000, AnnualInterestRatePercent: 3, TermYears: 25}, params)
	assert.Equal(t, 300, params.TermMonths())
	assert.InDelta(t, 0.0025, params.MonthlyRate(), 1e-12)
}

func TestParseParametersTrimsWhitespace(t *testing.T) {
	params, err := ParseParameters(" 1200 ", "\t0\n", " 1")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, params.Principal)
	assert.Equal(t, 0.0, params.AnnualInterestRatePercent)
	assert.Equal(t, 1, params.TermYears)
}

func TestParseParametersAcceptsWholeYearsWithDecimals(t *testing.T) {
	params, err := ParseParameters("1000", "4.75", "10.0")
	require.NoError(t, err)
	assert.Equal(t, 10, params.TermYears)
	assert.Equal(t, 4.75, params.AnnualInterestRatePercent)
}

func TestParseParametersInvalid(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		years     string
		field     string
	}{
		{"Empty principal", "", "3", "25", FieldPrincipal},
		{"Text principal", "lots", "3", "25", FieldPrincipal},
		{"Negative principal", "-1", "3", "25", FieldPrincipal},
		{"Exponent principal", "5e7", "3", "25", FieldPrincipal},
		{"Comma decimal rate", "1000", "3,5", "25", FieldInterestRate},
		{"Negative rate", "1000", "-3", "25", FieldInterestRate},
		{"Missing rate", "1000", "  ", "25", FieldInterestRate},
		{"Zero years", "1000", "3", "0", FieldTermYears},
		{"Fractional years", "1000", "3", "2.5", FieldTermYears},
		{"Huge years", "1000", "3", "99999999999999999999999", FieldTermYears},
		{"Text years", "1000", "3", "twenty", FieldTermYears},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParameters(tt.principal, tt.rate, tt.years)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestInputErrorMessage(t *testing.T) {
	err := &InputError{Field: FieldPrincipal, Value: "-1", Reason: "must be positive"}
	assert.Equal(t, `invalid principal "-1": must be positive`, err.Error())
}
