package amortization

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// ParseParameters converts the textual form of the loan inputs into
// LoanParameters. Inputs are parsed exactly as decimals before conversion so
// that strings such as "1e3" or "3,5" are rejected rather than guessed at.
func ParseParameters(principalText, rateText, yearsText string) (LoanParameters, error) {
	principal, err := parseDecimal(FieldPrincipal, principalText)
	if err != nil {
		return LoanParameters{}, err
	}

	rate, err := parseDecimal(FieldInterestRate, rateText)
	if err != nil {
		return LoanParameters{}, err
	}

	years, err := parseDecimal(FieldTermYears, yearsText)
	if err != nil {
		return LoanParameters{}, err
	}
	if !years.IsInteger() {
		return LoanParameters{}, invalid(FieldTermYears, yearsText, "must be a whole number of years")
	}
	if years.GreaterThan(decimal.NewFromInt(constants.MaxTermYears)) {
		return LoanParameters{}, invalid(FieldTermYears, yearsText,
			fmt.Sprintf("must not exceed %d", constants.MaxTermYears))
	}

	params := LoanParameters{
		Principal:                 principal.InexactFloat64(),
		AnnualInterestRatePercent: rate.InexactFloat64(),
		TermYears:                 int(years.IntPart()),
	}
	if err := params.Validate(); err != nil {
		return LoanParameters{}, err
	}
	return params, nil
}

func parseDecimal(field, text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Decimal{}, invalid(field, text, "value is required")
	}
	if strings.ContainsAny(trimmed, "eE") {
		return decimal.Decimal{}, invalid(field, text, "not a number")
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, invalid(field, text, "not a number")
	}
	return value, nil
}
