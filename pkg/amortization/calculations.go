// Package amortization computes fixed-rate annuity loan schedules.
package amortization

import (
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// LoanParameters holds the inputs of a schedule computation.
type LoanParameters struct {
	Principal                 float64 `json:"principal" yaml:"principal"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent" yaml:"annualInterestRatePercent"`
	TermYears                 int     `json:"termYears" yaml:"termYears"`
}

// TermMonths returns the number of monthly payments.
func (p LoanParameters) TermMonths() int {
	return p.TermYears * constants.MonthsPerYear
}

// MonthlyRate returns the periodic rate as a fraction, e.g. 0.0025 for 3%.
func (p LoanParameters) MonthlyRate() float64 {
	return p.AnnualInterestRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// Validate checks the parameters against the accepted ranges.
func (p LoanParameters) Validate() error {
	switch {
	case !mathutil.IsFinite(p.Principal):
		return invalid(FieldPrincipal, p.Principal, "not a finite number")
	case p.Principal <= 0:
		return invalid(FieldPrincipal, p.Principal, "must be positive")
	case p.Principal > constants.MaxPrincipal:
		return invalid(FieldPrincipal, p.Principal,
			fmt.Sprintf("must not exceed %.0f", constants.MaxPrincipal))
	}

	switch {
	case !mathutil.IsFinite(p.AnnualInterestRatePercent):
		return invalid(FieldInterestRate, p.AnnualInterestRatePercent, "not a finite number")
	case p.AnnualInterestRatePercent < 0:
		return invalid(FieldInterestRate, p.AnnualInterestRatePercent, "must not be negative")
	case p.AnnualInterestRatePercent > constants.MaxInterestRate:
		return invalid(FieldInterestRate, p.AnnualInterestRatePercent,
			fmt.Sprintf("must not exceed %.0f", constants.MaxInterestRate))
	}

	switch {
	case p.TermYears <= 0:
		return invalid(FieldTermYears, p.TermYears, "must be positive")
	case p.TermYears > constants.MaxTermYears:
		return invalid(FieldTermYears, p.TermYears,
			fmt.Sprintf("must not exceed %d", constants.MaxTermYears))
	}
	return nil
}

// MonthlyRecord is one month of the schedule. Balances are the values after
// that month's payment.
type MonthlyRecord struct {
	Month                    int     `json:"month" yaml:"month"`
	RemainingLoanBalance     float64 `json:"remainingLoanBalance" yaml:"remainingLoanBalance"`
	PrincipalPaid            float64 `json:"principalPaid" yaml:"principalPaid"`
	RemainingInterestBalance float64 `json:"remainingInterestBalance" yaml:"remainingInterestBalance"`
	InterestPaid             float64 `json:"interestPaid" yaml:"interestPaid"`
}

// ScheduleResult is the full outcome of a schedule computation.
type ScheduleResult struct {
	Parameters     LoanParameters  `json:"parameters" yaml:"parameters"`
	TermMonths     int             `json:"termMonths" yaml:"termMonths"`
	MonthlyRate    float64         `json:"monthlyRate" yaml:"monthlyRate"`
	MonthlyPayment float64         `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalPayback   float64         `json:"totalPayback" yaml:"totalPayback"`
	TotalInterest  float64         `json:"totalInterest" yaml:"totalInterest"`
	Records        []MonthlyRecord `json:"records" yaml:"records"`
}

// CalculateMonthlyPayment returns the fixed monthly payment rounded to a whole
// currency unit. A zero rate splits the principal evenly across the term.
func CalculateMonthlyPayment(principal, monthlyRate float64, termMonths int) float64 {
	if monthlyRate == 0 {
		return mathutil.RoundUnit(principal / float64(termMonths))
	}

	power := math.Pow(1+monthlyRate, float64(termMonths))
	return mathutil.RoundUnit(principal * ((monthlyRate * power) / (power - 1)))
}

// CalculateInterestPayment returns the interest due on a balance for one month,
// rounded to a whole currency unit.
func CalculateInterestPayment(remainingPrincipal, monthlyRate float64) float64 {
	return mathutil.RoundUnit(remainingPrincipal * monthlyRate)
}

// Calculator generates amortization schedules.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new calculator instance
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// ComputeSchedule validates the inputs and produces the schedule using a
// calculator that does not log.
func ComputeSchedule(principal, annualRatePercent float64, termYears int) (ScheduleResult, error) {
	return NewCalculator(nil).Compute(LoanParameters{
		Principal:                 principal,
		AnnualInterestRatePercent: annualRatePercent,
		TermYears:                 termYears,
	})
}

// Compute produces the monthly payment, totals and per-month records for a loan.
func (c *Calculator) Compute(params LoanParameters) (ScheduleResult, error) {
	if err := params.Validate(); err != nil {
		c.logger.Debug("rejected loan parameters",
			zap.String("op", "amortization.Compute"),
			zap.Error(err),
		)
		return ScheduleResult{}, err
	}

	termMonths := params.TermMonths()
	monthlyRate := params.MonthlyRate()
	monthlyPayment := CalculateMonthlyPayment(params.Principal, monthlyRate, termMonths)
	totalPayback := monthlyPayment * float64(termMonths)
	totalInterest := totalPayback - params.Principal

	records := buildRecords(params.Principal, totalInterest, monthlyRate, monthlyPayment, termMonths)

	c.logger.Debug(fmt.Sprintf("computed %d month schedule with payment %.0f", termMonths, monthlyPayment),
		zap.String("op", "amortization.Compute"),
		zap.Float64("principal", params.Principal),
		zap.Float64("annualInterestRatePercent", params.AnnualInterestRatePercent),
		zap.Float64("totalInterest", totalInterest),
	)

	return ScheduleResult{
		Parameters:     params,
		TermMonths:     termMonths,
		MonthlyRate:    monthlyRate,
		MonthlyPayment: monthlyPayment,
		TotalPayback:   totalPayback,
		TotalInterest:  totalInterest,
		Records:        records,
	}, nil
}

// balances is the running state threaded through the monthly fold.
type balances struct {
	loan     float64
	interest float64
}

// buildRecords folds over the months, carrying the balances forward. The final
// month takes whatever is left so the schedule sums exactly to the totals.
func buildRecords(principal, totalInterest, monthlyRate, monthlyPayment float64, termMonths int) []MonthlyRecord {
	records := make([]MonthlyRecord, 0, termMonths)
	state := balances{loan: principal, interest: totalInterest}
	for month := 1; month <= termMonths; month++ {
		var record MonthlyRecord
		if month < termMonths {
			record, state = payMonth(month, state, monthlyRate, monthlyPayment)
		} else {
			record = MonthlyRecord{
				Month:         month,
				PrincipalPaid: state.loan,
				InterestPaid:  state.interest,
			}
		}
		records = append(records, record)
	}
	return records
}

func payMonth(month int, state balances, monthlyRate, monthlyPayment float64) (MonthlyRecord, balances) {
	interestPaid := CalculateInterestPayment(state.loan, monthlyRate)
	principalPaid := monthlyPayment - interestPaid
	next := balances{
		loan:     state.loan - principalPaid,
		interest: state.interest - interestPaid,
	}
	return MonthlyRecord{
		Month:                    month,
		RemainingLoanBalance:     next.loan,
		PrincipalPaid:            principalPaid,
		RemainingInterestBalance: next.interest,
		InterestPaid:             interestPaid,
	}, next
}

// Summary holds column totals of a schedule.
type Summary struct {
	PrincipalPaid float64
	InterestPaid  float64
}

// Totals sums the paid columns of the schedule.
func (r ScheduleResult) Totals() Summary {
	var s Summary
	for _, record := range r.Records {
		s.PrincipalPaid += record.PrincipalPaid
		s.InterestPaid += record.InterestPaid
	}
	return s
}
