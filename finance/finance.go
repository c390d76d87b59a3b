package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/models"
)

var hundred = decimal.NewFromInt(100)

// Terms is the financial input for a loan. Tenure takes precedence over
// DurationWeeks; when both are zero the frequency default applies.
type Terms struct {
	Principal     decimal.Decimal
	Rate          decimal.Decimal // percent
	Frequency     string
	InterestType  string
	Tenure        int
	DurationWeeks int
}

// Figures is the derived financial shape of a loan. All monetary values
// are rounded to 2 decimal places at this boundary only.
type Figures struct {
	Tenure            int
	TotalInterest     decimal.Decimal
	TotalPayable      decimal.Decimal
	InstallmentAmount decimal.Decimal
}

// InstallmentCount resolves the number of installments from an explicit
// tenure, a duration in weeks, or the per-frequency default. Never
// returns less than 1.
func InstallmentCount(frequency string, tenure, durationWeeks int) int {
	if tenure > 0 {
		return tenure
	}

	var count int
	if durationWeeks > 0 {
		switch frequency {
		case models.FrequencyWeekly:
			count = durationWeeks
		case models.FrequencyBiWeekly:
			count = durationWeeks / 2
		case models.FrequencyMonthly:
			count = durationWeeks / 4
		default:
			count = durationWeeks
		}
	} else {
		switch frequency {
		case models.FrequencyWeekly:
			count = 16
		case models.FrequencyBiWeekly:
			count = 8
		default: // Monthly
			count = 4
		}
	}

	if count < 1 {
		count = 1
	}
	return count
}

// Compute derives interest, total payable and per-installment amount
// from the given terms. Flat interest is charged once on the principal;
// Installment interest is charged per period.
func Compute(t Terms) (Figures, error) {
	if t.Principal.IsNegative() {
		return Figures{}, fmt.Errorf("loan amount must not be negative, got %s", t.Principal)
	}
	if t.Rate.IsNegative() {
		return Figures{}, fmt.Errorf("interest rate must not be negative, got %s", t.Rate)
	}

	count := InstallmentCount(t.Frequency, t.Tenure, t.DurationWeeks)

	interest := t.Principal.Mul(t.Rate).Div(hundred)
	if t.InterestType != models.InterestFlat {
		interest = interest.Mul(decimal.NewFromInt(int64(count)))
	}

	payable := t.Principal.Add(interest)

	return Figures{
		Tenure:            count,
		TotalInterest:     interest.Round(2),
		TotalPayable:      payable.Round(2),
		InstallmentAmount: payable.Div(decimal.NewFromInt(int64(count))).Round(2),
	}, nil
}
