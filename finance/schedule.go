package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/models"
)

// ScheduleEntry is one position in a generated repayment schedule.
type ScheduleEntry struct {
	InstallmentNo int
	Amount        decimal.Decimal
	DueDate       time.Time
	Status        string
}

var reconcileThreshold = decimal.NewFromFloat(0.001)

// GenerateSchedule produces the full repayment schedule for a loan:
// count installments of equal rounded amounts due at frequency intervals
// after startDate, every entry Pending. Pure and deterministic; identical
// inputs always yield identical schedules.
//
// Rounding drift from the per-installment division is folded into the
// last entry so the schedule sums to totalPayable exactly.
func GenerateSchedule(totalPayable decimal.Decimal, startDate time.Time, frequency string, count int) []ScheduleEntry {
	if count < 1 {
		count = 1
	}

	per := totalPayable.Div(decimal.NewFromInt(int64(count))).Round(2)

	entries := make([]ScheduleEntry, 0, count)
	for i := 1; i <= count; i++ {
		entries = append(entries, ScheduleEntry{
			InstallmentNo: i,
			Amount:        per,
			DueDate:       dueDate(startDate, frequency, i),
			Status:        models.InstallmentPending,
		})
	}

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	diff := totalPayable.Sub(sum)
	if diff.Abs().GreaterThan(reconcileThreshold) {
		last := &entries[len(entries)-1]
		last.Amount = last.Amount.Add(diff).Round(2)
	}

	return entries
}

// dueDate advances startDate by i periods. Monthly uses calendar month
// arithmetic, rolling over year boundaries (Nov + 2mo -> Jan).
func dueDate(startDate time.Time, frequency string, i int) time.Time {
	switch frequency {
	case models.FrequencyWeekly:
		return startDate.AddDate(0, 0, 7*i)
	case models.FrequencyBiWeekly:
		return startDate.AddDate(0, 0, 14*i)
	default: // Monthly
		return startDate.AddDate(0, i, 0)
	}
}
