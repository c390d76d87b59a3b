package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/loanpilot/models"
)

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Weekly Sixteen Installments", func(t *testing.T) {
		schedule := GenerateSchedule(decimal.NewFromInt(18000), start, models.FrequencyWeekly, 16)

		assert.Len(t, schedule, 16)
		for i, entry := range schedule {
			assert.Equal(t, i+1, entry.InstallmentNo)
			assert.Equal(t, "1125.00", entry.Amount.StringFixed(2))
			assert.Equal(t, start.AddDate(0, 0, 7*(i+1)), entry.DueDate)
			assert.Equal(t, models.InstallmentPending, entry.Status)
		}
	})

	t.Run("Bi-Weekly Due Dates", func(t *testing.T) {
		schedule := GenerateSchedule(decimal.NewFromInt(1000), start, models.FrequencyBiWeekly, 4)

		assert.Len(t, schedule, 4)
		assert.Equal(t, start.AddDate(0, 0, 14), schedule[0].DueDate)
		assert.Equal(t, start.AddDate(0, 0, 56), schedule[3].DueDate)
	})

	t.Run("Monthly Rolls Over Year Boundary", func(t *testing.T) {
		november := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)
		schedule := GenerateSchedule(decimal.NewFromInt(1200), november, models.FrequencyMonthly, 3)

		assert.Equal(t, time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), schedule[1].DueDate)
		assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), schedule[2].DueDate)
	})

	t.Run("Rounding Drift Folded Into Last Installment", func(t *testing.T) {
		// 1000 / 3 = 333.33, leaving 0.01 for the last entry
		schedule := GenerateSchedule(decimal.NewFromInt(1000), start, models.FrequencyWeekly, 3)

		assert.Equal(t, "333.33", schedule[0].Amount.StringFixed(2))
		assert.Equal(t, "333.33", schedule[1].Amount.StringFixed(2))
		assert.Equal(t, "333.34", schedule[2].Amount.StringFixed(2))
	})

	t.Run("Schedule Sums To Total Payable Exactly", func(t *testing.T) {
		totals := []string{"18000", "1000", "7777.77", "999.99", "123.45"}
		counts := []int{1, 3, 7, 13, 16}

		for _, totalStr := range totals {
			total, _ := decimal.NewFromString(totalStr)
			for _, count := range counts {
				schedule := GenerateSchedule(total, start, models.FrequencyWeekly, count)
				sum := decimal.Zero
				for _, entry := range schedule {
					sum = sum.Add(entry.Amount)
				}
				assert.True(t, sum.Equal(total), "total=%s count=%d sum=%s", totalStr, count, sum)
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := GenerateSchedule(decimal.NewFromFloat(7777.77), start, models.FrequencyMonthly, 7)
		second := GenerateSchedule(decimal.NewFromFloat(7777.77), start, models.FrequencyMonthly, 7)

		assert.Equal(t, len(first), len(second))
		for i := range first {
			assert.True(t, first[i].Amount.Equal(second[i].Amount))
			assert.Equal(t, first[i].DueDate, second[i].DueDate)
			assert.Equal(t, first[i].InstallmentNo, second[i].InstallmentNo)
		}
	})

	t.Run("Count Below One Clamped", func(t *testing.T) {
		schedule := GenerateSchedule(decimal.NewFromInt(500), start, models.FrequencyWeekly, 0)
		assert.Len(t, schedule, 1)
		assert.Equal(t, "500.00", schedule[0].Amount.StringFixed(2))
	})
}
