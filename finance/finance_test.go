package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/loanpilot/models"
)

func TestInstallmentCount(t *testing.T) {
	tests := []struct {
		name          string
		frequency     string
		tenure        int
		durationWeeks int
		expected      int
	}{
		{"Explicit Tenure Wins", models.FrequencyWeekly, 10, 52, 10},
		{"Weekly From Duration", models.FrequencyWeekly, 0, 12, 12},
		{"Bi-Weekly From Duration", models.FrequencyBiWeekly, 0, 12, 6},
		{"Monthly From Duration", models.FrequencyMonthly, 0, 12, 3},
		{"Monthly Duration Rounds Down", models.FrequencyMonthly, 0, 7, 1},
		{"Duration Too Short Clamps To One", models.FrequencyBiWeekly, 0, 1, 1},
		{"Weekly Default", models.FrequencyWeekly, 0, 0, 16},
		{"Bi-Weekly Default", models.FrequencyBiWeekly, 0, 0, 8},
		{"Monthly Default", models.FrequencyMonthly, 0, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InstallmentCount(tt.frequency, tt.tenure, tt.durationWeeks))
		})
	}
}

func TestCompute(t *testing.T) {
	t.Run("Per Installment Interest", func(t *testing.T) {
		// 10000 at 5% over 16 weekly installments
		figures, err := Compute(Terms{
			Principal:    decimal.NewFromInt(10000),
			Rate:         decimal.NewFromInt(5),
			Frequency:    models.FrequencyWeekly,
			InterestType: models.InterestInstallment,
			Tenure:       16,
		})
		assert.NoError(t, err)
		assert.Equal(t, 16, figures.Tenure)
		assert.Equal(t, "8000.00", figures.TotalInterest.StringFixed(2))
		assert.Equal(t, "18000.00", figures.TotalPayable.StringFixed(2))
		assert.Equal(t, "1125.00", figures.InstallmentAmount.StringFixed(2))
	})

	t.Run("Flat Interest", func(t *testing.T) {
		figures, err := Compute(Terms{
			Principal:    decimal.NewFromInt(10000),
			Rate:         decimal.NewFromInt(5),
			Frequency:    models.FrequencyWeekly,
			InterestType: models.InterestFlat,
			Tenure:       16,
		})
		assert.NoError(t, err)
		assert.Equal(t, "500.00", figures.TotalInterest.StringFixed(2))
		assert.Equal(t, "10500.00", figures.TotalPayable.StringFixed(2))
		assert.Equal(t, "656.25", figures.InstallmentAmount.StringFixed(2))
	})

	t.Run("Zero Rate", func(t *testing.T) {
		figures, err := Compute(Terms{
			Principal:    decimal.NewFromInt(1000),
			Rate:         decimal.Zero,
			Frequency:    models.FrequencyMonthly,
			InterestType: models.InterestInstallment,
			Tenure:       4,
		})
		assert.NoError(t, err)
		assert.Equal(t, "0.00", figures.TotalInterest.StringFixed(2))
		assert.Equal(t, "1000.00", figures.TotalPayable.StringFixed(2))
		assert.Equal(t, "250.00", figures.InstallmentAmount.StringFixed(2))
	})

	t.Run("Negative Principal Rejected", func(t *testing.T) {
		_, err := Compute(Terms{
			Principal: decimal.NewFromInt(-1),
			Rate:      decimal.NewFromInt(5),
			Frequency: models.FrequencyWeekly,
		})
		assert.Error(t, err)
	})

	t.Run("Negative Rate Rejected", func(t *testing.T) {
		_, err := Compute(Terms{
			Principal: decimal.NewFromInt(1000),
			Rate:      decimal.NewFromInt(-5),
			Frequency: models.FrequencyWeekly,
		})
		assert.Error(t, err)
	})

	t.Run("Installment Times Tenure Matches Payable", func(t *testing.T) {
		// rounding reconciliation bound: per-installment amount times
		// tenure stays within a cent of totalPayable
		cases := []struct {
			principal int64
			rate      float64
			tenure    int
		}{
			{10000, 5, 16},
			{7777, 3.3, 7},
			{999, 12.5, 13},
			{5000, 0, 3},
		}
		for _, tc := range cases {
			figures, err := Compute(Terms{
				Principal:    decimal.NewFromInt(tc.principal),
				Rate:         decimal.NewFromFloat(tc.rate),
				Frequency:    models.FrequencyWeekly,
				InterestType: models.InterestInstallment,
				Tenure:       tc.tenure,
			})
			assert.NoError(t, err)
			product := figures.InstallmentAmount.Mul(decimal.NewFromInt(int64(tc.tenure)))
			diff := product.Sub(figures.TotalPayable).Abs()
			// at most half a cent of rounding drift per installment
			bound := decimal.NewFromFloat(0.005).Mul(decimal.NewFromInt(int64(tc.tenure))).Add(decimal.NewFromFloat(0.01))
			assert.True(t, diff.LessThanOrEqual(bound),
				"principal=%d tenure=%d diff=%s", tc.principal, tc.tenure, diff)
		}
	})
}
