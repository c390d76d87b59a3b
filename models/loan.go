package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Loan frequency values
const (
	FrequencyWeekly   = "Weekly"
	FrequencyBiWeekly = "Bi-Weekly"
	FrequencyMonthly  = "Monthly"
)

// Interest type values
const (
	InterestInstallment = "Installment"
	InterestFlat        = "Flat"
)

// Loan status values
const (
	LoanActive    = "Active"
	LoanPending   = "Pending"
	LoanOverdue   = "Overdue"
	LoanCompleted = "Completed"
)

type Loan struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
	ClientID          uint            `gorm:"not null;index" json:"client_id"`
	Client            *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	LoanAmount        decimal.Decimal `gorm:"type:numeric;not null" json:"loan_amount"`
	LoanStartDate     time.Time       `gorm:"not null" json:"loan_start_date"`
	Tenure            int             `gorm:"not null" json:"tenure"`
	InterestRate      decimal.Decimal `gorm:"type:numeric;default:0" json:"interest_rate"`
	Frequency         string          `gorm:"size:20;default:'Monthly'" json:"frequency"`          // Weekly, Bi-Weekly, Monthly
	InterestType      string          `gorm:"size:20;default:'Installment'" json:"interest_type"`  // Installment, Flat
	InstallmentAmount decimal.Decimal `gorm:"type:numeric;not null" json:"installment_amount"`
	TotalInterest     decimal.Decimal `gorm:"type:numeric;default:0" json:"total_interest"`
	TotalPayable      decimal.Decimal `gorm:"type:numeric;not null" json:"total_payable"`
	TotalPaid         decimal.Decimal `gorm:"type:numeric;default:0" json:"total_paid"`
	RemainingAmount   decimal.Decimal `gorm:"type:numeric;not null" json:"remaining_amount"`
	Status            string          `gorm:"size:20;default:'Active'" json:"status"` // Active, Pending, Overdue, Completed
}

// TableName overrides the table name
func (Loan) TableName() string {
	return "loans"
}
