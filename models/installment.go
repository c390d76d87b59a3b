package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Installment status values
const (
	InstallmentPending = "Pending"
	InstallmentPaid    = "Paid"
	InstallmentOverdue = "Overdue"
)

// Installment kind values
const (
	KindScheduled   = "Scheduled"
	KindOverpayment = "Overpayment"
)

// Payment mode values
const (
	ModeCash         = "Cash"
	ModeBankTransfer = "Bank Transfer"
	ModeStripe       = "Stripe"
)

// OverpaymentNo is the legacy schedule position assigned to overpayment
// rows so they sort after real installments. The Kind column is the
// authoritative marker.
const OverpaymentNo = 99

type Installment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	LoanID        uint            `gorm:"not null;index" json:"loan_id"`
	Loan          *Loan           `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
	ClientID      uint            `gorm:"not null;index" json:"client_id"`
	InstallmentNo int             `gorm:"not null" json:"installment_no"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	DueDate       time.Time       `gorm:"not null" json:"due_date"`
	PaidDate      *time.Time      `json:"paid_date"`
	PaymentMode   string          `gorm:"size:20" json:"payment_mode"`              // Cash, Bank Transfer, Stripe
	Status        string          `gorm:"size:20;default:'Pending'" json:"status"`  // Pending, Paid, Overdue
	Kind          string          `gorm:"size:20;default:'Scheduled'" json:"kind"`  // Scheduled, Overpayment
	TransactionID string          `gorm:"size:255" json:"transaction_id,omitempty"` // Stripe only
}

// TableName overrides the table name
func (Installment) TableName() string {
	return "installments"
}
