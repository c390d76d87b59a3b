package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification categories
const (
	CategoryDueSoon  = "Due Soon"
	CategoryDueToday = "Due Today"
	CategoryOverdue  = "Overdue"
	CategoryManual   = "Manual"
)

type NotificationLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ClientID  uint           `gorm:"not null;index" json:"client_id"`
	Client    *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	LoanID    uint           `json:"loan_id,omitempty"`
	Type      string         `gorm:"size:20;not null" json:"type"`     // Email, WhatsApp
	Category  string         `gorm:"size:20;not null" json:"category"` // Due Soon, Due Today, Overdue, Manual
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    string         `gorm:"size:20;default:'Sent'" json:"status"` // Sent, Failed
	SentAt    time.Time      `json:"sent_at"`
}

// TableName overrides the table name
func (NotificationLog) TableName() string {
	return "notification_logs"
}

type Inquiry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null" json:"email"`
	Subject   string         `gorm:"size:255" json:"subject"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    string         `gorm:"size:20;default:'New'" json:"status"` // New, Read, Resolved
}

// TableName overrides the table name
func (Inquiry) TableName() string {
	return "inquiries"
}
