package models

import (
	"time"

	"gorm.io/gorm"
)

type Client struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;not null" json:"email"`
	Phone           string         `gorm:"size:20;not null" json:"phone"`
	AssignedStaffID uint           `gorm:"not null;index" json:"assigned_staff_id"`
	AssignedStaff   *User          `gorm:"foreignKey:AssignedStaffID" json:"assigned_staff,omitempty"`
	Status          string         `gorm:"size:20;default:'Pending'" json:"status"` // Active, Pending, Overdue, Paid
}

// TableName overrides the table name
func (Client) TableName() string {
	return "clients"
}
