package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking status values
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Reference string         `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null" json:"email"`
	Phone     string         `gorm:"size:20;not null" json:"phone"`
	Address   string         `gorm:"size:500" json:"address"`
	Date      time.Time      `gorm:"not null;index" json:"date"`
	Interest  string         `gorm:"size:100;default:'General Inquiry'" json:"interest"`
	TimeSlot  string         `gorm:"size:20;not null" json:"time_slot"`
	Status    string         `gorm:"size:20;default:'Pending'" json:"status"` // Pending, Confirmed, Completed, Cancelled
}

// TableName overrides the table name
func (Booking) TableName() string {
	return "bookings"
}

type Availability struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Date      time.Time      `gorm:"uniqueIndex;not null" json:"date"`
	IsBlocked bool           `gorm:"default:false" json:"is_blocked"`
	Reason    string         `gorm:"size:255" json:"reason"`
}

// TableName overrides the table name
func (Availability) TableName() string {
	return "availabilities"
}
