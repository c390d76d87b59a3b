package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Role       string         `gorm:"size:100;default:'Client'" json:"role"`
	Rating     int            `gorm:"not null" json:"rating"` // 1 to 5
	Text       string         `gorm:"type:text;not null" json:"text"`
	IsApproved bool           `gorm:"default:false" json:"is_approved"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}
