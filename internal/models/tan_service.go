package models

import "time"

type TanService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Description     string  `gorm:"size:255" json:"description"`
	BasePrice       float64 `gorm:"type:decimal(10,2)" json:"base_price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
