package models

import "time"

// InventoryItem quantity never goes below zero; deductions happen through
// a conditional update in the repository.
type InventoryItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Quantity int     `gorm:"not null;default:0" json:"quantity"`
	UnitCost float64 `gorm:"type:decimal(10,2)" json:"unit_cost"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
