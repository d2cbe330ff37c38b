package models

import "time"

const (
	FinancialLogTypeRevenue = "revenue"
	FinancialLogTypeExpense = "expense"
)

// FinancialLog entries are append-only on the confirmation path; admins can
// also manage them directly. Source is nullable on purpose.
type FinancialLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Type        string  `gorm:"size:10;not null" json:"type"`
	Source      *string `gorm:"size:50" json:"source"`
	ReferenceID *uint   `json:"reference_id"`
	Description string  `gorm:"size:255" json:"description"`
	Amount      float64 `gorm:"type:decimal(10,2);not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}
