package models

import "time"

type Receipt struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	ReceiptNumber string  `gorm:"size:36;uniqueIndex;not null" json:"receipt_number"`
	TotalAmount   float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string  `gorm:"size:50;default:'Unpaid'" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
