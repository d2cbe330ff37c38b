package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint       `json:"service_id"`
	Service   TanService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// uniqueIndex enforces at most one appointment per slot.
	AvailabilityID uint         `gorm:"uniqueIndex" json:"availability_id"`
	Availability   Availability `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"availability"`

	// Set when the booking was made by an authenticated user.
	UserID *uint `json:"user_id"`

	ClientName    string `gorm:"size:100" json:"client_name"`
	ClientEmail   string `gorm:"size:100" json:"client_email"`
	ClientAddress string `gorm:"size:255" json:"client_address"`

	AppointmentDateTime time.Time `json:"appointment_date_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	TravelFee  *float64 `gorm:"type:decimal(10,2)" json:"travel_fee"`
	TotalPrice *float64 `gorm:"type:decimal(10,2)" json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
