package models

import "time"

// Availability is a bookable slot. Date is stored as YYYY-MM-DD and the
// times as HH:MM wall-clock strings; the salon operates in a single zone.
type Availability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      string `gorm:"size:10;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	IsBooked  bool   `gorm:"default:false" json:"is_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
