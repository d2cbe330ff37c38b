package models

import "time"

// AppointmentStatusHistory is append-only: one row for every status the
// appointment has ever held, including the initial one.
type AppointmentStatusHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	Status    string    `gorm:"size:20;not null" json:"status"`
	ChangedAt time.Time `json:"changed_at"`

	ChangedByUserID *uint `json:"changed_by_user_id"`
}
