package appointment

import "github.com/tanyourpeach/tan-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus validates the requested status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// IsActive reports whether an appointment in this status holds its slot.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}
