package auth

import (
	"strings"

	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// Actor is the authenticated caller, rebuilt from the bearer token.
type Actor struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is the attribute view of a protected record: who owns it and
// whether only admins may touch it regardless of ownership.
type Resource struct {
	OwnerEmail string
	OwnerID    *uint
	AdminOnly  bool
}

// CanAccess is the single authorization decision point. Admins can do
// anything; owners can read and update their own records; everything else
// is denied. A nil actor is an anonymous caller and is always denied.
func CanAccess(actor *Actor, res Resource, action Action) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin {
		return true
	}
	if res.AdminOnly {
		return false
	}

	switch action {
	case ActionRead, ActionUpdate:
		if res.OwnerEmail != "" && strings.EqualFold(res.OwnerEmail, actor.Email) {
			return true
		}
		if res.OwnerID != nil && *res.OwnerID == actor.UserID {
			return true
		}
	}

	return false
}

// AppointmentResource maps an appointment to its authorization attributes.
// Ownership is matched by client email, falling back to the booking user id.
func AppointmentResource(ap *models.Appointment) Resource {
	return Resource{
		OwnerEmail: ap.ClientEmail,
		OwnerID:    ap.UserID,
	}
}

// AdminResource is used for records only admins manage (inventory, receipts,
// financial logs, availability writes).
func AdminResource() Resource {
	return Resource{AdminOnly: true}
}
