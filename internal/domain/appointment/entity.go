package appointment

import (
	"strings"

	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// ===============================
// Domain Validations
// ===============================

// ValidateCore checks the invariants every persisted appointment must hold:
// non-empty client name and address, and valid service/slot references.
func ValidateCore(ap *models.Appointment) error {
	if strings.TrimSpace(ap.ClientName) == "" {
		return httperr.ErrBusiness("missing_client_name")
	}
	if strings.TrimSpace(ap.ClientAddress) == "" {
		return httperr.ErrBusiness("missing_client_address")
	}
	if ap.ServiceID == 0 {
		return httperr.ErrBusiness("missing_service")
	}
	if ap.AvailabilityID == 0 {
		return httperr.ErrBusiness("missing_availability")
	}
	return nil
}

// ReceiptAmount resolves the billed amount for a confirmation: the explicit
// total price when set, otherwise service base price plus travel fee.
func ReceiptAmount(ap *models.Appointment, svc *models.TanService) float64 {
	if ap.TotalPrice != nil {
		return *ap.TotalPrice
	}

	amount := svc.BasePrice
	if ap.TravelFee != nil {
		amount += *ap.TravelFee
	}
	return amount
}
