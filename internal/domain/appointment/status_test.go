package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"} {
		st, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(st))
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := ParseStatus("SHIPPED")
	require.Error(t, err)
	assert.Equal(t, "invalid_status", httperr.BusinessCode(err))

	_, err = ParseStatus("confirmed")
	require.Error(t, err)
}

func TestStatusIsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestValidateCore(t *testing.T) {
	valid := func() *models.Appointment {
		return &models.Appointment{
			ServiceID:      1,
			AvailabilityID: 1,
			ClientName:     "Jane",
			ClientAddress:  "123 Sun St",
		}
	}

	assert.NoError(t, ValidateCore(valid()))

	ap := valid()
	ap.ClientName = "   "
	assert.Equal(t, "missing_client_name", httperr.BusinessCode(ValidateCore(ap)))

	ap = valid()
	ap.ClientAddress = ""
	assert.Equal(t, "missing_client_address", httperr.BusinessCode(ValidateCore(ap)))

	ap = valid()
	ap.ServiceID = 0
	assert.Equal(t, "missing_service", httperr.BusinessCode(ValidateCore(ap)))

	ap = valid()
	ap.AvailabilityID = 0
	assert.Equal(t, "missing_availability", httperr.BusinessCode(ValidateCore(ap)))
}

func TestReceiptAmount(t *testing.T) {
	svc := &models.TanService{BasePrice: 50}

	ap := &models.Appointment{}
	assert.Equal(t, 50.0, ReceiptAmount(ap, svc))

	fee := 10.0
	ap.TravelFee = &fee
	assert.Equal(t, 60.0, ReceiptAmount(ap, svc))

	total := 75.0
	ap.TotalPrice = &total
	assert.Equal(t, 75.0, ReceiptAmount(ap, svc))
}
