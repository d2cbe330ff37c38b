package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

func TestListOpenAvailabilityIsPublic(t *testing.T) {
	r, tdb, _ := setupRouter(t)

	require.NoError(t, tdb.Create(&models.Availability{
		Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30",
	}).Error)
	require.NoError(t, tdb.Create(&models.Availability{
		Date: "2026-09-10", StartTime: "11:00", EndTime: "11:30", IsBooked: true,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/availability", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []models.Availability
	decodeBody(t, w, &slots)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsBooked)
}

func TestListAllAvailabilityRequiresAdmin(t *testing.T) {
	r, tdb, cfg := setupRouter(t)
	admin := seedUser(t, tdb, "admin@example.com", true)
	user := seedUser(t, tdb, "user@example.com", false)

	require.NoError(t, tdb.Create(&models.Availability{
		Date: "2026-09-10", StartTime: "11:00", EndTime: "11:30", IsBooked: true,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/availability/all", tokenFor(t, cfg, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var slots []models.Availability
	decodeBody(t, w, &slots)
	assert.Len(t, slots, 1)

	w = doJSON(t, r, http.MethodGet, "/api/availability/all", tokenFor(t, cfg, user), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAvailability(t *testing.T) {
	r, tdb, cfg := setupRouter(t)
	admin := seedUser(t, tdb, "admin@example.com", true)

	w := doJSON(t, r, http.MethodPost, "/api/availability", tokenFor(t, cfg, admin), map[string]any{
		"date":       "2026-09-10",
		"start_time": "10:00",
		"end_time":   "10:30",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var slot models.Availability
	decodeBody(t, w, &slot)
	assert.False(t, slot.IsBooked)
}

func TestCreateAvailabilityRejectsInvertedTimes(t *testing.T) {
	r, tdb, cfg := setupRouter(t)
	admin := seedUser(t, tdb, "admin@example.com", true)

	w := doJSON(t, r, http.MethodPost, "/api/availability", tokenFor(t, cfg, admin), map[string]any{
		"date":       "2026-09-10",
		"start_time": "11:00",
		"end_time":   "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/availability", tokenFor(t, cfg, admin), map[string]any{
		"date":       "not-a-date",
		"start_time": "10:00",
		"end_time":   "11:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAvailabilityRejectsBookedSlot(t *testing.T) {
	r, tdb, cfg := setupRouter(t)
	admin := seedUser(t, tdb, "admin@example.com", true)

	slot := models.Availability{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30", IsBooked: true}
	require.NoError(t, tdb.Create(&slot).Error)

	w := doJSON(t, r, http.MethodDelete,
		fmt.Sprintf("/api/availability/%d", slot.ID), tokenFor(t, cfg, admin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAvailability(t *testing.T) {
	r, tdb, cfg := setupRouter(t)
	admin := seedUser(t, tdb, "admin@example.com", true)

	slot := models.Availability{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30"}
	require.NoError(t, tdb.Create(&slot).Error)

	w := doJSON(t, r, http.MethodDelete,
		fmt.Sprintf("/api/availability/%d", slot.ID), tokenFor(t, cfg, admin), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
