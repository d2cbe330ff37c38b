package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/config"
	"github.com/tanyourpeach/tan-scheduler/internal/db"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
	"github.com/tanyourpeach/tan-scheduler/internal/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	tdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(tdb))

	cfg := &config.Config{Env: "test", JWTSecret: "test-secret"}

	r := gin.New()
	routes.RegisterRoutes(r, tdb, nil, cfg)
	return r, tdb, cfg
}

func seedUser(t *testing.T, tdb *gorm.DB, email string, isAdmin bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashed),
		IsAdmin:      isAdmin,
	}
	require.NoError(t, tdb.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, cfg *config.Config, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":     user.ID,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

// doJSON performs a request against the router; token may be empty for
// anonymous calls.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// seedAppointment wires a service, an open-or-booked slot and a PENDING
// appointment owned by ownerEmail.
func seedAppointment(t *testing.T, tdb *gorm.DB, ownerEmail string) models.Appointment {
	t.Helper()

	svc := models.TanService{Name: "Spray Tan", BasePrice: 50, IsActive: true}
	require.NoError(t, tdb.Create(&svc).Error)

	slot := models.Availability{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30", IsBooked: true}
	require.NoError(t, tdb.Create(&slot).Error)

	ap := models.Appointment{
		ServiceID:      svc.ID,
		AvailabilityID: slot.ID,
		ClientName:     "Jane Doe",
		ClientEmail:    ownerEmail,
		ClientAddress:  "123 Sun St",
		Status:         "PENDING",
	}
	require.NoError(t, tdb.Create(&ap).Error)

	history := models.AppointmentStatusHistory{AppointmentID: ap.ID, Status: ap.Status}
	require.NoError(t, tdb.Create(&history).Error)

	return ap
}
