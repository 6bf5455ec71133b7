package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/router"
	"github.com/dinebook/reservation-app/services"
	"github.com/dinebook/reservation-app/utils"
)

// setupIntegration wires the full stack against an in-memory database,
// mirroring the assembly in main.go.
func setupIntegration(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
		&models.ShiftAssignment{},
		&models.ScheduleConfig{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	tables := services.NewTableService(db)
	resolver := services.NewAvailabilityResolver(db)
	notifier := services.NewLogNotifier(db)
	reservations := services.NewReservationService(db, tables, resolver, notifier, services.SystemClock{})
	shifts := services.NewShiftService(db)

	return router.SetupRouter(db, reservations, tables, shifts), db
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	data, _ := response["data"].(map[string]interface{})
	return data
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email, role string) string {
	t.Helper()
	w := doJSON(router, "POST", "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	return decodeData(t, w)["token"].(string)
}

func TestReservationFlow(t *testing.T) {
	r, db := setupIntegration(t)

	adminToken := registerAndLogin(t, r, "Boss", "boss@example.com", models.RoleAdmin)
	customerToken := registerAndLogin(t, r, "Alice", "alice@example.com", models.RoleCustomer)

	// Admin creates a table.
	w := doJSON(r, "POST", "/api/tables", adminToken, map[string]interface{}{
		"number":   "T1",
		"capacity": 4,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	tableID := uint(decodeData(t, w)["id"].(float64))

	// Customers may not create tables.
	w = doJSON(r, "POST", "/api/tables", customerToken, map[string]interface{}{
		"number":   "T2",
		"capacity": 2,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Customer books the table.
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	w = doJSON(r, "POST", "/api/reservations", customerToken, map[string]interface{}{
		"table_id":   tableID,
		"start_time": start.Format(time.RFC3339),
		"party_size": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeData(t, w)
	reservationID := int(created["id"].(float64))
	assert.Equal(t, models.ReservationPending, created["status"])

	var table models.Table
	assert.NoError(t, db.First(&table, tableID).Error)
	assert.Equal(t, models.TableReserved, table.Status)

	// An overlapping booking on the same table is rejected.
	w = doJSON(r, "POST", "/api/reservations", customerToken, map[string]interface{}{
		"table_id":   tableID,
		"start_time": start.Add(10 * time.Minute).Format(time.RFC3339),
		"party_size": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Staff-only confirm is refused for the customer, allowed for the admin.
	path := "/api/reservations/" + strconv.Itoa(reservationID) + "/confirm"
	w = doJSON(r, "POST", path, customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, "POST", path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReservationConfirmed, decodeData(t, w)["status"])

	// The customer sees the booking under their own reservations.
	w = doJSON(r, "GET", "/api/reservations/mine", customerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResponse map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResponse))
	assert.Len(t, listResponse["data"].([]interface{}), 1)

	// Cancelling releases the table.
	w = doJSON(r, "POST", "/api/reservations/"+strconv.Itoa(reservationID)+"/cancel", customerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, db.First(&table, tableID).Error)
	assert.Equal(t, models.TableAvailable, table.Status)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r, _ := setupIntegration(t)

	w := doJSON(r, "GET", "/api/tables", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "POST", "/api/reservations", "invalid-token", map[string]interface{}{
		"table_id":   1,
		"start_time": time.Now().Format(time.RFC3339),
		"party_size": 2,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
