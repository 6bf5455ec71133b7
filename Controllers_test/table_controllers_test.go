package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinebook/reservation-app/controllers"
	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/services"
	"github.com/dinebook/reservation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
		&models.ShiftAssignment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(services.NewTableService(db))
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
	return router
}

func TestCreateTableEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTableRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"number":   "A1",
		"capacity": 4,
	})
	req, err := http.NewRequest("POST", "/tables", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table created successfully", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "AVAILABLE", data["status"])
}

func TestCreateTableRejectsZeroCapacity(t *testing.T) {
	db := setupTestDB(t)
	router := setupTableRouter(db)

	payload, _ := json.Marshal(map[string]interface{}{
		"number":   "A1",
		"capacity": 0,
	})
	req, _ := http.NewRequest("POST", "/tables", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// capacity 0 fails the required binding before the service validation
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllTablesEndpoint(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Table{Number: "A1", Capacity: 4, Status: models.TableAvailable, Active: true})
	db.Create(&models.Table{Number: "B1", Capacity: 2, Status: models.TableOccupied, Active: true})

	router := setupTableRouter(db)
	req, err := http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestUpdateTableStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	table := models.Table{Number: "C1", Capacity: 4, Status: models.TableAvailable, Active: true}
	db.Create(&table)

	router := setupTableRouter(db)

	payload, _ := json.Marshal(map[string]string{"status": models.TableOutOfService})
	url := "/tables/" + strconv.Itoa(int(table.ID)) + "/status"
	req, err := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.TableOutOfService, data["status"])
}

func TestUpdateTableStatusUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	router := setupTableRouter(db)

	payload, _ := json.Marshal(map[string]string{"status": models.TableAvailable})
	req, _ := http.NewRequest("PATCH", "/tables/42/status", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
