package services

import (
	"testing"
	"time"

	"github.com/dinebook/reservation-app/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateTableValidation(t *testing.T) {
	db := setupTestDB(t)
	tables := NewTableService(db)

	_, err := tables.Create(&models.Table{Number: "A1", Capacity: 0})
	assert.True(t, models.IsValidationError(err))

	_, err = tables.Create(&models.Table{Capacity: 4})
	assert.True(t, models.IsValidationError(err))

	table, err := tables.Create(&models.Table{Number: "A1", Capacity: 4, Status: models.TableOccupied})
	assert.NoError(t, err)
	// Caller-supplied status is ignored; new tables start AVAILABLE.
	assert.Equal(t, models.TableAvailable, table.Status)
	assert.True(t, table.Active)
}

func TestSetStateUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	tables := NewTableService(db)

	_, err := tables.SetState(42, models.TableOccupied)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetStateRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	tables := NewTableService(db)
	table := seedTable(t, db, "A1", 4)

	_, err := tables.SetState(table.ID, "BROKEN")
	assert.True(t, models.IsValidationError(err))
}

func TestSetStateOverridesAnyState(t *testing.T) {
	db := setupTestDB(t)
	tables := NewTableService(db)
	table := seedTable(t, db, "A1", 4)

	// No transition table: OUT_OF_SERVICE straight back to OCCUPIED is fine.
	_, err := tables.SetState(table.ID, models.TableOutOfService)
	assert.NoError(t, err)
	updated, err := tables.SetState(table.ID, models.TableOccupied)
	assert.NoError(t, err)
	assert.Equal(t, models.TableOccupied, updated.Status)

	released, err := tables.Release(table.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.TableAvailable, released.Status)
}

func TestCountActive(t *testing.T) {
	db := setupTestDB(t)
	tables := NewTableService(db)
	seedTable(t, db, "A1", 4)
	seedTable(t, db, "A2", 2)

	inactive := seedTable(t, db, "A3", 6)
	db.Model(inactive).Update("active", false)

	count, err := tables.CountActive()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFindAvailableFilters(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	ledger, tables := newTestLedger(db, &fakeClock{now: testNow}, notifier)
	customer := seedCustomer(t, db)

	small := seedTable(t, db, "S1", 2)
	big := seedTable(t, db, "B1", 6)
	booked := seedTable(t, db, "B2", 6)
	closed := seedTable(t, db, "C1", 6)
	db.Model(closed).Update("status", models.TableOutOfService)

	start := time.Date(2025, 6, 5, 19, 0, 0, 0, time.UTC)
	_, err := ledger.Create(&models.Reservation{
		CustomerID: customer.ID, TableID: booked.ID, StartTime: start, PartySize: 4,
	})
	assert.NoError(t, err)

	// Inside the booked window: only the big free table seats four.
	available, err := tables.FindAvailable(start.Add(10*time.Minute), 4)
	assert.NoError(t, err)
	assert.Len(t, available, 1)
	assert.Equal(t, big.ID, available[0].ID)

	// A party of two additionally fits the small table.
	available, err = tables.FindAvailable(start.Add(10*time.Minute), 2)
	assert.NoError(t, err)
	assert.Len(t, available, 2)
	assert.Equal(t, small.ID, available[0].ID) // ordered by capacity
}

func TestFindAvailableRejectsBadPartySize(t *testing.T) {
	db := setupTestDB(t)
	tables := NewTableService(db)

	_, err := tables.FindAvailable(time.Now(), 0)
	assert.True(t, models.IsValidationError(err))
}
