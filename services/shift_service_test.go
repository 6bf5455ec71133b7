package services

import (
	"testing"
	"time"

	"github.com/dinebook/reservation-app/models"
	"github.com/stretchr/testify/assert"
)

func TestAssignShift(t *testing.T) {
	db := setupTestDB(t)
	shifts := NewShiftService(db)
	staff := seedStaff(t, db)
	table := seedTable(t, db, "A1", 4)

	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	a, err := shifts.Assign(&models.ShiftAssignment{
		StaffID:   staff.ID,
		TableID:   table.ID,
		Date:      date,
		StartTime: date.Add(17 * time.Hour),
		EndTime:   date.Add(23 * time.Hour),
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ShiftActive, a.Status)
}

func TestAssignShiftValidation(t *testing.T) {
	db := setupTestDB(t)
	shifts := NewShiftService(db)
	staff := seedStaff(t, db)
	table := seedTable(t, db, "A1", 4)

	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	_, err := shifts.Assign(&models.ShiftAssignment{
		StaffID: staff.ID, TableID: table.ID, Date: date,
		StartTime: date.Add(23 * time.Hour), EndTime: date.Add(17 * time.Hour),
	})
	assert.True(t, models.IsValidationError(err))

	_, err = shifts.Assign(&models.ShiftAssignment{
		StaffID: 999, TableID: table.ID, Date: date,
		StartTime: date.Add(17 * time.Hour), EndTime: date.Add(23 * time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = shifts.Assign(&models.ShiftAssignment{
		StaffID: staff.ID, TableID: 999, Date: date,
		StartTime: date.Add(17 * time.Hour), EndTime: date.Add(23 * time.Hour),
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCompleteShiftLifecycle(t *testing.T) {
	db := setupTestDB(t)
	shifts := NewShiftService(db)
	staff := seedStaff(t, db)
	table := seedTable(t, db, "A1", 4)

	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	a, err := shifts.Assign(&models.ShiftAssignment{
		StaffID: staff.ID, TableID: table.ID, Date: date,
		StartTime: date.Add(17 * time.Hour), EndTime: date.Add(23 * time.Hour),
	})
	assert.NoError(t, err)

	completed, err := shifts.Complete(a.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ShiftCompleted, completed.Status)

	// COMPLETED is terminal.
	_, err = shifts.Complete(a.ID)
	assert.ErrorIs(t, err, models.ErrInvalidState)
	_, err = shifts.Cancel(a.ID)
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestCompleteUnknownShift(t *testing.T) {
	db := setupTestDB(t)
	shifts := NewShiftService(db)

	_, err := shifts.Complete(42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestShiftQueries(t *testing.T) {
	db := setupTestDB(t)
	shifts := NewShiftService(db)
	bob := seedStaff(t, db)
	carol := seedCustomer(t, db) // reuse seed helper, role does not matter here
	table := seedTable(t, db, "A1", 4)

	day1 := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	first, err := shifts.Assign(&models.ShiftAssignment{
		StaffID: bob.ID, TableID: table.ID, Date: day1,
		StartTime: day1.Add(17 * time.Hour), EndTime: day1.Add(23 * time.Hour),
	})
	assert.NoError(t, err)
	_, err = shifts.Assign(&models.ShiftAssignment{
		StaffID: bob.ID, TableID: table.ID, Date: day2,
		StartTime: day2.Add(17 * time.Hour), EndTime: day2.Add(23 * time.Hour),
	})
	assert.NoError(t, err)
	_, err = shifts.Assign(&models.ShiftAssignment{
		StaffID: carol.ID, TableID: table.ID, Date: day1,
		StartTime: day1.Add(11 * time.Hour), EndTime: day1.Add(17 * time.Hour),
	})
	assert.NoError(t, err)

	byStaff, err := shifts.ListByStaff(bob.ID)
	assert.NoError(t, err)
	assert.Len(t, byStaff, 2)

	byDate, err := shifts.ListByDate(day1)
	assert.NoError(t, err)
	assert.Len(t, byDate, 2)

	// Completed assignments drop out of the per-date view.
	_, err = shifts.Complete(first.ID)
	assert.NoError(t, err)
	byDate, err = shifts.ListByDate(day1)
	assert.NoError(t, err)
	assert.Len(t, byDate, 1)

	byBoth, err := shifts.ListByStaffAndDate(bob.ID, day1)
	assert.NoError(t, err)
	assert.Len(t, byBoth, 1)
}
