package services

import (
	"errors"
	"time"

	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/utils"
	"gorm.io/gorm"
)

// ShiftService tracks which staff member covers which table during a
// shift. It is independent of the reservation ledger; the two only share
// the table registry.
type ShiftService struct {
	DB *gorm.DB
}

func NewShiftService(db *gorm.DB) *ShiftService {
	return &ShiftService{DB: db}
}

// Assign creates a new ACTIVE assignment. Overlapping assignments for the
// same table are allowed; double coverage during busy shifts is a staffing
// decision, not a conflict.
func (ss *ShiftService) Assign(a *models.ShiftAssignment) (*models.ShiftAssignment, error) {
	if a.Date.IsZero() {
		return nil, models.NewValidationError("date", "is required")
	}
	if !a.EndTime.After(a.StartTime) {
		return nil, models.NewValidationError("end_time", "must be after start time")
	}

	var staff models.User
	if err := ss.DB.First(&staff, a.StaffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var table models.Table
	if err := ss.DB.First(&table, a.TableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	a.Status = models.ShiftActive
	if err := ss.DB.Create(a).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Shift assignment %d created: staff %d on table %d (%s)",
		a.ID, a.StaffID, a.TableID, a.Date.Format("2006-01-02"))
	return a, nil
}

// Complete closes an ACTIVE assignment.
func (ss *ShiftService) Complete(id uint) (*models.ShiftAssignment, error) {
	return ss.transition(id, models.ShiftCompleted)
}

// Cancel voids an ACTIVE assignment.
func (ss *ShiftService) Cancel(id uint) (*models.ShiftAssignment, error) {
	return ss.transition(id, models.ShiftCancelled)
}

func (ss *ShiftService) transition(id uint, target string) (*models.ShiftAssignment, error) {
	a, err := ss.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !a.CanTransitionTo(target) {
		return nil, models.ErrInvalidState
	}

	a.Status = target
	if err := ss.DB.Save(a).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Shift assignment %d is now %s", a.ID, a.Status)
	return a, nil
}

func (ss *ShiftService) GetByID(id uint) (*models.ShiftAssignment, error) {
	var a models.ShiftAssignment
	if err := ss.DB.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (ss *ShiftService) ListByStaff(staffID uint) ([]models.ShiftAssignment, error) {
	var list []models.ShiftAssignment
	err := ss.DB.Where("staff_id = ?", staffID).Order("date, start_time").Find(&list).Error
	return list, err
}

// ListByDate returns the ACTIVE assignments for one calendar day.
func (ss *ShiftService) ListByDate(date time.Time) ([]models.ShiftAssignment, error) {
	dayStart, dayEnd := dayBounds(date)
	var list []models.ShiftAssignment
	err := ss.DB.
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Where("status = ?", models.ShiftActive).
		Order("start_time").
		Find(&list).Error
	return list, err
}

func (ss *ShiftService) ListByStaffAndDate(staffID uint, date time.Time) ([]models.ShiftAssignment, error) {
	dayStart, dayEnd := dayBounds(date)
	var list []models.ShiftAssignment
	err := ss.DB.
		Where("staff_id = ?", staffID).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("start_time").
		Find(&list).Error
	return list, err
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
