package services

import (
	"errors"
	"time"

	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/utils"
	"gorm.io/gorm"
)

// TableService owns the table registry: capacities, occupancy state and
// the active flag. Occupancy transitions caused by booking or cancellation
// always arrive here through the reservation service, so this is the single
// writer of table state next to the admin override endpoint.
type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

// Create validates and persists a new table. New tables start AVAILABLE
// and active regardless of what the caller filled in.
func (ts *TableService) Create(table *models.Table) (*models.Table, error) {
	if table.Number == "" {
		return nil, models.NewValidationError("number", "must not be empty")
	}
	if table.Capacity < 1 {
		return nil, models.NewValidationError("capacity", "must be at least 1")
	}

	table.Status = models.TableAvailable
	table.Active = true
	if err := ts.DB.Create(table).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table created: %s (capacity=%d)", table.Number, table.Capacity)
	return table, nil
}

// SetState overwrites the table status. There is deliberately no
// transition table here: admin overrides may force any state.
func (ts *TableService) SetState(tableID uint, status string) (*models.Table, error) {
	if !models.ValidTableStatus(status) {
		return nil, models.NewValidationError("status", "unknown table status "+status)
	}

	var table models.Table
	if err := ts.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	table.Status = status
	if err := ts.DB.Save(&table).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %d state changed to %s", table.ID, table.Status)
	return &table, nil
}

// Release resets a table to AVAILABLE after a cancellation.
func (ts *TableService) Release(tableID uint) (*models.Table, error) {
	return ts.SetState(tableID, models.TableAvailable)
}

func (ts *TableService) GetByID(tableID uint) (*models.Table, error) {
	var table models.Table
	if err := ts.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

func (ts *TableService) ListActive() ([]models.Table, error) {
	var tables []models.Table
	err := ts.DB.Where("active = ?", true).Order("number").Find(&tables).Error
	return tables, err
}

func (ts *TableService) ListByState(status string) ([]models.Table, error) {
	var tables []models.Table
	err := ts.DB.Where("status = ?", status).Order("number").Find(&tables).Error
	return tables, err
}

func (ts *TableService) CountActive() (int64, error) {
	var count int64
	err := ts.DB.Model(&models.Table{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

// FindAvailable returns active AVAILABLE tables seating at least partySize
// with no active reservation whose window contains startTime. This is a
// coarse pre-filter for the front desk; the exact window is still arbitrated
// by the availability resolver when the reservation is created.
func (ts *TableService) FindAvailable(startTime time.Time, partySize int) ([]models.Table, error) {
	if partySize < 1 {
		return nil, models.NewValidationError("party_size", "must be at least 1")
	}

	sub := ts.DB.Model(&models.Reservation{}).
		Select("table_id").
		Where("status IN ?", []string{models.ReservationPending, models.ReservationConfirmed}).
		Where("start_time <= ? AND end_time > ?", startTime, startTime)

	var tables []models.Table
	err := ts.DB.
		Where("active = ?", true).
		Where("status = ?", models.TableAvailable).
		Where("capacity >= ?", partySize).
		Where("id NOT IN (?)", sub).
		Order("capacity, number").
		Find(&tables).Error
	return tables, err
}
