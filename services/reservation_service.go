package services

import (
	"errors"
	"sort"
	"time"

	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/utils"
	"gorm.io/gorm"
)

// ReservationDuration is the fixed booking slot. The caller-supplied end
// time is overridden on creation so every reservation claims exactly one
// slot of this length.
const ReservationDuration = 30 * time.Minute

// ReminderWindow is how far ahead the reminder sweep looks for upcoming
// reservations that have not been notified yet.
const ReminderWindow = 12 * time.Hour

// ReservationService is the ledger for reservation records. It is the only
// writer of reservations and the only trigger of table occupancy changes
// caused by booking or cancellation.
type ReservationService struct {
	DB       *gorm.DB
	Tables   *TableService
	Resolver *AvailabilityResolver
	Notifier Notifier
	Clock    Clock

	locks *tableLockSet
}

func NewReservationService(db *gorm.DB, tables *TableService, resolver *AvailabilityResolver, notifier Notifier, clock Clock) *ReservationService {
	return &ReservationService{
		DB:       db,
		Tables:   tables,
		Resolver: resolver,
		Notifier: notifier,
		Clock:    clock,
		locks:    newTableLockSet(),
	}
}

// Create validates and books a new reservation. The table lock is held
// across the availability check and the insert so two concurrent requests
// for the same table cannot both pass the check. The table state update
// and the confirmation notification afterwards are best-effort: their
// failure is logged, the booked reservation stands.
func (rs *ReservationService) Create(res *models.Reservation) (*models.Reservation, error) {
	if res.PartySize < 1 {
		return nil, models.NewValidationError("party_size", "must be at least 1")
	}
	if res.StartTime.IsZero() {
		return nil, models.NewValidationError("start_time", "is required")
	}

	var customer models.User
	if err := rs.DB.First(&customer, res.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	table, err := rs.Tables.GetByID(res.TableID)
	if err != nil {
		return nil, err
	}
	if res.PartySize > table.Capacity {
		return nil, models.ErrCapacityExceeded
	}

	// Fixed-duration policy: whatever end time the caller sent is replaced.
	res.EndTime = res.StartTime.Add(ReservationDuration)
	res.Status = models.ReservationPending
	res.ReminderSent = false
	res.CreatedAt = rs.Clock.Now()

	rs.locks.Lock(res.TableID)
	defer rs.locks.Unlock(res.TableID)

	available, err := rs.Resolver.IsAvailable(res.TableID, res.StartTime, res.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, models.ErrSlotUnavailable
	}

	if err := rs.DB.Create(res).Error; err != nil {
		return nil, err
	}

	// Best-effort occupancy update, surfaced in the log only.
	if _, err := rs.Tables.SetState(res.TableID, models.TableReserved); err != nil {
		utils.ErrorLogger.Printf("Reservation %d booked but table %d state update failed: %v", res.ID, res.TableID, err)
	}

	res.Customer = customer
	res.Table = *table
	if err := rs.Notifier.NotifyConfirmation(res); err != nil {
		utils.ErrorLogger.Printf("Confirmation for reservation %d failed: %v", res.ID, err)
	}

	utils.InfoLogger.Printf("Reservation %d created: table %d, %s - %s, %d people",
		res.ID, res.TableID, res.StartTime.Format(time.RFC3339), res.EndTime.Format(time.RFC3339), res.PartySize)
	return res, nil
}

// ModifyInput carries the editable reservation fields.
type ModifyInput struct {
	StartTime time.Time
	EndTime   time.Time
	PartySize int
	Notes     string
}

// Modify rewrites the window, party size and notes of an existing
// reservation. Unlike the historical behavior the new window is checked
// for overlap again, ignoring the reservation itself.
func (rs *ReservationService) Modify(id uint, in ModifyInput) (*models.Reservation, error) {
	res, err := rs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !res.IsActive() {
		return nil, models.ErrInvalidState
	}

	if in.PartySize < 1 {
		return nil, models.NewValidationError("party_size", "must be at least 1")
	}
	if in.StartTime.IsZero() {
		return nil, models.NewValidationError("start_time", "is required")
	}
	if in.EndTime.IsZero() {
		in.EndTime = in.StartTime.Add(ReservationDuration)
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, models.NewValidationError("end_time", "must be after start time")
	}

	table, err := rs.Tables.GetByID(res.TableID)
	if err != nil {
		return nil, err
	}
	if in.PartySize > table.Capacity {
		return nil, models.ErrCapacityExceeded
	}

	rs.locks.Lock(res.TableID)
	defer rs.locks.Unlock(res.TableID)

	available, err := rs.Resolver.IsAvailable(res.TableID, in.StartTime, in.EndTime, res.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, models.ErrSlotUnavailable
	}

	res.StartTime = in.StartTime
	res.EndTime = in.EndTime
	res.PartySize = in.PartySize
	res.Notes = in.Notes
	if err := rs.DB.Save(res).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d modified: %s - %s, %d people",
		res.ID, res.StartTime.Format(time.RFC3339), res.EndTime.Format(time.RFC3339), res.PartySize)
	return res, nil
}

// Cancel moves a reservation to CANCELLED and releases its table unless
// another active reservation still holds it.
func (rs *ReservationService) Cancel(id uint) (*models.Reservation, error) {
	res, err := rs.transition(id, models.ReservationCancelled)
	if err != nil {
		return nil, err
	}

	var remaining int64
	err = rs.DB.Model(&models.Reservation{}).
		Where("table_id = ?", res.TableID).
		Where("id <> ?", res.ID).
		Where("status IN ?", []string{models.ReservationPending, models.ReservationConfirmed}).
		Count(&remaining).Error
	if err != nil {
		return nil, err
	}

	if remaining == 0 {
		if _, err := rs.Tables.Release(res.TableID); err != nil {
			utils.ErrorLogger.Printf("Reservation %d cancelled but table %d release failed: %v", res.ID, res.TableID, err)
		}
	}
	return res, nil
}

// Confirm moves a PENDING reservation to CONFIRMED. Confirming a
// cancelled (or otherwise settled) reservation fails with ErrInvalidState.
func (rs *ReservationService) Confirm(id uint) (*models.Reservation, error) {
	return rs.transition(id, models.ReservationConfirmed)
}

// Complete marks a confirmed reservation as honored.
func (rs *ReservationService) Complete(id uint) (*models.Reservation, error) {
	return rs.transition(id, models.ReservationCompleted)
}

// MarkNoShow records that the party never arrived.
func (rs *ReservationService) MarkNoShow(id uint) (*models.Reservation, error) {
	return rs.transition(id, models.ReservationNoShow)
}

func (rs *ReservationService) transition(id uint, target string) (*models.Reservation, error) {
	res, err := rs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !res.CanTransitionTo(target) {
		return nil, models.ErrInvalidState
	}

	res.Status = target
	if err := rs.DB.Save(res).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d is now %s", res.ID, res.Status)
	return res, nil
}

func (rs *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := rs.DB.First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (rs *ReservationService) ListAll() ([]models.Reservation, error) {
	var list []models.Reservation
	err := rs.DB.Order("start_time").Find(&list).Error
	return list, err
}

func (rs *ReservationService) ListByCustomer(customerID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	err := rs.DB.Where("customer_id = ?", customerID).Order("start_time").Find(&list).Error
	return list, err
}

// ListForDay returns reservations whose start falls on the calendar day
// of the given date, in the date's location.
func (rs *ReservationService) ListForDay(date time.Time) ([]models.Reservation, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var list []models.Reservation
	err := rs.DB.
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time").
		Find(&list).Error
	return list, err
}

// IsAvailable exposes the resolver to the HTTP layer.
func (rs *ReservationService) IsAvailable(tableID uint, start, end time.Time) (bool, error) {
	return rs.Resolver.IsAvailable(tableID, start, end, 0)
}

// RunReminders sweeps for PENDING reservations starting within the next
// 12 hours that have not been reminded yet. Each record is claimed by an
// atomic flag flip before the notifier runs, so overlapping sweeps cannot
// notify the same reservation twice. A failed notification releases the
// claim again and the next sweep retries; one failure never aborts the
// rest of the sweep. Returns the number of reminders delivered.
func (rs *ReservationService) RunReminders() (int, error) {
	now := rs.Clock.Now()
	limit := now.Add(ReminderWindow)

	var candidates []models.Reservation
	err := rs.DB.
		Preload("Customer").
		Preload("Table").
		Where("reminder_sent = ?", false).
		Where("status = ?", models.ReservationPending).
		Where("start_time BETWEEN ? AND ?", now, limit).
		Find(&candidates).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range candidates {
		res := &candidates[i]

		claim := rs.DB.Model(&models.Reservation{}).
			Where("id = ? AND reminder_sent = ?", res.ID, false).
			Update("reminder_sent", true)
		if claim.Error != nil {
			utils.ErrorLogger.Printf("Reminder claim for reservation %d failed: %v", res.ID, claim.Error)
			continue
		}
		if claim.RowsAffected == 0 {
			// Another sweep got here first.
			continue
		}

		if err := rs.Notifier.NotifyReminder(res); err != nil {
			utils.ErrorLogger.Printf("Reminder for reservation %d failed: %v", res.ID, err)
			rs.DB.Model(&models.Reservation{}).
				Where("id = ?", res.ID).
				Update("reminder_sent", false)
			continue
		}
		sent++
	}
	return sent, nil
}

// HourlyStat is one row of the reservation statistics: how many
// reservations started within a given hour of the day.
type HourlyStat struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// Statistics aggregates reservation counts by hour of day for starts in
// [start, end], ordered by count descending. The grouping happens in Go
// so the query stays portable across MySQL and the sqlite test driver.
func (rs *ReservationService) Statistics(start, end time.Time) ([]HourlyStat, error) {
	var starts []time.Time
	err := rs.DB.Model(&models.Reservation{}).
		Where("start_time BETWEEN ? AND ?", start, end).
		Pluck("start_time", &starts).Error
	if err != nil {
		return nil, err
	}

	byHour := make(map[int]int64)
	for _, t := range starts {
		byHour[t.Hour()]++
	}

	stats := make([]HourlyStat, 0, len(byHour))
	for hour, count := range byHour {
		stats = append(stats, HourlyStat{Hour: hour, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Hour < stats[j].Hour
	})
	return stats, nil
}
