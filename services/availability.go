package services

import (
	"time"

	"github.com/dinebook/reservation-app/models"
	"gorm.io/gorm"
)

// AvailabilityResolver decides whether a table can take a reservation for
// a candidate window. It only reads; callers serialize the surrounding
// check-then-write themselves.
type AvailabilityResolver struct {
	DB *gorm.DB
}

func NewAvailabilityResolver(db *gorm.DB) *AvailabilityResolver {
	return &AvailabilityResolver{DB: db}
}

// IsAvailable reports whether no non-cancelled reservation on the table
// overlaps [start, end). Overlap is strict: existing.start < end AND
// existing.end > start, so windows that merely touch do not conflict.
// excludeID ignores one reservation, used when re-validating a modification
// against everything but itself; pass 0 to exclude nothing.
func (ar *AvailabilityResolver) IsAvailable(tableID uint, start, end time.Time, excludeID uint) (bool, error) {
	var count int64
	q := ar.DB.Model(&models.Reservation{}).
		Where("table_id = ?", tableID).
		Where("status <> ?", models.ReservationCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
