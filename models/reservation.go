package models

import "time"

// Reservation lifecycle states.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
	ReservationNoShow    = "NO_SHOW"
)

type Reservation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerID   uint      `gorm:"not null;index" json:"customer_id"`
	Customer     User      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TableID      uint      `gorm:"not null;index" json:"table_id"`
	Table        Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	StartTime    time.Time `gorm:"not null;index" json:"start_time"`
	EndTime      time.Time `gorm:"not null" json:"end_time"`
	PartySize    int       `gorm:"not null" json:"party_size"`
	Notes        string    `gorm:"type:text" json:"notes"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ReminderSent bool      `gorm:"not null;default:false" json:"reminder_sent"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// reservationTransitions is the allowed-transitions table for the
// reservation lifecycle. CANCELLED, COMPLETED and NO_SHOW are terminal.
var reservationTransitions = map[string][]string{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled, ReservationNoShow},
	ReservationConfirmed: {ReservationCancelled, ReservationCompleted, ReservationNoShow},
}

// CanTransitionTo reports whether the reservation may move to the target state.
func (r *Reservation) CanTransitionTo(target string) bool {
	for _, next := range reservationTransitions[r.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsActive reports whether the reservation still holds a claim on its table.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
