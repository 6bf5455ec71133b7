package models

import "time"

// Notification kinds.
const (
	NotificationReminder     = "reminder"
	NotificationConfirmation = "confirmation"
)

// Notification is a persisted record of a message sent (or attempted) for
// a reservation. Delivery itself is handled by the notifier service.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"not null;index" json:"reservation_id"`
	Kind          string    `gorm:"type:varchar(20);not null" json:"kind"`
	Recipient     string    `gorm:"type:varchar(255);not null" json:"recipient"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
