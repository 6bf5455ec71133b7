package models

import "time"

// ScheduleConfig holds the opening hours and table pool for one weekday.
// Weekday uses time.Weekday numbering (Sunday = 0). The reservation
// duration here is informational for the front desk; the ledger books a
// fixed 30-minute slot regardless.
type ScheduleConfig struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Weekday         int       `gorm:"not null;index" json:"weekday"`
	OpensAt         string    `gorm:"type:varchar(5);not null" json:"opens_at"`  // "12:00"
	ClosesAt        string    `gorm:"type:varchar(5);not null" json:"closes_at"` // "23:00"
	TablesAvailable int       `gorm:"not null" json:"tables_available"`
	DurationMinutes int       `gorm:"not null;default:30" json:"duration_minutes"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
