package models

import "time"

// Table status values. SetState performs no transition checking, any
// status may be overwritten by an admin override.
const (
	TableAvailable    = "AVAILABLE"
	TableOccupied     = "OCCUPIED"
	TableReserved     = "RESERVED"
	TableOutOfService = "OUT_OF_SERVICE"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"type:varchar(50);unique;not null" json:"number"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Status    string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ValidTableStatus reports whether s is one of the known table states.
func ValidTableStatus(s string) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableOutOfService:
		return true
	}
	return false
}
