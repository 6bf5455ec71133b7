package models

import "time"

// Shift assignment states.
const (
	ShiftActive    = "ACTIVE"
	ShiftCompleted = "COMPLETED"
	ShiftCancelled = "CANCELLED"
)

// ShiftAssignment gives one staff member responsibility for one table on a
// date between StartTime and EndTime. Date carries the calendar day, the
// time fields carry the hours within it.
type ShiftAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StaffID   uint      `gorm:"not null;index" json:"staff_id"`
	Staff     User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	TableID   uint      `gorm:"not null;index" json:"table_id"`
	Table     Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

var shiftTransitions = map[string][]string{
	ShiftActive: {ShiftCompleted, ShiftCancelled},
}

// CanTransitionTo reports whether the assignment may move to the target state.
func (a *ShiftAssignment) CanTransitionTo(target string) bool {
	for _, next := range shiftTransitions[a.Status] {
		if next == target {
			return true
		}
	}
	return false
}
