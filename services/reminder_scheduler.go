package services

import (
	"fmt"
	"time"

	"github.com/dinebook/reservation-app/events"
	"github.com/dinebook/reservation-app/utils"
)

// ReminderScheduler runs the reminder sweep on a fixed interval. The sweep
// itself is idempotent per reservation (the ledger claims the reminder flag
// before notifying), so a manual trigger racing the ticker is harmless.
type ReminderScheduler struct {
	Reservations *ReservationService
	Interval     time.Duration
	stopChan     chan struct{}
}

func NewReminderScheduler(reservations *ReservationService, interval time.Duration) *ReminderScheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ReminderScheduler{
		Reservations: reservations,
		Interval:     interval,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the sweep goroutine.
func (sch *ReminderScheduler) Start() {
	go func() {
		ticker := time.NewTicker(sch.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sch.sweep()
			case <-sch.stopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Reminder scheduler started (interval %s)", sch.Interval)
}

// Stop halts the sweep goroutine.
func (sch *ReminderScheduler) Stop() {
	close(sch.stopChan)
}

func (sch *ReminderScheduler) sweep() {
	sent, err := sch.Reservations.RunReminders()
	if err != nil {
		utils.ErrorLogger.Printf("Reminder sweep failed: %v", err)
		return
	}
	if sent > 0 {
		utils.InfoLogger.Printf("Reminder sweep delivered %d reminders", sent)
		events.BroadcastStaffNotification(fmt.Sprintf("%d reservation reminders sent", sent))
	}
}
