package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dinebook/reservation-app/events"
	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/services"
	"github.com/dinebook/reservation-app/utils"
	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// CreateReservation books a table. Customers book for themselves; staff
// and admins may pass an explicit customer_id.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		CustomerID uint      `json:"customer_id"`
		TableID    uint      `json:"table_id" binding:"required"`
		StartTime  time.Time `json:"start_time" binding:"required"`
		PartySize  int       `json:"party_size" binding:"required"`
		Notes      string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customerID := req.CustomerID
	role, _ := c.Get("role")
	if role == models.RoleCustomer || customerID == 0 {
		if userID, ok := c.Get("user_id"); ok {
			customerID = userID.(uint)
		}
	}

	res, err := rc.Reservations.Create(&models.Reservation{
		CustomerID: customerID,
		TableID:    req.TableID,
		StartTime:  req.StartTime,
		PartySize:  req.PartySize,
		Notes:      req.Notes,
	})
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastReservationCreate(*res)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", res)
}

// ModifyReservation rewrites the window, party size and notes.
func (rc *ReservationController) ModifyReservation(c *gin.Context) {
	id, err := paramID(c, "reservation_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time"`
		PartySize int       `json:"party_size" binding:"required"`
		Notes     string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := rc.Reservations.Modify(id, services.ModifyInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		PartySize: req.PartySize,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastReservationUpdate(*res)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", res)
}

// CancelReservation cancels a reservation and frees the table when no
// other active reservation holds it.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	rc.lifecycle(c, rc.Reservations.Cancel, "Reservation cancelled")
}

// ConfirmReservation moves a PENDING reservation to CONFIRMED.
func (rc *ReservationController) ConfirmReservation(c *gin.Context) {
	rc.lifecycle(c, rc.Reservations.Confirm, "Reservation confirmed")
}

// CompleteReservation marks the visit as honored.
func (rc *ReservationController) CompleteReservation(c *gin.Context) {
	rc.lifecycle(c, rc.Reservations.Complete, "Reservation completed")
}

// MarkNoShow records that the party did not arrive.
func (rc *ReservationController) MarkNoShow(c *gin.Context) {
	rc.lifecycle(c, rc.Reservations.MarkNoShow, "Reservation marked as no-show")
}

func (rc *ReservationController) lifecycle(c *gin.Context, op func(uint) (*models.Reservation, error), message string) {
	id, err := paramID(c, "reservation_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := op(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastReservationUpdate(*res)
	utils.RespondJSON(c, http.StatusOK, message, res)
}

// GetReservation returns one reservation.
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, err := paramID(c, "reservation_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := rc.Reservations.GetByID(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", res)
}

// GetAllReservations lists every reservation. Admin only.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	list, err := rc.Reservations.ListAll()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All reservations", list)
}

// GetMyReservations lists the caller's own reservations.
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	userID, _ := c.Get("user_id")
	list, err := rc.Reservations.ListByCustomer(userID.(uint))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Your reservations", list)
}

// GetReservationsByCustomer lists reservations for a given customer.
func (rc *ReservationController) GetReservationsByCustomer(c *gin.Context) {
	customerID, err := paramID(c, "customer_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	list, err := rc.Reservations.ListByCustomer(customerID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer reservations", list)
}

// GetReservationsForDay lists reservations starting on a calendar day.
// Query param: date (2006-01-02), defaults to today.
func (rc *ReservationController) GetReservationsForDay(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		date = parsed
	}

	list, err := rc.Reservations.ListForDay(date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations for "+date.Format("2006-01-02"), list)
}

// CheckAvailability reports whether a table is free for a window.
// Query params: table_id, start_time (RFC3339), end_time (RFC3339, optional).
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Query("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	end := start.Add(services.ReservationDuration)
	if raw := c.Query("end_time"); raw != "" {
		end, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	available, err := rc.Reservations.IsAvailable(uint(tableID), start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability", gin.H{"available": available})
}

// GetStatistics aggregates reservation counts by hour of day.
// Query params: start, end (RFC3339).
func (rc *ReservationController) GetStatistics(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	stats, err := rc.Reservations.Statistics(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation statistics", stats)
}

// RunReminders triggers a reminder sweep manually. Admin only; the same
// sweep also runs on the scheduler ticker.
func (rc *ReservationController) RunReminders(c *gin.Context) {
	sent, err := rc.Reservations.RunReminders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reminder sweep finished", gin.H{"sent": sent})
}
