package controllers

import (
	"net/http"
	"time"

	"github.com/dinebook/reservation-app/events"
	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/services"
	"github.com/dinebook/reservation-app/utils"
	"github.com/gin-gonic/gin"
)

type ShiftController struct {
	Shifts *services.ShiftService
}

func NewShiftController(shifts *services.ShiftService) *ShiftController {
	return &ShiftController{Shifts: shifts}
}

// AssignShift puts a staff member on a table for a shift.
func (sc *ShiftController) AssignShift(c *gin.Context) {
	var req struct {
		StaffID   uint      `json:"staff_id" binding:"required"`
		TableID   uint      `json:"table_id" binding:"required"`
		Date      string    `json:"date" binding:"required"` // 2006-01-02
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	a, err := sc.Shifts.Assign(&models.ShiftAssignment{
		StaffID:   req.StaffID,
		TableID:   req.TableID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastShiftUpdate(*a)
	utils.RespondJSON(c, http.StatusCreated, "Shift assigned", a)
}

// CompleteShift closes an assignment.
func (sc *ShiftController) CompleteShift(c *gin.Context) {
	id, err := paramID(c, "assignment_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	a, err := sc.Shifts.Complete(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastShiftUpdate(*a)
	utils.RespondJSON(c, http.StatusOK, "Shift completed", a)
}

// CancelShift voids an assignment.
func (sc *ShiftController) CancelShift(c *gin.Context) {
	id, err := paramID(c, "assignment_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	a, err := sc.Shifts.Cancel(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastShiftUpdate(*a)
	utils.RespondJSON(c, http.StatusOK, "Shift cancelled", a)
}

// GetShift returns one assignment.
func (sc *ShiftController) GetShift(c *gin.Context) {
	id, err := paramID(c, "assignment_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	a, err := sc.Shifts.GetByID(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift detail", a)
}

// GetShiftsByStaff lists a staff member's assignments, optionally for one
// date. Query param: date (2006-01-02).
func (sc *ShiftController) GetShiftsByStaff(c *gin.Context) {
	staffID, err := paramID(c, "staff_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		list, err := sc.Shifts.ListByStaffAndDate(staffID, date)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Staff shifts for "+raw, list)
		return
	}

	list, err := sc.Shifts.ListByStaff(staffID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff shifts", list)
}

// GetShiftsByDate lists the active assignments for a calendar day.
// Query param: date (2006-01-02), defaults to today.
func (sc *ShiftController) GetShiftsByDate(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		date = parsed
	}

	list, err := sc.Shifts.ListByDate(date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shifts for "+date.Format("2006-01-02"), list)
}
