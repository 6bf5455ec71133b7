package controllers

import (
	"net/http"

	"github.com/dinebook/reservation-app/models"
	"github.com/dinebook/reservation-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScheduleController manages the per-weekday opening hours records.
type ScheduleController struct {
	DB *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db}
}

// CreateSchedule adds an opening-hours record for a weekday.
func (sc *ScheduleController) CreateSchedule(c *gin.Context) {
	var req struct {
		Weekday         int    `json:"weekday" binding:"min=0,max=6"`
		OpensAt         string `json:"opens_at" binding:"required"`
		ClosesAt        string `json:"closes_at" binding:"required"`
		TablesAvailable int    `json:"tables_available" binding:"required"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cfg := models.ScheduleConfig{
		Weekday:         req.Weekday,
		OpensAt:         req.OpensAt,
		ClosesAt:        req.ClosesAt,
		TablesAvailable: req.TablesAvailable,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}
	if cfg.DurationMinutes <= 0 {
		cfg.DurationMinutes = 30
	}

	if err := sc.DB.Create(&cfg).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Schedule created", cfg)
}

// GetActiveSchedules lists the active opening-hours records.
func (sc *ScheduleController) GetActiveSchedules(c *gin.Context) {
	var list []models.ScheduleConfig
	if err := sc.DB.Where("active = ?", true).Order("weekday").Find(&list).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active schedules", list)
}
