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

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// CreateTable adds a new table to the registry.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   string `json:"number" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Create(&models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
	})
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastTableCreate(*table)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables lists the active tables.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.ListActive()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID returns one table.
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.GetByID(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// FindTablesByStatus lists tables in a given state, default AVAILABLE.
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.TableAvailable
	}

	tables, err := tc.Tables.ListByState(status)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}

// FindAvailableTables lists tables that could seat a party at a start time.
// Query params: start_time (RFC3339), party_size.
func (tc *TableController) FindAvailableTables(c *gin.Context) {
	startTime, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tables, err := tc.Tables.FindAvailable(startTime, partySize)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// UpdateTableStatus is the administrative state override.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.SetState(id, body.Status)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// ReleaseTable resets a table to AVAILABLE.
func (tc *TableController) ReleaseTable(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Release(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.RespondJSON(c, http.StatusOK, "Table released", table)
}

// CountActiveTables returns the number of active tables.
func (tc *TableController) CountActiveTables(c *gin.Context) {
	count, err := tc.Tables.CountActive()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active table count", gin.H{"count": count})
}

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
