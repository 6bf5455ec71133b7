package utils

import (
	"errors"
	"net/http"

	"github.com/dinebook/reservation-app/models"
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondDomainError maps a domain error to the matching HTTP status.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, models.ErrCapacityExceeded):
		RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, models.ErrSlotUnavailable):
		RespondError(c, http.StatusConflict, err)
	case errors.Is(err, models.ErrInvalidState):
		RespondError(c, http.StatusConflict, err)
	case models.IsValidationError(err):
		RespondError(c, http.StatusBadRequest, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
