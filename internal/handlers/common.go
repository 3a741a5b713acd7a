package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musicraft-academy/aptitude-service/internal/services"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// SuccessResponse represents a success response.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// BaseHandler provides shared logging and error mapping for all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// HandleError maps a service error onto the HTTP status it deserves:
// not-found sentinels become 404, validation failures 400, lifecycle
// conflicts 409, configuration mismatches a logged 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error(), Code: "NOT_FOUND"})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "VALIDATION_FAILED"})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error(), Code: "CONFLICT"})
	case services.IsConfig(err):
		h.logger.LogError(err, "Configuration error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error(), Code: "CONFIG_ERROR"})
	default:
		h.logger.LogError(err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error", Code: "INTERNAL"})
	}
}

// HealthCheck responds to liveness probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
