package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musicraft-academy/aptitude-service/internal/services"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

// AttemptHandler exposes the attempt state machine over HTTP. It is a thin
// adapter; all logic lives in the attempt service.
type AttemptHandler struct {
	BaseHandler
	service services.AttemptService
}

func NewAttemptHandler(service services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// StartAttempt creates a fresh attempt and returns its id.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	id, err := h.service.Start(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "attempt started",
		Data:    gin.H{"attempt_id": id},
	})
}

// RecordAnswer upserts one answer into the current attempt.
func (h *AttemptHandler) RecordAnswer(c *gin.Context) {
	var req services.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	if err := h.service.RecordAnswer(c.Request.Context(), &req); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "answer recorded"})
}

// NavigateRequest selects a cursor movement.
type NavigateRequest struct {
	Direction string `json:"direction" validate:"required,oneof=advance-item retreat-item advance-section retreat-section"`
}

// Navigate moves the cursor and returns the new progress.
func (h *AttemptHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	ctx := c.Request.Context()
	switch req.Direction {
	case "advance-item":
		h.service.AdvanceItem(ctx)
	case "retreat-item":
		h.service.RetreatItem(ctx)
	case "advance-section":
		h.service.AdvanceSection(ctx)
	case "retreat-section":
		h.service.RetreatSection(ctx)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unknown navigation direction", Details: req.Direction})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "cursor moved",
		Data:    h.service.Progress(ctx),
	})
}

// CompleteAttempt finalizes the current attempt, returning scores,
// recommendations and the notification submission outcome.
func (h *AttemptHandler) CompleteAttempt(c *gin.Context) {
	result, err := h.service.Complete(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "attempt completed",
		Data:    result,
	})
}

// GetAttempt returns an attempt by id, current or historical.
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	attempt, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "attempt found", Data: attempt})
}

// ListAttempts returns the completed-attempt history.
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "attempt history",
		Data:    h.service.History(c.Request.Context()),
	})
}

// DiscardAttempt drops the current attempt without touching history.
func (h *AttemptHandler) DiscardAttempt(c *gin.Context) {
	if err := h.service.Discard(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "attempt discarded"})
}

// GetProgress returns the cursor position.
func (h *AttemptHandler) GetProgress(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "progress",
		Data:    h.service.Progress(c.Request.Context()),
	})
}
