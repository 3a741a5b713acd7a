package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musicraft-academy/aptitude-service/internal/cache"
	"github.com/musicraft-academy/aptitude-service/internal/services"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

// ExportHandler serves tabular downloads and share summaries.
type ExportHandler struct {
	BaseHandler
	attempts     services.AttemptService
	exporter     services.ExportService
	cache        cache.CacheService
	shareBaseURL string
}

func NewExportHandler(
	attempts services.AttemptService,
	exporter services.ExportService,
	cacheSvc cache.CacheService,
	shareBaseURL string,
	logger utils.Logger,
) *ExportHandler {
	return &ExportHandler{
		BaseHandler:  NewBaseHandler(logger),
		attempts:     attempts,
		exporter:     exporter,
		cache:        cacheSvc,
		shareBaseURL: shareBaseURL,
	}
}

// ExportCSV streams the attempt history as CSV. An empty history is a no-op
// and answers 204.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows := h.exporter.AttemptRows(h.attempts.History(c.Request.Context()))
	content := h.exporter.ToTable(rows)
	if content == nil {
		c.Status(http.StatusNoContent)
		return
	}

	filename := c.DefaultQuery("filename", "musicraft-assessments.csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

// ExportExcel streams the attempt history as an XLSX workbook.
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	rows := h.exporter.AttemptRows(h.attempts.History(c.Request.Context()))
	content, err := h.exporter.ToExcel(rows)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if content == nil {
		c.Status(http.StatusNoContent)
		return
	}

	filename := c.DefaultQuery("filename", "musicraft-assessments.xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

type shareResponse struct {
	Summary services.ShareSummary `json:"summary"`
	Link    string                `json:"link"`
}

// GetShareSummary returns the shareable summary and link for a completed
// attempt. The cached copy is served when present; the persisted attempt
// stays authoritative either way.
func (h *ExportHandler) GetShareSummary(c *gin.Context) {
	id := c.Param("id")

	var summary services.ShareSummary
	cacheErr := h.cache.Get(c.Request.Context(), "share:"+id, &summary)

	attempt, err := h.attempts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if cacheErr != nil {
		if !errors.Is(cacheErr, cache.ErrCacheMiss) {
			h.logger.Warn("Share summary cache lookup failed", "attempt_id", id, "error", cacheErr)
		}
		summary = h.exporter.ToShareSummary(attempt)
	}

	link, err := h.exporter.ShareLink(h.shareBaseURL, attempt)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "share summary",
		Data:    shareResponse{Summary: summary, Link: link},
	})
}
