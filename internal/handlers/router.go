package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/musicraft-academy/aptitude-service/internal/cache"
	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/services"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

type HandlerManager struct {
	attemptHandler *AttemptHandler
	exportHandler  *ExportHandler
	bankHandler    *BankHandler
}

func NewHandlerManager(
	bank *itembank.Bank,
	attempts services.AttemptService,
	exporter services.ExportService,
	cacheSvc cache.CacheService,
	shareBaseURL string,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		attemptHandler: NewAttemptHandler(attempts, logger),
		exportHandler:  NewExportHandler(attempts, exporter, cacheSvc, shareBaseURL, logger),
		bankHandler:    NewBankHandler(bank, logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		attempts := v1.Group("/attempts")
		{
			attempts.POST("", hm.attemptHandler.StartAttempt)
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.GET("/:id/share", hm.exportHandler.GetShareSummary)

			attempts.POST("/current/answers", hm.attemptHandler.RecordAnswer)
			attempts.POST("/current/navigate", hm.attemptHandler.Navigate)
			attempts.POST("/current/complete", hm.attemptHandler.CompleteAttempt)
			attempts.GET("/current/progress", hm.attemptHandler.GetProgress)
			attempts.DELETE("/current", hm.attemptHandler.DiscardAttempt)
		}

		export := v1.Group("/export")
		{
			export.GET("/attempts.csv", hm.exportHandler.ExportCSV)
			export.GET("/attempts.xlsx", hm.exportHandler.ExportExcel)
		}

		bank := v1.Group("/bank")
		{
			bank.GET("/sections", hm.bankHandler.ListSections)
			bank.GET("/sections/:id", hm.bankHandler.GetSection)
		}
	}
}
