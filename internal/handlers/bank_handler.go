package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
)

// BankHandler serves the read-only item bank so clients can render sections
// and items.
type BankHandler struct {
	BaseHandler
	bank *itembank.Bank
}

func NewBankHandler(bank *itembank.Bank, logger utils.Logger) *BankHandler {
	return &BankHandler{
		BaseHandler: NewBaseHandler(logger),
		bank:        bank,
	}
}

// ListSections returns all sections with their items in declaration order.
func (h *BankHandler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "sections",
		Data:    h.bank.Sections(),
	})
}

// GetSection returns one section by id.
func (h *BankHandler) GetSection(c *gin.Context) {
	section, err := h.bank.FindSection(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error(), Code: "NOT_FOUND"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "section", Data: section})
}
