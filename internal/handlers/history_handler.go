package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/nebula-luck-backend/internal/services"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

// HistoryHandler handles winner history HTTP requests
type HistoryHandler struct {
	historyService services.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetHistory handles GET /history
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.historyService.History(c.Request.Context()))
}

// ExportHistory handles GET /history/export?format=csv|xlsx
func (h *HistoryHandler) ExportHistory(c *gin.Context) {
	format, err := utils.ParseExportFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// buffered so an encoding error can still produce a JSON error response
	var buf bytes.Buffer
	if err := h.historyService.Export(c.Request.Context(), &buf, format); err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("lottery_winners_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ClearHistory handles DELETE /history
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	if err := h.historyService.ClearHistory(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
