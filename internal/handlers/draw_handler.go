package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/nebula-luck-backend/internal/services"
)

// DrawHandler handles draw lifecycle HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
	}
}

// GetStatus handles GET /draw/status
func (h *DrawHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.drawService.Status(c.Request.Context()))
}

// Start handles POST /draw/start
func (h *DrawHandler) Start(c *gin.Context) {
	status, err := h.drawService.Start(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Stop handles POST /draw/stop
func (h *DrawHandler) Stop(c *gin.Context) {
	result, err := h.drawService.Stop(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Acknowledge handles POST /draw/acknowledge
func (h *DrawHandler) Acknowledge(c *gin.Context) {
	status, err := h.drawService.Acknowledge(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Reset handles POST /draw/reset
func (h *DrawHandler) Reset(c *gin.Context) {
	status, err := h.drawService.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// SelectPrizeRequest is the body of PUT /draw/prize
type SelectPrizeRequest struct {
	PrizeID string `json:"prizeId" binding:"required"`
}

// SelectPrize handles PUT /draw/prize
func (h *DrawHandler) SelectPrize(c *gin.Context) {
	var request SelectPrizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := h.drawService.SelectPrize(c.Request.Context(), request.PrizeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
