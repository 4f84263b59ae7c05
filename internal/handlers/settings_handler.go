package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/services"
)

// SettingsHandler handles settings, prize and roster HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.GetSettings(c.Request.Context()))
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListPrizes handles GET /prizes
func (h *SettingsHandler) ListPrizes(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.ListPrizes(c.Request.Context()))
}

// CreatePrize handles POST /prizes. An empty body creates a default tier.
func (h *SettingsHandler) CreatePrize(c *gin.Context) {
	var input models.PrizeInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	prize, err := h.settingsService.CreatePrize(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /prizes/:id
func (h *SettingsHandler) UpdatePrize(c *gin.Context) {
	var input models.PrizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prize, err := h.settingsService.UpdatePrize(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /prizes/:id
func (h *SettingsHandler) DeletePrize(c *gin.Context) {
	if err := h.settingsService.DeletePrize(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRoster handles GET /roster
func (h *SettingsHandler) GetRoster(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.GetRoster(c.Request.Context()))
}

// ReplaceRoster handles PUT /roster
func (h *SettingsHandler) ReplaceRoster(c *gin.Context) {
	var roster []models.Participant
	if err := c.ShouldBindJSON(&roster); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.settingsService.ReplaceRoster(c.Request.Context(), roster)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ClearRoster handles DELETE /roster
func (h *SettingsHandler) ClearRoster(c *gin.Context) {
	if err := h.settingsService.ClearRoster(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportRoster handles POST /roster/import with a multipart "file" field
func (h *SettingsHandler) ImportRoster(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload: " + err.Error()})
		return
	}
	defer file.Close()

	roster, err := h.settingsService.ImportRoster(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(roster), "roster": roster})
}
