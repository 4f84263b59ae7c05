package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"

	"github.com/ArowuTest/nebula-luck-backend/internal/lottery"
	"github.com/ArowuTest/nebula-luck-backend/internal/models"
	"github.com/ArowuTest/nebula-luck-backend/internal/services"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, lottery.ErrRejected):
		return http.StatusConflict
	case errors.Is(err, services.ErrPrizeNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidPrize), errors.Is(err, models.ErrInvalidParticipant):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrImportFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...} with the mapped status
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
