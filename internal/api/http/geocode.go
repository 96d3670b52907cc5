package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReverseGeocode resolves coordinates into a display name and address.
func (h *Handlers) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide lat and lon coordinates"})
		return
	}

	timer := h.startTimer("nominatim")
	result, err := h.geocode.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		h.stopTimer(timer, "error")
		h.logger.Error("reverse geocoding failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve location"})
		return
	}
	h.stopTimer(timer, "ok")

	c.JSON(http.StatusOK, result)
}
