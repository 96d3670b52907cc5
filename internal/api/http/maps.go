package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sync-cloud/backend/internal/maps"
)

// MapView builds the render-ready map model for a located point.
func (h *Handlers) MapView(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide lat and lon coordinates"})
		return
	}

	accuracy := 100.0
	if v, err := strconv.ParseFloat(c.Query("accuracy"), 64); err == nil && v >= 0 {
		accuracy = v
	}

	c.JSON(http.StatusOK, maps.NewView(lat, lon, accuracy))
}
