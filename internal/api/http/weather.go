package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/providers/weather"
	"github.com/sync-cloud/backend/internal/shared/id"
	"github.com/sync-cloud/backend/internal/shared/types"
)

// Weather proxies a current-conditions lookup. Vendor-reported failures
// come back with status 200 and the message in the body so the client
// renders them inline; only input and configuration problems surface as
// HTTP errors.
func (h *Handlers) Weather(c *gin.Context) {
	query := weather.Query{City: c.Query("city")}
	if lat, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		if lon, err := strconv.ParseFloat(c.Query("lon"), 64); err == nil {
			query.Lat, query.Lon = &lat, &lon
		}
	}

	if query.City == "" && (query.Lat == nil || query.Lon == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide either city name or coordinates"})
		return
	}

	timer := h.startTimer("openweather")
	report, err := h.weather.Current(c.Request.Context(), query)
	if err != nil {
		h.stopTimer(timer, "error")

		if errors.Is(err, weather.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Weather service not configured"})
			return
		}

		var vendorErr *weather.VendorError
		if errors.As(err, &vendorErr) {
			h.recordWeatherEntry(query.City, nil, vendorErr.Message)
			c.JSON(http.StatusOK, gin.H{"error": vendorErr.Message})
			return
		}

		h.logger.Error("weather lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weather data"})
		return
	}
	h.stopTimer(timer, "ok")
	h.recordWeatherEntry(query.City, report, "")

	c.JSON(http.StatusOK, report)
}

func (h *Handlers) recordWeatherEntry(city string, report *types.WeatherReport, errMsg string) {
	entry := types.WeatherEntry{
		ID:        id.NewEntryID().String(),
		City:      city,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Weather:   report,
		Error:     errMsg,
	}
	h.appendEntry("weather", entry)
}
