package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, duration)
	}
}

// Timer measures one vendor call.
type Timer struct {
	start   time.Time
	metrics *Metrics
	vendor  string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, vendor string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, vendor: vendor}
}

// Stop stops the timer and records the call
func (t *Timer) Stop(status string) {
	t.metrics.RecordVendorCall(t.vendor, status, time.Since(t.start))
}
