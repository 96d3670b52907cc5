// Package http contains the Gin handlers for the vendor proxies and the
// session REST surface.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sync-cloud/backend/internal/domain/session"
	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
	"github.com/sync-cloud/backend/internal/infrastructure/monitoring"
	"github.com/sync-cloud/backend/internal/providers/email"
	"github.com/sync-cloud/backend/internal/providers/geocode"
	"github.com/sync-cloud/backend/internal/providers/translate"
	"github.com/sync-cloud/backend/internal/providers/weather"
	"github.com/sync-cloud/backend/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	cfg       *config.Config
	email     *email.Provider
	translate *translate.Provider
	weather   *weather.Provider
	geocode   *geocode.Provider

	// per-domain session services, keyed by "email", "translate", "weather"
	sessions map[string]session.Service

	// typed handle for the translate retranslate/edit flows
	translateStore *session.Store[types.TranslationEntry]

	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	cfg *config.Config,
	emailProvider *email.Provider,
	translateProvider *translate.Provider,
	weatherProvider *weather.Provider,
	geocodeProvider *geocode.Provider,
	sessions map[string]session.Service,
	translateStore *session.Store[types.TranslationEntry],
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		cfg:            cfg,
		email:          emailProvider,
		translate:      translateProvider,
		weather:        weatherProvider,
		geocode:        geocodeProvider,
		sessions:       sessions,
		translateStore: translateStore,
		metrics:        metrics,
		logger:         logger,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Sync Backend (Go)",
		"version": "1.0.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"vendors": gin.H{
			"email":      h.cfg.Brevo.Configured(),
			"translator": h.cfg.Translator.Configured(),
			"weather":    h.cfg.Weather.Configured(),
		},
		"storage": gin.H{"backend": h.cfg.Storage.Backend},
	})
}

func (h *Handlers) service(c *gin.Context) (session.Service, string, bool) {
	domain := c.Param("domain")
	svc, ok := h.sessions[domain]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session domain: " + domain})
		return nil, "", false
	}
	return svc, domain, true
}
