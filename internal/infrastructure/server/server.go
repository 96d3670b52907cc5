// Package server assembles the router, the session stores, and the
// vendor providers into a runnable HTTP service.
package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/sync-cloud/backend/internal/api/http"
	"github.com/sync-cloud/backend/internal/api/middleware"
	"github.com/sync-cloud/backend/internal/domain/session"
	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
	"github.com/sync-cloud/backend/internal/infrastructure/monitoring"
	"github.com/sync-cloud/backend/internal/providers/email"
	"github.com/sync-cloud/backend/internal/providers/geocode"
	"github.com/sync-cloud/backend/internal/providers/translate"
	"github.com/sync-cloud/backend/internal/providers/weather"
	"github.com/sync-cloud/backend/internal/shared/id"
	"github.com/sync-cloud/backend/internal/shared/types"
	"github.com/sync-cloud/backend/internal/storage"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	kv      storage.KV
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing Sync backend",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	metrics := monitoring.NewMetrics()

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// One store per domain, each loading its saved history up front.
	emailStore := session.New[types.EmailEntry](kv, "email", logger)
	translateStore := session.New[types.TranslationEntry](kv, "translate", logger)
	weatherStore := session.New[types.WeatherEntry](kv, "weather", logger)

	sessions := map[string]session.Service{
		"email":     session.NewAdapter(emailStore, normalizeEmail),
		"translate": session.NewAdapter(translateStore, normalizeTranslation),
		"weather":   session.NewAdapter(weatherStore, normalizeWeather),
	}
	for _, svc := range sessions {
		svc.Load()
	}
	metrics.SetSessionsActive("email", len(emailStore.List()))
	metrics.SetSessionsActive("translate", len(translateStore.List()))
	metrics.SetSessionsActive("weather", len(weatherStore.List()))

	emailProvider := email.New(cfg.Brevo, logger)
	translateProvider := translate.New(cfg.Translator, logger)
	weatherProvider := weather.New(cfg.Weather, logger)
	geocodeProvider := geocode.New(cfg.Geocoder, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	handlers := apihttp.NewHandlers(
		cfg,
		emailProvider,
		translateProvider,
		weatherProvider,
		geocodeProvider,
		sessions,
		translateStore,
		metrics,
		logger,
	)

	registerRoutes(router, handlers)

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		kv:      kv,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

func registerRoutes(router *gin.Engine, handlers *apihttp.Handlers) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Vendor proxies
	api.POST("/send-email", handlers.SendEmail)
	api.POST("/translate", handlers.Translate)
	api.GET("/translate/languages", handlers.Languages)
	api.GET("/weather", handlers.Weather)
	api.GET("/geocode/reverse", handlers.ReverseGeocode)
	api.GET("/map/view", handlers.MapView)

	// Session history, one namespace per domain
	sessions := api.Group("/sessions/:domain")
	sessions.GET("", handlers.ListSessions)
	sessions.POST("", handlers.CreateSession)
	sessions.DELETE("", handlers.ClearSessions)
	sessions.POST("/entries", handlers.AppendSessionEntry)
	sessions.GET("/:id", handlers.GetSession)
	sessions.DELETE("/:id", handlers.DeleteSession)
	sessions.POST("/:id/activate", handlers.ActivateSession)
	sessions.POST("/:id/entries", handlers.AppendSessionEntryTo)
	sessions.PATCH("/:id/entries/:index", handlers.UpdateSessionEntry)
	sessions.POST("/:id/entries/:index/retranslate", handlers.Retranslate)
	sessions.POST("/:id/entries/:index/edit", handlers.EditTranslation)
}

func normalizeEmail(e types.EmailEntry) types.EmailEntry {
	if e.ID == "" {
		e.ID = id.NewEntryID().String()
	}
	if e.Timestamp == "" {
		e.Timestamp = now()
	}
	return e
}

func normalizeTranslation(e types.TranslationEntry) types.TranslationEntry {
	if e.Timestamp == "" {
		e.Timestamp = now()
	}
	if e.DetectedLanguage == "" {
		e.DetectedLanguage = "unknown"
	}
	return e
}

func normalizeWeather(e types.WeatherEntry) types.WeatherEntry {
	if e.ID == "" {
		e.ID = id.NewEntryID().String()
	}
	if e.Timestamp == "" {
		e.Timestamp = now()
	}
	return e
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if err := s.kv.Close(); err != nil {
		s.logger.Error("Failed to close storage", zap.Error(err))
		return fmt.Errorf("failed to close storage: %w", err)
	}

	s.logger.Sync()
	return nil
}
