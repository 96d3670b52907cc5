package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Storage    StorageConfig
	Brevo      BrevoConfig
	Translator TranslatorConfig
	Weather    WeatherConfig
	Geocoder   GeocoderConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StorageConfig selects the session history key-value backend.
type StorageConfig struct {
	Backend string `envconfig:"STORAGE_BACKEND" default:"file"`
	Path    string `envconfig:"STORAGE_PATH" default:"/tmp/sync-storage"`
}

// BrevoConfig holds transactional email vendor credentials.
type BrevoConfig struct {
	APIKey      string `envconfig:"BREVO_API_KEY"`
	SenderEmail string `envconfig:"BREVO_SENDER_EMAIL"`
	SenderName  string `envconfig:"BREVO_SENDER_NAME"`
	Endpoint    string `envconfig:"BREVO_ENDPOINT" default:"https://api.brevo.com/v3/smtp/email"`
}

// Configured reports whether all required email credentials are present.
func (c BrevoConfig) Configured() bool {
	return c.APIKey != "" && c.SenderEmail != "" && c.SenderName != ""
}

// TranslatorConfig holds machine translation vendor credentials.
type TranslatorConfig struct {
	APIKey   string `envconfig:"TRANSLATOR_API_KEY"`
	Region   string `envconfig:"TRANSLATOR_REGION"`
	Endpoint string `envconfig:"TRANSLATOR_ENDPOINT"`
}

// Configured reports whether all required translator credentials are present.
func (c TranslatorConfig) Configured() bool {
	return c.APIKey != "" && c.Region != "" && c.Endpoint != ""
}

// WeatherConfig holds weather vendor credentials.
type WeatherConfig struct {
	APIKey   string `envconfig:"OPENWEATHER_API_KEY"`
	Endpoint string `envconfig:"OPENWEATHER_ENDPOINT" default:"https://api.openweathermap.org/data/2.5/weather"`
}

// Configured reports whether the weather API key is present.
func (c WeatherConfig) Configured() bool {
	return c.APIKey != ""
}

// GeocoderConfig holds reverse geocoding endpoint configuration.
// Nominatim requires no API key but does require a User-Agent.
type GeocoderConfig struct {
	Endpoint  string `envconfig:"GEOCODER_ENDPOINT" default:"https://nominatim.openstreetmap.org/reverse"`
	UserAgent string `envconfig:"GEOCODER_USER_AGENT" default:"sync-backend/1.0"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "/tmp/sync-storage",
		},
		Brevo: BrevoConfig{
			Endpoint: "https://api.brevo.com/v3/smtp/email",
		},
		Weather: WeatherConfig{
			Endpoint: "https://api.openweathermap.org/data/2.5/weather",
		},
		Geocoder: GeocoderConfig{
			Endpoint:  "https://nominatim.openstreetmap.org/reverse",
			UserAgent: "sync-backend/1.0",
		},
	}
}
