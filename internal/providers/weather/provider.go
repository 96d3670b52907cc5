// Package weather proxies current-conditions lookups through the
// OpenWeather API and normalizes the vendor payload.
package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
	"github.com/sync-cloud/backend/internal/shared/types"
)

// ErrNotConfigured signals missing vendor credentials.
var ErrNotConfigured = errors.New("weather service not configured")

// VendorError carries a user-presentable message for a failed lookup.
// Handlers surface it in the response body rather than as a transport
// error.
type VendorError struct {
	StatusCode int
	Message    string
}

func (e *VendorError) Error() string { return e.Message }

// Query selects a location either by city name or by coordinates. City
// takes precedence when both are set.
type Query struct {
	City string
	Lat  *float64
	Lon  *float64
}

// Provider wraps the OpenWeather current-weather endpoint. One outbound
// call per lookup; no retry.
type Provider struct {
	client *resty.Client
	cfg    config.WeatherConfig
	logger *logging.Logger
}

// New creates a weather provider.
func New(cfg config.WeatherConfig, logger *logging.Logger) *Provider {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", "sync-backend/1.0")

	return &Provider{client: client, cfg: cfg, logger: logger}
}

type vendorPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int    `json:"visibility"`
	Timezone   int    `json:"timezone"`
	Message    string `json:"message"`
}

// Current fetches current conditions for the query. A vendor-reported
// failure comes back as *VendorError so callers can fold the message
// into the normal response shape.
func (p *Provider) Current(ctx context.Context, q Query) (*types.WeatherReport, error) {
	if !p.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	req := p.client.R().
		SetContext(ctx).
		SetQueryParam("appid", p.cfg.APIKey).
		SetQueryParam("units", "metric")

	switch {
	case q.City != "":
		req.SetQueryParam("q", q.City)
	case q.Lat != nil && q.Lon != nil:
		req.SetQueryParam("lat", strconv.FormatFloat(*q.Lat, 'f', -1, 64))
		req.SetQueryParam("lon", strconv.FormatFloat(*q.Lon, 'f', -1, 64))
	default:
		return nil, errors.New("weather query needs a city or coordinates")
	}

	var payload vendorPayload
	resp, err := req.SetResult(&payload).SetError(&payload).Get(p.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("weather vendor call failed: %w", err)
	}

	if resp.IsError() {
		p.logger.Warn("weather vendor rejected request",
			zap.Int("status", resp.StatusCode()),
			zap.String("city", q.City))
		return nil, &VendorError{
			StatusCode: resp.StatusCode(),
			Message:    vendorMessage(resp.StatusCode(), payload.Message),
		}
	}

	return normalize(&payload), nil
}

func vendorMessage(status int, message string) string {
	if status == 404 {
		return "City not found. Please check the spelling and try again."
	}
	if message != "" {
		return message
	}
	return "Failed to fetch weather data"
}

func normalize(v *vendorPayload) *types.WeatherReport {
	report := &types.WeatherReport{
		Humidity:   v.Main.Humidity,
		Pressure:   v.Main.Pressure,
		Visibility: v.Visibility,
		Sunrise:    v.Sys.Sunrise,
		Sunset:     v.Sys.Sunset,
		Timezone:   v.Timezone,
	}

	report.Location.Name = v.Name
	report.Location.Country = v.Sys.Country
	report.Location.Coordinates.Lat = v.Coord.Lat
	report.Location.Coordinates.Lon = v.Coord.Lon

	if len(v.Weather) > 0 {
		report.Weather.Main = v.Weather[0].Main
		report.Weather.Description = v.Weather[0].Description
		report.Weather.Icon = v.Weather[0].Icon
	}

	report.Temperature.Current = int(math.Round(v.Main.Temp))
	report.Temperature.FeelsLike = int(math.Round(v.Main.FeelsLike))
	report.Temperature.Min = int(math.Round(v.Main.TempMin))
	report.Temperature.Max = int(math.Round(v.Main.TempMax))

	report.Wind.Speed = v.Wind.Speed
	report.Wind.Deg = v.Wind.Deg
	report.Clouds = v.Clouds.All

	return report
}
