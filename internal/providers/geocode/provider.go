// Package geocode resolves coordinates to addresses through the
// Nominatim reverse endpoint.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
	"github.com/sync-cloud/backend/internal/shared/types"
)

// Provider wraps the Nominatim reverse-geocoding endpoint. Nominatim
// has no API key but requires an identifying User-Agent.
type Provider struct {
	client *resty.Client
	cfg    config.GeocoderConfig
	logger *logging.Logger
}

// New creates a geocode provider.
func New(cfg config.GeocoderConfig, logger *logging.Logger) *Provider {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Provider{client: client, cfg: cfg, logger: logger}
}

type vendorPayload struct {
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Error       string            `json:"error"`
}

// Reverse resolves lat/lon into a display name and address components.
func (p *Provider) Reverse(ctx context.Context, lat, lon float64) (*types.ReverseGeocodeResponse, error) {
	var payload vendorPayload
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetQueryParam("lat", strconv.FormatFloat(lat, 'f', -1, 64)).
		SetQueryParam("lon", strconv.FormatFloat(lon, 'f', -1, 64)).
		SetResult(&payload).
		Get(p.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("geocoding vendor call failed: %w", err)
	}

	if resp.IsError() {
		p.logger.Warn("geocoding vendor rejected request",
			zap.Int("status", resp.StatusCode()))
		return nil, fmt.Errorf("geocoding failed: %d", resp.StatusCode())
	}

	// Nominatim reports unresolvable coordinates with 200 and an error field
	if payload.Error != "" {
		return nil, errors.New(payload.Error)
	}

	return &types.ReverseGeocodeResponse{
		DisplayName: payload.DisplayName,
		Address:     payload.Address,
	}, nil
}
