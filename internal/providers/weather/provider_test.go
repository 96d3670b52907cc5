package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sync-cloud/backend/internal/infrastructure/config"
	"github.com/sync-cloud/backend/internal/infrastructure/logging"
)

const vendorBody = `{
	"name": "London",
	"sys": {"country": "GB", "sunrise": 1756612800, "sunset": 1756661400},
	"coord": {"lat": 51.5074, "lon": -0.1278},
	"weather": [{"main": "Clouds", "description": "overcast clouds", "icon": "04d"}],
	"main": {"temp": 17.6, "feels_like": 17.2, "temp_min": 16.4, "temp_max": 18.5, "humidity": 72, "pressure": 1012},
	"wind": {"speed": 4.1, "deg": 240},
	"clouds": {"all": 90},
	"visibility": 10000,
	"timezone": 3600
}`

func testConfig(endpoint string) config.WeatherConfig {
	return config.WeatherConfig{APIKey: "test-key", Endpoint: endpoint}
}

func TestCurrentByCity(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(vendorBody))
	}))
	defer vendor.Close()

	p := New(testConfig(vendor.URL), logging.NewNop())
	report, err := p.Current(context.Background(), Query{City: "London"})
	require.NoError(t, err)

	assert.Equal(t, "London", report.Location.Name)
	assert.Equal(t, "GB", report.Location.Country)
	assert.Equal(t, 51.5074, report.Location.Coordinates.Lat)
	assert.Equal(t, "Clouds", report.Weather.Main)

	// temperatures round to whole degrees
	assert.Equal(t, 18, report.Temperature.Current)
	assert.Equal(t, 17, report.Temperature.FeelsLike)
	assert.Equal(t, 16, report.Temperature.Min)
	assert.Equal(t, 19, report.Temperature.Max)

	// visibility stays in meters
	assert.Equal(t, 10000, report.Visibility)
	assert.Equal(t, 3600, report.Timezone)
}

func TestCurrentByCoordinates(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "51.5074", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.1278", r.URL.Query().Get("lon"))
		assert.Empty(t, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(vendorBody))
	}))
	defer vendor.Close()

	lat, lon := 51.5074, -0.1278
	p := New(testConfig(vendor.URL), logging.NewNop())
	report, err := p.Current(context.Background(), Query{Lat: &lat, Lon: &lon})
	require.NoError(t, err)
	assert.Equal(t, "London", report.Location.Name)
}

func TestCityTakesPrecedenceOverCoordinates(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Empty(t, r.URL.Query().Get("lat"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(vendorBody))
	}))
	defer vendor.Close()

	lat, lon := 1.0, 2.0
	p := New(testConfig(vendor.URL), logging.NewNop())
	_, err := p.Current(context.Background(), Query{City: "Paris", Lat: &lat, Lon: &lon})
	require.NoError(t, err)
}

func TestCurrentCityNotFound(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer vendor.Close()

	p := New(testConfig(vendor.URL), logging.NewNop())
	_, err := p.Current(context.Background(), Query{City: "Nowheresville"})

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, http.StatusNotFound, vendorErr.StatusCode)
	assert.Equal(t, "City not found. Please check the spelling and try again.", vendorErr.Message)
}

func TestCurrentVendorMessagePassthrough(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer vendor.Close()

	p := New(testConfig(vendor.URL), logging.NewNop())
	_, err := p.Current(context.Background(), Query{City: "London"})

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, "Invalid API key", vendorErr.Message)
}

func TestCurrentNotConfigured(t *testing.T) {
	p := New(config.WeatherConfig{}, logging.NewNop())
	_, err := p.Current(context.Background(), Query{City: "London"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
