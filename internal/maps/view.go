// Package maps builds the view model consumed by the client-side map
// component: center, zoom, tile layers, and the marker/circle overlays
// for a located point.
package maps

import "fmt"

const markerColor = "#10b981"

// View is the render-ready model for one located point.
type View struct {
	Center     Point       `json:"center"`
	Zoom       int         `json:"zoom"`
	MaxZoom    int         `json:"maxZoom"`
	TileLayers []TileLayer `json:"tileLayers"`
	Marker     Marker      `json:"marker"`
	Circles    []Circle    `json:"circles"`
}

// Point is a lat/lon pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TileLayer describes one raster tile source.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	MinZoom     int    `json:"minZoom"`
	Pane        string `json:"pane,omitempty"`
}

// Marker is the located-point pin with its popup text.
type Marker struct {
	Position Point  `json:"position"`
	Popup    string `json:"popup"`
}

// Circle is an overlay circle centered on the marker.
type Circle struct {
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
	Weight      int     `json:"weight"`
	Pulse       bool    `json:"pulse,omitempty"`
}

// ZoomFor derives the zoom level from position accuracy in meters.
// Tighter accuracy zooms closer.
func ZoomFor(accuracy float64) int {
	switch {
	case accuracy < 10:
		return 19
	case accuracy < 50:
		return 18
	case accuracy < 100:
		return 17
	case accuracy < 500:
		return 16
	default:
		return 15
	}
}

// NewView builds the view model for a point with the given accuracy
// radius in meters.
func NewView(lat, lon, accuracy float64) *View {
	center := Point{Lat: lat, Lon: lon}
	return &View{
		Center:  center,
		Zoom:    ZoomFor(accuracy),
		MaxZoom: 20,
		TileLayers: []TileLayer{
			{
				URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
				Attribution: "Tiles &copy; Esri &mdash; Source: Esri, i-cubed, USDA, USGS, AEX, GeoEye, Getmapping, Aerogrid, IGN, IGP, UPR-EGP, and the GIS User Community",
				MaxZoom:     20,
				MinZoom:     2,
			},
			{
				URL:         "https://{s}.basemaps.cartocdn.com/only_labels/{z}/{x}/{y}.png",
				Attribution: "&copy; CartoDB",
				MaxZoom:     20,
				MinZoom:     2,
				Pane:        "shadowPane",
			},
		},
		Marker: Marker{
			Position: center,
			Popup:    fmt.Sprintf("You are here\n%.6f°, %.6f°", lat, lon),
		},
		Circles: []Circle{
			{
				Radius:      accuracy,
				Color:       markerColor,
				FillColor:   markerColor,
				FillOpacity: 0.1,
				Weight:      2,
			},
			{
				Radius:      20,
				Color:       markerColor,
				FillColor:   markerColor,
				FillOpacity: 0.3,
				Weight:      0,
				Pulse:       true,
			},
		},
	}
}
