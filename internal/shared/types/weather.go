package types

// WeatherReport is the normalized weather payload returned by the proxy:
// a flattened reshape of the vendor's verbose response. Temperatures are
// rounded to whole degrees; visibility stays in meters (conversion to km
// is a display concern).
type WeatherReport struct {
	Location    Location    `json:"location"`
	Weather     Conditions  `json:"weather"`
	Temperature Temperature `json:"temperature"`
	Humidity    int         `json:"humidity"`
	Pressure    int         `json:"pressure"`
	Wind        Wind        `json:"wind"`
	Clouds      int         `json:"clouds"`
	Visibility  int         `json:"visibility"`
	Sunrise     int64       `json:"sunrise"`
	Sunset      int64       `json:"sunset"`
	Timezone    int         `json:"timezone"`
}

// Location identifies the resolved place.
type Location struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// Coordinates is a lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Conditions describes the current weather condition.
type Conditions struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Temperature holds rounded whole-degree readings.
type Temperature struct {
	Current   int `json:"current"`
	FeelsLike int `json:"feels_like"`
	Min       int `json:"min"`
	Max       int `json:"max"`
}

// Wind holds speed and direction.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}
