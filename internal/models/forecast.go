package models

import "time"

// Forecast holds a daily weather forecast for a location.
// All slices share the same length and index by forecast day.
type Forecast struct {
	Dates        []string  `json:"dates"`         // YYYY-MM-DD per day.
	RainfallMM   []float64 `json:"rainfall_mm"`   // Expected rainfall per day, millimetres.
	TemperatureC []float64 `json:"temperature_c"` // Daytime temperature per day, Celsius.
	Humidity     []float64 `json:"humidity"`      // Relative humidity per day, percent.

	AvgHumidity   float64 `json:"avg_humidity"`
	TotalRainfall float64 `json:"total_rainfall"`
	MaxDailyRain  float64 `json:"max_daily_rainfall"`

	Source string `json:"source"` // Upstream provider name or "Mock Data".
}

// StormAlert describes an active severe-weather warning for a location.
type StormAlert struct {
	Active      bool      `json:"active"`
	Level       string    `json:"level,omitempty"` // SEVERE or MODERATE.
	Description string    `json:"description,omitempty"`
	Issued      time.Time `json:"issued,omitempty"`
	Expires     time.Time `json:"expires,omitempty"`
}
