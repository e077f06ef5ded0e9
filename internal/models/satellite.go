package models

import "time"

// Imagery holds a satellite capture of the area around a location.
// PNG may be empty when the upstream returned metadata only.
type Imagery struct {
	PNG           []byte      `json:"-"`
	CapturedAt    time.Time   `json:"captured_at"`
	Location      Coordinates `json:"location"`
	CloudCoverage int         `json:"cloud_coverage"` // Percent.
	Resolution    string      `json:"resolution"`
	Bands         []string    `json:"bands"`
	Source        string      `json:"source"`
}

// WaterAnalysis is the water-coverage assessment derived from satellite imagery.
type WaterAnalysis struct {
	WaterPercentage float64  `json:"water_percentage"`
	Change          float64  `json:"change"` // Delta vs. the previous period, percentage points.
	Indicators      []string `json:"risk_indicators,omitempty"`
	Summary         string   `json:"analysis"`
	Confidence      float64  `json:"confidence"`
	Source          string   `json:"source"`
}
