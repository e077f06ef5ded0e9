package models

// SlopeStats summarizes the terrain gradient over an elevation grid.
// Flat terrain accumulates water; steep terrain drains it.
type SlopeStats struct {
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
}

// ElevationProfile is a square grid of elevation samples centred on a location.
// Elevations is indexed [row][col] and matches Latitudes x Longitudes.
type ElevationProfile struct {
	Latitudes  []float64   `json:"-"`
	Longitudes []float64   `json:"-"`
	Elevations [][]float64 `json:"-"`

	Center float64    `json:"center_elevation"` // Elevation at the grid centre, metres.
	Min    float64    `json:"min_elevation"`
	Max    float64    `json:"max_elevation"`
	Avg    float64    `json:"avg_elevation"`
	Slope  SlopeStats `json:"slope"`

	Source string `json:"source"`
}

// ElevationSummary is the response-facing subset of an elevation profile.
type ElevationSummary struct {
	Center     float64    `json:"center_elevation"`
	Min        float64    `json:"min_elevation"`
	Max        float64    `json:"max_elevation"`
	Avg        float64    `json:"avg_elevation"`
	Slope      SlopeStats `json:"slope"`
	Terrain    string     `json:"terrain_type"`
	Indicators []string   `json:"risk_indicators,omitempty"`
	FloodRisk  float64    `json:"flood_risk"` // Terrain-only risk, independent of the overall model.
	Source     string     `json:"source"`
}

// Summary converts a full profile into its response-facing form.
func (p *ElevationProfile) Summary(terrain string, indicators []string, floodRisk float64) *ElevationSummary {
	return &ElevationSummary{
		Center:     p.Center,
		Min:        p.Min,
		Max:        p.Max,
		Avg:        p.Avg,
		Slope:      p.Slope,
		Terrain:    terrain,
		Indicators: indicators,
		FloodRisk:  floodRisk,
		Source:     p.Source,
	}
}
