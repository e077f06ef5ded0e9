package models

import "time"

// RiskLevel is the three-bucket classification of an overall risk score.
type RiskLevel string

const (
	// RiskHigh is assigned to scores of 70 and above.
	RiskHigh RiskLevel = "HIGH"
	// RiskMedium is assigned to scores in [40, 70).
	RiskMedium RiskLevel = "MEDIUM"
	// RiskLow is assigned to scores below 40.
	RiskLow RiskLevel = "LOW"
)

// Sensitivity adjusts the overall score before classification.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "Low"    // Multiplies the score by 0.8.
	SensitivityMedium Sensitivity = "Medium" // Leaves the score unchanged.
	SensitivityHigh   Sensitivity = "High"   // Multiplies the score by 1.2.
)

// SourceSet selects which data sources participate in an assessment.
// A disabled source contributes nothing to the weighted sum.
type SourceSet struct {
	Satellite  bool `json:"satellite"`
	Weather    bool `json:"weather"`
	Elevation  bool `json:"elevation"`
	Historical bool `json:"historical"`
}

// AllSources returns a SourceSet with every data source enabled.
func AllSources() SourceSet {
	return SourceSet{Satellite: true, Weather: true, Elevation: true, Historical: true}
}

// AssessmentRequest describes a single flood risk assessment to perform.
type AssessmentRequest struct {
	Location    Coordinates `json:"location"`
	Days        int         `json:"days"`        // Forecast horizon, 1..7.
	Sensitivity Sensitivity `json:"sensitivity"` // Low, Medium or High.
	Sources     SourceSet   `json:"sources"`
}

// TimelinePoint is the projected risk score for a single forecast day.
type TimelinePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD.
	Score float64 `json:"score"`
}

// Assessment is the complete result of a flood risk computation for one location.
// OverallScore is always within [0, 100] and Level is a deterministic function
// of the score.
type Assessment struct {
	ID       int64       `json:"id,omitempty"`
	Location Coordinates `json:"location"`

	SatelliteRisk  float64   `json:"satellite_risk"`
	WeatherRisk    float64   `json:"weather_risk"`
	TerrainRisk    float64   `json:"terrain_risk"`
	HistoricalRisk float64   `json:"historical_risk"`
	OverallScore   float64   `json:"overall_score"`
	Level          RiskLevel `json:"risk_level"`
	Confidence     float64   `json:"confidence"`

	Timeline        []TimelinePoint `json:"timeline,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`

	Water     *WaterAnalysis    `json:"water_analysis,omitempty"`
	Elevation *ElevationSummary `json:"elevation,omitempty"`
	Forecast  *Forecast         `json:"forecast,omitempty"`
	Alert     *StormAlert       `json:"storm_alert,omitempty"`

	// MockedSources lists the sources that returned substitute data because
	// the upstream API was unavailable or not configured.
	MockedSources []string `json:"mocked_sources,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
