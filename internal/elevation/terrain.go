package elevation

import (
	"fmt"

	"github.com/Houeta/floodwatch/internal/models"
)

// Terrain classification and indicator thresholds, metres and degrees.
const (
	seaLevelElevation = 10.0
	lowElevation      = 50.0
	moderateElevation = 100.0
	depressionMargin  = 20.0

	flatSlope   = 2.0
	gentleSlope = 5.0
	hillySlope  = 10.0
)

// ClassifyTerrain labels the terrain around a location from its average
// slope and centre elevation.
func ClassifyTerrain(slope, elevation float64) string {
	switch {
	case elevation < seaLevelElevation:
		return "Coastal Plain"
	case slope < flatSlope:
		return "Flat Lowland"
	case slope < gentleSlope:
		return "Rolling Hills"
	case slope < hillySlope:
		return "Hilly Terrain"
	default:
		return "Mountainous"
	}
}

// FloodRisk rates in [0, 100] how prone the terrain alone is to flooding,
// independent of weather or satellite data. Low ground, depressions, flat
// slopes and coastal proximity each add to the score.
func FloodRisk(profile *models.ElevationProfile) float64 {
	var score float64

	switch {
	case profile.Center < lowElevation:
		score += 30
	case profile.Center < moderateElevation:
		score += 15
	}

	if profile.Center < profile.Avg-depressionMargin {
		score += 25
	}

	switch {
	case profile.Slope.Average < flatSlope:
		score += 25
	case profile.Slope.Average < gentleSlope:
		score += 10
	}

	if profile.Center < seaLevelElevation {
		score += 20
	}

	if score > 100 {
		score = 100
	}

	return score
}

// RiskIndicators lists the terrain features of a profile that contribute to
// flood risk.
func RiskIndicators(profile *models.ElevationProfile) []string {
	var indicators []string

	switch {
	case profile.Center < lowElevation:
		indicators = append(indicators, fmt.Sprintf("Low elevation (%.1fm)", profile.Center))
	case profile.Center < moderateElevation:
		indicators = append(indicators, fmt.Sprintf("Moderate elevation (%.1fm)", profile.Center))
	}

	if profile.Center < profile.Avg-depressionMargin {
		indicators = append(indicators, "Location is in a depression")
	}

	switch {
	case profile.Slope.Average < flatSlope:
		indicators = append(indicators, fmt.Sprintf("Flat terrain (slope: %.1f)", profile.Slope.Average))
	case profile.Slope.Average < gentleSlope:
		indicators = append(indicators, fmt.Sprintf("Gentle slope (%.1f)", profile.Slope.Average))
	}

	if profile.Center < seaLevelElevation {
		indicators = append(indicators, "Near sea level (coastal flood risk)")
	}

	return indicators
}
