// Package risk implements the flood risk scoring model: four factor scores
// combined by a fixed-weight linear formula into a 0-100 overall score and a
// three-bucket level.
package risk

import (
	"github.com/Houeta/floodwatch/internal/models"
)

// Factor is a single risk factor score. Present distinguishes a computed
// score of zero from a factor that was disabled or had no data; an absent
// factor contributes nothing to the weighted sum.
type Factor struct {
	Score   float64
	Present bool
}

// Factors holds the four factor scores that feed the overall formula.
type Factors struct {
	Satellite  Factor
	Weather    Factor
	Terrain    Factor
	Historical Factor
}

// WeatherScore rates a forecast in [0, 100]. Risk grows with total rainfall,
// average humidity, and the heaviest single-day rainfall.
func WeatherScore(forecast *models.Forecast) float64 {
	var score float64

	switch {
	case forecast.TotalRainfall > totalRainHeavy:
		score += 40
	case forecast.TotalRainfall > totalRainModerate:
		score += 25
	case forecast.TotalRainfall > totalRainLight:
		score += 10
	}

	switch {
	case forecast.AvgHumidity > humidityHigh:
		score += 15
	case forecast.AvgHumidity > humidityElevated:
		score += 8
	}

	switch {
	case forecast.MaxDailyRain > dailyRainHeavy:
		score += 20
	case forecast.MaxDailyRain > dailyRainModerate:
		score += 10
	}

	return clamp(score)
}

// TerrainScore rates an elevation profile in [0, 100]. Low-lying and flat
// terrain scores higher because water accumulates there instead of draining.
func TerrainScore(profile *models.ElevationProfile) float64 {
	var score float64

	switch {
	case profile.Center < elevationLow:
		score += 35
	case profile.Center < elevationModerate:
		score += 15
	}

	switch {
	case profile.Slope.Average < slopeFlat:
		score += 30
	case profile.Slope.Average < slopeGentle:
		score += 15
	}

	return clamp(score)
}

// SatelliteScore rates a water-coverage analysis in [0, 100]. Coverage above
// roughly two thirds of the area saturates the score; a month-over-month
// increase adds to it.
func SatelliteScore(analysis *models.WaterAnalysis) float64 {
	score := analysis.WaterPercentage * 1.5

	if analysis.Change > 5 {
		score += 20
	} else if analysis.Change > 0 {
		score += analysis.Change * 2
	}

	return clamp(score)
}

// Combine applies the fixed weights to the present factors, adjusts for
// sensitivity, and clamps the result to [0, 100].
func Combine(factors Factors, sensitivity models.Sensitivity) float64 {
	var score float64

	if factors.Satellite.Present {
		score += factors.Satellite.Score * WeightSatellite
	}
	if factors.Weather.Present {
		score += factors.Weather.Score * WeightWeather
	}
	if factors.Terrain.Present {
		score += factors.Terrain.Score * WeightTerrain
	}
	if factors.Historical.Present {
		score += factors.Historical.Score * WeightHistorical
	}

	switch sensitivity {
	case models.SensitivityHigh:
		score *= SensitivityHighFactor
	case models.SensitivityLow:
		score *= SensitivityLowFactor
	case models.SensitivityMedium:
		// unchanged
	}

	return clamp(score)
}

// LevelFor classifies an overall score: >=70 HIGH, >=40 MEDIUM, else LOW.
func LevelFor(score float64) models.RiskLevel {
	switch {
	case score >= HighThreshold:
		return models.RiskHigh
	case score >= MediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Confidence reports the model confidence for an assessment.
func Confidence() float64 {
	return modelConfidence
}

func clamp(score float64) float64 {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}

	return score
}
