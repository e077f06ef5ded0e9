package risk

// Weights of the four risk factors in the overall score.
// They sum to 1.0, so any combination of factor scores in [0, 100]
// produces an overall score in [0, 100] before the sensitivity adjustment.
const (
	WeightSatellite  = 0.25
	WeightWeather    = 0.35
	WeightTerrain    = 0.25
	WeightHistorical = 0.15
)

// Classification thresholds for the overall score.
const (
	HighThreshold   = 70.0
	MediumThreshold = 40.0
)

// Sensitivity multipliers applied to the overall score before clamping.
const (
	SensitivityHighFactor = 1.2
	SensitivityLowFactor  = 0.8
)

// Weather factor thresholds, millimetres of rain and percent humidity.
const (
	totalRainHeavy    = 100.0
	totalRainModerate = 50.0
	totalRainLight    = 20.0

	humidityHigh     = 80.0
	humidityElevated = 70.0

	dailyRainHeavy    = 50.0
	dailyRainModerate = 30.0
)

// Terrain factor thresholds, metres of elevation and degrees of slope.
const (
	elevationLow      = 50.0
	elevationModerate = 100.0

	slopeFlat   = 2.0
	slopeGentle = 5.0
)

// Historical factor bounds for the placeholder model.
const (
	historicalMin = 10.0
	historicalMax = 40.0
)

// modelConfidence is the reported confidence of the placeholder model.
const modelConfidence = 0.85
