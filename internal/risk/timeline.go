package risk

import (
	"github.com/Houeta/floodwatch/internal/models"
)

// Per-day timeline adjustments based on that day's expected rainfall.
const (
	timelineRainHeavy    = 30.0
	timelineRainModerate = 15.0

	fallbackTimelineDays = 3
)

// Timeline projects the overall score across the forecast horizon. Days with
// heavy rainfall push the daily score above the base; without a forecast it
// returns three days at the base score.
func Timeline(forecast *models.Forecast, baseScore float64) []models.TimelinePoint {
	if forecast == nil || len(forecast.Dates) == 0 {
		points := make([]models.TimelinePoint, 0, fallbackTimelineDays)
		now := clock.Now()
		for i := range fallbackTimelineDays {
			points = append(points, models.TimelinePoint{
				Date:  now.AddDate(0, 0, i).Format("2006-01-02"),
				Score: baseScore,
			})
		}

		return points
	}

	points := make([]models.TimelinePoint, 0, len(forecast.Dates))
	for i, date := range forecast.Dates {
		daily := baseScore
		if i < len(forecast.RainfallMM) {
			switch {
			case forecast.RainfallMM[i] > timelineRainHeavy:
				daily += 15
			case forecast.RainfallMM[i] > timelineRainModerate:
				daily += 8
			}
		}

		points = append(points, models.TimelinePoint{Date: date, Score: clamp(daily)})
	}

	return points
}
