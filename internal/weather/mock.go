package weather

import (
	"math"
	"math/rand/v2"

	"github.com/Houeta/floodwatch/internal/models"
)

// MockForecast generates a substitute forecast for when the OpenWeatherMap
// API is unavailable or not configured. Values are drawn from a
// location-seeded generator, so repeated requests for the same point return
// the same forecast.
func MockForecast(location models.Coordinates, days int) *models.Forecast {
	rng := rand.New(rand.NewPCG(location.Seed(), 2))

	forecast := &models.Forecast{
		Dates:        make([]string, 0, days),
		RainfallMM:   make([]float64, 0, days),
		TemperatureC: make([]float64, 0, days),
		Humidity:     make([]float64, 0, days),
		Source:       "Mock Data",
	}

	now := clock.Now()
	baseRainfall := rng.Float64() * 20
	for i := range days {
		forecast.Dates = append(forecast.Dates, now.AddDate(0, 0, i).Format("2006-01-02"))
		forecast.RainfallMM = append(forecast.RainfallMM, math.Max(0, baseRainfall+rng.NormFloat64()*10))
		forecast.TemperatureC = append(forecast.TemperatureC, 20+rng.NormFloat64()*5)
		forecast.Humidity = append(forecast.Humidity, 60+rng.NormFloat64()*15)
	}

	aggregate(forecast)

	return forecast
}
