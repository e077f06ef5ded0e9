package elevation

import (
	"math"
	"math/rand/v2"

	"github.com/Houeta/floodwatch/internal/models"
)

// MockProfile generates a substitute elevation profile for when the
// Open-Elevation API is unavailable. The surface is a smooth sinusoidal
// landscape with location-seeded noise, so repeated requests for the same
// point return the same terrain.
func MockProfile(location models.Coordinates, radiusKM float64, resolution int) *models.ElevationProfile {
	if resolution*resolution > maxLocationsPerRequest {
		resolution = reducedResolution
	}

	rng := rand.New(rand.NewPCG(location.Seed(), 1))
	lats, lons := gridAxes(location, radiusKM, resolution)

	grid := make([][]float64, resolution)
	for i, lat := range lats {
		grid[i] = make([]float64, resolution)
		for j, lon := range lons {
			elev := 100 + 50*math.Sin(lat*10) + 30*math.Cos(lon*10)
			elev += rng.NormFloat64() * 10
			grid[i][j] = math.Max(0, elev)
		}
	}

	profile := buildProfile(lats, lons, grid)
	profile.Source = "Mock Data"

	return profile
}
