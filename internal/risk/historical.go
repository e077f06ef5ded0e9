package risk

import (
	"math/rand/v2"

	"github.com/Houeta/floodwatch/internal/models"
)

// HistoricalScore is the placeholder for a historical flood database lookup.
// It returns a pseudo-random score in [10, 40] derived from the location, so
// repeated assessments of the same point are reproducible.
func HistoricalScore(location models.Coordinates) float64 {
	rng := rand.New(rand.NewPCG(location.Seed(), 0))

	return historicalMin + rng.Float64()*(historicalMax-historicalMin)
}
