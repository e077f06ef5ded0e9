package satellite

import (
	"math/rand/v2"
	"time"

	"github.com/Houeta/floodwatch/internal/models"
)

// MockImagery generates substitute capture metadata for when Sentinel Hub is
// unavailable or not configured. Cloud coverage is drawn from a
// location-seeded generator.
func MockImagery(location models.Coordinates) *models.Imagery {
	rng := rand.New(rand.NewPCG(location.Seed(), 3))

	return &models.Imagery{
		CapturedAt:    time.Now().UTC(),
		Location:      location,
		CloudCoverage: rng.IntN(30),
		Resolution:    "10m (mock)",
		Bands:         []string{"B02", "B03", "B04", "B08"},
		Source:        "Mock Data",
	}
}
