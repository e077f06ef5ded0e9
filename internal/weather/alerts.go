package weather

import (
	"math/rand/v2"

	"github.com/Houeta/floodwatch/internal/models"
)

// Storm alert severity levels.
const (
	AlertSevere   = "SEVERE"
	AlertModerate = "MODERATE"
)

// Alert probability thresholds for the placeholder alert feed.
const (
	alertActiveThreshold = 0.7
	alertSevereThreshold = 0.9
)

// StormAlert is the placeholder for the One Call alerts feed. The outcome is
// seeded by location and calendar day, so a given point keeps the same alert
// state for the whole day.
func StormAlert(location models.Coordinates) *models.StormAlert {
	now := clock.Now().UTC()
	day := uint64(now.Year())*1000 + uint64(now.YearDay())
	rng := rand.New(rand.NewPCG(location.Seed(), day))

	chance := rng.Float64()
	if chance <= alertActiveThreshold {
		return &models.StormAlert{Active: false}
	}

	level := AlertModerate
	if chance > alertSevereThreshold {
		level = AlertSevere
	}

	return &models.StormAlert{
		Active:      true,
		Level:       level,
		Description: "Heavy rainfall expected in the next 48 hours",
		Issued:      now,
		Expires:     now.AddDate(0, 0, 2),
	}
}
