package risk

import (
	"github.com/Houeta/floodwatch/internal/models"
)

// factorActionThreshold is the factor score above which a factor-specific
// recommendation is added.
const factorActionThreshold = 50.0

// Recommendations returns the action list for a risk level, extended with
// factor-specific advice for every factor scoring above 50.
func Recommendations(level models.RiskLevel, factors Factors) []string {
	var recs []string

	switch level {
	case models.RiskHigh:
		recs = append(recs,
			"IMMEDIATE ACTION REQUIRED: implement flood preparedness plan",
			"Monitor local authorities for evacuation orders",
			"Secure important documents and valuables on upper floors",
			"Prepare emergency supplies (water, food, first aid)",
			"Avoid unnecessary travel to affected areas",
		)
	case models.RiskMedium:
		recs = append(recs,
			"Stay informed about weather updates",
			"Review your emergency evacuation plan",
			"Clear drainage systems around property",
			"Move vehicles to higher ground if possible",
			"Prepare sandbags if available",
		)
	case models.RiskLow:
		recs = append(recs,
			"Continue normal activities with weather awareness",
			"Maintain clear drainage systems",
			"Keep emergency contact numbers updated",
		)
	}

	if factors.Weather.Present && factors.Weather.Score > factorActionThreshold {
		recs = append(recs, "Heavy rainfall expected - monitor river levels")
	}
	if factors.Terrain.Present && factors.Terrain.Score > factorActionThreshold {
		recs = append(recs, "Low-lying area - consider temporary relocation")
	}
	if factors.Satellite.Present && factors.Satellite.Score > factorActionThreshold {
		recs = append(recs, "Increased water coverage detected - elevated risk")
	}

	return recs
}
