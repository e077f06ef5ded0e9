package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Houeta/floodwatch/internal/alerts"
	"github.com/Houeta/floodwatch/internal/elevation"
	"github.com/Houeta/floodwatch/internal/metrics"
	"github.com/Houeta/floodwatch/internal/models"
	"github.com/Houeta/floodwatch/internal/repository"
	"github.com/Houeta/floodwatch/internal/risk"
	"github.com/Houeta/floodwatch/internal/satellite"
	"github.com/Houeta/floodwatch/internal/weather"
)

// defaultResolution is the elevation grid resolution per axis.
const defaultResolution = 10

// SatelliteSource fetches recent imagery for a location.
type SatelliteSource interface {
	Imagery(ctx context.Context, location models.Coordinates, radiusKM float64) (*models.Imagery, error)
}

// WeatherSource fetches a daily forecast for a location.
type WeatherSource interface {
	Forecast(ctx context.Context, location models.Coordinates, days int) (*models.Forecast, error)
}

// ElevationSource fetches a terrain profile around a location.
type ElevationSource interface {
	Profile(ctx context.Context, location models.Coordinates, radiusKM float64, resolution int) (*models.ElevationProfile, error)
}

// AssessmentCache stores computed assessments keyed by request parameters.
type AssessmentCache interface {
	Get(ctx context.Context, req models.AssessmentRequest) (*models.Assessment, bool)
	Put(ctx context.Context, req models.AssessmentRequest, assessment *models.Assessment)
}

// AssessmentService computes flood risk assessments by combining satellite,
// weather, elevation and historical data for a location. Unavailable sources
// fall back to deterministic mock data and are reported in the result.
type AssessmentService struct {
	log       *slog.Logger         // Logger for logging service activities
	repo      repository.Interface // Interface for data repository access
	satellite SatelliteSource      // Sentinel Hub imagery client
	weather   WeatherSource        // OpenWeatherMap forecast client
	elevation ElevationSource      // Open-Elevation terrain client
	cache     AssessmentCache      // Optional assessment cache, may be nil
	publisher alerts.Publisher     // Optional alert publisher, may be nil
	metrics   *metrics.Metrics     // Metrics for tracking service performance
	radiusKM  float64              // Analysis radius around the requested point
}

// NewAssessmentService creates a new instance of AssessmentService.
// The cache and publisher are optional and may be nil.
func NewAssessmentService(
	log *slog.Logger,
	repo repository.Interface,
	satelliteSource SatelliteSource,
	weatherSource WeatherSource,
	elevationSource ElevationSource,
	assessmentCache AssessmentCache,
	publisher alerts.Publisher,
	mtr *metrics.Metrics,
	radiusKM float64,
) *AssessmentService {
	return &AssessmentService{
		log:       log,
		repo:      repo,
		satellite: satelliteSource,
		weather:   weatherSource,
		elevation: elevationSource,
		cache:     assessmentCache,
		publisher: publisher,
		metrics:   mtr,
		radiusKM:  radiusKM,
	}
}

// Assess computes the flood risk assessment for a request. The enabled data
// sources are fetched concurrently; a source that fails is replaced with mock
// data rather than failing the whole assessment. The result is persisted and,
// for high risk locations, published to the alert topic.
func (as *AssessmentService) Assess(ctx context.Context, req models.AssessmentRequest) (*models.Assessment, error) {
	if as.cache != nil {
		if cached, ok := as.cache.Get(ctx, req); ok {
			as.metrics.CacheOps.WithLabelValues("hit").Inc()
			as.log.DebugContext(ctx, "Serving assessment from cache",
				"latitude", req.Location.Latitude, "longitude", req.Location.Longitude)
			return cached, nil
		}
		as.metrics.CacheOps.WithLabelValues("miss").Inc()
	}

	as.metrics.InflightAssessments.Inc()
	defer as.metrics.InflightAssessments.Dec()

	var (
		wgr      sync.WaitGroup
		water    *models.WaterAnalysis
		forecast *models.Forecast
		alert    *models.StormAlert
		profile  *models.ElevationProfile
		mocked   mockedSet
	)

	if req.Sources.Satellite {
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			water, mocked.satellite = as.fetchWater(ctx, req.Location)
		}()
	}
	if req.Sources.Weather {
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			forecast, mocked.weather = as.fetchForecast(ctx, req.Location, req.Days)
			alert = weather.StormAlert(req.Location)
		}()
	}
	if req.Sources.Elevation {
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			profile, mocked.elevation = as.fetchProfile(ctx, req.Location)
		}()
	}
	wgr.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var factors risk.Factors
	if water != nil {
		factors.Satellite = risk.Factor{Score: risk.SatelliteScore(water), Present: true}
	}
	if forecast != nil {
		factors.Weather = risk.Factor{Score: risk.WeatherScore(forecast), Present: true}
	}
	if profile != nil {
		factors.Terrain = risk.Factor{Score: risk.TerrainScore(profile), Present: true}
	}
	if req.Sources.Historical {
		factors.Historical = risk.Factor{Score: risk.HistoricalScore(req.Location), Present: true}
	}

	overall := risk.Combine(factors, req.Sensitivity)
	level := risk.LevelFor(overall)

	assessment := &models.Assessment{
		Location:        req.Location,
		SatelliteRisk:   factors.Satellite.Score,
		WeatherRisk:     factors.Weather.Score,
		TerrainRisk:     factors.Terrain.Score,
		HistoricalRisk:  factors.Historical.Score,
		OverallScore:    overall,
		Level:           level,
		Confidence:      risk.Confidence(),
		Timeline:        risk.Timeline(forecast, overall),
		Recommendations: risk.Recommendations(level, factors),
		Water:           water,
		Forecast:        forecast,
		Alert:           alert,
		MockedSources:   mocked.names(),
		CreatedAt:       time.Now().UTC(),
	}
	if profile != nil {
		terrain := elevation.ClassifyTerrain(profile.Slope.Average, profile.Center)
		assessment.Elevation = profile.Summary(terrain, elevation.RiskIndicators(profile), elevation.FloodRisk(profile))
	}

	as.persist(ctx, assessment)
	as.publish(ctx, assessment)
	as.metrics.AssessmentsTotal.WithLabelValues(string(level)).Inc()

	if as.cache != nil {
		as.cache.Put(ctx, req, assessment)
	}

	as.log.InfoContext(ctx, "Assessment computed",
		"latitude", req.Location.Latitude,
		"longitude", req.Location.Longitude,
		"score", overall,
		"level", level,
		"mocked", assessment.MockedSources,
	)
	return assessment, nil
}

// Recent returns the most recently computed assessments, newest first.
func (as *AssessmentService) Recent(ctx context.Context, limit int) ([]models.Assessment, error) {
	return as.repo.ListRecent(ctx, limit)
}

// ByID returns a stored assessment by its identifier.
func (as *AssessmentService) ByID(ctx context.Context, id int64) (*models.Assessment, error) {
	return as.repo.GetAssessment(ctx, id)
}

// fetchWater retrieves satellite imagery and analyzes its water coverage.
// On failure the analysis runs against mock imagery instead.
func (as *AssessmentService) fetchWater(ctx context.Context, location models.Coordinates) (*models.WaterAnalysis, bool) {
	startTime := time.Now()
	imagery, err := as.satellite.Imagery(ctx, location, as.radiusKM)
	as.metrics.SourceRequestSeconds.WithLabelValues("satellite").Observe(time.Since(startTime).Seconds())

	if err != nil {
		as.log.WarnContext(ctx, "Satellite imagery unavailable, using mock data", "error", err)
		as.metrics.SourceErrors.WithLabelValues("satellite").Inc()
		return satellite.AnalyzeWater(satellite.MockImagery(location)), true
	}
	return satellite.AnalyzeWater(imagery), false
}

// fetchForecast retrieves the weather forecast, falling back to mock data.
func (as *AssessmentService) fetchForecast(ctx context.Context, location models.Coordinates, days int) (*models.Forecast, bool) {
	startTime := time.Now()
	forecast, err := as.weather.Forecast(ctx, location, days)
	as.metrics.SourceRequestSeconds.WithLabelValues("weather").Observe(time.Since(startTime).Seconds())

	if err != nil {
		as.log.WarnContext(ctx, "Weather forecast unavailable, using mock data", "error", err)
		as.metrics.SourceErrors.WithLabelValues("weather").Inc()
		return weather.MockForecast(location, days), true
	}
	return forecast, false
}

// fetchProfile retrieves the elevation profile, falling back to mock data.
func (as *AssessmentService) fetchProfile(ctx context.Context, location models.Coordinates) (*models.ElevationProfile, bool) {
	startTime := time.Now()
	profile, err := as.elevation.Profile(ctx, location, as.radiusKM, defaultResolution)
	as.metrics.SourceRequestSeconds.WithLabelValues("elevation").Observe(time.Since(startTime).Seconds())

	if err != nil {
		as.log.WarnContext(ctx, "Elevation profile unavailable, using mock data", "error", err)
		as.metrics.SourceErrors.WithLabelValues("elevation").Inc()
		return elevation.MockProfile(location, as.radiusKM, defaultResolution), true
	}
	return profile, false
}

// persist stores the assessment. Persistence failures do not fail the
// assessment, the result is still returned to the caller.
func (as *AssessmentService) persist(ctx context.Context, assessment *models.Assessment) {
	id, err := as.repo.SaveAssessment(ctx, assessment)
	if err != nil {
		as.log.ErrorContext(ctx, "Failed to persist assessment", "error", err)
		return
	}
	assessment.ID = id
}

// publish sends alert-worthy assessments to the alert topic, if configured.
// An assessment qualifies on a HIGH risk level or an active severe storm.
func (as *AssessmentService) publish(ctx context.Context, assessment *models.Assessment) {
	if as.publisher == nil || !alertWorthy(assessment) {
		return
	}
	if err := as.publisher.Publish(ctx, assessment); err != nil {
		as.log.ErrorContext(ctx, "Failed to publish flood alert", "error", err)
		return
	}
	as.metrics.AlertsPublished.Inc()
}

func alertWorthy(assessment *models.Assessment) bool {
	if assessment.Level == models.RiskHigh {
		return true
	}
	return assessment.Alert != nil && assessment.Alert.Active && assessment.Alert.Level == weather.AlertSevere
}

// mockedSet tracks which sources fell back to substitute data.
type mockedSet struct {
	satellite bool
	weather   bool
	elevation bool
}

func (m mockedSet) names() []string {
	var names []string
	if m.satellite {
		names = append(names, "satellite")
	}
	if m.weather {
		names = append(names, "weather")
	}
	if m.elevation {
		names = append(names, "elevation")
	}
	return names
}
