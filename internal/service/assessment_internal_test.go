package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/Houeta/floodwatch/internal/metrics"
	"github.com/Houeta/floodwatch/internal/models"
	"github.com/Houeta/floodwatch/internal/risk"
	"github.com/Houeta/floodwatch/internal/satellite"
	"github.com/Houeta/floodwatch/internal/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) SaveAssessment(ctx context.Context, assessment *models.Assessment) (int64, error) {
	args := m.Called(ctx, assessment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *mockRepo) ListRecent(ctx context.Context, limit int) ([]models.Assessment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assessment), args.Error(1)
}

type mockSatellite struct{ mock.Mock }

func (m *mockSatellite) Imagery(ctx context.Context, location models.Coordinates, radiusKM float64) (*models.Imagery, error) {
	args := m.Called(ctx, location, radiusKM)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Imagery), args.Error(1)
}

type mockWeather struct{ mock.Mock }

func (m *mockWeather) Forecast(ctx context.Context, location models.Coordinates, days int) (*models.Forecast, error) {
	args := m.Called(ctx, location, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Forecast), args.Error(1)
}

type mockElevation struct{ mock.Mock }

func (m *mockElevation) Profile(ctx context.Context, location models.Coordinates, radiusKM float64, resolution int) (*models.ElevationProfile, error) {
	args := m.Called(ctx, location, radiusKM, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ElevationProfile), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, req models.AssessmentRequest) (*models.Assessment, bool) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.Assessment), args.Bool(1)
}

func (m *mockCache) Put(ctx context.Context, req models.AssessmentRequest, assessment *models.Assessment) {
	m.Called(ctx, req, assessment)
}

func testLocation() models.Coordinates {
	return models.Coordinates{Latitude: 40.7128, Longitude: -74.006}
}

func sampleImagery() *models.Imagery {
	return &models.Imagery{Location: testLocation(), CloudCoverage: 5, Source: "Sentinel-2 L2A"}
}

func sampleForecast() *models.Forecast {
	return &models.Forecast{
		Dates:         []string{"2026-08-31", "2026-09-01", "2026-09-02"},
		RainfallMM:    []float64{12.5, 34.0, 0},
		TemperatureC:  []float64{21, 19, 22},
		Humidity:      []float64{71, 83, 58},
		AvgHumidity:   70.67,
		TotalRainfall: 46.5,
		MaxDailyRain:  34.0,
		Source:        "OpenWeatherMap",
	}
}

func sampleProfile() *models.ElevationProfile {
	return &models.ElevationProfile{
		Center: 42, Min: 38, Max: 55, Avg: 45,
		Slope:  models.SlopeStats{Average: 1.2, Max: 3.4},
		Source: "Open-Elevation API",
	}
}

func newTestService(t *testing.T) (*AssessmentService, *mockRepo, *mockSatellite, *mockWeather, *mockElevation) {
	t.Helper()
	repo := &mockRepo{}
	sat := &mockSatellite{}
	wth := &mockWeather{}
	elev := &mockElevation{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mtr := metrics.NewMetrics(prometheus.NewRegistry())
	svc := NewAssessmentService(logger, repo, sat, wth, elev, nil, nil, mtr, 5.0)
	return svc, repo, sat, wth, elev
}

func TestAssess(t *testing.T) {
	ctx := t.Context()
	req := models.AssessmentRequest{
		Location:    testLocation(),
		Days:        3,
		Sensitivity: models.SensitivityMedium,
		Sources:     models.AllSources(),
	}

	t.Run("all sources available", func(t *testing.T) {
		svc, repo, sat, wth, elev := newTestService(t)
		sat.On("Imagery", mock.Anything, req.Location, 5.0).Return(sampleImagery(), nil).Once()
		wth.On("Forecast", mock.Anything, req.Location, 3).Return(sampleForecast(), nil).Once()
		elev.On("Profile", mock.Anything, req.Location, 5.0, defaultResolution).Return(sampleProfile(), nil).Once()
		repo.On("SaveAssessment", mock.Anything, mock.Anything).Return(int64(7), nil).Once()

		got, err := svc.Assess(ctx, req)
		require.NoError(t, err)

		wantSatellite := risk.SatelliteScore(satellite.AnalyzeWater(sampleImagery()))
		assert.InDelta(t, wantSatellite, got.SatelliteRisk, 1e-9)
		// Forecast: total 46.5mm (+10), avg humidity 70.67 (+8), max daily 34mm (+10).
		assert.InDelta(t, 28.0, got.WeatherRisk, 1e-9)
		// Profile: center 42m (+35), average slope 1.2 (+30).
		assert.InDelta(t, 65.0, got.TerrainRisk, 1e-9)
		assert.GreaterOrEqual(t, got.HistoricalRisk, 10.0)
		assert.LessOrEqual(t, got.HistoricalRisk, 40.0)
		assert.Equal(t, risk.LevelFor(got.OverallScore), got.Level)
		assert.Equal(t, int64(7), got.ID)
		assert.Empty(t, got.MockedSources)
		assert.Len(t, got.Timeline, 3)
		assert.NotEmpty(t, got.Recommendations)
		assert.NotNil(t, got.Water)
		assert.NotNil(t, got.Forecast)
		assert.NotNil(t, got.Elevation)
		assert.Equal(t, "Flat Lowland", got.Elevation.Terrain)
		// Terrain-only risk: low elevation (+30) and flat slope (+25).
		assert.InDelta(t, 55.0, got.Elevation.FloodRisk, 1e-9)
		assert.InDelta(t, 0.85, got.Confidence, 1e-9)
		repo.AssertExpectations(t)
		sat.AssertExpectations(t)
		wth.AssertExpectations(t)
		elev.AssertExpectations(t)
	})

	t.Run("failed sources fall back to mock data", func(t *testing.T) {
		svc, repo, sat, wth, elev := newTestService(t)
		sat.On("Imagery", mock.Anything, req.Location, 5.0).Return(nil, assert.AnError).Once()
		wth.On("Forecast", mock.Anything, req.Location, 3).Return(nil, assert.AnError).Once()
		elev.On("Profile", mock.Anything, req.Location, 5.0, defaultResolution).Return(nil, assert.AnError).Once()
		repo.On("SaveAssessment", mock.Anything, mock.Anything).Return(int64(8), nil).Once()

		got, err := svc.Assess(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, []string{"satellite", "weather", "elevation"}, got.MockedSources)
		assert.GreaterOrEqual(t, got.OverallScore, 0.0)
		assert.LessOrEqual(t, got.OverallScore, 100.0)
		assert.NotNil(t, got.Forecast)
		assert.Equal(t, "Mock Data", got.Forecast.Source)
		repo.AssertExpectations(t)
	})

	t.Run("disabled sources are skipped", func(t *testing.T) {
		svc, repo, sat, wth, elev := newTestService(t)
		repo.On("SaveAssessment", mock.Anything, mock.Anything).Return(int64(9), nil).Once()

		historicalOnly := req
		historicalOnly.Sources = models.SourceSet{Historical: true}
		got, err := svc.Assess(ctx, historicalOnly)
		require.NoError(t, err)

		assert.Zero(t, got.SatelliteRisk)
		assert.Zero(t, got.WeatherRisk)
		assert.Zero(t, got.TerrainRisk)
		assert.NotZero(t, got.HistoricalRisk)
		assert.Nil(t, got.Water)
		assert.Nil(t, got.Forecast)
		assert.Nil(t, got.Elevation)
		// Without a forecast the timeline still covers three days.
		assert.Len(t, got.Timeline, 3)
		sat.AssertNotCalled(t, "Imagery", mock.Anything, mock.Anything, mock.Anything)
		wth.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything, mock.Anything)
		elev.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("persistence failure does not fail the assessment", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService(t)
		repo.On("SaveAssessment", mock.Anything, mock.Anything).Return(int64(0), assert.AnError).Once()

		historicalOnly := req
		historicalOnly.Sources = models.SourceSet{Historical: true}
		got, err := svc.Assess(ctx, historicalOnly)
		require.NoError(t, err)
		assert.Zero(t, got.ID)
		repo.AssertExpectations(t)
	})
}

func TestAssess_Cache(t *testing.T) {
	ctx := t.Context()
	req := models.AssessmentRequest{
		Location:    testLocation(),
		Days:        3,
		Sensitivity: models.SensitivityMedium,
		Sources:     models.SourceSet{Historical: true},
	}

	t.Run("hit skips computation", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService(t)
		cached := &models.Assessment{Location: req.Location, OverallScore: 33, Level: models.RiskLow}
		cacheMock := &mockCache{}
		cacheMock.On("Get", mock.Anything, req).Return(cached, true).Once()
		svc.cache = cacheMock

		got, err := svc.Assess(ctx, req)
		require.NoError(t, err)
		assert.Same(t, cached, got)
		repo.AssertNotCalled(t, "SaveAssessment", mock.Anything, mock.Anything)
		cacheMock.AssertExpectations(t)
	})

	t.Run("miss stores the result", func(t *testing.T) {
		svc, repo, _, _, _ := newTestService(t)
		repo.On("SaveAssessment", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
		cacheMock := &mockCache{}
		cacheMock.On("Get", mock.Anything, req).Return(nil, false).Once()
		cacheMock.On("Put", mock.Anything, req, mock.Anything).Once()
		svc.cache = cacheMock

		_, err := svc.Assess(ctx, req)
		require.NoError(t, err)
		cacheMock.AssertExpectations(t)
	})
}

func TestPublish(t *testing.T) {
	ctx := t.Context()

	t.Run("high risk is published", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		publisher := &mockPublisher{}
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
		svc.publisher = publisher

		svc.publish(ctx, &models.Assessment{Level: models.RiskHigh})
		publisher.AssertExpectations(t)
	})

	t.Run("active severe storm is published", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		publisher := &mockPublisher{}
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
		svc.publisher = publisher

		svc.publish(ctx, &models.Assessment{
			Level: models.RiskMedium,
			Alert: &models.StormAlert{Active: true, Level: weather.AlertSevere},
		})
		publisher.AssertExpectations(t)
	})

	t.Run("moderate storm alone is not published", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		publisher := &mockPublisher{}
		svc.publisher = publisher

		svc.publish(ctx, &models.Assessment{
			Level: models.RiskLow,
			Alert: &models.StormAlert{Active: true, Level: weather.AlertModerate},
		})
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("lower risk is not published", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		publisher := &mockPublisher{}
		svc.publisher = publisher

		svc.publish(ctx, &models.Assessment{Level: models.RiskMedium})
		svc.publish(ctx, &models.Assessment{Level: models.RiskLow})
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("publish failure is tolerated", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		publisher := &mockPublisher{}
		publisher.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError).Once()
		svc.publisher = publisher

		svc.publish(ctx, &models.Assessment{Level: models.RiskHigh})
		publisher.AssertExpectations(t)
	})
}

func TestRecentAndByID(t *testing.T) {
	ctx := t.Context()
	svc, repo, _, _, _ := newTestService(t)

	stored := []models.Assessment{{ID: 2}, {ID: 1}}
	repo.On("ListRecent", mock.Anything, 10).Return(stored, nil).Once()
	repo.On("GetAssessment", mock.Anything, int64(2)).Return(&stored[0], nil).Once()

	recent, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, stored, recent)

	got, err := svc.ByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	repo.AssertExpectations(t)
}
