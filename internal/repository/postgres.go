package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Houeta/floodwatch/internal/models"
	"github.com/jackc/pgx/v5"
)

// ErrAssessmentNotFound is returned when no assessment exists for the requested ID.
var ErrAssessmentNotFound = errors.New("assessment not found")

// SaveAssessment inserts a computed assessment and returns its generated ID.
//
// The assessments table stores the flat risk record:
// id, coordinates, the four factor scores, the overall score and level,
// the model confidence, the list of mocked sources, and the creation time.
func (r *Repository) SaveAssessment(ctx context.Context, assessment *models.Assessment) (int64, error) {
	query := `
		INSERT INTO assessments (
			latitude, longitude,
			satellite_risk, weather_risk, terrain_risk, historical_risk,
			overall_score, risk_level, confidence, mocked_sources, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING assessment_id;
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		assessment.Location.Latitude, assessment.Location.Longitude,
		assessment.SatelliteRisk, assessment.WeatherRisk,
		assessment.TerrainRisk, assessment.HistoricalRisk,
		assessment.OverallScore, string(assessment.Level),
		assessment.Confidence, assessment.MockedSources, assessment.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert assessment: %w", err)
	}

	r.log.DebugContext(ctx, "Assessment persisted", "ID", id, "level", assessment.Level)

	return id, nil
}

const selectColumns = `
	assessment_id, latitude, longitude,
	satellite_risk, weather_risk, terrain_risk, historical_risk,
	overall_score, risk_level, confidence, mocked_sources, created_at
`

// GetAssessment retrieves a single assessment by its ID.
// It returns ErrAssessmentNotFound when no row matches.
func (r *Repository) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	query := `
		SELECT` + selectColumns + `
		FROM assessments
		WHERE assessment_id = $1;
	`

	assessment, err := scanAssessment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	return assessment, nil
}

// ListRecent retrieves the most recently created assessments, newest first,
// limited to the specified count.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Assessment, error) {
	query := `
		SELECT` + selectColumns + `
		FROM assessments
		ORDER BY created_at DESC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent assessments: %w", err)
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		assessment, errScan := scanAssessment(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan recent assessment: %w", errScan)
		}
		assessments = append(assessments, *assessment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return assessments, nil
}

func scanAssessment(row pgx.Row) (*models.Assessment, error) {
	var assessment models.Assessment
	var level string

	err := row.Scan(
		&assessment.ID,
		&assessment.Location.Latitude, &assessment.Location.Longitude,
		&assessment.SatelliteRisk, &assessment.WeatherRisk,
		&assessment.TerrainRisk, &assessment.HistoricalRisk,
		&assessment.OverallScore, &level,
		&assessment.Confidence, &assessment.MockedSources, &assessment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	assessment.Level = models.RiskLevel(level)

	return &assessment, nil
}
