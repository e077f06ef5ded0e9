package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Houeta/floodwatch/internal/geocoding"
	"github.com/Houeta/floodwatch/internal/models"
	"github.com/Houeta/floodwatch/internal/repository"
	"github.com/gorilla/mux"
)

const (
	minForecastDays = 1
	maxForecastDays = 7

	defaultRecentLimit = 10
	maxRecentLimit     = 100

	healthCheckTimeout = 2 * time.Second
)

// assessRequest is the POST /api/v1/assess body. Sources is a pointer so an
// absent field can be told apart from all sources disabled.
type assessRequest struct {
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Days        int                `json:"days"`
	Sensitivity models.Sensitivity `json:"sensitivity"`
	Sources     *models.SourceSet  `json:"sources"`
}

// handleAssess computes an assessment from a JSON body.
// Endpoint: POST /api/v1/assess
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var body assessRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := models.AssessmentRequest{
		Location:    models.Coordinates{Latitude: body.Latitude, Longitude: body.Longitude},
		Days:        body.Days,
		Sensitivity: body.Sensitivity,
		Sources:     models.AllSources(),
	}
	if body.Sources != nil {
		req.Sources = *body.Sources
	}
	s.assess(w, r, req)
}

// handleAssessQuery computes an assessment from query parameters, so the
// dashboard can link directly to a location.
// Endpoint: GET /api/v1/assess?lat=..&lon=..[&days=..][&sensitivity=..]
func (s *Server) handleAssessQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(query.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}

	req := models.AssessmentRequest{
		Location:    models.Coordinates{Latitude: lat, Longitude: lon},
		Sensitivity: models.Sensitivity(query.Get("sensitivity")),
		Sources:     models.AllSources(),
	}
	if raw := query.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		req.Days = days
	}
	s.assess(w, r, req)
}

// assess validates, normalizes and runs an assessment request.
func (s *Server) assess(w http.ResponseWriter, r *http.Request, req models.AssessmentRequest) {
	if !req.Location.Valid() {
		writeError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}
	if req.Days == 0 {
		req.Days = s.defaultDays
	}
	if req.Days < minForecastDays || req.Days > maxForecastDays {
		writeError(w, http.StatusBadRequest, "days must be between 1 and 7")
		return
	}
	switch req.Sensitivity {
	case "":
		req.Sensitivity = models.SensitivityMedium
	case models.SensitivityLow, models.SensitivityMedium, models.SensitivityHigh:
	default:
		writeError(w, http.StatusBadRequest, "sensitivity must be Low, Medium or High")
		return
	}

	assessment, err := s.assessor.Assess(r.Context(), req)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Assessment failed", "error", err)
		writeError(w, http.StatusInternalServerError, "assessment failed")
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// handleGeocode resolves a place name to coordinates.
// Endpoint: POST /api/v1/geocode
func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Place string `json:"place"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Place == "" {
		writeError(w, http.StatusBadRequest, "place is required")
		return
	}

	coords, err := s.geocoder.Geocode(r.Context(), body.Place)
	if err != nil {
		if errors.Is(err, geocoding.ErrEmptyResponse) || errors.Is(err, geocoding.ErrNominatimEmptyResponse) {
			writeError(w, http.StatusNotFound, "place not found")
			return
		}
		s.log.ErrorContext(r.Context(), "Geocoding failed", "place", body.Place, "error", err)
		writeError(w, http.StatusBadGateway, "geocoding failed")
		return
	}
	writeJSON(w, http.StatusOK, coords)
}

// handleRecent lists the latest stored assessments.
// Endpoint: GET /api/v1/assessments/recent?limit=N
func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxRecentLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	assessments, err := s.assessor.Recent(r.Context(), limit)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to list assessments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list assessments")
		return
	}
	if assessments == nil {
		assessments = []models.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

// handleGetAssessment returns a stored assessment by ID.
// Endpoint: GET /api/v1/assessments/{id}
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	assessment, err := s.assessor.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found")
			return
		}
		s.log.ErrorContext(r.Context(), "Failed to load assessment", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// handleHealth reports liveness, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
