// Package elevation fetches terrain profiles from the Open-Elevation API and
// derives slope and terrain statistics used by the risk model.
package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/floodwatch/internal/models"
	"golang.org/x/time/rate"
)

// OpenElevationURL is the Open-Elevation lookup endpoint. Free, no API key required.
const OpenElevationURL = "https://api.open-elevation.com/api/v1/lookup"

// maxLocationsPerRequest is the Open-Elevation per-request location limit.
// Grids above it are refetched at reducedResolution.
const (
	maxLocationsPerRequest = 100
	reducedResolution      = 10
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the Open-Elevation API for elevation grids.
type Client struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Open-Elevation API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter for the public endpoint
}

// Common errors for the Open-Elevation client.
var (
	ErrElevationEmptyResponse = errors.New("open-elevation API returned empty response")
	ErrElevationShortResponse = errors.New("open-elevation API returned fewer results than requested")
)

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// NewClient creates a new Open-Elevation client. The public endpoint is
// shared infrastructure, so requests are limited to one per second.
func NewClient(log *slog.Logger) *Client {
	const timeout = 30

	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: OpenElevationURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

// NewClientWithClient allows injecting a custom HTTP client and limiter.
// Useful for testing with mocked HTTP clients.
func NewClientWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: OpenElevationURL,
		limiter: limiter,
		log:     log,
	}
}

// Profile fetches an elevation grid of resolution x resolution points covering
// radiusKM around the location and summarizes it. Grids above the per-request
// location limit are reduced to a coarser resolution before fetching.
func (c *Client) Profile(
	ctx context.Context,
	location models.Coordinates,
	radiusKM float64,
	resolution int,
) (*models.ElevationProfile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	if resolution*resolution > maxLocationsPerRequest {
		c.log.WarnContext(ctx, "Elevation grid too large, using reduced resolution",
			"requested", resolution, "reduced", reducedResolution)
		resolution = reducedResolution
	}

	lats, lons := gridAxes(location, radiusKM, resolution)

	reqBody := lookupRequest{Locations: make([]lookupLocation, 0, resolution*resolution)}
	for _, lat := range lats {
		for _, lon := range lons {
			reqBody.Locations = append(reqBody.Locations, lookupLocation{Latitude: lat, Longitude: lon})
		}
	}

	c.log.DebugContext(ctx, "Fetching elevation grid",
		"points", len(reqBody.Locations), "lat", location.Latitude, "lon", location.Longitude)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute elevation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Open-Elevation API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("open-elevation API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result lookupResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode open-elevation response: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, ErrElevationEmptyResponse
	}
	if len(result.Results) < resolution*resolution {
		return nil, ErrElevationShortResponse
	}

	grid := make([][]float64, resolution)
	for row := range resolution {
		grid[row] = make([]float64, resolution)
		for col := range resolution {
			grid[row][col] = result.Results[row*resolution+col].Elevation
		}
	}

	profile := buildProfile(lats, lons, grid)
	profile.Source = "Open-Elevation API"

	c.log.DebugContext(ctx, "Elevation grid retrieved", "center_elevation", profile.Center)

	return profile, nil
}
