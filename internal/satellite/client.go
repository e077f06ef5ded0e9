// Package satellite fetches Sentinel-2 imagery through the Sentinel Hub
// process API and derives the water-coverage analysis used by the risk model.
package satellite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Houeta/floodwatch/internal/models"
)

// Sentinel Hub endpoints.
const (
	TokenURL   = "https://services.sentinel-hub.com/oauth/token"
	ProcessURL = "https://services.sentinel-hub.com/api/v1/process"
)

// Image request parameters: a 512x512 truecolor render of the last 30 days.
const (
	imageSize    = 512
	lookbackDays = 30
	kmPerDegree  = 111.0

	truecolorEvalscript = `//VERSION=3
function setup() {
  return {
    input: ["B04", "B03", "B02"],
    output: { bands: 3 }
  };
}
function evaluatePixel(sample) {
  return [2.5 * sample.B04, 2.5 * sample.B03, 2.5 * sample.B02];
}`
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches imagery from the Sentinel Hub process API using OAuth
// client-credentials authentication.
type Client struct {
	client       HTTPClient   // HTTP client for making requests
	tokenURL     string       // OAuth token endpoint
	processURL   string       // Imagery process endpoint
	clientID     string       // OAuth client ID
	clientSecret string       // OAuth client secret
	log          *slog.Logger // Logger for logging operations
}

// Common errors for the Sentinel Hub client.
var (
	ErrSatelliteNotConfigured = errors.New("sentinel hub credentials are not configured")
	ErrSatelliteTokenRejected = errors.New("sentinel hub rejected the OAuth credentials")
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// processRequest mirrors the Sentinel Hub process API payload.
type processRequest struct {
	Input struct {
		Bounds struct {
			BBox       []float64         `json:"bbox"`
			Properties map[string]string `json:"properties"`
		} `json:"bounds"`
		Data []processData `json:"data"`
	} `json:"input"`
	Output struct {
		Width     int               `json:"width"`
		Height    int               `json:"height"`
		Responses []processResponse `json:"responses"`
	} `json:"output"`
	Evalscript string `json:"evalscript"`
}

type processData struct {
	Type       string `json:"type"`
	DataFilter struct {
		TimeRange struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"timeRange"`
	} `json:"dataFilter"`
}

type processResponse struct {
	Identifier string `json:"identifier"`
	Format     struct {
		Type string `json:"type"`
	} `json:"format"`
}

// NewClient creates a new Sentinel Hub client.
func NewClient(clientID, clientSecret string, log *slog.Logger) *Client {
	const timeout = 30

	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		tokenURL:     TokenURL,
		processURL:   ProcessURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
	}
}

// NewClientWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithClient(client HTTPClient, clientID, clientSecret string, log *slog.Logger) *Client {
	return &Client{
		client:       client,
		tokenURL:     TokenURL,
		processURL:   ProcessURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		log:          log,
	}
}

// Imagery fetches a recent truecolor capture of the area covering radiusKM
// around the location.
func (c *Client) Imagery(
	ctx context.Context,
	location models.Coordinates,
	radiusKM float64,
) (*models.Imagery, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, ErrSatelliteNotConfigured
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(buildProcessRequest(location, radiusKM, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.processURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "Fetching satellite imagery",
		"lat", location.Latitude, "lon", location.Longitude, "radius_km", radiusKM)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute process request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Sentinel Hub API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("sentinel hub API returned status %d: %s", resp.StatusCode, string(body))
	}

	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read imagery response: %w", err)
	}

	return &models.Imagery{
		PNG:        png,
		CapturedAt: time.Now().UTC(),
		Location:   location,
		Resolution: "10m",
		Bands:      []string{"B04", "B03", "B02"},
		Source:     "Sentinel-2 L2A",
	}, nil
}

// token exchanges the client credentials for a bearer token.
func (c *Client) token(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrSatelliteTokenRejected
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sentinel hub token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", ErrSatelliteTokenRejected
	}

	return token.AccessToken, nil
}

// buildProcessRequest assembles the process payload: a bbox of radiusKM
// around the location and a 30-day sentinel-2-l2a time range.
func buildProcessRequest(location models.Coordinates, radiusKM float64, now time.Time) processRequest {
	bboxSize := radiusKM / kmPerDegree

	var req processRequest
	req.Input.Bounds.BBox = []float64{
		location.Longitude - bboxSize,
		location.Latitude - bboxSize,
		location.Longitude + bboxSize,
		location.Latitude + bboxSize,
	}
	req.Input.Bounds.Properties = map[string]string{
		"crs": "http://www.opengis.net/def/crs/OGC/1.3/CRS84",
	}

	var data processData
	data.Type = "sentinel-2-l2a"
	data.DataFilter.TimeRange.From = now.AddDate(0, 0, -lookbackDays).Format("2006-01-02T00:00:00Z")
	data.DataFilter.TimeRange.To = now.Format("2006-01-02T23:59:59Z")
	req.Input.Data = []processData{data}

	req.Output.Width = imageSize
	req.Output.Height = imageSize
	var response processResponse
	response.Identifier = "default"
	response.Format.Type = "image/png"
	req.Output.Responses = []processResponse{response}

	req.Evalscript = truecolorEvalscript

	return req
}
