// Package weather fetches daily forecasts from the OpenWeatherMap One Call
// API and derives the rainfall statistics used by the risk model.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Houeta/floodwatch/internal/models"
)

// OneCallURL is the OpenWeatherMap One Call 3.0 endpoint.
const OneCallURL = "https://api.openweathermap.org/data/3.0/onecall"

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the OpenWeatherMap One Call API for daily forecasts.
type Client struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the One Call API
	apiKey  string       // OpenWeatherMap API key
	log     *slog.Logger // Logger for logging operations
}

// Common errors for the OpenWeatherMap client.
var (
	ErrWeatherEmptyResponse = errors.New("openweathermap API returned no daily forecasts")
	// ErrWeatherUnauthorized covers invalid keys and keys that have not
	// activated yet; new OpenWeatherMap keys take about ten minutes.
	ErrWeatherUnauthorized = errors.New("openweathermap API key invalid or not activated yet")
)

// oneCallResponse represents the JSON response from the One Call API,
// reduced to the daily fields the risk model consumes.
type oneCallResponse struct {
	Daily []struct {
		Dt   int64   `json:"dt"`
		Rain float64 `json:"rain"`
		Temp struct {
			Day float64 `json:"day"`
		} `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"daily"`
}

// NewClient creates a new OpenWeatherMap One Call client.
func NewClient(apiKey string, log *slog.Logger) *Client {
	const timeout = 10

	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: OneCallURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// NewClientWithClient creates a One Call client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithClient(client HTTPClient, apiKey string, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: OneCallURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// Forecast fetches the daily forecast for a location, limited to the
// requested number of days, and aggregates the rainfall statistics.
func (c *Client) Forecast(ctx context.Context, location models.Coordinates, days int) (*models.Forecast, error) {
	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("lat", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("exclude", "minutely,hourly,alerts")
	reqURL.RawQuery = query.Encode()

	c.log.DebugContext(ctx, "Fetching weather forecast",
		"lat", location.Latitude, "lon", location.Longitude, "days", days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute forecast request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized:
		return nil, ErrWeatherUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "OpenWeatherMap API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("openweathermap API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result oneCallResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode openweathermap response: %w", err)
	}

	if len(result.Daily) == 0 {
		return nil, ErrWeatherEmptyResponse
	}

	if days > len(result.Daily) {
		days = len(result.Daily)
	}

	forecast := &models.Forecast{
		Dates:        make([]string, 0, days),
		RainfallMM:   make([]float64, 0, days),
		TemperatureC: make([]float64, 0, days),
		Humidity:     make([]float64, 0, days),
		Source:       "OpenWeatherMap",
	}

	for _, day := range result.Daily[:days] {
		forecast.Dates = append(forecast.Dates, time.Unix(day.Dt, 0).UTC().Format("2006-01-02"))
		forecast.RainfallMM = append(forecast.RainfallMM, day.Rain)
		forecast.TemperatureC = append(forecast.TemperatureC, day.Temp.Day)
		forecast.Humidity = append(forecast.Humidity, day.Humidity)
	}

	aggregate(forecast)

	return forecast, nil
}

// aggregate fills the derived statistics from the per-day slices.
func aggregate(forecast *models.Forecast) {
	var humiditySum float64
	for _, h := range forecast.Humidity {
		humiditySum += h
	}
	if len(forecast.Humidity) > 0 {
		forecast.AvgHumidity = humiditySum / float64(len(forecast.Humidity))
	}

	for _, rain := range forecast.RainfallMM {
		forecast.TotalRainfall += rain
		if rain > forecast.MaxDailyRain {
			forecast.MaxDailyRain = rain
		}
	}
}
