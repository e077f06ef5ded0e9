package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the flood risk service.
// It includes the environment, HTTP server port, upstream API credentials,
// assessment defaults, and the database, cache, and alerting configuration.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP API and monitoring server.
// - GeocoderType: The geocoding provider to use for city lookups (google, nominatim).
// - GeocoderKey: The API key for the geocoding provider (required for Google).
// - Sentinel: Credentials for the Sentinel Hub imagery API.
// - OpenWeatherKey: The API key for the OpenWeatherMap One Call API.
// - RadiusKM: The analysis radius around the requested point, in kilometres.
// - ForecastDays: The default forecast horizon for assessments.
// - Database: Configuration settings for the PostgreSQL database.
// - Redis: Configuration for the optional assessment cache.
// - Kafka: Configuration for the optional high-risk alert publisher.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	Port           int            // Port is the HTTP API and monitoring server port.
	GeocoderType   string         // GeocoderType specifies which geocoding provider to use.
	GeocoderKey    string         // The API key for the geocoding provider.
	Sentinel       SentinelConfig // Sentinel holds the Sentinel Hub OAuth credentials.
	OpenWeatherKey string         // The API key for OpenWeatherMap.
	RadiusKM       float64        // Analysis radius around the requested point.
	ForecastDays   int            // Default forecast horizon in days, 1..7.
	Database       PostgresConfig // Database holds the postgres database configuration.
	Redis          RedisConfig    // Redis holds the assessment cache configuration.
	Kafka          KafkaConfig    // Kafka holds the alert publisher configuration.
}

// SentinelConfig holds the OAuth client credentials for the Sentinel Hub API.
// When either field is empty the satellite client serves mock imagery.
type SentinelConfig struct {
	ClientID     string
	ClientSecret string
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// RedisConfig holds the assessment cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// KafkaConfig holds the alert publisher settings. Empty Brokers disable publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("FLOODWATCH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for HTTP server from configuration")
	}

	radius, err := strconv.ParseFloat(setDefaultEnv("FLOODWATCH_RADIUS_KM", "5"), 64)
	if err != nil {
		panic("failed to parse analysis radius from configuration")
	}

	days, err := strconv.Atoi(setDefaultEnv("FLOODWATCH_FORECAST_DAYS", "3"))
	if err != nil || days < 1 || days > 7 {
		panic("failed to parse forecast days from configuration, must be an integer in 1..7")
	}

	cacheTTL, err := time.ParseDuration(setDefaultEnv("FLOODWATCH_CACHE_TTL", "15m"))
	if err != nil {
		panic("failed to parse cache TTL from configuration")
	}

	var brokers []string
	if raw := os.Getenv("FLOODWATCH_KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return &Config{
		Env:          setDefaultEnv("FLOODWATCH_ENV", "production"),
		Port:         port,
		GeocoderType: setDefaultEnv("FLOODWATCH_GEOCODER_TYPE", "nominatim"),
		GeocoderKey:  os.Getenv("FLOODWATCH_GEOCODER_KEY"),
		Sentinel: SentinelConfig{
			ClientID:     os.Getenv("SENTINEL_CLIENT_ID"),
			ClientSecret: os.Getenv("SENTINEL_CLIENT_SECRET"),
		},
		OpenWeatherKey: os.Getenv("OPENWEATHER_API_KEY"),
		RadiusKM:       radius,
		ForecastDays:   days,
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   setDefaultEnv("FLOODWATCH_KAFKA_TOPIC", "flood-alerts"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
