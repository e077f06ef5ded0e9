package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Houeta/floodwatch/internal/alerts"
	"github.com/Houeta/floodwatch/internal/cache"
	"github.com/Houeta/floodwatch/internal/config"
	"github.com/Houeta/floodwatch/internal/elevation"
	"github.com/Houeta/floodwatch/internal/geocoding"
	"github.com/Houeta/floodwatch/internal/metrics"
	"github.com/Houeta/floodwatch/internal/repository"
	"github.com/Houeta/floodwatch/internal/satellite"
	"github.com/Houeta/floodwatch/internal/server"
	"github.com/Houeta/floodwatch/internal/service"
	"github.com/Houeta/floodwatch/internal/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const shutdownTimeout = 10 * time.Second

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb, logger)

	// Create geocoding provider using factory pattern based on configuration.
	// This allows runtime selection between different providers (Google, Nominatim).
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:   geocoding.ProviderType(cfg.GeocoderType),
		APIKey: cfg.GeocoderKey,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.GeocoderType)

	// Clients for the three upstream data sources. Missing credentials are not
	// fatal, the service falls back to mock data per source.
	satClient := satellite.NewClient(cfg.Sentinel.ClientID, cfg.Sentinel.ClientSecret, logger)
	weatherClient := weather.NewClient(cfg.OpenWeatherKey, logger)
	elevClient := elevation.NewClient(logger)

	// Optional assessment cache, enabled when a Redis address is configured.
	var assessmentCache service.AssessmentCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		assessmentCache = cache.NewCache(rdb, cfg.Redis.TTL, logger)
		logger.InfoContext(ctx, "Assessment cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	// Optional alert publisher, enabled when Kafka brokers are configured.
	var publisher alerts.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := alerts.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer kafkaPublisher.Close() //nolint:errcheck // closing on shutdown
		publisher = kafkaPublisher
		logger.InfoContext(ctx, "Alert publisher enabled", "topic", cfg.Kafka.Topic)
	}

	assessmentService := service.NewAssessmentService(
		logger,
		repo,
		satClient,
		weatherClient,
		elevClient,
		assessmentCache,
		publisher,
		appMetrics,
		cfg.RadiusKM,
	)

	srv := server.NewServer(
		fmt.Sprintf(":%d", cfg.Port),
		assessmentService,
		geoProvider,
		dtb,
		reg,
		cfg.ForecastDays,
		logger,
	)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", err)
			stop()
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server cleanly", "error", err)
	}

	// Log graceful shutdown completion.
	logger.Info("Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
