package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/agri-advisor-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/agri-advisor-service/internal/adapter/kafka"
	"github.com/couchcryptid/agri-advisor-service/internal/adapter/openweather"
	"github.com/couchcryptid/agri-advisor-service/internal/advisor"
	"github.com/couchcryptid/agri-advisor-service/internal/config"
	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/model"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
	"github.com/couchcryptid/agri-advisor-service/internal/weather"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment is authoritative.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, err := model.LoadStore(cfg.ModelDir, cfg.CropModelFile, cfg.YieldModelFile)
	if err != nil {
		logger.Error("failed to load models", "error", err)
		os.Exit(1)
	}
	logger.Info("models loaded",
		"dir", cfg.ModelDir,
		"crop_classes", len(store.Crop.Classes()),
		"crop_trees", store.Crop.Trees(),
		"states", len(store.Yield.StateEncoder.Classes()),
		"crops", len(store.Yield.CropEncoder.Classes()),
	)

	provider := newWeatherProvider(cfg, logger, metrics)

	var events advisor.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.EventsEnabled() {
		writer = kafkaadapter.NewWriter(cfg.EventsKafkaBrokers, cfg.EventsKafkaTopic, logger, metrics)
		events = writer
		logger.Info("prediction events enabled", "brokers", cfg.EventsKafkaBrokers, "topic", cfg.EventsKafkaTopic)
	} else {
		logger.Info("prediction events disabled")
	}

	svc := advisor.New(store, provider, events, advisor.Options{DefaultCity: cfg.DefaultCity}, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, httpadapter.Options{AllowedOrigins: cfg.CORSAllowedOrigins}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newWeatherProvider returns the synthetic generator, fronted by the cached
// OpenWeather client when live weather is enabled. Both paths go through
// weather.Fallback so every served sample is counted.
func newWeatherProvider(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) domain.WeatherProvider {
	synthetic := weather.NewSynthetic(uint64(time.Now().UnixNano()))
	if !cfg.OpenWeatherEnabled {
		metrics.WeatherAPIEnabled.Set(0)
		logger.Info("openweather disabled, serving synthetic weather")
		return weather.NewFallback(nil, synthetic, cfg.OpenWeatherTimeout, logger, metrics)
	}

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherTimeout, logger, metrics)
	cached := openweather.NewCachedProvider(client, cfg.OpenWeatherCacheSize, cfg.OpenWeatherCacheTTL, metrics)
	metrics.WeatherAPIEnabled.Set(1)
	logger.Info("openweather enabled",
		"timeout", cfg.OpenWeatherTimeout,
		"cache_size", cfg.OpenWeatherCacheSize,
		"cache_ttl", cfg.OpenWeatherCacheTTL,
	)
	return weather.NewFallback(cached, synthetic, cfg.OpenWeatherTimeout, logger, metrics)
}
