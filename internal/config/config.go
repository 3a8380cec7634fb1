package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Model artifacts.
	ModelDir       string
	CropModelFile  string
	YieldModelFile string

	DefaultCity        string
	CORSAllowedOrigins []string

	// OpenWeather live weather configuration.
	OpenWeatherAPIKey    string
	OpenWeatherEnabled   bool
	OpenWeatherTimeout   time.Duration
	OpenWeatherCacheSize int
	OpenWeatherCacheTTL  time.Duration

	// Prediction event stream. Disabled when no brokers are set.
	EventsKafkaBrokers []string
	EventsKafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	owTimeout, err := parsePositiveDuration("OPENWEATHER_TIMEOUT", "3s")
	if err != nil {
		return nil, err
	}
	owCacheTTL, err := parsePositiveDuration("OPENWEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	owCacheSize, err := parsePositiveInt("OPENWEATHER_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	owKey := os.Getenv("OPENWEATHER_API_KEY")
	owEnabled := owKey != ""
	if v := os.Getenv("OPENWEATHER_ENABLED"); v != "" {
		owEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ModelDir:       sharedcfg.EnvOrDefault("MODEL_DIR", "models"),
		CropModelFile:  sharedcfg.EnvOrDefault("CROP_MODEL_FILE", "crop_model.json"),
		YieldModelFile: sharedcfg.EnvOrDefault("YIELD_MODEL_FILE", "yield_model.json"),

		DefaultCity:        strings.TrimSpace(sharedcfg.EnvOrDefault("DEFAULT_CITY", "Mumbai")),
		CORSAllowedOrigins: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		OpenWeatherAPIKey:    owKey,
		OpenWeatherEnabled:   owEnabled,
		OpenWeatherTimeout:   owTimeout,
		OpenWeatherCacheSize: owCacheSize,
		OpenWeatherCacheTTL:  owCacheTTL,

		EventsKafkaTopic: sharedcfg.EnvOrDefault("EVENTS_KAFKA_TOPIC", "agri-predictions"),
	}
	if brokers := os.Getenv("EVENTS_KAFKA_BROKERS"); strings.TrimSpace(brokers) != "" {
		cfg.EventsKafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if cfg.DefaultCity == "" {
		return nil, errors.New("DEFAULT_CITY must not be blank")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if cfg.OpenWeatherEnabled && cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_ENABLED is true but OPENWEATHER_API_KEY is not set")
	}

	return cfg, nil
}

// EventsEnabled reports whether prediction events are published.
func (c *Config) EventsEnabled() bool { return len(c.EventsKafkaBrokers) > 0 }

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
