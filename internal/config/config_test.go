package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "ow-test-key"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("EVENTS_KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "models", cfg.ModelDir)
	assert.Equal(t, "crop_model.json", cfg.CropModelFile)
	assert.Equal(t, "yield_model.json", cfg.YieldModelFile)
	assert.Equal(t, "Mumbai", cfg.DefaultCity)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.OpenWeatherEnabled)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 3*time.Second, cfg.OpenWeatherTimeout)
	assert.Equal(t, 256, cfg.OpenWeatherCacheSize)
	assert.Equal(t, 10*time.Minute, cfg.OpenWeatherCacheTTL)
	assert.Empty(t, cfg.EventsKafkaBrokers)
	assert.False(t, cfg.EventsEnabled())
	assert.Equal(t, "agri-predictions", cfg.EventsKafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MODEL_DIR", "/srv/models")
	t.Setenv("CROP_MODEL_FILE", "crop.json.gz")
	t.Setenv("YIELD_MODEL_FILE", "yield.json.gz")
	t.Setenv("DEFAULT_CITY", " Pune ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://farm.example.org")
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("OPENWEATHER_TIMEOUT", "1500ms")
	t.Setenv("OPENWEATHER_CACHE_SIZE", "32")
	t.Setenv("OPENWEATHER_CACHE_TTL", "1m")
	t.Setenv("EVENTS_KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("EVENTS_KAFKA_TOPIC", "predictions")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/models", cfg.ModelDir)
	assert.Equal(t, "crop.json.gz", cfg.CropModelFile)
	assert.Equal(t, "yield.json.gz", cfg.YieldModelFile)
	assert.Equal(t, "Pune", cfg.DefaultCity)
	assert.Equal(t, []string{"http://localhost:3000", "https://farm.example.org"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.OpenWeatherEnabled)
	assert.Equal(t, testAPIKey, cfg.OpenWeatherAPIKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.OpenWeatherTimeout)
	assert.Equal(t, 32, cfg.OpenWeatherCacheSize)
	assert.Equal(t, time.Minute, cfg.OpenWeatherCacheTTL)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.EventsKafkaBrokers)
	assert.True(t, cfg.EventsEnabled())
	assert.Equal(t, "predictions", cfg.EventsKafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValuesNameTheVariable(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"OPENWEATHER_TIMEOUT", "bad"},
		{"OPENWEATHER_TIMEOUT", "-1s"},
		{"OPENWEATHER_CACHE_TTL", "0s"},
		{"OPENWEATHER_CACHE_SIZE", "0"},
		{"OPENWEATHER_CACHE_SIZE", "many"},
		{"CORS_ALLOWED_ORIGINS", " , "},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_OpenWeatherEnabledWithoutKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("OPENWEATHER_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
}

func TestLoad_OpenWeatherKeyImpliesEnabled(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.OpenWeatherEnabled)
}

func TestLoad_OpenWeatherExplicitlyDisabled(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", testAPIKey)
	t.Setenv("OPENWEATHER_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.OpenWeatherEnabled)
}
