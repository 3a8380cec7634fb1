package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey        = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

var frozen = time.Date(2025, time.July, 2, 14, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	fc := clockwork.NewFakeClockAt(frozen)
	domain.SetClock(fc)
	t.Cleanup(func() { domain.SetClock(nil) })
	return fc
}

func testClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     testAPIKey,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Current_Success(t *testing.T) {
	freezeClock(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mumbai", r.URL.Query().Get("q"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{
			"name": "Mumbai",
			"weather": [{"main": "Rain", "description": "light rain"}],
			"main": {"temp": 29.46, "humidity": 84},
			"wind": {"speed": 5},
			"rain": {"1h": 2.37}
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	got, err := c.Current(context.Background(), "Mumbai")
	require.NoError(t, err)

	assert.Equal(t, domain.WeatherSample{
		City:        "Mumbai",
		Temperature: 29.5,
		Humidity:    84,
		Rainfall:    2.4,
		WindSpeed:   18,
		Description: "Light rain",
		Timestamp:   domain.Timestamp(frozen),
		Source:      domain.SourceOpenWeather,
	}, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.WeatherAPIRequests.WithLabelValues("success")))
}

func TestClient_Current_NoRainField(t *testing.T) {
	freezeClock(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"weather":[{"description":"clear sky"}],"main":{"temp":31,"humidity":40},"wind":{"speed":2.5}}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, 5*time.Second).Current(context.Background(), "Jaipur")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Rainfall)
	assert.Equal(t, 9.0, got.WindSpeed)
	assert.Equal(t, "Clear sky", got.Description)
}

func TestClient_Current_CityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL, 5*time.Second).Current(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestClient_Current_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, 5*time.Second)
	_, err := c.Current(context.Background(), "Mumbai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.WeatherAPIRequests.WithLabelValues("error")))
}

func TestClient_Current_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"main":`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 5*time.Second).Current(context.Background(), "Mumbai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Current_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 50*time.Millisecond).Current(context.Background(), "Mumbai")
	require.Error(t, err)
}
