package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
)

// DefaultBaseURL is the OpenWeather current weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client implements domain.WeatherProvider using the OpenWeather current weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: DefaultBaseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Current fetches current conditions for city in metric units. An unknown
// city yields an empty sample and no error.
func (c *Client) Current(ctx context.Context, city string) (domain.WeatherSample, error) {
	params := url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherSample{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherAPIRequests.WithLabelValues("error").Inc()
		return domain.WeatherSample{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.metrics.WeatherAPIRequests.WithLabelValues("not_found").Inc()
		c.logger.Debug("openweather city not found", "city", city)
		return domain.WeatherSample{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.WeatherAPIRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.WeatherSample{}, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	var owResp response
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		c.metrics.WeatherAPIRequests.WithLabelValues("error").Inc()
		return domain.WeatherSample{}, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.WeatherAPIRequests.WithLabelValues("success").Inc()

	return owResp.sample(city), nil
}

// OpenWeather API response types.

type response struct {
	Name    string        `json:"name"`
	Weather []description `json:"weather"`
	Main    struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s in metric units
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

type description struct {
	Description string `json:"description"`
}

func (r response) sample(city string) domain.WeatherSample {
	s := domain.WeatherSample{
		City:        city,
		Temperature: domain.Round(r.Main.Temp, 1),
		Humidity:    domain.Round(r.Main.Humidity, 1),
		Rainfall:    domain.Round(r.Rain.OneHour, 1),
		WindSpeed:   domain.Round(r.Wind.Speed*3.6, 1),
		Timestamp:   domain.Timestamp(domain.Now()),
		Source:      domain.SourceOpenWeather,
	}
	if len(r.Weather) > 0 {
		s.Description = sentenceCase(r.Weather[0].Description)
	}
	return s
}

func sentenceCase(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
