package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ServiceName identifies the service in logs.
const ServiceName = "agri-advisor"

const namespace = "agri_advisor"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Prediction metrics.
	Predictions       *prometheus.CounterVec   // labels: kind={crop,yield}, outcome={success,rejected,error}
	InferenceDuration *prometheus.HistogramVec // labels: kind={crop,yield}
	ModelsLoaded      prometheus.Gauge

	// Weather metrics.
	WeatherSamples     *prometheus.CounterVec // labels: source={synthetic,openweather}
	WeatherFallbacks   *prometheus.CounterVec // labels: reason={error,timeout,empty}
	WeatherAPIRequests *prometheus.CounterVec // labels: outcome={success,error}
	WeatherAPIDuration prometheus.Histogram
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss,expired}
	WeatherAPIEnabled  prometheus.Gauge

	// Event stream metrics.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}

	// HTTP metrics.
	HTTPRequests        *prometheus.CounterVec   // labels: route, method, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route, method
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction requests by model kind and outcome.",
		}, []string{"kind", "outcome"}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Model inference duration in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"kind"}),
		ModelsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "models_loaded",
			Help:      "1 when both model artifacts are loaded, 0 otherwise.",
		}),
		WeatherSamples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_samples_total",
			Help:      "Weather samples served by source.",
		}, []string{"source"}),
		WeatherFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_fallbacks_total",
			Help:      "Live weather lookups replaced by synthetic samples, by reason.",
		}, []string{"reason"}),
		WeatherAPIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_api_requests_total",
			Help:      "OpenWeather API requests by outcome.",
		}, []string{"outcome"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "weather_api_duration_seconds",
			Help:      "OpenWeather API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		WeatherAPIEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weather_api_enabled",
			Help:      "1 when live weather lookups are enabled, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Prediction events handed to the event stream by outcome.",
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method, and status code.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Predictions,
		m.InferenceDuration,
		m.ModelsLoaded,
		m.WeatherSamples,
		m.WeatherFallbacks,
		m.WeatherAPIRequests,
		m.WeatherAPIDuration,
		m.WeatherCache,
		m.WeatherAPIEnabled,
		m.EventsPublished,
		m.HTTPRequests,
		m.HTTPRequestDuration,
	}
}
