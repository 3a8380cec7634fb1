package weather

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
)

// Fallback reasons.
const (
	reasonError   = "error"
	reasonTimeout = "timeout"
	reasonEmpty   = "empty"
)

// Fallback asks a live provider first and answers from a fallback provider
// when the live one fails, times out, or returns nothing. The live call is
// never retried.
type Fallback struct {
	primary  domain.WeatherProvider
	fallback domain.WeatherProvider
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewFallback wraps primary with fallback. A nil primary always uses fallback.
func NewFallback(primary, fallback domain.WeatherProvider, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Fallback {
	return &Fallback{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

type result struct {
	sample domain.WeatherSample
	err    error
}

// Current implements domain.WeatherProvider.
func (f *Fallback) Current(ctx context.Context, city string) (domain.WeatherSample, error) {
	if f.primary != nil {
		sample, reason := f.tryPrimary(ctx, city)
		if reason == "" {
			f.metrics.WeatherSamples.WithLabelValues(sample.Source).Inc()
			return sample, nil
		}
		f.metrics.WeatherFallbacks.WithLabelValues(reason).Inc()
	}

	sample, err := f.fallback.Current(ctx, city)
	if err != nil {
		return domain.WeatherSample{}, err
	}
	f.metrics.WeatherSamples.WithLabelValues(sample.Source).Inc()
	return sample, nil
}

// tryPrimary returns the live sample, or a non-empty fallback reason.
func (f *Fallback) tryPrimary(ctx context.Context, city string) (domain.WeatherSample, string) {
	pctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		s, err := f.primary.Current(pctx, city)
		done <- result{sample: s, err: err}
	}()

	select {
	case <-pctx.Done():
		f.logger.Warn("live weather timed out, using fallback", "city", city, "timeout", f.timeout)
		return domain.WeatherSample{}, reasonTimeout
	case r := <-done:
		switch {
		case errors.Is(r.err, context.DeadlineExceeded):
			f.logger.Warn("live weather timed out, using fallback", "city", city, "timeout", f.timeout)
			return domain.WeatherSample{}, reasonTimeout
		case r.err != nil:
			f.logger.Warn("live weather failed, using fallback", "city", city, "error", r.err)
			return domain.WeatherSample{}, reasonError
		case r.sample.IsZero():
			f.logger.Info("live weather returned no data, using fallback", "city", city)
			return domain.WeatherSample{}, reasonEmpty
		}
		return r.sample, ""
	}
}
