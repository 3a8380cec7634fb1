// Package advisor wires the loaded models, feature codec, inference engine,
// advisory rules, and weather provider into the operations served over HTTP.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/inference"
	"github.com/couchcryptid/agri-advisor-service/internal/model"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
	"github.com/google/uuid"
)

// Prediction kinds used as metric labels.
const (
	kindCrop  = "crop"
	kindYield = "yield"
)

// EventPublisher receives a record of every successful prediction.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.PredictionEvent) error
}

// Options holds request defaults.
type Options struct {
	DefaultCity string
}

// Service is built once at startup and shared by all requests. It holds no
// per-request state.
type Service struct {
	store   *model.Store
	weather domain.WeatherProvider
	events  EventPublisher
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service. events may be nil to disable prediction events.
func New(store *model.Store, weather domain.WeatherProvider, events EventPublisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if store != nil && store.Crop != nil && store.Yield != nil {
		metrics.ModelsLoaded.Set(1)
	}
	return &Service{
		store:   store,
		weather: weather,
		events:  events,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// RecommendCrop validates q, ranks the most suitable crops, and attaches soil
// and climate advice for the top one.
func (s *Service) RecommendCrop(ctx context.Context, q domain.CropQuery) (domain.CropRecommendation, error) {
	cond, err := domain.DecodeCropQuery(q)
	if err != nil {
		s.record(kindCrop, err)
		return domain.CropRecommendation{}, err
	}

	start := time.Now()
	ranking, err := inference.RecommendCrop(s.store.Crop, cond.Vector())
	s.metrics.InferenceDuration.WithLabelValues(kindCrop).Observe(time.Since(start).Seconds())
	if err != nil {
		s.record(kindCrop, err)
		return domain.CropRecommendation{}, err
	}

	rec := domain.CropRecommendation{
		Crop:       ranking.Top,
		Ranking:    ranking.Ranked,
		Advice:     domain.CropAdvice(cond, ranking.Top),
		Conditions: cond,
		Query:      q,
	}
	s.record(kindCrop, nil)
	s.publish(ctx, domain.EventCropRecommendation, q, cropOutput{
		RecommendedCrop:    rec.Crop,
		TopRecommendations: rec.Ranking,
	})
	return rec, nil
}

// PredictYield validates q, encodes state and crop, and predicts per-hectare
// and total production for the requested area.
func (s *Service) PredictYield(ctx context.Context, q domain.YieldQuery) (domain.YieldPrediction, error) {
	b := s.store.Yield
	x, err := domain.EncodeYieldQuery(q, b.StateEncoder, b.CropEncoder)
	if err != nil {
		s.record(kindYield, err)
		return domain.YieldPrediction{}, err
	}
	cond, err := domain.DecodeYieldQuery(q)
	if err != nil {
		s.record(kindYield, err)
		return domain.YieldPrediction{}, err
	}

	start := time.Now()
	est, err := inference.PredictYield(b.Regressor, x, cond.Area)
	s.metrics.InferenceDuration.WithLabelValues(kindYield).Observe(time.Since(start).Seconds())
	if err != nil {
		s.record(kindYield, err)
		return domain.YieldPrediction{}, err
	}

	pred := domain.YieldPrediction{
		PerHectare: est.PerHectare,
		Total:      est.Total,
		Advice:     domain.YieldAdvice(cond, est.PerHectare),
		Conditions: cond,
		Query:      q,
	}
	s.record(kindYield, nil)
	s.publish(ctx, domain.EventYieldPrediction, q, yieldOutput{
		PredictedYield:  pred.PerHectare,
		TotalProduction: pred.Total,
	})
	return pred, nil
}

// Weather returns current conditions for city with a farming advisory. A blank
// city uses the configured default.
func (s *Service) Weather(ctx context.Context, city string) (domain.WeatherReport, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		city = s.opts.DefaultCity
	}
	sample, err := s.weather.Current(ctx, city)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("weather for %s: %w", city, err)
	}
	return domain.WeatherReport{
		Sample:   sample,
		Advisory: domain.WeatherAdvisory(sample),
	}, nil
}

// YieldOptions returns the state and crop vocabularies the yield model accepts.
func (s *Service) YieldOptions() (states, crops []string) {
	return s.store.Yield.StateEncoder.Classes(), s.store.Yield.CropEncoder.Classes()
}

// CheckReadiness reports ready once both models are loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.store == nil || s.store.Crop == nil || s.store.Yield == nil {
		return errors.New("models not loaded")
	}
	return nil
}

func (s *Service) record(kind string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case domain.IsRequestError(err):
		outcome = "rejected"
	default:
		outcome = "error"
		s.logger.Error("prediction failed", "kind", kind, "error", err)
	}
	s.metrics.Predictions.WithLabelValues(kind, outcome).Inc()
}

type cropOutput struct {
	RecommendedCrop    string              `json:"recommended_crop"`
	TopRecommendations []domain.RankedCrop `json:"top_recommendations"`
}

type yieldOutput struct {
	PredictedYield  float64 `json:"predicted_yield"`
	TotalProduction float64 `json:"total_production"`
}

// publish hands the event to the stream without affecting the response.
func (s *Service) publish(ctx context.Context, kind string, input, output any) {
	if s.events == nil {
		return
	}
	event := domain.PredictionEvent{
		ID:          uuid.NewString(),
		Kind:        kind,
		Input:       input,
		Output:      output,
		ProcessedAt: domain.Now().UTC(),
	}
	if err := s.events.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publish prediction event", "event_id", event.ID, "kind", kind, "error", err)
	}
}
