// Package weather provides current-conditions samples for the weather advisory:
// a synthetic generator used when no live source is configured, and a
// time-bounded fallback wrapper around a live source.
package weather

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
)

var descriptions = []string{"Clear sky", "Partly cloudy", "Cloudy", "Light rain", "Sunny"}

// Synthetic generates plausible random weather. Readings are uncorrelated with
// the real conditions in the city.
//
//	temperature  20.0 .. 35.0 °C
//	humidity     40.0 .. 90.0 %
//	rainfall      0.0 .. 50.0 mm
//	wind speed    5.0 .. 20.0 km/h
type Synthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthetic creates a generator. Equal seeds produce equal sequences.
func NewSynthetic(seed uint64) *Synthetic {
	return &Synthetic{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Current returns a fresh random sample for city. It never fails.
func (s *Synthetic) Current(_ context.Context, city string) (domain.WeatherSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.WeatherSample{
		City:        city,
		Temperature: domain.Round(25+s.uniform(-5, 10), 1),
		Humidity:    domain.Round(60+s.uniform(-20, 30), 1),
		Rainfall:    domain.Round(s.uniform(0, 50), 1),
		WindSpeed:   domain.Round(s.uniform(5, 20), 1),
		Description: descriptions[s.rng.IntN(len(descriptions))],
		Timestamp:   domain.Timestamp(domain.Now()),
		Source:      domain.SourceSynthetic,
	}, nil
}

func (s *Synthetic) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
