package domain

import (
	"context"
	"encoding/json"
	"time"
)

// TimestampLayout is the wall-clock format used for weather sample timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Weather sample sources.
const (
	SourceSynthetic   = "synthetic"
	SourceOpenWeather = "openweather"
)

// Timestamp serializes as TimestampLayout.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// WeatherSample is a single current-conditions reading for a city.
// Temperature is °C, humidity %, rainfall mm, wind speed km/h.
type WeatherSample struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Rainfall    float64   `json:"rainfall"`
	WindSpeed   float64   `json:"wind_speed"`
	Description string    `json:"description"`
	Timestamp   Timestamp `json:"timestamp"`
	Source      string    `json:"source"`
}

// IsZero reports whether the sample carries no reading at all.
func (w WeatherSample) IsZero() bool {
	return w.City == "" && w.Source == "" && time.Time(w.Timestamp).IsZero()
}

// WeatherProvider returns current conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (WeatherSample, error)
}
