package domain

import "time"

// RankedCrop is one entry of the top-N crop ranking. Confidence is a percentage.
type RankedCrop struct {
	Crop       string  `json:"crop"`
	Confidence float64 `json:"confidence"`
}

// CropRecommendation is the full result of a crop recommendation request.
type CropRecommendation struct {
	Crop       string
	Ranking    []RankedCrop
	Advice     []AdvisoryItem
	Conditions CropConditions
	Query      CropQuery
}

// YieldPrediction is the full result of a yield prediction request.
// Total is PerHectare multiplied by the requested area, unrounded.
type YieldPrediction struct {
	PerHectare float64
	Total      float64
	Advice     []AdvisoryItem
	Conditions YieldConditions
	Query      YieldQuery
}

// WeatherReport pairs a weather sample with its advisory.
type WeatherReport struct {
	Sample   WeatherSample
	Advisory []AdvisoryItem
}

// Prediction event kinds.
const (
	EventCropRecommendation = "crop_recommendation"
	EventYieldPrediction    = "yield_prediction"
)

// PredictionEvent records a served prediction for downstream consumers.
type PredictionEvent struct {
	ID          string    `json:"id"`
	Kind        string    `json:"event_kind"`
	Input       any       `json:"input"`
	Output      any       `json:"output"`
	ProcessedAt time.Time `json:"processed_at"`
}
