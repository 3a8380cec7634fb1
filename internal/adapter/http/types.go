package http

import (
	"github.com/couchcryptid/agri-advisor-service/internal/domain"
)

// Request/response DTOs.

type weatherReq struct {
	City string `json:"city"`
}

type errorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type cropResp struct {
	Success            bool                `json:"success"`
	RecommendedCrop    string              `json:"recommended_crop"`
	TopRecommendations []domain.RankedCrop `json:"top_recommendations"`
	Advice             []string            `json:"advice"`
	InputParameters    cropParams          `json:"input_parameters"`
}

// cropParams echoes the request with display units, in a fixed key order.
type cropParams struct {
	Nitrogen    string        `json:"Nitrogen (N)"`
	Phosphorus  string        `json:"Phosphorus (P)"`
	Potassium   string        `json:"Potassium (K)"`
	Temperature string        `json:"Temperature"`
	Humidity    string        `json:"Humidity"`
	PH          domain.Number `json:"pH"`
	Rainfall    string        `json:"Rainfall"`
}

type yieldResp struct {
	Success         bool        `json:"success"`
	PredictedYield  float64     `json:"predicted_yield"`
	TotalProduction float64     `json:"total_production"`
	Advice          []string    `json:"advice"`
	InputParameters yieldParams `json:"input_parameters"`
}

type yieldParams struct {
	State          string `json:"State"`
	Crop           string `json:"Crop"`
	Area           string `json:"Area"`
	AnnualRainfall string `json:"Annual Rainfall"`
	Fertilizer     string `json:"Fertilizer"`
	Pesticide      string `json:"Pesticide"`
}

type weatherResp struct {
	Success  bool                  `json:"success"`
	Weather  domain.WeatherSample  `json:"weather"`
	Advisory []domain.AdvisoryItem `json:"advisory"`
}

type yieldOptionsResp struct {
	Success bool     `json:"success"`
	States  []string `json:"states"`
	Crops   []string `json:"crops"`
}

func newCropResp(rec domain.CropRecommendation) cropResp {
	q := rec.Query
	return cropResp{
		Success:            true,
		RecommendedCrop:    rec.Crop,
		TopRecommendations: rec.Ranking,
		Advice:             domain.Messages(rec.Advice),
		InputParameters: cropParams{
			Nitrogen:    q.Nitrogen.String() + " kg/ha",
			Phosphorus:  q.Phosphorus.String() + " kg/ha",
			Potassium:   q.Potassium.String() + " kg/ha",
			Temperature: q.Temperature.String() + "°C",
			Humidity:    q.Humidity.String() + "%",
			PH:          q.PH,
			Rainfall:    q.Rainfall.String() + " mm",
		},
	}
}

func newYieldResp(pred domain.YieldPrediction) yieldResp {
	q := pred.Query
	return yieldResp{
		Success:         true,
		PredictedYield:  domain.Round(pred.PerHectare, 2),
		TotalProduction: domain.Round(pred.Total, 2),
		Advice:          domain.Messages(pred.Advice),
		InputParameters: yieldParams{
			State:          q.State,
			Crop:           q.Crop,
			Area:           q.Area.String() + " hectares",
			AnnualRainfall: q.Rainfall.String() + " mm",
			Fertilizer:     q.Fertilizer.String() + " kg/ha",
			Pesticide:      q.Pesticide.String() + " kg/ha",
		},
	}
}
