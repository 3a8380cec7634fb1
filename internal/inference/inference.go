// Package inference turns encoded feature vectors into model outputs: a ranked
// crop recommendation or a yield estimate.
package inference

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
)

// TopN is the number of ranked crops returned with a recommendation.
const TopN = 3

// Classifier is the crop model contract.
type Classifier interface {
	Classes() []string
	Predict(x []float64) (string, error)
	PredictProba(x []float64) ([]float64, error)
}

// Regressor is the yield model contract.
type Regressor interface {
	Predict(x []float64) (float64, error)
}

// CropRanking is the classifier's decision plus the most probable classes.
type CropRanking struct {
	Top    string
	Ranked []domain.RankedCrop
}

// YieldEstimate is a per-hectare prediction scaled to the requested area.
// Total is exactly PerHectare * area.
type YieldEstimate struct {
	PerHectare float64
	Total      float64
}

// RecommendCrop runs the classifier on x. Ranked holds up to TopN classes by
// descending probability, with confidence as a percentage rounded to 2 places.
// Classes with equal probability keep the model's class order.
func RecommendCrop(m Classifier, x []float64) (CropRanking, error) {
	top, err := m.Predict(x)
	if err != nil {
		return CropRanking{}, fmt.Errorf("predict crop: %w", err)
	}
	proba, err := m.PredictProba(x)
	if err != nil {
		return CropRanking{}, fmt.Errorf("predict crop probabilities: %w", err)
	}
	classes := m.Classes()
	if len(classes) != len(proba) {
		return CropRanking{}, errors.New("classifier returned probabilities for a different number of classes")
	}

	order := make([]int, len(proba))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return proba[order[a]] > proba[order[b]]
	})

	n := min(TopN, len(order))
	ranked := make([]domain.RankedCrop, 0, n)
	for _, i := range order[:n] {
		ranked = append(ranked, domain.RankedCrop{
			Crop:       classes[i],
			Confidence: domain.Round(proba[i]*100, 2),
		})
	}
	return CropRanking{Top: top, Ranked: ranked}, nil
}

// PredictYield runs the regressor on x and scales the result by area. The
// prediction is not clamped, but an area whose product with it overflows is
// rejected as invalid input.
func PredictYield(m Regressor, x []float64, area float64) (YieldEstimate, error) {
	y, err := m.Predict(x)
	if err != nil {
		return YieldEstimate{}, fmt.Errorf("predict yield: %w", err)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return YieldEstimate{}, fmt.Errorf("predict yield: non-finite prediction %v", y)
	}
	total := y * area
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return YieldEstimate{}, &domain.InputError{
			Kind:   domain.ErrInvalidInput,
			Field:  "area",
			Value:  strconv.FormatFloat(area, 'g', -1, 64),
			Reason: "produces a non-finite total production",
		}
	}
	return YieldEstimate{PerHectare: y, Total: total}, nil
}
