package domain

import "strings"

// CropQuery is the soil and climate payload for a crop recommendation.
type CropQuery struct {
	Nitrogen    Number `json:"nitrogen"`
	Phosphorus  Number `json:"phosphorus"`
	Potassium   Number `json:"potassium"`
	Temperature Number `json:"temperature"`
	Humidity    Number `json:"humidity"`
	PH          Number `json:"ph"`
	Rainfall    Number `json:"rainfall"`
}

// CropConditions is a CropQuery after numeric coercion.
type CropConditions struct {
	Nitrogen    float64
	Phosphorus  float64
	Potassium   float64
	Temperature float64
	Humidity    float64
	PH          float64
	Rainfall    float64
}

// CropFeatureNames is the training-time column order of the crop classifier.
var CropFeatureNames = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// Vector returns the features in CropFeatureNames order.
func (c CropConditions) Vector() []float64 {
	return []float64{c.Nitrogen, c.Phosphorus, c.Potassium, c.Temperature, c.Humidity, c.PH, c.Rainfall}
}

// YieldQuery is the payload for a per-hectare yield prediction.
type YieldQuery struct {
	State      string `json:"state"`
	Crop       string `json:"crop"`
	Area       Number `json:"area"`
	Rainfall   Number `json:"rainfall"`
	Fertilizer Number `json:"fertilizer"`
	Pesticide  Number `json:"pesticide"`
}

// YieldConditions is a YieldQuery after numeric coercion.
type YieldConditions struct {
	State      string
	Crop       string
	Area       float64
	Rainfall   float64
	Fertilizer float64
	Pesticide  float64
}

// YieldFeatureColumns is the training-time column order of the yield regressor.
var YieldFeatureColumns = []string{"State_Encoded", "Crop_Encoded", "Area", "Annual_Rainfall", "Fertilizer", "Pesticide"}

// CategoryEncoder maps a categorical label to the integer code used at training time.
type CategoryEncoder interface {
	Encode(label string) (int, error)
}

// DecodeCropQuery coerces every crop field to a finite float.
func DecodeCropQuery(q CropQuery) (CropConditions, error) {
	var c CropConditions
	fields := []struct {
		name string
		in   Number
		out  *float64
	}{
		{"nitrogen", q.Nitrogen, &c.Nitrogen},
		{"phosphorus", q.Phosphorus, &c.Phosphorus},
		{"potassium", q.Potassium, &c.Potassium},
		{"temperature", q.Temperature, &c.Temperature},
		{"humidity", q.Humidity, &c.Humidity},
		{"ph", q.PH, &c.PH},
		{"rainfall", q.Rainfall, &c.Rainfall},
	}
	for _, f := range fields {
		v, err := f.in.Float(f.name)
		if err != nil {
			return CropConditions{}, err
		}
		*f.out = v
	}
	return c, nil
}

// EncodeCropQuery returns the 7-feature vector expected by the crop classifier.
func EncodeCropQuery(q CropQuery) ([]float64, error) {
	c, err := DecodeCropQuery(q)
	if err != nil {
		return nil, err
	}
	return c.Vector(), nil
}

// DecodeYieldQuery checks the categorical fields are present and coerces the
// numeric ones. It does not consult the encoders.
func DecodeYieldQuery(q YieldQuery) (YieldConditions, error) {
	c := YieldConditions{State: q.State, Crop: q.Crop}
	if strings.TrimSpace(q.State) == "" {
		return YieldConditions{}, invalidField("state", "", "is required")
	}
	if strings.TrimSpace(q.Crop) == "" {
		return YieldConditions{}, invalidField("crop", "", "is required")
	}
	fields := []struct {
		name string
		in   Number
		out  *float64
	}{
		{"area", q.Area, &c.Area},
		{"rainfall", q.Rainfall, &c.Rainfall},
		{"fertilizer", q.Fertilizer, &c.Fertilizer},
		{"pesticide", q.Pesticide, &c.Pesticide},
	}
	for _, f := range fields {
		v, err := f.in.Float(f.name)
		if err != nil {
			return YieldConditions{}, err
		}
		*f.out = v
	}
	return c, nil
}

// EncodeYieldQuery resolves state and crop through their encoders, then appends
// the numeric fields, producing the 6-feature vector in YieldFeatureColumns order.
// Categories are resolved before numerics are parsed.
func EncodeYieldQuery(q YieldQuery, states, crops CategoryEncoder) ([]float64, error) {
	stateCode, err := encodeCategory("state", q.State, states)
	if err != nil {
		return nil, err
	}
	cropCode, err := encodeCategory("crop", q.Crop, crops)
	if err != nil {
		return nil, err
	}
	c, err := DecodeYieldQuery(q)
	if err != nil {
		return nil, err
	}
	return []float64{
		float64(stateCode),
		float64(cropCode),
		c.Area,
		c.Rainfall,
		c.Fertilizer,
		c.Pesticide,
	}, nil
}

func encodeCategory(field, label string, enc CategoryEncoder) (int, error) {
	if strings.TrimSpace(label) == "" {
		return 0, invalidField(field, "", "is required")
	}
	code, err := enc.Encode(label)
	if err != nil {
		return 0, unknownCategory(field, label)
	}
	return code, nil
}
