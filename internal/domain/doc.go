// Package domain holds the request types, feature encoding, and advisory rules
// of the agricultural decision-support service.
//
// # Feature Vectors
//
// Both models are tabular and consume a fixed-order float vector. The order is
// the column order used when the models were fitted and must not change:
//
//	Crop classifier (7):  N, P, K, temperature, humidity, ph, rainfall
//	Yield regressor (6):  State_Encoded, Crop_Encoded, Area, Annual_Rainfall,
//	                      Fertilizer, Pesticide
//
// Numeric request fields may arrive as JSON numbers or numeric strings
// ("90" and 90 are equivalent). Missing, non-numeric, NaN and infinite values
// are rejected with [ErrInvalidInput].
//
// State and crop labels are resolved through the label encoders fitted at
// training time. Matching is exact (case and whitespace sensitive); a label the
// encoder never saw is rejected with [ErrUnknownCategory].
//
// # Units
//
//	Nitrogen, phosphorus, potassium:  kg/ha
//	Temperature:                      °C
//	Humidity:                         %
//	Rainfall (crop query):            mm
//	Rainfall (yield query):           mm per year
//	Fertilizer, pesticide:            kg/ha
//	Area:                             hectares
//	Yield:                            tons per hectare
//
// # Advisory Rules
//
// Advice is generated by fixed thresholds, never by a learned component. Each
// rule set only sees its own inputs:
//
//	Crop:     pH <5.5 acidic | >8.0 alkaline | else optimal (always one item)
//	          N <50, P <30, K <30 (independent)
//	          temperature <15 cold | >35 heat
//	          rainfall <100 irrigate | >300 drainage
//	          closing line naming the recommended crop
//	Yield:    expected yield restated
//	          fertilizer <100 increase | 100–200 optimal | >200 degradation risk
//	          annual rainfall <600 irrigate | >1500 drainage
//	          fixed tips block
//	Weather:  temperature >35 heat | <10 frost | else optimal (always one item)
//	          humidity >85 fungal risk | <40 dryness
//	          rainfall >20 postpone irrigation | ==0 keep schedule
//	          daily activity: rain >20, then temp >35, then temp <15, else general
package domain
