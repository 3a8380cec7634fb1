package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a request field that may arrive as a JSON number or a numeric string.
// It keeps the raw token so responses can echo the caller's input verbatim.
type Number struct {
	raw     string
	quoted  bool
	present bool
}

// NumberOf wraps a float as a present, unquoted Number.
func NumberOf(v float64) Number {
	return Number{raw: strconv.FormatFloat(v, 'f', -1, 64), present: true}
}

// NumberFromString wraps a raw string as if it arrived quoted in JSON.
func NumberFromString(s string) Number {
	return Number{raw: strings.TrimSpace(s), quoted: true, present: true}
}

// UnmarshalJSON accepts numbers, strings, and null. Any other JSON value is kept
// as-is and rejected later by Float.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberFromString(s)
		return nil
	}
	*n = Number{raw: string(b), present: true}
	return nil
}

// MarshalJSON writes the value back the way it was received.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	if !n.quoted {
		if _, err := strconv.ParseFloat(n.raw, 64); err == nil {
			return []byte(n.raw), nil
		}
	}
	return json.Marshal(n.raw)
}

// Present reports whether the field was supplied.
func (n Number) Present() bool { return n.present }

// String returns the raw token as supplied by the caller.
func (n Number) String() string { return n.raw }

// Float coerces the value to a finite float64, naming field in any error.
func (n Number) Float(field string) (float64, error) {
	if !n.present {
		return 0, invalidField(field, "", "is required")
	}
	v, err := strconv.ParseFloat(n.raw, 64)
	if err != nil {
		return 0, invalidField(field, n.raw, "must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidField(field, n.raw, "must be a finite number")
	}
	return v, nil
}

// Round rounds v half away from zero to the given number of decimal places.
// Non-finite values are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
