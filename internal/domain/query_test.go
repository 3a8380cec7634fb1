package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapEncoder is a fixed-vocabulary CategoryEncoder for tests.
type mapEncoder map[string]int

func (m mapEncoder) Encode(label string) (int, error) {
	code, ok := m[label]
	if !ok {
		return 0, errors.New("unseen label")
	}
	return code, nil
}

var (
	testStates = mapEncoder{"Karnataka": 0, "Maharashtra": 1, "Punjab": 2}
	testCrops  = mapEncoder{"Maize": 0, "Rice": 1, "Wheat": 2}
)

func decodeCrop(t *testing.T, body string) CropQuery {
	t.Helper()
	var q CropQuery
	require.NoError(t, json.Unmarshal([]byte(body), &q))
	return q
}

func decodeYield(t *testing.T, body string) YieldQuery {
	t.Helper()
	var q YieldQuery
	require.NoError(t, json.Unmarshal([]byte(body), &q))
	return q
}

func TestEncodeCropQuery(t *testing.T) {
	t.Run("numbers", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93}`)
		vec, err := EncodeCropQuery(q)
		require.NoError(t, err)
		assert.Equal(t, []float64{90, 42, 43, 20.87, 82, 6.5, 202.93}, vec)
	})

	t.Run("numeric strings", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":"90","phosphorus":" 42 ","potassium":"43","temperature":"20.87","humidity":"82","ph":"6.5","rainfall":"202.93"}`)
		vec, err := EncodeCropQuery(q)
		require.NoError(t, err)
		assert.Equal(t, []float64{90, 42, 43, 20.87, 82, 6.5, 202.93}, vec)
	})

	t.Run("missing field", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"rainfall":202.93}`)
		_, err := EncodeCropQuery(q)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "ph is required", err.Error())
	})

	t.Run("null counts as missing", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":null,"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93}`)
		_, err := EncodeCropQuery(q)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-numeric", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":"lots","phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93}`)
		_, err := EncodeCropQuery(q)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)

		var inErr *InputError
		require.ErrorAs(t, err, &inErr)
		assert.Equal(t, "nitrogen", inErr.Field)
		assert.Equal(t, "lots", inErr.Value)
	})

	t.Run("non-finite", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":90,"phosphorus":42,"potassium":43,"temperature":"NaN","humidity":82,"ph":6.5,"rainfall":"Inf"}`)
		_, err := EncodeCropQuery(q)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "temperature")
	})

	t.Run("object value", func(t *testing.T) {
		q := decodeCrop(t, `{"nitrogen":{"v":1},"phosphorus":42,"potassium":43,"temperature":20.87,"humidity":82,"ph":6.5,"rainfall":202.93}`)
		_, err := EncodeCropQuery(q)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestEncodeYieldQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		q := decodeYield(t, `{"state":"Maharashtra","crop":"Rice","area":1200,"rainfall":"1150","fertilizer":120,"pesticide":15}`)
		vec, err := EncodeYieldQuery(q, testStates, testCrops)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1, 1200, 1150, 120, 15}, vec)
	})

	t.Run("unknown state", func(t *testing.T) {
		q := decodeYield(t, `{"state":"Atlantis","crop":"Rice","area":1200,"rainfall":1150,"fertilizer":120,"pesticide":15}`)
		_, err := EncodeYieldQuery(q, testStates, testCrops)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownCategory)
		assert.NotErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "Atlantis")
	})

	t.Run("unknown crop", func(t *testing.T) {
		q := decodeYield(t, `{"state":"Punjab","crop":"rice","area":1200,"rainfall":1150,"fertilizer":120,"pesticide":15}`)
		_, err := EncodeYieldQuery(q, testStates, testCrops)
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("category checked before numerics", func(t *testing.T) {
		q := decodeYield(t, `{"state":"Atlantis","crop":"Rice","area":"big"}`)
		_, err := EncodeYieldQuery(q, testStates, testCrops)
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("missing state", func(t *testing.T) {
		q := decodeYield(t, `{"crop":"Rice","area":1200,"rainfall":1150,"fertilizer":120,"pesticide":15}`)
		_, err := EncodeYieldQuery(q, testStates, testCrops)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing numeric", func(t *testing.T) {
		q := decodeYield(t, `{"state":"Punjab","crop":"Wheat","area":1200,"rainfall":1150,"fertilizer":120}`)
		_, err := EncodeYieldQuery(q, testStates, testCrops)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, "pesticide is required", err.Error())
	})
}

func TestNumber_MarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number stays number", `90.5`, `90.5`},
		{"string stays string", `"90.5"`, `"90.5"`},
		{"null stays null", `null`, `null`},
		{"garbage is quoted", `true`, `"true"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			out, err := json.Marshal(n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestNumberOf(t *testing.T) {
	n := NumberOf(202.93)
	assert.True(t, n.Present())
	assert.Equal(t, "202.93", n.String())

	v, err := n.Float("rainfall")
	require.NoError(t, err)
	assert.Equal(t, 202.93, v)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 79.17, Round(79.1666666, 2))
	assert.Equal(t, 2.5, Round(2.45, 1))
	assert.Equal(t, -1.24, Round(-1.235, 2))
	assert.Equal(t, 3720.0, Round(3720.0000000000005, 2))
}
