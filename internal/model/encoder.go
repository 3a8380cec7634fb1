package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnseenLabel is returned by LabelEncoder.Encode for a label outside the
// fitted vocabulary.
var ErrUnseenLabel = errors.New("label not seen during fitting")

// LabelEncoder maps categorical labels to the integer codes used at training
// time. Codes are positions in the sorted class list. Lookups are exact.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder from a sorted, duplicate-free class list.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if i > 0 && c <= classes[i-1] {
			return nil, fmt.Errorf("encoder classes must be sorted and unique: %q follows %q", c, classes[i-1])
		}
		index[c] = i
	}
	return &LabelEncoder{classes: slices.Clone(classes), index: index}, nil
}

// Encode returns the code for label.
func (e *LabelEncoder) Encode(label string) (int, error) {
	code, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnseenLabel, label)
	}
	return code, nil
}

// Classes returns the fitted vocabulary in code order.
func (e *LabelEncoder) Classes() []string { return slices.Clone(e.classes) }
