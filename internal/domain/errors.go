package domain

import (
	"errors"
	"fmt"
)

// Request error kinds. Both are recoverable per request and map to HTTP 400.
var (
	// ErrInvalidInput marks a missing, malformed, or non-finite request field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCategory marks a categorical value outside the training vocabulary.
	ErrUnknownCategory = errors.New("unknown category")
)

// InputError describes which request field was rejected and why.
// Kind is one of ErrInvalidInput or ErrUnknownCategory.
type InputError struct {
	Kind   error
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Kind }

func invalidField(field, value, reason string) error {
	return &InputError{Kind: ErrInvalidInput, Field: field, Value: value, Reason: reason}
}

func unknownCategory(field, value string) error {
	return &InputError{Kind: ErrUnknownCategory, Field: field, Value: value, Reason: "is not in the training vocabulary"}
}

// IsRequestError reports whether err is a per-request validation failure.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnknownCategory)
}
