package validate

import (
	"errors"
	"fmt"
)

// Candidate field names used in validation errors.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldLocation    = "location"
	FieldRepetitions = "repetitions"
)

// Kind classifies a validation failure. All kinds are user-correctable.
type Kind string

// Validation failure kinds.
const (
	KindMissingField    Kind = "missing_field"
	KindUnknownLocation Kind = "unknown_location"
	KindInvalidField    Kind = "invalid_field"
)

// ErrValidation is the sentinel every validation error wraps, so callers can
// distinguish user-correctable failures from store failures with errors.Is.
var ErrValidation = errors.New("validation failed")

// Error is a single validation failure.
type Error struct {
	Kind  Kind
	Field string // the offending field, or the unknown location name
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case KindUnknownLocation:
		return fmt.Sprintf("unknown location %q", e.Field)
	case KindInvalidField:
		return fmt.Sprintf("invalid value for field %q", e.Field)
	default:
		return fmt.Sprintf("validation failed on %q", e.Field)
	}
}

func (e *Error) Unwrap() error { return ErrValidation }

// MissingField reports a required field that was absent.
func MissingField(field string) error {
	return &Error{Kind: KindMissingField, Field: field}
}

// UnknownLocation reports a location not present in the hill catalog.
func UnknownLocation(location string) error {
	return &Error{Kind: KindUnknownLocation, Field: location}
}

// InvalidField reports a field that was present but malformed.
func InvalidField(field string) error {
	return &Error{Kind: KindInvalidField, Field: field}
}

// AsError unwraps err into a *Error when it is a validation failure.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
