package features

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteInput = errors.New("incomplete input")
	ErrNoFeatureNames  = errors.New("feature name list is empty")
)

// MissingRequiredFieldError is returned when an input needed by a derived
// feature was not supplied.
type MissingRequiredFieldError struct {
	Field string
}

func (e MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("incomplete input: missing required field %s", e.Field)
}

func (e MissingRequiredFieldError) Unwrap() error {
	return ErrIncompleteInput
}

func IsMissingRequiredField(err error) bool {
	var me MissingRequiredFieldError
	return errors.As(err, &me)
}

// UnknownFeatureNameError describes a canonical feature the encoder has no
// rule for. It is never returned from Encode; the position stays zero.
type UnknownFeatureNameError struct {
	Name  string
	Index int
}

func (e UnknownFeatureNameError) Error() string {
	return fmt.Sprintf("no encoding rule for feature %q at position %d", e.Name, e.Index)
}
