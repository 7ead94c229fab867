package attrs

import (
	"errors"
	"fmt"
	"strings"
)

// Style selects between the two literal FieldError renderings. Map-based
// construction reports on the "value", positional construction on the
// "parameter"; callers depend on the two messages staying distinct.
type Style int

const (
	// StyleValue renders `The "x" value must be ...` (map-based construction).
	StyleValue Style = iota
	// StyleParameter renders `The "x" parameter must be ...` (positional construction).
	StyleParameter
)

// FieldError reports a field whose supplied value has the wrong runtime type.
// The rendered message is a contract: given the same invalid input it must
// come out byte-identical.
type FieldError struct {
	Field    string // key or parameter name as the caller supplied it
	Expected string // human-readable expectation, e.g. "a string or null"
	Actual   string // rendered runtime type of the offending value
	Style    Style
}

func (e *FieldError) Error() string {
	noun := "value"
	if e.Style == StyleParameter {
		noun = "parameter"
	}
	return fmt.Sprintf("The %q %s must be %s, got: %s", e.Field, noun, e.Expected, e.Actual)
}

// NewFieldError builds a value-phrased FieldError for map-based construction.
func NewFieldError(field, expected string, actual any) *FieldError {
	return &FieldError{Field: field, Expected: expected, Actual: TypeName(actual), Style: StyleValue}
}

// NewParamError builds a parameter-phrased FieldError for positional construction.
func NewParamError(field, expected string, actual any) *FieldError {
	return &FieldError{Field: field, Expected: expected, Actual: TypeName(actual), Style: StyleParameter}
}

// Cause identifies why Classify rejected an array-shaped input.
type Cause int

const (
	// CauseEmpty is an empty array or map.
	CauseEmpty Cause = iota + 1
	// CauseSequential is a purely sequential array with three or more elements.
	CauseSequential
	// CauseNumericKeys is an input carrying only numeric keys and no string key.
	CauseNumericKeys
	// CauseNoRecognizedKey is a string-keyed map with none of the DTO's keys.
	CauseNoRecognizedKey
	// CauseCallable is a callable-shaped pair given to a DTO that requires
	// property-map construction.
	CauseCallable
)

// ShapeError reports a payload whose shape cannot drive array-based
// construction. Keys carries the DTO's recognized keys in declaration order
// for the expected-key rendering.
type ShapeError struct {
	Cause Cause
	Keys  []string
}

func (e *ShapeError) Error() string {
	switch e.Cause {
	case CauseCallable:
		return "Array-based construction cannot use callable arrays."
	case CauseSequential:
		return "Array-based construction requires an associative array."
	case CauseNumericKeys:
		return "Array-based construction requires an array with at least one string key."
	default:
		// CauseEmpty and CauseNoRecognizedKey share the rendering; the Cause
		// field keeps them distinguishable.
		return "Array-based construction requires at least one expected key: " + strings.Join(e.Keys, ", ")
	}
}

// IsFieldError reports whether err is (or wraps) a FieldError.
func IsFieldError(err error) bool {
	var e *FieldError
	return errors.As(err, &e)
}

// IsShapeError reports whether err is (or wraps) a ShapeError.
func IsShapeError(err error) bool {
	var e *ShapeError
	return errors.As(err, &e)
}

// TypeName renders the runtime type of v for the `got: <type>` clause of
// error messages. The rendering is part of the message contract and must stay
// deterministic: nil renders as "nil", everything else as the Go type name.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
