package hydrate

import (
	"errors"
	"fmt"
)

// Cause identifies which step of the hydration pipeline failed.
type Cause int

const (
	// CauseClassInvalid is an envelope whose class entry is absent or not a string.
	CauseClassInvalid Cause = iota + 1
	// CauseClassUnknown is a class name with no registered constructor.
	CauseClassUnknown
	// CauseNotContextObject is a raw value that neither implements
	// ContextObject nor carries an envelope shape.
	CauseNotContextObject
	// CausePayloadInvalid is an envelope whose payload entry is not a map.
	CausePayloadInvalid
	// CauseFactoryFailed is a registered factory returning an error.
	CauseFactoryFailed
	// CauseDecodeFailed is a payload that could not be decoded into a fresh instance.
	CauseDecodeFailed
)

// Error is a structured hydration failure. The rendered message is a
// contract: identical invalid inputs must produce byte-identical text.
type Error struct {
	Cause    Cause
	Class    string // class name once it is known
	TypeName string // rendered runtime type of the offending value
	Err      error  // root cause for factory and decode failures
}

func (e *Error) Error() string {
	switch e.Cause {
	case CauseClassInvalid:
		return fmt.Sprintf("Context hydration failed: class is not a string (got %s)", e.TypeName)
	case CauseClassUnknown:
		return fmt.Sprintf("Context hydration failed for class %s: class does not exist", e.Class)
	case CauseNotContextObject:
		return fmt.Sprintf("Context hydration failed: value of type %s does not implement ContextObject", e.TypeName)
	case CausePayloadInvalid:
		return fmt.Sprintf("Context hydration failed for class %s: payload is not a map (got %s)", e.Class, e.TypeName)
	case CauseFactoryFailed:
		return fmt.Sprintf("Failed to instantiate DTO class %s: %s", e.Class, e.Err)
	default:
		return fmt.Sprintf("Context hydration failed for class %s: %s", e.Class, e.Err)
	}
}

// Unwrap exposes the root cause of factory and decode failures.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsHydrationError reports whether err is (or wraps) a hydration *Error.
func IsHydrationError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
