// Package attrs provides the attribute-map layer shared by every fsmkit data
// transfer object: snake_case→camelCase key normalization, shape
// classification of polymorphic constructor arguments, and strictly typed
// field readers with a deterministic error-message contract.
//
// The package is pure data transformation with no I/O, no global state, and
// no logging. Every function is safe for concurrent use.
//
// # Architecture
//
// Construction of a DTO from loosely typed input runs through three stages,
// each owned by this package:
//
//  1. Classify inspects the single polymorphic argument and returns a Shape,
//     an explicit tagged union deciding between a callable reference, a
//     property map, a plain positional value, or a rejected input with a
//     Cause. The callable-shape test always runs before any associative
//     check, so a ["Class", "method"] pair is never misread as a malformed
//     property map.
//  2. Normalize rewrites recognized snake_case keys to camelCase in a single
//     deterministic pass. When both spellings are present the camelCase entry
//     wins. Normalization is idempotent and always precedes validation.
//  3. Map readers pull individual fields out with strict runtime-type checks,
//     producing FieldError values that render the exact message the caller
//     contracts on.
//
// Recognized-key sets (KeySet) are configuration: each DTO package declares
// its own set next to its field list and hands it to Classify and Normalize.
//
// # Usage
//
//	keys := attrs.NewKeySet("fromState", "toState", "event")
//
//	switch shape := attrs.Classify(arg, keys); shape.Kind {
//	case attrs.KindCallable:
//	    // shape.Callable holds the [target, method] pair
//	case attrs.KindPropertyMap:
//	    m := attrs.Normalize(shape.Map, keys)
//	    from, ok, err := m.NullableString("fromState")
//	    // ...
//	}
//
// # Error Handling
//
// Two error types cover the whole layer. FieldError reports a present value
// of the wrong runtime type and renders either the value phrasing (map-based
// construction) or the parameter phrasing (positional construction); the two
// are deliberately distinct. ShapeError reports an input whose shape cannot
// drive array-based construction at all, with a Cause identifying why. Both
// support errors.As; IsFieldError and IsShapeError are shorthands.
package attrs
