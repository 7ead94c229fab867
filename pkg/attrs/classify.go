package attrs

import "reflect"

// ShapeKind discriminates the interpretations of a polymorphic construction
// argument.
type ShapeKind int

const (
	// KindValue is a plain positional value: scalar, func, struct, or nil.
	KindValue ShapeKind = iota
	// KindCallable is a two-element [classOrInstance, method] reference.
	KindCallable
	// KindPropertyMap is an associative payload carrying recognized DTO keys.
	KindPropertyMap
	// KindInvalid is an array-shaped input that fits none of the above.
	KindInvalid
)

// Shape is the classification of a single polymorphic constructor argument.
// Exactly one of Callable, Map, Value, or Cause is meaningful, selected by
// Kind.
type Shape struct {
	Kind     ShapeKind
	Callable [2]any // target and method name when Kind == KindCallable
	Map      Map    // property payload when Kind == KindPropertyMap
	Value    any    // the untouched argument when Kind == KindValue
	Cause    Cause  // rejection cause when Kind == KindInvalid
}

// Classify decides how the single argument of a DTO constructor must be
// interpreted, before any field is touched. The callable-shape test runs
// before every associative check: ["Class", "method"] pairs are a common
// idiom and must never be read as a malformed property map.
//
// Sequences arrive as []any. Associative payloads arrive as map[string]any
// (or Map); map[any]any is accepted for inputs produced by legacy YAML
// decoders, keeping only the string-keyed entries. Everything else is a plain
// positional value.
func Classify(v any, keys KeySet) Shape {
	switch arg := v.(type) {
	case []any:
		if len(arg) == 2 && callablePair(arg[0], arg[1]) {
			return Shape{Kind: KindCallable, Callable: [2]any{arg[0], arg[1]}}
		}
		switch {
		case len(arg) == 0:
			return Shape{Kind: KindInvalid, Cause: CauseEmpty}
		case len(arg) >= 3:
			return Shape{Kind: KindInvalid, Cause: CauseSequential}
		default:
			return Shape{Kind: KindInvalid, Cause: CauseNumericKeys}
		}
	case map[string]any:
		return classifyStringMap(Map(arg), keys)
	case Map:
		return classifyStringMap(arg, keys)
	case map[any]any:
		return classifyAnyMap(arg, keys)
	default:
		return Shape{Kind: KindValue, Value: v}
	}
}

func classifyStringMap(m Map, keys KeySet) Shape {
	if target, method, ok := callableEntries(m); ok {
		return Shape{Kind: KindCallable, Callable: [2]any{target, method}}
	}
	if len(m) == 0 {
		return Shape{Kind: KindInvalid, Cause: CauseEmpty}
	}
	for k := range m {
		if keys.Has(k) {
			return Shape{Kind: KindPropertyMap, Map: m}
		}
	}
	return Shape{Kind: KindInvalid, Cause: CauseNoRecognizedKey}
}

func classifyAnyMap(m map[any]any, keys KeySet) Shape {
	// A two-element sequence that went through a permissive decoder comes
	// back as a mapping with the integer keys 0 and 1; the callable test
	// still takes precedence for that form.
	if len(m) == 2 {
		target, okT := m[0]
		method, okM := m[1]
		if okT && okM && callablePair(target, method) {
			return Shape{Kind: KindCallable, Callable: [2]any{target, method}}
		}
	}
	if len(m) == 0 {
		return Shape{Kind: KindInvalid, Cause: CauseEmpty}
	}
	stringKeyed := make(Map)
	for k, v := range m {
		if s, ok := k.(string); ok {
			stringKeyed[s] = v
		}
	}
	if len(stringKeyed) == 0 {
		return Shape{Kind: KindInvalid, Cause: CauseNumericKeys}
	}
	for k := range stringKeyed {
		if keys.Has(k) {
			return Shape{Kind: KindPropertyMap, Map: stringKeyed}
		}
	}
	return Shape{Kind: KindInvalid, Cause: CauseNoRecognizedKey}
}

// callableEntries detects the string-keyed map form of a callable pair:
// exactly the keys "0" and "1" (a sequential pair that survived a round trip
// through a string-keyed encoding) holding a callable-shaped target/method.
func callableEntries(m Map) (any, any, bool) {
	if len(m) != 2 {
		return nil, nil, false
	}
	target, okT := m["0"]
	method, okM := m["1"]
	if !okT || !okM || !callablePair(target, method) {
		return nil, nil, false
	}
	return target, method, true
}

// callablePair reports whether target and method form a deferred method
// reference: the method is a string and the target is a string, a struct, or
// a pointer, never a collection or a non-string scalar.
func callablePair(target, method any) bool {
	if _, ok := method.(string); !ok {
		return false
	}
	switch reflect.ValueOf(target).Kind() {
	case reflect.String, reflect.Struct, reflect.Pointer:
		return true
	default:
		return false
	}
}
