package attrs

import (
	"encoding/json"
	"time"
)

// Map is a string-keyed attribute payload with strictly typed field readers.
//
// Readers return (value, ok, err): ok reports whether the key is present, err
// reports a present value of the wrong runtime type. Absent keys are never
// errors; required-key policy belongs to the DTO, not the reader. All
// resulting errors carry the value phrasing; positional-construction paths
// build their own parameter-phrased errors.
type Map map[string]any

// Has reports whether key is present, regardless of its value.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String reads a string field. Explicit nil is a type error here; use
// NullableString for fields where null is meaningful.
func (m Map) String(key string) (string, bool, error) {
	v, ok := m[key]
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", true, NewFieldError(key, "a string", v)
	}
	return s, true, nil
}

// NullableString reads a field holding either a string or an explicit null.
// The empty string is a valid value, never a null.
func (m Map) NullableString(key string) (*string, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, true, NewFieldError(key, "a string or null", v)
	}
	return &s, true, nil
}

// Bool reads a strictly boolean field.
func (m Map) Bool(key string) (bool, bool, error) {
	v, ok := m[key]
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, true, NewFieldError(key, "a boolean", v)
	}
	return b, true, nil
}

// Int reads a strictly integral field. Every Go integer kind is accepted, as
// is a json.Number that parses as an integer. Floats are rejected even when
// numerically whole; integer fields never silently narrow.
func (m Map) Int(key string) (int, bool, error) {
	n, ok, err := m.Int64(key)
	return int(n), ok, err
}

// Int64 is Int for 64-bit fields such as millisecond durations.
func (m Map) Int64(key string) (int64, bool, error) {
	v, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	n, err := toInt64(key, v)
	if err != nil {
		return 0, true, err
	}
	return n, true, nil
}

func toInt64(key string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, NewFieldError(key, "an integer", v)
		}
		return i, nil
	default:
		return 0, NewFieldError(key, "an integer", v)
	}
}

// NullableInt64 reads an optional integral field where explicit null is valid.
func (m Map) NullableInt64(key string) (*int64, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	n, err := toInt64(key, v)
	if err != nil {
		return nil, true, err
	}
	return &n, true, nil
}

// Float reads a numeric field. Integers widen to float64, the one documented
// implicit conversion, but strings and booleans never do.
func (m Map) Float(key string) (float64, bool, error) {
	v, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, true, NewFieldError(key, "a number", v)
		}
		return f, true, nil
	default:
		i, err := toInt64(key, v)
		if err != nil {
			return 0, true, NewFieldError(key, "a number", v)
		}
		return float64(i), true, nil
	}
}

// NullableFloat reads an optional numeric field where explicit null is valid.
func (m Map) NullableFloat(key string) (*float64, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	f, _, err := m.Float(key)
	if err != nil {
		return nil, true, err
	}
	return &f, true, nil
}

// StringMap reads a string-keyed map field. map[any]any inputs from legacy
// YAML decoders are accepted when every key is a string.
func (m Map) StringMap(key string) (map[string]any, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	mm, err := toStringMap(key, v)
	if err != nil {
		return nil, true, err
	}
	return mm, true, nil
}

// NullableStringMap reads a map field where explicit null is valid.
func (m Map) NullableStringMap(key string) (map[string]any, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	mm, err := toStringMap(key, v)
	if err != nil {
		return nil, true, err
	}
	return mm, true, nil
}

func toStringMap(key string, v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case Map:
		return map[string]any(t), nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			s, ok := k.(string)
			if !ok {
				return nil, NewFieldError(key, "a string-keyed map", v)
			}
			out[s] = val
		}
		return out, nil
	default:
		return nil, NewFieldError(key, "a map", v)
	}
}

// Time reads a timestamp field holding a time.Time, a *time.Time, or an
// RFC 3339 string.
func (m Map) Time(key string) (time.Time, bool, error) {
	v, ok := m[key]
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := toTime(key, v)
	if err != nil {
		return time.Time{}, true, err
	}
	return t, true, nil
}

// NullableTime reads a timestamp field where explicit null is valid.
func (m Map) NullableTime(key string) (*time.Time, bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	t, err := toTime(key, v)
	if err != nil {
		return nil, true, err
	}
	return &t, true, nil
}

func toTime(key string, v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
		return time.Time{}, NewFieldError(key, "a timestamp", v)
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, NewFieldError(key, "an RFC 3339 timestamp", v)
		}
		return parsed, nil
	default:
		return time.Time{}, NewFieldError(key, "a timestamp", v)
	}
}
