package attrs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

type fakeTarget struct{}

func (fakeTarget) Handle() {}

func TestClassify(t *testing.T) {
	t.Parallel()

	keys := attrs.NewKeySet("success", "data", "message", "error", "details")

	t.Run("two-element class and method pair is callable", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify([]any{"MyClass", "method"}, keys)

		assert.Equal(t, attrs.KindCallable, shape.Kind)
		assert.Equal(t, [2]any{"MyClass", "method"}, shape.Callable)
	})

	t.Run("object target is callable", func(t *testing.T) {
		t.Parallel()
		target := &fakeTarget{}
		shape := attrs.Classify([]any{target, "Handle"}, keys)

		assert.Equal(t, attrs.KindCallable, shape.Kind)
		assert.Same(t, target, shape.Callable[0])
	})

	t.Run("callable test runs before the property map test", func(t *testing.T) {
		t.Parallel()
		// Both elements are strings, so even a pair that looks like data must
		// classify as a callable reference.
		shape := attrs.Classify([]any{"success", "data"}, keys)
		assert.Equal(t, attrs.KindCallable, shape.Kind)
	})

	t.Run("non-callable pair with numeric positions is rejected", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify([]any{1, "method"}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseNumericKeys, shape.Cause)
	})

	t.Run("collection target is not callable", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify([]any{map[string]any{"x": 1}, "method"}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseNumericKeys, shape.Cause)
	})

	t.Run("empty sequence is rejected as empty", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify([]any{}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseEmpty, shape.Cause)
	})

	t.Run("three or more sequential elements are rejected", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify([]any{"a", "b", "c"}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseSequential, shape.Cause)
	})

	t.Run("single-element sequence is rejected for numeric keys", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify([]any{"lonely"}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseNumericKeys, shape.Cause)
	})

	t.Run("map with a recognized key is a property map", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[string]any{"success": true, "extra": 1}, keys)

		assert.Equal(t, attrs.KindPropertyMap, shape.Kind)
		assert.Equal(t, attrs.Map{"success": true, "extra": 1}, shape.Map)
	})

	t.Run("empty map is rejected as empty", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[string]any{}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseEmpty, shape.Cause)
	})

	t.Run("map without recognized keys is rejected", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[string]any{"unrelated": 1}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseNoRecognizedKey, shape.Cause)
	})

	t.Run("string-keyed pair positions still classify as callable", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[string]any{"0": "MyClass", "1": "method"}, keys)

		assert.Equal(t, attrs.KindCallable, shape.Kind)
		assert.Equal(t, [2]any{"MyClass", "method"}, shape.Callable)
	})

	t.Run("legacy decoder map with integer pair keys is callable", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[any]any{0: "MyClass", 1: "method"}, keys)

		assert.Equal(t, attrs.KindCallable, shape.Kind)
	})

	t.Run("legacy decoder map keeps only string-keyed entries", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[any]any{"success": true, 7: "dropped"}, keys)

		assert.Equal(t, attrs.KindPropertyMap, shape.Kind)
		assert.Equal(t, attrs.Map{"success": true}, shape.Map)
	})

	t.Run("legacy decoder map with only numeric keys is rejected", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(map[any]any{1: "x", 2: "y"}, keys)

		assert.Equal(t, attrs.KindInvalid, shape.Kind)
		assert.Equal(t, attrs.CauseNumericKeys, shape.Cause)
	})

	t.Run("scalars are plain values", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify("handler.name", keys)

		assert.Equal(t, attrs.KindValue, shape.Kind)
		assert.Equal(t, "handler.name", shape.Value)
	})

	t.Run("nil is a plain value", func(t *testing.T) {
		t.Parallel()
		shape := attrs.Classify(nil, keys)

		assert.Equal(t, attrs.KindValue, shape.Kind)
		assert.Nil(t, shape.Value)
	})

	t.Run("funcs are plain values", func(t *testing.T) {
		t.Parallel()
		fn := func() {}
		shape := attrs.Classify(fn, keys)

		assert.Equal(t, attrs.KindValue, shape.Kind)
	})
}

func TestShapeErrorMessages(t *testing.T) {
	t.Parallel()

	keys := []string{"success", "data", "message", "error", "details"}

	tests := []struct {
		name     string
		err      *attrs.ShapeError
		expected string
	}{
		{
			name:     "empty input lists the expected keys",
			err:      &attrs.ShapeError{Cause: attrs.CauseEmpty, Keys: keys},
			expected: "Array-based construction requires at least one expected key: success, data, message, error, details",
		},
		{
			name:     "missing recognized key lists the expected keys",
			err:      &attrs.ShapeError{Cause: attrs.CauseNoRecognizedKey, Keys: keys},
			expected: "Array-based construction requires at least one expected key: success, data, message, error, details",
		},
		{
			name:     "callable misuse",
			err:      &attrs.ShapeError{Cause: attrs.CauseCallable},
			expected: "Array-based construction cannot use callable arrays.",
		},
		{
			name:     "sequential input",
			err:      &attrs.ShapeError{Cause: attrs.CauseSequential},
			expected: "Array-based construction requires an associative array.",
		},
		{
			name:     "numeric keys",
			err:      &attrs.ShapeError{Cause: attrs.CauseNumericKeys},
			expected: "Array-based construction requires an array with at least one string key.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.EqualError(t, tt.err, tt.expected)
		})
	}
}
