package attrs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

func TestCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "rewrites a simple snake key",
			input:    "to_state",
			expected: "toState",
		},
		{
			name:     "rewrites a multi-word key",
			input:    "on_transition_callbacks",
			expected: "onTransitionCallbacks",
		},
		{
			name:     "rewrites a boolean-style key",
			input:    "is_dry_run",
			expected: "isDryRun",
		},
		{
			name:     "rewrites a unit-suffixed key",
			input:    "average_duration_ms",
			expected: "averageDurationMs",
		},
		{
			name:     "normalizes uppercase snake",
			input:    "TO_STATE",
			expected: "toState",
		},
		{
			name:     "leaves a single word untouched",
			input:    "event",
			expected: "event",
		},
		{
			name:     "collapses doubled underscores",
			input:    "double__underscore",
			expected: "doubleUnderscore",
		},
		{
			name:     "drops leading and trailing underscores",
			input:    "_edge_case_",
			expected: "edgeCase",
		},
		{
			name:     "handles the empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, attrs.CamelCase(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	keys := attrs.NewKeySet("fromState", "toState", "isDryRun", "event")

	t.Run("rewrites recognized snake keys", func(t *testing.T) {
		t.Parallel()
		out := attrs.Normalize(map[string]any{
			"from_state": "pending",
			"to_state":   "active",
			"event":      "activate",
		}, keys)

		assert.Equal(t, attrs.Map{
			"fromState": "pending",
			"toState":   "active",
			"event":     "activate",
		}, out)
	})

	t.Run("camelCase wins when both spellings are present", func(t *testing.T) {
		t.Parallel()
		out := attrs.Normalize(map[string]any{
			"from_state": "snake",
			"fromState":  "camel",
		}, keys)

		require.Len(t, out, 1)
		assert.Equal(t, "camel", out["fromState"])
	})

	t.Run("unrecognized keys pass through untouched", func(t *testing.T) {
		t.Parallel()
		out := attrs.Normalize(map[string]any{
			"custom_field": 1,
			"another":      2,
		}, keys)

		assert.Equal(t, attrs.Map{"custom_field": 1, "another": 2}, out)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		in := map[string]any{"to_state": "done", "plain": true}
		once := attrs.Normalize(in, keys)
		twice := attrs.Normalize(once, keys)

		assert.Equal(t, once, twice)
	})

	t.Run("never mutates the input map", func(t *testing.T) {
		t.Parallel()
		in := map[string]any{"to_state": "done"}
		_ = attrs.Normalize(in, keys)

		assert.Equal(t, map[string]any{"to_state": "done"}, in)
	})

	t.Run("handles a nil map", func(t *testing.T) {
		t.Parallel()
		out := attrs.Normalize(nil, keys)
		assert.Empty(t, out)
	})
}

func TestKeySet(t *testing.T) {
	t.Parallel()

	t.Run("preserves declaration order", func(t *testing.T) {
		t.Parallel()
		s := attrs.NewKeySet("success", "data", "message", "error", "details")
		assert.Equal(t, []string{"success", "data", "message", "error", "details"}, s.Keys())
	})

	t.Run("ignores duplicates", func(t *testing.T) {
		t.Parallel()
		s := attrs.NewKeySet("a", "b", "a")
		assert.Equal(t, []string{"a", "b"}, s.Keys())
	})

	t.Run("reports membership", func(t *testing.T) {
		t.Parallel()
		s := attrs.NewKeySet("toState")
		assert.True(t, s.Has("toState"))
		assert.False(t, s.Has("to_state"))
	})
}
