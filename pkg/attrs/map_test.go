package attrs_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

func TestMapString(t *testing.T) {
	t.Parallel()

	t.Run("returns string values", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"state": "active"}

		v, ok, err := m.String("state")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "active", v)
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{}

		_, ok, err := m.String("state")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects non-strings with the value phrasing", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"state": 42}

		_, _, err := m.String("state")
		assert.EqualError(t, err, `The "state" value must be a string, got: int`)
	})

	t.Run("rejects nil", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"state": nil}

		_, _, err := m.String("state")
		assert.EqualError(t, err, `The "state" value must be a string, got: nil`)
	})
}

func TestMapNullableString(t *testing.T) {
	t.Parallel()

	t.Run("explicit nil is present and null", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"fromState": nil}

		v, ok, err := m.NullableString("fromState")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("empty string is not null", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"fromState": ""}

		v, ok, err := m.NullableString("fromState")
		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, v)
		assert.Equal(t, "", *v)
	})

	t.Run("rejects other types with the nullable phrasing", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"fromState": 1.5}

		_, _, err := m.NullableString("fromState")
		assert.EqualError(t, err, `The "fromState" value must be a string or null, got: float64`)
	})
}

func TestMapBool(t *testing.T) {
	t.Parallel()

	t.Run("returns booleans", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"success": true}

		v, ok, err := m.Bool("success")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, v)
	})

	t.Run("rejects truthy stand-ins", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"success": 1}

		_, _, err := m.Bool("success")
		assert.EqualError(t, err, `The "success" value must be a boolean, got: int`)
	})

	t.Run("rejects strings", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"success": "true"}

		_, _, err := m.Bool("success")
		assert.EqualError(t, err, `The "success" value must be a boolean, got: string`)
	})
}

func TestMapInt(t *testing.T) {
	t.Parallel()

	t.Run("accepts native integer widths", func(t *testing.T) {
		t.Parallel()
		for _, v := range []any{int(5), int8(5), int16(5), int32(5), int64(5), uint(5), uint8(5), uint16(5), uint32(5)} {
			m := attrs.Map{"priority": v}

			got, ok, err := m.Int("priority")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 5, got)
		}
	})

	t.Run("accepts integral json numbers", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"priority": json.Number("5")}

		got, ok, err := m.Int("priority")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 5, got)
	})

	t.Run("rejects fractional json numbers", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"priority": json.Number("5.5")}

		_, _, err := m.Int("priority")
		assert.EqualError(t, err, `The "priority" value must be an integer, got: json.Number`)
	})

	t.Run("rejects floats even when integral", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"priority": float64(5)}

		_, _, err := m.Int("priority")
		assert.EqualError(t, err, `The "priority" value must be an integer, got: float64`)
	})

	t.Run("rejects strings", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"priority": "5"}

		_, _, err := m.Int("priority")
		assert.EqualError(t, err, `The "priority" value must be an integer, got: string`)
	})
}

func TestMapInt64(t *testing.T) {
	t.Parallel()

	t.Run("returns wide values untruncated", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"totalDurationMs": int64(1<<40 + 7)}

		got, ok, err := m.Int64("totalDurationMs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1<<40+7), got)
	})

	t.Run("rejects floats", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"totalDurationMs": 1.0}

		_, _, err := m.Int64("totalDurationMs")
		assert.EqualError(t, err, `The "totalDurationMs" value must be an integer, got: float64`)
	})

	t.Run("nullable variant allows nil", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"durationMs": nil}

		got, ok, err := m.NullableInt64("durationMs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, got)

		m["durationMs"] = 30000
		got, _, err = m.NullableInt64("durationMs")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(30000), *got)

		m["durationMs"] = 1.5
		_, _, err = m.NullableInt64("durationMs")
		assert.EqualError(t, err, `The "durationMs" value must be an integer, got: float64`)
	})
}

func TestMapFloat(t *testing.T) {
	t.Parallel()

	t.Run("accepts floats", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"averageDurationMs": 12.5}

		got, ok, err := m.Float("averageDurationMs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 12.5, got)
	})

	t.Run("widens integers", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"averageDurationMs": 12}

		got, ok, err := m.Float("averageDurationMs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 12.0, got)
	})

	t.Run("accepts json numbers", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"averageDurationMs": json.Number("12.5")}

		got, ok, err := m.Float("averageDurationMs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 12.5, got)
	})

	t.Run("rejects strings", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"averageDurationMs": "12.5"}

		_, _, err := m.Float("averageDurationMs")
		assert.EqualError(t, err, `The "averageDurationMs" value must be a number, got: string`)
	})

	t.Run("nullable variant allows nil", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"minDurationMs": nil}

		v, ok, err := m.NullableFloat("minDurationMs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, v)
	})
}

func TestMapStringMap(t *testing.T) {
	t.Parallel()

	t.Run("accepts string-keyed maps", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"metadata": map[string]any{"reason": "manual"}}

		got, ok, err := m.StringMap("metadata")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, map[string]any{"reason": "manual"}, got)
	})

	t.Run("accepts legacy decoder maps with string keys", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"metadata": map[any]any{"reason": "manual"}}

		got, ok, err := m.StringMap("metadata")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, map[string]any{"reason": "manual"}, got)
	})

	t.Run("rejects legacy decoder maps with non-string keys", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"metadata": map[any]any{1: "manual"}}

		_, _, err := m.StringMap("metadata")
		assert.EqualError(t, err, `The "metadata" value must be a string-keyed map, got: map[interface {}]interface {}`)
	})

	t.Run("rejects non-maps", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"metadata": []any{"reason"}}

		_, _, err := m.StringMap("metadata")
		assert.EqualError(t, err, `The "metadata" value must be a map, got: []interface {}`)
	})

	t.Run("nullable variant allows nil", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"details": nil}

		got, ok, err := m.NullableStringMap("details")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, got)
	})
}

func TestMapTime(t *testing.T) {
	t.Parallel()

	t.Run("accepts time values", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
		m := attrs.Map{"createdAt": now}

		got, ok, err := m.Time("createdAt")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, got.Equal(now))
	})

	t.Run("parses RFC 3339 strings", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"createdAt": "2024-03-01T10:30:00Z"}

		got, ok, err := m.Time("createdAt")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"createdAt": "yesterday"}

		_, _, err := m.Time("createdAt")
		assert.EqualError(t, err, `The "createdAt" value must be an RFC 3339 timestamp, got: string`)
	})

	t.Run("rejects numeric timestamps", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"createdAt": int64(1709288000)}

		_, _, err := m.Time("createdAt")
		assert.EqualError(t, err, `The "createdAt" value must be a timestamp, got: int64`)
	})

	t.Run("nullable variant allows nil", func(t *testing.T) {
		t.Parallel()
		m := attrs.Map{"exitedAt": nil}

		got, ok, err := m.NullableTime("exitedAt")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, got)
	})
}

func TestFieldErrorStyles(t *testing.T) {
	t.Parallel()

	t.Run("value phrasing", func(t *testing.T) {
		t.Parallel()
		err := attrs.NewFieldError("priority", "an integer", 1.5)
		assert.EqualError(t, err, `The "priority" value must be an integer, got: float64`)
	})

	t.Run("parameter phrasing", func(t *testing.T) {
		t.Parallel()
		err := attrs.NewParamError("success", "a boolean", "yes")
		assert.EqualError(t, err, `The "success" parameter must be a boolean, got: string`)
	})

	t.Run("errors unwrap to the typed form", func(t *testing.T) {
		t.Parallel()
		err := attrs.NewFieldError("state", "a string", nil)

		assert.True(t, attrs.IsFieldError(err))

		var fe *attrs.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "state", fe.Field)
		assert.Equal(t, "nil", fe.Actual)
	})
}
