package replay

import (
	"slices"
	"time"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

var (
	timelineKeys = attrs.NewKeySet("state", "enteredAt", "exitedAt", "durationMs", "event")
	analysisKeys = attrs.NewKeySet(
		"state",
		"totalDurationMs",
		"occurrenceCount",
		"averageDurationMs",
		"minDurationMs",
		"maxDurationMs",
	)
)

// StateTimelineEntryData is one row of chronological state occupancy: the
// state entered, when, and, once the model has moved on, when it left and how
// long it stayed. The exit fields are nil while the state is still occupied.
type StateTimelineEntryData struct {
	State      string
	EnteredAt  time.Time
	ExitedAt   *time.Time
	DurationMs *int64
	Event      *string
}

// StateTimeAnalysisData aggregates one state's occupancy across a timeline.
// TotalDurationMs and OccurrenceCount are strictly integral;
// AverageDurationMs accepts the documented int widening. The min and max
// fields are nil when no completed occupancy exists.
type StateTimeAnalysisData struct {
	State             string
	TotalDurationMs   int64
	OccurrenceCount   int
	AverageDurationMs float64
	MinDurationMs     *float64
	MaxDurationMs     *float64
}

// StateTimelineEntryDataFromMap builds a timeline row from a transport
// payload. State and enteredAt are required; an empty payload is rejected
// with the type-naming message.
func StateTimelineEntryDataFromMap(m map[string]any) (*StateTimelineEntryData, error) {
	if len(m) == 0 {
		return nil, &EmptyPayloadError{TypeName: "StateTimelineEntryData"}
	}
	nm := attrs.Normalize(m, timelineKeys)

	var (
		d   StateTimelineEntryData
		ok  bool
		err error
	)
	if d.State, ok, err = nm.String("state"); err != nil {
		return nil, err
	} else if !ok {
		return nil, attrs.NewFieldError("state", "a string", nil)
	}
	if d.EnteredAt, ok, err = nm.Time("enteredAt"); err != nil {
		return nil, err
	} else if !ok {
		return nil, attrs.NewFieldError("enteredAt", "a timestamp", nil)
	}
	if d.ExitedAt, _, err = nm.NullableTime("exitedAt"); err != nil {
		return nil, err
	}
	if d.DurationMs, _, err = nm.NullableInt64("durationMs"); err != nil {
		return nil, err
	}
	if d.Event, _, err = nm.NullableString("event"); err != nil {
		return nil, err
	}
	return &d, nil
}

// StateTimelineEntryDataFromPayload builds a timeline row from a polymorphic
// legacy payload, classifying the argument before any field is read.
func StateTimelineEntryDataFromPayload(v any) (*StateTimelineEntryData, error) {
	m, err := analysisPayloadMap("StateTimelineEntryData", v, timelineKeys)
	if err != nil {
		return nil, err
	}
	return StateTimelineEntryDataFromMap(m)
}

// ToMap renders the row as a transport payload. Every key is present; the
// nullable fields render as explicit nulls.
func (d StateTimelineEntryData) ToMap() map[string]any {
	m := map[string]any{
		"state":      d.State,
		"enteredAt":  d.EnteredAt,
		"exitedAt":   nil,
		"durationMs": nil,
		"event":      nil,
	}
	if d.ExitedAt != nil {
		m["exitedAt"] = *d.ExitedAt
	}
	if d.DurationMs != nil {
		m["durationMs"] = *d.DurationMs
	}
	if d.Event != nil {
		m["event"] = *d.Event
	}
	return m
}

// StateTimeAnalysisDataFromMap builds a state analysis record from a
// transport payload. State and the three aggregate numerics are required;
// totalDurationMs and occurrenceCount never narrow from floats, while
// averageDurationMs widens from an integer.
func StateTimeAnalysisDataFromMap(m map[string]any) (*StateTimeAnalysisData, error) {
	if len(m) == 0 {
		return nil, &EmptyPayloadError{TypeName: "StateTimeAnalysisData"}
	}
	nm := attrs.Normalize(m, analysisKeys)

	var (
		d   StateTimeAnalysisData
		ok  bool
		err error
	)
	if d.State, ok, err = nm.String("state"); err != nil {
		return nil, err
	} else if !ok {
		return nil, attrs.NewFieldError("state", "a string", nil)
	}
	if d.TotalDurationMs, ok, err = nm.Int64("totalDurationMs"); err != nil {
		return nil, err
	} else if !ok {
		return nil, attrs.NewFieldError("totalDurationMs", "an integer", nil)
	}
	if d.OccurrenceCount, ok, err = nm.Int("occurrenceCount"); err != nil {
		return nil, err
	} else if !ok {
		return nil, attrs.NewFieldError("occurrenceCount", "an integer", nil)
	}
	if d.AverageDurationMs, ok, err = nm.Float("averageDurationMs"); err != nil {
		return nil, err
	} else if !ok {
		return nil, attrs.NewFieldError("averageDurationMs", "a number", nil)
	}
	if d.MinDurationMs, _, err = nm.NullableFloat("minDurationMs"); err != nil {
		return nil, err
	}
	if d.MaxDurationMs, _, err = nm.NullableFloat("maxDurationMs"); err != nil {
		return nil, err
	}
	return &d, nil
}

// StateTimeAnalysisDataFromPayload builds a state analysis record from a
// polymorphic legacy payload, classifying the argument before any field is
// read.
func StateTimeAnalysisDataFromPayload(v any) (*StateTimeAnalysisData, error) {
	m, err := analysisPayloadMap("StateTimeAnalysisData", v, analysisKeys)
	if err != nil {
		return nil, err
	}
	return StateTimeAnalysisDataFromMap(m)
}

// ToMap renders the record as a transport payload. Every key is present; the
// nullable fields render as explicit nulls.
func (d StateTimeAnalysisData) ToMap() map[string]any {
	m := map[string]any{
		"state":             d.State,
		"totalDurationMs":   d.TotalDurationMs,
		"occurrenceCount":   d.OccurrenceCount,
		"averageDurationMs": d.AverageDurationMs,
		"minDurationMs":     nil,
		"maxDurationMs":     nil,
	}
	if d.MinDurationMs != nil {
		m["minDurationMs"] = *d.MinDurationMs
	}
	if d.MaxDurationMs != nil {
		m["maxDurationMs"] = *d.MaxDurationMs
	}
	return m
}

// analysisPayloadMap resolves the polymorphic argument of an analysis record
// constructor to its property map. Empty input is an EmptyPayloadError naming
// the type; other rejected shapes keep their shape errors.
func analysisPayloadMap(typeName string, v any, keys attrs.KeySet) (attrs.Map, error) {
	shape := attrs.Classify(v, keys)
	switch shape.Kind {
	case attrs.KindPropertyMap:
		return shape.Map, nil
	case attrs.KindCallable:
		return nil, &attrs.ShapeError{Cause: attrs.CauseCallable, Keys: keys.Keys()}
	case attrs.KindInvalid:
		if shape.Cause == attrs.CauseEmpty {
			return nil, &EmptyPayloadError{TypeName: typeName}
		}
		return nil, &attrs.ShapeError{Cause: shape.Cause, Keys: keys.Keys()}
	default:
		if shape.Value == nil {
			return nil, &EmptyPayloadError{TypeName: typeName}
		}
		return nil, attrs.NewParamError("data", "a property map", v)
	}
}

// Timeline folds history entries into chronological state occupancy: one row
// per entry, entered at the entry's timestamp and exited when the next entry
// supersedes it. The final row stays open. Entries are ordered by timestamp,
// preserving input order for equal timestamps.
func Timeline(entries []HistoryEntry) []StateTimelineEntryData {
	if len(entries) == 0 {
		return []StateTimelineEntryData{}
	}
	ordered := slices.Clone(entries)
	slices.SortStableFunc(ordered, func(a, b HistoryEntry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	timeline := make([]StateTimelineEntryData, len(ordered))
	for i, e := range ordered {
		row := StateTimelineEntryData{
			State:     e.ToState,
			EnteredAt: e.CreatedAt,
			Event:     e.Event,
		}
		if i+1 < len(ordered) {
			exitedAt := ordered[i+1].CreatedAt
			durationMs := exitedAt.Sub(e.CreatedAt).Milliseconds()
			row.ExitedAt = &exitedAt
			row.DurationMs = &durationMs
		}
		timeline[i] = row
	}
	return timeline
}

// AnalyzeStateTimes aggregates a timeline into per-state occupancy analysis,
// ordered by state name. Open rows count as occurrences but contribute no
// duration; the average is taken over completed occupancies only.
func AnalyzeStateTimes(timeline []StateTimelineEntryData) []*StateTimeAnalysisData {
	byState := make(map[string]*StateTimeAnalysisData)
	completed := make(map[string]int)
	for _, row := range timeline {
		d := byState[row.State]
		if d == nil {
			d = &StateTimeAnalysisData{State: row.State}
			byState[row.State] = d
		}
		d.OccurrenceCount++
		if row.DurationMs == nil {
			continue
		}
		d.TotalDurationMs += *row.DurationMs
		completed[row.State]++

		ms := float64(*row.DurationMs)
		if d.MinDurationMs == nil || ms < *d.MinDurationMs {
			v := ms
			d.MinDurationMs = &v
		}
		if d.MaxDurationMs == nil || ms > *d.MaxDurationMs {
			v := ms
			d.MaxDurationMs = &v
		}
	}

	states := make([]string, 0, len(byState))
	for s := range byState {
		states = append(states, s)
	}
	slices.Sort(states)

	out := make([]*StateTimeAnalysisData, 0, len(states))
	for _, s := range states {
		d := byState[s]
		if n := completed[s]; n > 0 {
			d.AverageDurationMs = float64(d.TotalDurationMs) / float64(n)
		}
		out = append(out, d)
	}
	return out
}
