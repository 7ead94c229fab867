package replay

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
	"github.com/ChrisThompsonTLDR/fsmkit/pkg/hydrate"
)

var historyKeys = attrs.NewKeySet(
	"id",
	"modelType",
	"modelId",
	"fromState",
	"toState",
	"event",
	"context",
	"createdAt",
)

// HistoryEntry is one recorded transition: which model moved, from and to
// which states, and the context envelope the transition carried. FromState is
// nil for a model's first recorded transition. The envelope is kept verbatim
// and never hydrated here.
type HistoryEntry struct {
	ID        uuid.UUID
	ModelType string
	ModelID   string
	FromState *string
	ToState   string
	Event     *string
	Context   *hydrate.Envelope
	CreatedAt time.Time
}

// HistoryEntryFromMap builds a history entry from a transport payload.
// Snake_case keys are accepted, the id parses from its string form, and the
// context envelope is captured without hydration.
func HistoryEntryFromMap(m map[string]any) (*HistoryEntry, error) {
	nm := attrs.Normalize(m, historyKeys)

	e := &HistoryEntry{}
	switch id := nm["id"].(type) {
	case nil:
	case uuid.UUID:
		e.ID = id
	case string:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("history entry id: %w", err)
		}
		e.ID = parsed
	default:
		return nil, attrs.NewFieldError("id", "a UUID string", id)
	}

	var err error
	if e.ModelType, _, err = nm.String("modelType"); err != nil {
		return nil, err
	}
	if e.ModelID, _, err = nm.String("modelId"); err != nil {
		return nil, err
	}
	if e.FromState, _, err = nm.NullableString("fromState"); err != nil {
		return nil, err
	}
	if e.ToState, _, err = nm.String("toState"); err != nil {
		return nil, err
	}
	if e.Event, _, err = nm.NullableString("event"); err != nil {
		return nil, err
	}
	if e.Context, err = contextEnvelope(nm["context"]); err != nil {
		return nil, err
	}
	if e.CreatedAt, _, err = nm.Time("createdAt"); err != nil {
		return nil, err
	}
	return e, nil
}

// ToMap renders the entry as a transport payload, the shape
// HistoryEntryFromMap accepts back.
func (e HistoryEntry) ToMap() map[string]any {
	m := map[string]any{
		"id":        e.ID.String(),
		"modelType": e.ModelType,
		"modelId":   e.ModelID,
		"fromState": nil,
		"toState":   e.ToState,
		"event":     nil,
		"context":   nil,
		"createdAt": e.CreatedAt,
	}
	if e.FromState != nil {
		m["fromState"] = *e.FromState
	}
	if e.Event != nil {
		m["event"] = *e.Event
	}
	if e.Context != nil {
		m["context"] = e.Context.ToMap()
	}
	return m
}

// contextEnvelope captures a context value as its wire envelope. Ready
// envelopes pass through; map forms decode into one.
func contextEnvelope(v any) (*hydrate.Envelope, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case *hydrate.Envelope:
		return c, nil
	case hydrate.Envelope:
		return &c, nil
	case map[string]any, map[any]any, attrs.Map:
		var env hydrate.Envelope
		if err := mapstructure.Decode(c, &env); err != nil {
			return nil, fmt.Errorf("history entry context: %w", err)
		}
		return &env, nil
	default:
		return nil, attrs.NewFieldError("context", "a class and payload envelope", v)
	}
}
