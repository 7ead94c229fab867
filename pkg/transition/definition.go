package transition

import (
	"fmt"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

var definitionKeys = attrs.NewKeySet(
	"fromState", "toState", "event", "guards", "actions",
	"onTransitionCallbacks", "description", "type", "priority",
	"behavior", "guardEvaluation", "metadata", "isReversible", "timeout",
)

// Definition is one configured transition: an optional source and target
// state (nil matches any state), an optional triggering event, and the
// ordered handler lists the execution engine runs when the transition fires.
type Definition struct {
	FromState             *string
	ToState               *string
	Event                 *string
	Guards                GuardList
	Actions               ActionList
	OnTransitionCallbacks CallbackList
	Description           string
	Type                  string
	Priority              int
	Behavior              string
	GuardEvaluation       GuardEvaluation
	Metadata              map[string]any
	IsReversible          bool
	Timeout               int
}

// DefinitionOption configures a positionally constructed Definition.
type DefinitionOption func(*Definition) error

// WithEvent sets the triggering event name.
func WithEvent(event string) DefinitionOption {
	return func(d *Definition) error {
		d.Event = &event
		return nil
	}
}

// WithGuards sets the guard list in the given order.
func WithGuards(guards ...*Guard) DefinitionOption {
	return func(d *Definition) error {
		d.Guards = guards
		return nil
	}
}

// WithActions sets the action list in the given order.
func WithActions(actions ...*Action) DefinitionOption {
	return func(d *Definition) error {
		d.Actions = actions
		return nil
	}
}

// WithCallbacks sets the transition callback list in the given order.
func WithCallbacks(callbacks ...*Callback) DefinitionOption {
	return func(d *Definition) error {
		d.OnTransitionCallbacks = callbacks
		return nil
	}
}

// WithDescription sets the human-readable description.
func WithDescription(description string) DefinitionOption {
	return func(d *Definition) error {
		d.Description = description
		return nil
	}
}

// WithType sets the free-form transition type tag.
func WithType(transitionType string) DefinitionOption {
	return func(d *Definition) error {
		d.Type = transitionType
		return nil
	}
}

// WithPriority sets the selection priority among competing transitions.
func WithPriority(priority int) DefinitionOption {
	return func(d *Definition) error {
		d.Priority = priority
		return nil
	}
}

// WithBehavior sets the free-form behavior tag.
func WithBehavior(behavior string) DefinitionOption {
	return func(d *Definition) error {
		d.Behavior = behavior
		return nil
	}
}

// WithGuardEvaluation sets the guard combination policy.
func WithGuardEvaluation(policy GuardEvaluation) DefinitionOption {
	return func(d *Definition) error {
		if !policy.Valid() {
			return fmt.Errorf("invalid guard evaluation policy: %q", string(policy))
		}
		d.GuardEvaluation = policy
		return nil
	}
}

// WithMetadata sets the definition metadata map.
func WithMetadata(metadata map[string]any) DefinitionOption {
	return func(d *Definition) error {
		if metadata != nil {
			d.Metadata = metadata
		}
		return nil
	}
}

// WithReversible marks the transition as reversible.
func WithReversible(reversible bool) DefinitionOption {
	return func(d *Definition) error {
		d.IsReversible = reversible
		return nil
	}
}

// WithTimeout sets the execution timeout in seconds.
func WithTimeout(seconds int) DefinitionOption {
	return func(d *Definition) error {
		d.Timeout = seconds
		return nil
	}
}

// NewDefinition builds a Definition from positional state arguments. Each
// state accepts nil, a string, a *string, or a State tag; nil is the wildcard
// and both states may be nil at once. No other combination is rejected at
// this layer.
func NewDefinition(fromState, toState any, opts ...DefinitionOption) (*Definition, error) {
	from, err := stateRef("fromState", fromState, attrs.StyleParameter)
	if err != nil {
		return nil, err
	}
	to, err := stateRef("toState", toState, attrs.StyleParameter)
	if err != nil {
		return nil, err
	}

	d := &Definition{
		FromState:       from,
		ToState:         to,
		GuardEvaluation: GuardEvaluationAll,
		Timeout:         DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	fillDefinitionDefaults(d)
	return d, nil
}

// MustNewDefinition is NewDefinition that panics on error, for static
// transition tables built at startup.
func MustNewDefinition(fromState, toState any, opts ...DefinitionOption) *Definition {
	d, err := NewDefinition(fromState, toState, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create transition definition: %v", err))
	}
	return d
}

// DefinitionFromMap builds a Definition from a property map. Keys are
// normalized first, then every recognized field is validated with
// value-phrased errors and the handler lists are coerced.
//
// The map must contain a target-state key ("toState" or "to_state"); an
// explicit null under it is the wildcard opt-in. The source state may be
// omitted entirely and defaults to the wildcard.
func DefinitionFromMap(m map[string]any) (*Definition, error) {
	nm := attrs.Normalize(m, definitionKeys)
	if !nm.Has("toState") {
		return nil, ErrTargetStateKeyMissing
	}

	d := &Definition{
		GuardEvaluation: GuardEvaluationAll,
		Timeout:         DefaultTimeout,
	}

	from, _, err := stateEntry(nm, "fromState")
	if err != nil {
		return nil, err
	}
	d.FromState = from

	to, _, err := stateEntry(nm, "toState")
	if err != nil {
		return nil, err
	}
	d.ToState = to

	if event, ok, err := nm.NullableString("event"); err != nil {
		return nil, err
	} else if ok {
		d.Event = event
	}

	if description, ok, err := nm.String("description"); err != nil {
		return nil, err
	} else if ok {
		d.Description = description
	}

	if transitionType, ok, err := nm.String("type"); err != nil {
		return nil, err
	} else if ok {
		d.Type = transitionType
	}

	if priority, ok, err := nm.Int("priority"); err != nil {
		return nil, err
	} else if ok {
		d.Priority = priority
	}

	if behavior, ok, err := nm.String("behavior"); err != nil {
		return nil, err
	} else if ok {
		d.Behavior = behavior
	}

	if policy, ok, err := enumField(nm, "guardEvaluation", ParseGuardEvaluation); err != nil {
		return nil, err
	} else if ok {
		d.GuardEvaluation = policy
	}

	if metadata, ok, err := nm.NullableStringMap("metadata"); err != nil {
		return nil, err
	} else if ok && metadata != nil {
		d.Metadata = metadata
	}

	if reversible, ok, err := nm.Bool("isReversible"); err != nil {
		return nil, err
	} else if ok {
		d.IsReversible = reversible
	}

	if timeout, ok, err := nm.Int("timeout"); err != nil {
		return nil, err
	} else if ok {
		d.Timeout = timeout
	}

	if d.Guards, err = coerceGuardList("guards", nm["guards"], attrs.StyleValue); err != nil {
		return nil, err
	}
	if d.Actions, err = coerceActionList("actions", nm["actions"], attrs.StyleValue); err != nil {
		return nil, err
	}
	if d.OnTransitionCallbacks, err = coerceCallbackList("onTransitionCallbacks", nm["onTransitionCallbacks"], attrs.StyleValue); err != nil {
		return nil, err
	}

	fillDefinitionDefaults(d)
	return d, nil
}

// IsWildcard reports whether the definition matches any source state, any
// target state, or both. Empty-string states are ordinary states and never
// count as wildcards.
func (d *Definition) IsWildcard() bool {
	return d.FromState == nil || d.ToState == nil
}

// ToMap serializes the definition to its transport shape. Handler lists
// serialize element-wise; the result round-trips through DefinitionFromMap.
func (d *Definition) ToMap() map[string]any {
	return map[string]any{
		"fromState":             strOrNil(d.FromState),
		"toState":               strOrNil(d.ToState),
		"event":                 strOrNil(d.Event),
		"guards":                handlerMaps(d.Guards),
		"actions":               handlerMaps(d.Actions),
		"onTransitionCallbacks": handlerMaps(d.OnTransitionCallbacks),
		"description":           d.Description,
		"type":                  d.Type,
		"priority":              d.Priority,
		"behavior":              d.Behavior,
		"guardEvaluation":       string(d.GuardEvaluation),
		"metadata":              d.Metadata,
		"isReversible":          d.IsReversible,
		"timeout":               d.Timeout,
	}
}

// fillDefinitionDefaults fills the container fields that were never
// provided. Only nil containers are replaced; a provided container, empty or
// not, is kept untouched.
func fillDefinitionDefaults(d *Definition) {
	if d.Guards == nil {
		d.Guards = GuardList{}
	}
	if d.Actions == nil {
		d.Actions = ActionList{}
	}
	if d.OnTransitionCallbacks == nil {
		d.OnTransitionCallbacks = CallbackList{}
	}
	if d.Metadata == nil {
		d.Metadata = map[string]any{}
	}
}

// stateRef normalizes a polymorphic state argument to its stored form.
func stateRef(field string, v any, style attrs.Style) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &s, nil
	case *string:
		return s, nil
	case State:
		name := s.Name()
		return &name, nil
	default:
		return nil, &attrs.FieldError{Field: field, Expected: "a string or null", Actual: attrs.TypeName(v), Style: style}
	}
}

// stateEntry reads a state-valued map entry with value-phrased errors.
func stateEntry(nm attrs.Map, key string) (*string, bool, error) {
	v, ok := nm[key]
	if !ok {
		return nil, false, nil
	}
	p, err := stateRef(key, v, attrs.StyleValue)
	if err != nil {
		return nil, true, err
	}
	return p, true, nil
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func handlerMaps[T interface{ ToMap() map[string]any }](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item.ToMap()
	}
	return out
}
