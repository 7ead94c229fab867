package transition

import (
	"reflect"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
)

// Recognized property keys per handler type, in declaration order.
var (
	guardKeys    = attrs.NewKeySet("callable", "parameters", "name", "priority")
	actionKeys   = attrs.NewKeySet("callable", "parameters", "name", "priority", "behavior")
	callbackKeys = attrs.NewKeySet("callable", "parameters", "name", "priority", "timing")
)

// Guard is a deferred guard reference. The execution engine resolves Callable
// (a handler name, a [target, method] pair, or a func value) and evaluates it
// with Parameters; construction only records the reference.
type Guard struct {
	Callable   any
	Parameters map[string]any
	Name       string
	Priority   int
}

// Action is a deferred side-effect reference with a failure policy.
type Action struct {
	Callable   any
	Parameters map[string]any
	Name       string
	Priority   int
	Behavior   ActionBehavior
}

// Callback is a deferred notification reference placed before or after the
// state change.
type Callback struct {
	Callable   any
	Parameters map[string]any
	Name       string
	Priority   int
	Timing     CallbackTiming
}

// GuardList is an ordered guard sequence; insertion order is significant.
type GuardList []*Guard

// ActionList is an ordered action sequence; insertion order is significant.
type ActionList []*Action

// CallbackList is an ordered callback sequence; insertion order is significant.
type CallbackList []*Callback

// GuardOption configures a positionally constructed Guard.
type GuardOption func(*Guard)

// WithGuardParameters sets the parameter map handed to the guard at
// evaluation time.
func WithGuardParameters(params map[string]any) GuardOption {
	return func(g *Guard) {
		if params != nil {
			g.Parameters = params
		}
	}
}

// WithGuardName sets the guard's display name.
func WithGuardName(name string) GuardOption {
	return func(g *Guard) {
		g.Name = name
	}
}

// WithGuardPriority sets the guard's evaluation priority.
func WithGuardPriority(priority int) GuardOption {
	return func(g *Guard) {
		g.Priority = priority
	}
}

// ActionOption configures a positionally constructed Action.
type ActionOption func(*Action)

// WithActionParameters sets the parameter map handed to the action.
func WithActionParameters(params map[string]any) ActionOption {
	return func(a *Action) {
		if params != nil {
			a.Parameters = params
		}
	}
}

// WithActionName sets the action's display name.
func WithActionName(name string) ActionOption {
	return func(a *Action) {
		a.Name = name
	}
}

// WithActionPriority sets the action's execution priority.
func WithActionPriority(priority int) ActionOption {
	return func(a *Action) {
		a.Priority = priority
	}
}

// WithActionBehavior sets the action's failure policy.
func WithActionBehavior(behavior ActionBehavior) ActionOption {
	return func(a *Action) {
		a.Behavior = behavior
	}
}

// CallbackOption configures a positionally constructed Callback.
type CallbackOption func(*Callback)

// WithCallbackParameters sets the parameter map handed to the callback.
func WithCallbackParameters(params map[string]any) CallbackOption {
	return func(c *Callback) {
		if params != nil {
			c.Parameters = params
		}
	}
}

// WithCallbackName sets the callback's display name.
func WithCallbackName(name string) CallbackOption {
	return func(c *Callback) {
		c.Name = name
	}
}

// WithCallbackPriority sets the callback's execution priority.
func WithCallbackPriority(priority int) CallbackOption {
	return func(c *Callback) {
		c.Priority = priority
	}
}

// WithCallbackTiming places the callback before or after the state change.
func WithCallbackTiming(timing CallbackTiming) CallbackOption {
	return func(c *Callback) {
		c.Timing = timing
	}
}

// NewGuard builds a Guard from a polymorphic argument. The argument is
// classified before any field is read: a callable pair or a plain reference
// becomes Callable, a property map switches to map-based construction and
// ignores the options, and any other array shape is rejected.
func NewGuard(callable any, opts ...GuardOption) (*Guard, error) {
	shape := attrs.Classify(callable, guardKeys)
	switch shape.Kind {
	case attrs.KindPropertyMap:
		return GuardFromMap(shape.Map)
	case attrs.KindCallable:
		g := &Guard{Callable: pairRef(shape.Callable), Parameters: map[string]any{}}
		for _, opt := range opts {
			opt(g)
		}
		return g, nil
	case attrs.KindInvalid:
		return nil, ErrInvalidHandlerArray
	default:
		if err := checkCallableRef("callable", shape.Value, attrs.StyleParameter); err != nil {
			return nil, err
		}
		g := &Guard{Callable: shape.Value, Parameters: map[string]any{}}
		for _, opt := range opts {
			opt(g)
		}
		return g, nil
	}
}

// NewAction builds an Action from a polymorphic argument, classified the same
// way as NewGuard.
func NewAction(callable any, opts ...ActionOption) (*Action, error) {
	shape := attrs.Classify(callable, actionKeys)
	switch shape.Kind {
	case attrs.KindPropertyMap:
		return ActionFromMap(shape.Map)
	case attrs.KindCallable:
		a := &Action{Callable: pairRef(shape.Callable), Parameters: map[string]any{}, Behavior: StopOnFailure}
		for _, opt := range opts {
			opt(a)
		}
		return a, nil
	case attrs.KindInvalid:
		return nil, ErrInvalidHandlerArray
	default:
		if err := checkCallableRef("callable", shape.Value, attrs.StyleParameter); err != nil {
			return nil, err
		}
		a := &Action{Callable: shape.Value, Parameters: map[string]any{}, Behavior: StopOnFailure}
		for _, opt := range opts {
			opt(a)
		}
		return a, nil
	}
}

// NewCallback builds a Callback from a polymorphic argument, classified the
// same way as NewGuard.
func NewCallback(callable any, opts ...CallbackOption) (*Callback, error) {
	shape := attrs.Classify(callable, callbackKeys)
	switch shape.Kind {
	case attrs.KindPropertyMap:
		return CallbackFromMap(shape.Map)
	case attrs.KindCallable:
		c := &Callback{Callable: pairRef(shape.Callable), Parameters: map[string]any{}, Timing: CallbackAfter}
		for _, opt := range opts {
			opt(c)
		}
		return c, nil
	case attrs.KindInvalid:
		return nil, ErrInvalidHandlerArray
	default:
		if err := checkCallableRef("callable", shape.Value, attrs.StyleParameter); err != nil {
			return nil, err
		}
		c := &Callback{Callable: shape.Value, Parameters: map[string]any{}, Timing: CallbackAfter}
		for _, opt := range opts {
			opt(c)
		}
		return c, nil
	}
}

// GuardFromMap builds a Guard from a property map: normalize keys, then
// validate and assign each recognized field.
func GuardFromMap(m map[string]any) (*Guard, error) {
	nm := attrs.Normalize(m, guardKeys)
	core, err := handlerFromMap(nm)
	if err != nil {
		return nil, err
	}
	return &Guard{
		Callable:   core.callable,
		Parameters: core.parameters,
		Name:       core.name,
		Priority:   core.priority,
	}, nil
}

// ActionFromMap builds an Action from a property map.
func ActionFromMap(m map[string]any) (*Action, error) {
	nm := attrs.Normalize(m, actionKeys)
	core, err := handlerFromMap(nm)
	if err != nil {
		return nil, err
	}
	a := &Action{
		Callable:   core.callable,
		Parameters: core.parameters,
		Name:       core.name,
		Priority:   core.priority,
		Behavior:   StopOnFailure,
	}
	if behavior, ok, err := enumField(nm, "behavior", ParseActionBehavior); err != nil {
		return nil, err
	} else if ok {
		a.Behavior = behavior
	}
	return a, nil
}

// CallbackFromMap builds a Callback from a property map.
func CallbackFromMap(m map[string]any) (*Callback, error) {
	nm := attrs.Normalize(m, callbackKeys)
	core, err := handlerFromMap(nm)
	if err != nil {
		return nil, err
	}
	c := &Callback{
		Callable:   core.callable,
		Parameters: core.parameters,
		Name:       core.name,
		Priority:   core.priority,
		Timing:     CallbackAfter,
	}
	if timing, ok, err := enumField(nm, "timing", ParseCallbackTiming); err != nil {
		return nil, err
	} else if ok {
		c.Timing = timing
	}
	return c, nil
}

// ToMap serializes the guard to its transport shape.
func (g *Guard) ToMap() map[string]any {
	return map[string]any{
		"callable":   g.Callable,
		"parameters": g.Parameters,
		"name":       g.Name,
		"priority":   g.Priority,
	}
}

// ToMap serializes the action to its transport shape.
func (a *Action) ToMap() map[string]any {
	return map[string]any{
		"callable":   a.Callable,
		"parameters": a.Parameters,
		"name":       a.Name,
		"priority":   a.Priority,
		"behavior":   string(a.Behavior),
	}
}

// ToMap serializes the callback to its transport shape.
func (c *Callback) ToMap() map[string]any {
	return map[string]any{
		"callable":   c.Callable,
		"parameters": c.Parameters,
		"name":       c.Name,
		"priority":   c.Priority,
		"timing":     string(c.Timing),
	}
}

type handlerCore struct {
	callable   any
	parameters map[string]any
	name       string
	priority   int
}

// handlerFromMap reads the fields shared by all three handler types from an
// already-normalized map.
func handlerFromMap(nm attrs.Map) (handlerCore, error) {
	core := handlerCore{parameters: map[string]any{}}

	callable, err := callableField(nm)
	if err != nil {
		return handlerCore{}, err
	}
	core.callable = callable

	if params, ok, err := nm.NullableStringMap("parameters"); err != nil {
		return handlerCore{}, err
	} else if ok && params != nil {
		core.parameters = params
	}

	if name, ok, err := nm.NullableString("name"); err != nil {
		return handlerCore{}, err
	} else if ok && name != nil {
		core.name = *name
	}

	if priority, ok, err := nm.Int("priority"); err != nil {
		return handlerCore{}, err
	} else if ok {
		core.priority = priority
	}

	return core, nil
}

// callableField reads and validates the callable entry of a handler map.
// Arrays must classify as callable pairs; names, funcs, and explicit null
// pass through.
func callableField(nm attrs.Map) (any, error) {
	v, ok := nm["callable"]
	if !ok || v == nil {
		return nil, nil
	}
	shape := attrs.Classify(v, attrs.KeySet{})
	switch shape.Kind {
	case attrs.KindCallable:
		return pairRef(shape.Callable), nil
	case attrs.KindInvalid, attrs.KindPropertyMap:
		return nil, ErrInvalidHandlerArray
	default:
		if err := checkCallableRef("callable", shape.Value, attrs.StyleValue); err != nil {
			return nil, err
		}
		return shape.Value, nil
	}
}

// checkCallableRef validates a non-array callable reference: a handler name,
// a func value, or explicit null.
func checkCallableRef(field string, v any, style attrs.Style) error {
	switch v.(type) {
	case nil, string:
		return nil
	}
	if reflect.ValueOf(v).Kind() == reflect.Func {
		return nil
	}
	return &attrs.FieldError{Field: field, Expected: "a callable reference", Actual: attrs.TypeName(v), Style: style}
}

func pairRef(pair [2]any) []any {
	return []any{pair[0], pair[1]}
}

// enumField reads a string-backed enum entry that may arrive as a raw string
// or as the typed value itself. Explicit null selects the default.
func enumField[E ~string](nm attrs.Map, key string, parse func(string) (E, error)) (E, bool, error) {
	v, ok := nm[key]
	if !ok || v == nil {
		return "", false, nil
	}
	switch s := v.(type) {
	case E:
		if _, err := parse(string(s)); err != nil {
			return "", true, err
		}
		return s, true, nil
	case string:
		e, err := parse(s)
		if err != nil {
			return "", true, err
		}
		return e, true, nil
	default:
		return "", true, attrs.NewFieldError(key, "a string", v)
	}
}
