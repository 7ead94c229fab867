// Package transition models finite-state-machine transitions as
// immutable-after-construction value records: the transition definition, the
// per-attempt transition input, and the guard, action, and callback handler
// records a definition carries.
//
// The package builds records, it does not execute them. Guards and actions
// hold deferred references (a handler name, a [target, method] pair, or a
// func value) that an execution engine resolves later; the timeout on a
// definition is likewise a domain value for that engine, not a
// construction-time control.
//
// # Architecture
//
// Every record offers two construction paths. The positional path
// (NewDefinition, NewInput, NewGuard) takes explicit arguments plus
// functional options and validates each argument with parameter-phrased
// errors. The map path (DefinitionFromMap, InputFromMap, GuardFromMap)
// accepts a transport payload and runs a fixed pipeline: normalize snake_case
// keys to camelCase, validate field types with value-phrased errors, enforce
// the mode/target invariant, and only then hydrate the context envelope.
// The ordering is load-bearing: a snake_case to_state key must be visible to
// the invariant check, and a failed construction must not have hydration side
// effects.
//
// State-valued fields are stored as *string. Nil marks a wildcard that
// matches any state; the empty string is an ordinary state name and never a
// wildcard.
//
// Handler list fields coerce from transport shapes ([]any of maps, names,
// callable pairs, or ready instances) into the canonical list types,
// preserving element order and identity. A list is only defaulted to empty
// when it was never provided.
//
// # Usage
//
//	def, err := transition.NewDefinition("pending", "active",
//		transition.WithEvent("activate"),
//		transition.WithGuards(guard),
//		transition.WithPriority(10),
//	)
//
//	in, err := transition.InputFromMap(map[string]any{
//		"model":    order,
//		"to_state": "active",
//		"mode":     "dry_run",
//		"context":  map[string]any{"class": "OrderContext", "payload": payload},
//	}, registry)
//
// # Error Handling
//
// Field-level failures are attrs.FieldError values rendering the exact
// documented text. Invariant violations are package sentinels
// (ErrTargetStateRequired, ErrTargetStateKeyMissing, ErrInvalidHandlerArray,
// ErrModelNil) compared with errors.Is. Construction either returns a fully
// populated record or an error, never both.
package transition
