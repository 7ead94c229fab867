package transition

import "errors"

var (
	// ErrModelNil is returned when a transition input is built without a model.
	ErrModelNil = errors.New("model cannot be nil")

	// ErrTargetStateRequired is returned when a normal-mode input carries a
	// null target state. The rendered text is a compatibility contract.
	ErrTargetStateRequired = errors.New(`TransitionInput requires a non-null "toState" or "to_state" value for normal mode transitions.`)

	// ErrTargetStateKeyMissing is returned by DefinitionFromMap when the map
	// has no target-state key at all. An explicit null under the key is the
	// wildcard opt-in and is not an error.
	ErrTargetStateKeyMissing = errors.New(`TransitionDefinition construction requires a "toState" or "to_state" key`)

	// ErrInvalidHandlerArray is returned when a guard, action, or callback is
	// built from an array that is neither a callable pair nor a property map.
	ErrInvalidHandlerArray = errors.New("Array parameter must be either a callable array [class, method] or an associative array with DTO property keys.")
)
