package transition

import "github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"

// The coercers turn a transport value into a canonical handler list. An
// absent value yields an empty list; a canonical list or plain handler slice
// passes through with order and element identity intact; a []any converts
// element-wise, keeping ready instances as-is and constructing the rest.
// A provided list is never rebuilt or replaced, only a nil one is defaulted.

func coerceGuardList(field string, v any, style attrs.Style) (GuardList, error) {
	switch list := v.(type) {
	case nil:
		return GuardList{}, nil
	case GuardList:
		return list, nil
	case []*Guard:
		return GuardList(list), nil
	case []any:
		out := make(GuardList, 0, len(list))
		for _, el := range list {
			g, err := guardElement(el)
			if err != nil {
				return nil, err
			}
			out = append(out, g)
		}
		return out, nil
	default:
		return nil, &attrs.FieldError{Field: field, Expected: "a list of guards", Actual: attrs.TypeName(v), Style: style}
	}
}

func coerceActionList(field string, v any, style attrs.Style) (ActionList, error) {
	switch list := v.(type) {
	case nil:
		return ActionList{}, nil
	case ActionList:
		return list, nil
	case []*Action:
		return ActionList(list), nil
	case []any:
		out := make(ActionList, 0, len(list))
		for _, el := range list {
			a, err := actionElement(el)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
		return out, nil
	default:
		return nil, &attrs.FieldError{Field: field, Expected: "a list of actions", Actual: attrs.TypeName(v), Style: style}
	}
}

func coerceCallbackList(field string, v any, style attrs.Style) (CallbackList, error) {
	switch list := v.(type) {
	case nil:
		return CallbackList{}, nil
	case CallbackList:
		return list, nil
	case []*Callback:
		return CallbackList(list), nil
	case []any:
		out := make(CallbackList, 0, len(list))
		for _, el := range list {
			c, err := callbackElement(el)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	default:
		return nil, &attrs.FieldError{Field: field, Expected: "a list of callbacks", Actual: attrs.TypeName(v), Style: style}
	}
}

func guardElement(v any) (*Guard, error) {
	if g, ok := v.(*Guard); ok {
		return g, nil
	}
	return NewGuard(v)
}

func actionElement(v any) (*Action, error) {
	if a, ok := v.(*Action); ok {
		return a, nil
	}
	return NewAction(v)
}

func callbackElement(v any) (*Callback, error) {
	if c, ok := v.(*Callback); ok {
		return c, nil
	}
	return NewCallback(v)
}
