package hydrate

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Hydrate reconstructs a context object from v.
//
// Three input families are accepted. Nil means no context and hydrates to
// (nil, nil). A value already implementing ContextObject is returned
// unchanged; hydration never rebuilds a live instance. An envelope, given as
// Envelope, *Envelope, map[string]any, or a string-keyed map[any]any, runs
// the resolution pipeline: read the class name, resolve it through r,
// validate the payload shape, then construct. Every other value fails with
// the ContextObject conformance error.
//
// Construction either fully succeeds or returns an error; no partially
// decoded object is ever handed back.
func Hydrate(v any, r Resolver) (ContextObject, error) {
	if v == nil {
		return nil, nil
	}
	if obj, ok := v.(ContextObject); ok {
		return obj, nil
	}

	class, payloadRaw, err := envelopeParts(v)
	if err != nil {
		return nil, err
	}

	ctor, ok := resolve(r, class)
	if !ok {
		return nil, &Error{Cause: CauseClassUnknown, Class: class}
	}

	payload, err := payloadMap(class, payloadRaw)
	if err != nil {
		return nil, err
	}

	return construct(class, ctor, payload)
}

func resolve(r Resolver, class string) (Constructor, bool) {
	if r == nil {
		return Constructor{}, false
	}
	ctor, ok := r.Resolve(class)
	if !ok || (ctor.Factory == nil && ctor.New == nil) {
		return Constructor{}, false
	}
	return ctor, true
}

// envelopeParts extracts the class name and raw payload from any accepted
// envelope form. The class entry must be present and a string before
// anything else is looked at.
func envelopeParts(v any) (string, any, error) {
	switch env := v.(type) {
	case Envelope:
		return env.Class, env.Payload, nil
	case *Envelope:
		if env == nil {
			return "", nil, &Error{Cause: CauseNotContextObject, TypeName: typeName(v)}
		}
		return env.Class, env.Payload, nil
	case map[string]any:
		rawClass := env["class"]
		class, ok := rawClass.(string)
		if !ok {
			return "", nil, &Error{Cause: CauseClassInvalid, TypeName: typeName(rawClass)}
		}
		return class, env["payload"], nil
	case map[any]any:
		rawClass := env["class"]
		class, ok := rawClass.(string)
		if !ok {
			return "", nil, &Error{Cause: CauseClassInvalid, TypeName: typeName(rawClass)}
		}
		return class, env["payload"], nil
	default:
		return "", nil, &Error{Cause: CauseNotContextObject, TypeName: typeName(v)}
	}
}

// payloadMap normalizes the raw payload entry. Absent and explicit-null
// payloads hydrate from an empty map; anything present must be a
// string-keyed map.
func payloadMap(class string, raw any) (map[string]any, error) {
	switch p := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return p, nil
	case map[any]any:
		out := make(map[string]any, len(p))
		for k, val := range p {
			s, ok := k.(string)
			if !ok {
				return nil, &Error{Cause: CausePayloadInvalid, Class: class, TypeName: typeName(raw)}
			}
			out[s] = val
		}
		return out, nil
	default:
		return nil, &Error{Cause: CausePayloadInvalid, Class: class, TypeName: typeName(raw)}
	}
}

func construct(class string, ctor Constructor, payload map[string]any) (ContextObject, error) {
	if ctor.Factory != nil {
		obj, err := ctor.Factory(payload)
		if err != nil {
			return nil, &Error{Cause: CauseFactoryFailed, Class: class, Err: err}
		}
		return obj, nil
	}

	inst := ctor.New()
	if err := mapstructure.Decode(payload, inst); err != nil {
		return nil, &Error{Cause: CauseDecodeFailed, Class: class, Err: err}
	}
	return inst, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
