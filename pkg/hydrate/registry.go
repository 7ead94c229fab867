package hydrate

import "sync"

// Constructor is the resolution handle for a registered class. Exactly one of
// the two fields is set: Factory builds the object from the payload map
// directly, New produces a fresh zero instance for the hydrator to decode the
// payload into.
type Constructor struct {
	Factory func(payload map[string]any) (ContextObject, error)
	New     func() ContextObject
}

// Resolver resolves a class name to its constructor. Registry is the
// production implementation; tests substitute their own.
type Resolver interface {
	Resolve(name string) (Constructor, bool)
}

// Registry is a concurrency-safe name-to-constructor table. Registration
// normally happens once at startup, but late registration is safe.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]Constructor)}
}

// RegisterFactory registers a factory closure for name. Registering the same
// name again overwrites the previous constructor.
func (r *Registry) RegisterFactory(name string, factory func(payload map[string]any) (ContextObject, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = Constructor{Factory: factory}
}

// RegisterType registers a zero-value constructor for name; payloads are
// decoded into the fresh instance during hydration.
func (r *Registry) RegisterType(name string, newFn func() ContextObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = Constructor{New: newFn}
}

// Resolve returns the constructor registered under name.
func (r *Registry) Resolve(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.classes[name]
	return ctor, ok
}

// Register registers *T under name using its zero value. The pointer type
// must implement ContextObject, which the compiler enforces here instead of
// a runtime conformance check inside the hydrator.
func Register[T any, PT interface {
	*T
	ContextObject
}](r *Registry, name string) {
	r.RegisterType(name, func() ContextObject {
		return PT(new(T))
	})
}
