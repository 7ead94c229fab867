// Package hydrate reconstructs typed context objects from the serialized
// {class, payload} envelopes that travel alongside transition records.
//
// A context object is any domain type implementing ContextObject: it names
// itself for the registry and serializes itself to a map. Payload produces
// the wire envelope for such an object; Hydrate performs the inverse,
// resolving the class name through a Resolver and rebuilding the instance
// from the payload map.
//
// # Architecture
//
// Class names never resolve through reflection over the running binary.
// Instead, applications register every hydratable type up front in a
// Registry, either with a factory closure (full control over construction)
// or with a zero-value constructor whose payload is decoded by mapstructure.
// The Resolver interface is the only seam between the hydrator and type
// resolution, which keeps hydration mockable in tests and makes the set of
// resolvable classes an explicit, auditable allowlist.
//
// Hydration is idempotent at the API boundary: a value that already
// implements ContextObject passes through untouched, so a caller can hand the
// same context to several construction pipelines without it being rebuilt.
//
// # Usage
//
//	type OrderContext struct {
//		OrderID string  `json:"orderId" mapstructure:"orderId"`
//		Total   float64 `json:"total" mapstructure:"total"`
//	}
//
//	func (c *OrderContext) TypeName() string { return "OrderContext" }
//	func (c *OrderContext) ToMap() map[string]any {
//		return map[string]any{"orderId": c.OrderID, "total": c.Total}
//	}
//
//	reg := hydrate.NewRegistry()
//	hydrate.Register[OrderContext](reg, "OrderContext")
//
//	obj, err := hydrate.Hydrate(map[string]any{
//		"class":   "OrderContext",
//		"payload": map[string]any{"orderId": "ord_123", "total": 99.5},
//	}, reg)
//
// # Error Handling
//
// Every failure is an *Error carrying a machine-readable Cause alongside the
// rendered message; construction and decode failures keep their root cause
// reachable through errors.Unwrap. IsHydrationError distinguishes hydration
// failures from other construction errors.
package hydrate
