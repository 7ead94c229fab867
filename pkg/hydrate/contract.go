package hydrate

// ContextObject is the contract a domain type must satisfy to travel through
// an envelope. TypeName is the registry identifier serialized as the envelope
// class; ToMap is the payload serialization. Implementations are expected to
// round-trip: hydrating Payload(obj) yields an equivalent object.
type ContextObject interface {
	TypeName() string
	ToMap() map[string]any
}

// Envelope is the wire form of a serialized context object.
type Envelope struct {
	Class   string         `json:"class" yaml:"class" mapstructure:"class"`
	Payload map[string]any `json:"payload" yaml:"payload" mapstructure:"payload"`
}

// ToMap renders the envelope as a plain map, the shape Hydrate accepts back.
func (e *Envelope) ToMap() map[string]any {
	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return map[string]any{"class": e.Class, "payload": payload}
}

// Payload serializes obj into its wire envelope. A nil object yields a nil
// envelope, mirroring Hydrate's treatment of absent context.
func Payload(obj ContextObject) *Envelope {
	if obj == nil {
		return nil
	}
	return &Envelope{Class: obj.TypeName(), Payload: obj.ToMap()}
}
