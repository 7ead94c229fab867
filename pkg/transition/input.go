package transition

import (
	"fmt"
	"time"

	"github.com/ChrisThompsonTLDR/fsmkit/pkg/attrs"
	"github.com/ChrisThompsonTLDR/fsmkit/pkg/hydrate"
)

var inputKeys = attrs.NewKeySet(
	"model", "fromState", "toState", "context", "event",
	"isDryRun", "mode", "source", "metadata", "timestamp",
)

// Input is one transition attempt: the model being transitioned, the
// requested states, the execution mode, and the hydrated context the
// handlers will see. An Input is constructed once per attempt and not
// mutated afterwards.
type Input struct {
	Model     any
	FromState *string
	ToState   *string
	Context   hydrate.ContextObject
	Event     *string
	DryRun    bool
	Mode      Mode
	Source    Source
	Metadata  map[string]any
	At        *time.Time
}

// InputOption configures a positionally constructed Input.
type InputOption func(*Input) error

// WithInputEvent sets the triggering event name.
func WithInputEvent(event string) InputOption {
	return func(in *Input) error {
		in.Event = &event
		return nil
	}
}

// WithContext attaches an already-constructed context object. Envelope-based
// context arrives through InputFromMap, which owns the hydration step.
func WithContext(ctx hydrate.ContextObject) InputOption {
	return func(in *Input) error {
		in.Context = ctx
		return nil
	}
}

// WithDryRun sets the dry-run flag. When no explicit mode is given, a true
// flag selects the dry_run mode.
func WithDryRun(dryRun bool) InputOption {
	return func(in *Input) error {
		in.DryRun = dryRun
		return nil
	}
}

// WithMode sets the execution mode explicitly. An explicit mode wins over
// the dry-run flag.
func WithMode(mode Mode) InputOption {
	return func(in *Input) error {
		if !mode.Valid() {
			return fmt.Errorf("invalid transition mode: %q", string(mode))
		}
		in.Mode = mode
		return nil
	}
}

// WithSource records who initiated the attempt.
func WithSource(source Source) InputOption {
	return func(in *Input) error {
		if !source.Valid() {
			return fmt.Errorf("invalid transition source: %q", string(source))
		}
		in.Source = source
		return nil
	}
}

// WithInputMetadata sets the attempt metadata map.
func WithInputMetadata(metadata map[string]any) InputOption {
	return func(in *Input) error {
		if metadata != nil {
			in.Metadata = metadata
		}
		return nil
	}
}

// WithTimestamp pins the attempt timestamp instead of deferring to
// TimestampOrNow.
func WithTimestamp(at time.Time) InputOption {
	return func(in *Input) error {
		in.At = &at
		return nil
	}
}

// NewInput builds an Input from positional arguments. The model is required;
// states accept nil, string, *string, or State with parameter-phrased
// errors. After the options apply, the mode is reconciled with the dry-run
// flag and the normal-mode target rule is enforced.
func NewInput(model, fromState, toState any, opts ...InputOption) (*Input, error) {
	if model == nil {
		return nil, ErrModelNil
	}

	from, err := stateRef("fromState", fromState, attrs.StyleParameter)
	if err != nil {
		return nil, err
	}
	to, err := stateRef("toState", toState, attrs.StyleParameter)
	if err != nil {
		return nil, err
	}

	in := &Input{
		Model:     model,
		FromState: from,
		ToState:   to,
		Source:    SourceSystem,
		Metadata:  map[string]any{},
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}

	reconcileMode(in)
	if err := checkTarget(in); err != nil {
		return nil, err
	}
	return in, nil
}

// InputFromMap builds an Input from a transport payload. The pipeline order
// is a contract: keys are normalized first so a snake_case to_state is
// visible to the target rule, every field is validated with value-phrased
// errors, the mode/target invariant runs, and only then is the context
// hydrated through r. A construction that fails never hydrates.
func InputFromMap(m map[string]any, r hydrate.Resolver) (*Input, error) {
	nm := attrs.Normalize(m, inputKeys)

	model := nm["model"]
	if model == nil {
		return nil, ErrModelNil
	}

	in := &Input{
		Model:    model,
		Source:   SourceSystem,
		Metadata: map[string]any{},
	}

	from, _, err := stateEntry(nm, "fromState")
	if err != nil {
		return nil, err
	}
	in.FromState = from

	to, _, err := stateEntry(nm, "toState")
	if err != nil {
		return nil, err
	}
	in.ToState = to

	if event, ok, err := nm.NullableString("event"); err != nil {
		return nil, err
	} else if ok {
		in.Event = event
	}

	if dryRun, ok, err := nm.Bool("isDryRun"); err != nil {
		return nil, err
	} else if ok {
		in.DryRun = dryRun
	}

	if mode, ok, err := enumField(nm, "mode", ParseMode); err != nil {
		return nil, err
	} else if ok {
		in.Mode = mode
	}

	if source, ok, err := enumField(nm, "source", ParseSource); err != nil {
		return nil, err
	} else if ok {
		in.Source = source
	}

	if metadata, ok, err := nm.NullableStringMap("metadata"); err != nil {
		return nil, err
	} else if ok && metadata != nil {
		in.Metadata = metadata
	}

	if at, ok, err := nm.NullableTime("timestamp"); err != nil {
		return nil, err
	} else if ok {
		in.At = at
	}

	reconcileMode(in)
	if err := checkTarget(in); err != nil {
		return nil, err
	}

	ctx, err := hydrate.Hydrate(nm["context"], r)
	if err != nil {
		return nil, err
	}
	in.Context = ctx

	return in, nil
}

// ContextPayload serializes the context back to its wire envelope; nil when
// the attempt carries no context.
func (in *Input) ContextPayload() *hydrate.Envelope {
	return hydrate.Payload(in.Context)
}

// ToMap serializes the input to its transport shape. The context nests as a
// {class, payload} envelope, so the result round-trips through InputFromMap.
func (in *Input) ToMap() map[string]any {
	m := map[string]any{
		"model":     in.Model,
		"fromState": strOrNil(in.FromState),
		"toState":   strOrNil(in.ToState),
		"event":     strOrNil(in.Event),
		"isDryRun":  in.DryRun,
		"mode":      string(in.Mode),
		"source":    string(in.Source),
		"metadata":  in.Metadata,
	}
	if in.At != nil {
		m["timestamp"] = *in.At
	} else {
		m["timestamp"] = nil
	}
	if env := in.ContextPayload(); env != nil {
		m["context"] = env.ToMap()
	} else {
		m["context"] = nil
	}
	return m
}

// TimestampOrNow returns the pinned attempt timestamp, or the current time
// when none was supplied.
func (in *Input) TimestampOrNow() time.Time {
	if in.At != nil {
		return *in.At
	}
	return time.Now()
}

// IsDryRun reports whether the attempt must not change state.
func (in *Input) IsDryRun() bool {
	return in.DryRun || in.Mode == ModeDryRun
}

// reconcileMode resolves the dry-run flag against the mode. An unset mode
// follows the flag; an explicit mode wins and the flag follows the mode.
func reconcileMode(in *Input) {
	if in.Mode == "" {
		if in.DryRun {
			in.Mode = ModeDryRun
		} else {
			in.Mode = ModeNormal
		}
		return
	}
	in.DryRun = in.Mode == ModeDryRun
}

// checkTarget enforces the normal-mode target rule after normalization and
// mode reconciliation have both run.
func checkTarget(in *Input) error {
	if in.ToState == nil && in.Mode == ModeNormal {
		return ErrTargetStateRequired
	}
	return nil
}
