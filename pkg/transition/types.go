package transition

import "fmt"

// State is the contract for enum-like state tags. Constructors accept State
// values anywhere a state name is expected and store the rendered name.
type State interface {
	Name() string
}

// StringState is a plain string state for simple scenarios.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// Mode selects how a transition attempt is executed.
type Mode string

const (
	// ModeNormal executes the transition and requires a target state.
	ModeNormal Mode = "normal"
	// ModeDryRun evaluates guards without changing state.
	ModeDryRun Mode = "dry_run"
	// ModeForce skips guard evaluation.
	ModeForce Mode = "force"
	// ModeSilent suppresses callbacks.
	ModeSilent Mode = "silent"
)

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeNormal, ModeDryRun, ModeForce, ModeSilent:
		return true
	}
	return false
}

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("invalid transition mode: %q", s)
	}
	return m, nil
}

// Source identifies who or what initiated a transition attempt.
type Source string

const (
	SourceUser      Source = "user"
	SourceSystem    Source = "system"
	SourceAPI       Source = "api"
	SourceScheduler Source = "scheduler"
	SourceMigration Source = "migration"
)

// Valid reports whether s is one of the defined sources.
func (s Source) Valid() bool {
	switch s {
	case SourceUser, SourceSystem, SourceAPI, SourceScheduler, SourceMigration:
		return true
	}
	return false
}

// ParseSource validates s as a Source.
func ParseSource(s string) (Source, error) {
	src := Source(s)
	if !src.Valid() {
		return "", fmt.Errorf("invalid transition source: %q", s)
	}
	return src, nil
}

// GuardEvaluation is the policy for combining multiple guard results.
type GuardEvaluation string

const (
	// GuardEvaluationAll requires every guard to pass.
	GuardEvaluationAll GuardEvaluation = "all"
	// GuardEvaluationAny requires at least one guard to pass.
	GuardEvaluationAny GuardEvaluation = "any"
	// GuardEvaluationFirst evaluates only the first guard.
	GuardEvaluationFirst GuardEvaluation = "first"
)

// Valid reports whether g is one of the defined policies.
func (g GuardEvaluation) Valid() bool {
	switch g {
	case GuardEvaluationAll, GuardEvaluationAny, GuardEvaluationFirst:
		return true
	}
	return false
}

// ParseGuardEvaluation validates s as a GuardEvaluation.
func ParseGuardEvaluation(s string) (GuardEvaluation, error) {
	g := GuardEvaluation(s)
	if !g.Valid() {
		return "", fmt.Errorf("invalid guard evaluation policy: %q", s)
	}
	return g, nil
}

// ActionBehavior controls how an action failure affects the remaining
// actions of a transition.
type ActionBehavior string

const (
	// StopOnFailure aborts the remaining actions when this one fails.
	StopOnFailure ActionBehavior = "stop_on_failure"
	// ContinueOnFailure runs the remaining actions regardless.
	ContinueOnFailure ActionBehavior = "continue_on_failure"
)

// Valid reports whether b is one of the defined behaviors.
func (b ActionBehavior) Valid() bool {
	return b == StopOnFailure || b == ContinueOnFailure
}

// ParseActionBehavior validates s as an ActionBehavior.
func ParseActionBehavior(s string) (ActionBehavior, error) {
	b := ActionBehavior(s)
	if !b.Valid() {
		return "", fmt.Errorf("invalid action behavior: %q", s)
	}
	return b, nil
}

// CallbackTiming places a callback before or after the state change.
type CallbackTiming string

const (
	CallbackAfter  CallbackTiming = "after"
	CallbackBefore CallbackTiming = "before"
)

// Valid reports whether t is one of the defined timings.
func (t CallbackTiming) Valid() bool {
	return t == CallbackAfter || t == CallbackBefore
}

// ParseCallbackTiming validates s as a CallbackTiming.
func ParseCallbackTiming(s string) (CallbackTiming, error) {
	ct := CallbackTiming(s)
	if !ct.Valid() {
		return "", fmt.Errorf("invalid callback timing: %q", s)
	}
	return ct, nil
}

// DefaultTimeout is the timeout, in seconds, a definition carries when none
// is supplied. It is consumed by the execution engine, not by construction.
const DefaultTimeout = 30
