package machine

import "fmt"

// ErrTransitionInProgress is returned when Fire is called while another Fire
// on the same machine is still executing, either reentrantly from inside an
// entry/exit/trigger action or concurrently from another goroutine. The
// offending call performs no side effects and the machine remains usable.
type ErrTransitionInProgress struct {
	State   any
	Trigger any
}

func (e *ErrTransitionInProgress) Error() string {
	return fmt.Sprintf("machine: transition already in progress in state '%v'; cannot fire '%v'",
		e.State, e.Trigger)
}

// ErrInvalidTriggerParameter is returned when the call shape of a fire does
// not match the configured action: a parameterized trigger fired through the
// zero-argument Fire, a plain trigger fired through FireWith, or an argument
// whose type does not match the configured one. No side effects are performed
// and the machine stays in its prior state.
type ErrInvalidTriggerParameter struct {
	Trigger any
	// Expected is the configured argument type; nil when the trigger takes no argument.
	Expected any
	// Got is the supplied argument type; nil when fired without an argument.
	Got any
}

func (e *ErrInvalidTriggerParameter) Error() string {
	switch {
	case e.Expected == nil:
		return fmt.Sprintf("machine: trigger '%v' does not take an argument, but one of type %v was supplied",
			e.Trigger, e.Got)
	case e.Got == nil:
		return fmt.Sprintf("machine: trigger '%v' requires an argument of type %v; fire it through FireWith",
			e.Trigger, e.Expected)
	default:
		return fmt.Sprintf("machine: trigger '%v' expects an argument of type %v, got %v",
			e.Trigger, e.Expected, e.Got)
	}
}

// ErrUnknownState is returned when a state that has no representation in the
// configuration is supplied, for example to SetState or during unmarshaling.
// This prevents the machine from entering an undeclared state.
type ErrUnknownState struct {
	State any
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("machine: unknown state '%v'", e.State)
}

// ErrUnreachableInitialState is returned by New when the requested initial
// state has no representation in the configuration, which includes the case
// of an entirely empty configuration. The machine is not created.
type ErrUnreachableInitialState struct {
	State any
}

func (e *ErrUnreachableInitialState) Error() string {
	return fmt.Sprintf("machine: initial state '%v' is not configured", e.State)
}

// ErrDanglingTransition is returned by New when a configured transition
// targets a state that has no representation in the configuration. Dangling
// transitions are a configuration error and are surfaced at construction
// time, never at fire time.
type ErrDanglingTransition struct {
	From    any
	Trigger any
	To      any
}

func (e *ErrDanglingTransition) Error() string {
	return fmt.Sprintf("machine: transition '%v' from state '%v' targets unconfigured state '%v'",
		e.Trigger, e.From, e.To)
}

// ErrCallback is returned when a caller-supplied action panics. The panic is
// recovered and converted into an error so the machine's bookkeeping stays
// consistent. Errors returned (rather than panicked) by actions are passed
// through to the Fire caller unmodified.
type ErrCallback struct {
	// HookType is where the panic occurred: "OnEntry", "OnExit" or "Action".
	HookType string
	// State is the state associated with the action.
	State any
	// Err is the error created after recovering from the panic.
	Err error
}

func (e *ErrCallback) Error() string {
	return fmt.Sprintf("machine: %s action for state '%v' failed: %v", e.HookType, e.State, e.Err)
}

// Unwrap provides compatibility with the standard library's errors package,
// allowing the use of errors.Is and errors.As to inspect the wrapped error.
func (e *ErrCallback) Unwrap() error { return e.Err }
