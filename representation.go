package machine

import (
	"fmt"
	"reflect"

	. "github.com/enetx/g"
)

func newStateRepresentation[S, T comparable](state S) *stateRepresentation[S, T] {
	return &stateRepresentation[S, T]{state: state}
}

// find returns the trigger representation whose identity equals trigger.
// Equality of the trigger value, not identity of the record.
func (sr *stateRepresentation[S, T]) find(trigger T) Option[*triggerRepresentation[S, T]] {
	for tr := range sr.triggers.Iter() {
		if tr.trigger == trigger {
			return Some(tr)
		}
	}

	return None[*triggerRepresentation[S, T]]()
}

// setTrigger registers tr, replacing any earlier record for the same trigger
// identity in place. Last configured wins; the original configuration-order
// position is kept.
func (sr *stateRepresentation[S, T]) setTrigger(tr *triggerRepresentation[S, T]) {
	for i, existing := range sr.triggers {
		if existing.trigger == tr.trigger {
			sr.triggers[i] = tr
			return
		}
	}

	sr.triggers.Push(tr)
}

// transitionsTo reports whether any configured trigger targets state.
func (sr *stateRepresentation[S, T]) transitionsTo(state S) bool {
	for tr := range sr.triggers.Iter() {
		if tr.dest.IsSome() && tr.dest.Some() == state {
			return true
		}
	}

	return false
}

// runEntry executes the entry actions in registration order, stopping at the
// first error.
func (sr *stateRepresentation[S, T]) runEntry() error {
	for action := range sr.onEntry.Iter() {
		if err := runAction("OnEntry", sr.state, action); err != nil {
			return err
		}
	}

	return nil
}

// runExit executes the exit actions in registration order, stopping at the
// first error.
func (sr *stateRepresentation[S, T]) runExit() error {
	for action := range sr.onExit.Iter() {
		if err := runAction("OnExit", sr.state, action); err != nil {
			return err
		}
	}

	return nil
}

// parameterized reports whether the trigger was configured through a
// ParamTrigger and therefore requires the FireWith call path.
func (tr *triggerRepresentation[S, T]) parameterized() bool {
	return tr.argType != nil
}

// checkShape validates the call shape of a fire against the configured
// action. argType is nil for the zero-argument Fire path.
func (tr *triggerRepresentation[S, T]) checkShape(argType reflect.Type) error {
	switch {
	case argType == nil && tr.parameterized():
		return &ErrInvalidTriggerParameter{Trigger: tr.trigger, Expected: tr.argType}
	case argType != nil && !tr.parameterized():
		return &ErrInvalidTriggerParameter{Trigger: tr.trigger, Got: argType}
	case argType != nil && argType != tr.argType && !argType.AssignableTo(tr.argType):
		return &ErrInvalidTriggerParameter{Trigger: tr.trigger, Expected: tr.argType, Got: argType}
	}

	return nil
}

// invoke executes the trigger action, if any, threading the argument on the
// parameterized path. The call shape must have been checked already.
func (tr *triggerRepresentation[S, T]) invoke(state any, arg any) (err error) {
	if tr.run == nil && tr.runArg == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ErrCallback{HookType: "Action", State: state, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if tr.runArg != nil {
		return tr.runArg(arg)
	}

	return tr.run()
}

// runAction executes a single entry/exit action, recovering panics into an
// ErrCallback. Errors returned by the action itself pass through unmodified.
func runAction[S comparable](hookType string, state S, action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrCallback{HookType: hookType, State: state, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	return action()
}
