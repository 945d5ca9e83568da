package machine

import (
	"reflect"

	"github.com/enetx/g"
)

// Param binds a trigger identity to the argument type A, returning a typed
// token for use with PermitParam, PermitParamWhen and FireWith. The token
// mutates nothing; it only carries the trigger and its argument type.
//
//	deposit := machine.Param[float64]("deposit")
func Param[A any, T comparable](trigger T) ParamTrigger[T, A] {
	return ParamTrigger[T, A]{
		trigger: trigger,
		argType: reflect.TypeOf((*A)(nil)).Elem(),
	}
}

// Trigger returns the underlying trigger identity.
func (pt ParamTrigger[T, A]) Trigger() T {
	return pt.trigger
}

// ArgType returns the argument type the token was created with.
func (pt ParamTrigger[T, A]) ArgType() reflect.Type {
	return pt.argType
}

// PermitParam allows pt's trigger from the builder's state, transitioning to
// dest and executing action with the argument supplied to FireWith. The
// trigger becomes parameterized: firing it through the zero-argument Fire
// fails with ErrInvalidTriggerParameter.
//
// A top-level function because Go methods cannot introduce the argument type
// parameter A.
func PermitParam[S, T comparable, A any](
	b *StateBuilder[S, T],
	pt ParamTrigger[T, A],
	dest S,
	action func(A) error,
) *StateBuilder[S, T] {
	return PermitParamWhen(b, pt, dest, nil, action)
}

// PermitParamWhen is PermitParam with a guard. A nil guard always passes.
func PermitParamWhen[S, T comparable, A any](
	b *StateBuilder[S, T],
	pt ParamTrigger[T, A],
	dest S,
	guard Guard,
	action func(A) error,
) *StateBuilder[S, T] {
	tr := &triggerRepresentation[S, T]{
		trigger: pt.trigger,
		guard:   guard,
		dest:    g.Some(dest),
		argType: pt.argType,
	}

	if action != nil {
		tr.runArg = func(arg any) error { return action(arg.(A)) }
	}

	return b.set(tr)
}

// FireWith dispatches pt's trigger on m, threading arg through to the
// configured action. The argument type is checked against the configuration
// before any side effect runs.
func FireWith[S, T comparable, A any](m *Machine[S, T], pt ParamTrigger[T, A], arg A) error {
	return m.fire(pt.trigger, pt.argType, arg)
}

// FireWithSync is FireWith for a SyncMachine.
func FireWithSync[S, T comparable, A any](sm *SyncMachine[S, T], pt ParamTrigger[T, A], arg A) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.fire(pt.trigger, pt.argType, arg)
}
