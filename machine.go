// Package machine provides a generic, embeddable finite state machine engine:
// callers declare states, the triggers that move between them, guard
// conditions, and entry/exit/transition actions; the engine dispatches trigger
// events, enforces legal transitions, and drives callbacks in a fixed order.
// It is built with types and utilities from the github.com/enetx/g library.
package machine

import (
	"reflect"

	. "github.com/enetx/g"
)

// New creates a Machine over cfg, positioned at initial and enabled.
// It validates the configuration: every transition destination must be a
// configured state (ErrDanglingTransition), and the initial state itself must
// have a representation (ErrUnreachableInitialState, which also covers an
// empty configuration). cfg must not be modified once any machine built on
// it starts firing; it may be shared across machines.
func New[S, T comparable](initial S, cfg *Config[S, T]) (*Machine[S, T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rep := cfg.states.Get(initial)
	if rep.IsNone() {
		return nil, &ErrUnreachableInitialState{State: initial}
	}

	m := &Machine[S, T]{
		cfg:     cfg,
		initial: rep.Some(),
		current: rep.Some(),
		history: Slice[S]{initial},
		data:    NewMapSafe[String, any](),
	}
	m.enabled.Store(true)

	return m, nil
}

// Current returns the machine's current state.
func (m *Machine[S, T]) Current() S {
	return m.current.state
}

// Fire dispatches trigger against the current state.
//
// The call fails with ErrTransitionInProgress when another Fire on this
// machine is still executing, and is a silent no-op while the machine is
// paused. A trigger that is unconfigured for the current state, or whose
// guard rejects it, raises the unhandled-trigger event and returns nil; an
// ignored trigger returns nil with no event. Otherwise the exit actions, the
// trigger action and the destination's entry actions run in that fixed order,
// the state swaps, and the transition event fires. Firing a parameterized
// trigger through this entry point fails with ErrInvalidTriggerParameter;
// use FireWith.
func (m *Machine[S, T]) Fire(trigger T) error {
	return m.fire(trigger, nil, nil)
}

// fire is the dispatch core shared by Fire and FireWith. argType is nil on
// the zero-argument path.
func (m *Machine[S, T]) fire(trigger T, argType reflect.Type, arg any) error {
	if !m.firing.CompareAndSwap(false, true) {
		return &ErrTransitionInProgress{State: m.current.state, Trigger: trigger}
	}
	defer m.firing.Store(false)

	if !m.enabled.Load() {
		return nil
	}

	found := m.current.find(trigger)
	if found.IsNone() {
		m.notifyUnhandled(trigger)
		return nil
	}

	tr := found.Some()

	if tr.guard != nil && !tr.guard() {
		m.notifyUnhandled(trigger)
		return nil
	}

	if tr.dest.IsNone() {
		return nil
	}

	if err := tr.checkShape(argType); err != nil {
		return err
	}

	// Destination presence was validated at construction.
	next := m.cfg.states.Get(tr.dest.Some()).Some()
	prev := m.current

	if err := prev.runExit(); err != nil {
		return err
	}

	if err := tr.invoke(prev.state, arg); err != nil {
		return err
	}

	if err := next.runEntry(); err != nil {
		return err
	}

	// The state reference changes only here, after all user actions ran;
	// observers of Current never see an intermediate value.
	m.current = next
	m.history.Push(next.state)

	for handler := range m.onTransition.Iter() {
		handler(prev.state, next.state)
	}

	return nil
}

func (m *Machine[S, T]) notifyUnhandled(trigger T) {
	for handler := range m.onUnhandled.Iter() {
		handler(trigger, m.current.state)
	}
}

// CanFire reports whether a trigger representation exists for trigger in the
// current state. Guards are not evaluated.
func (m *Machine[S, T]) CanFire(trigger T) bool {
	return m.current.find(trigger).IsSome()
}

// CanTransitionTo reports whether some configured trigger of the current
// state targets state. Guards are not evaluated.
func (m *Machine[S, T]) CanTransitionTo(state S) bool {
	return m.current.transitionsTo(state)
}

// PermittedTriggers returns a restartable sequence of the trigger identities
// configured on the current state, in configuration order. Ignored triggers
// are included; guards are not evaluated.
func (m *Machine[S, T]) PermittedTriggers() SeqSlice[T] {
	var triggers Slice[T]
	for tr := range m.current.triggers.Iter() {
		triggers.Push(tr.trigger)
	}

	return triggers.Iter()
}

// Pause disables dispatch: every Fire becomes a silent no-op until Resume.
// The current state and any in-flight transition are unaffected.
func (m *Machine[S, T]) Pause() {
	m.enabled.Store(false)
}

// Resume re-enables dispatch after Pause or Stop.
func (m *Machine[S, T]) Resume() {
	m.enabled.Store(true)
}

// IsEnabled reports whether the machine currently dispatches triggers.
func (m *Machine[S, T]) IsEnabled() bool {
	return m.enabled.Load()
}

// Stop disables dispatch and executes the current state's exit actions once,
// modeling a final teardown. The current state is kept and no transition
// event is emitted. Stopping an already-disabled machine is a no-op.
func (m *Machine[S, T]) Stop() error {
	if !m.enabled.CompareAndSwap(true, false) {
		return nil
	}

	return m.current.runExit()
}

// History returns a copy of the list of visited states, starting with the
// initial state.
func (m *Machine[S, T]) History() Slice[S] {
	return m.history.Clone()
}

// Data returns the machine's persistent data bag. Its contents survive
// transitions and are included in the JSON snapshot.
func (m *Machine[S, T]) Data() *MapSafe[String, any] {
	return m.data
}

// Reset returns the machine to its initial state, clears the history and the
// data bag, and re-enables dispatch. No actions run.
func (m *Machine[S, T]) Reset() {
	m.current = m.initial
	m.history = Slice[S]{m.initial.state}
	m.data = NewMapSafe[String, any]()
	m.enabled.Store(true)
}

// SetState positions the machine at state without running any actions or
// emitting events. It fails with ErrUnknownState when state has no
// representation. Intended for state restoration; use Fire for normal
// operation.
func (m *Machine[S, T]) SetState(state S) error {
	rep := m.cfg.states.Get(state)
	if rep.IsNone() {
		return &ErrUnknownState{State: state}
	}

	m.current = rep.Some()

	return nil
}

// Clone creates a new machine over the same (shared, read-only) configuration,
// positioned at the initial state with fresh history, data and subscriptions.
func (m *Machine[S, T]) Clone() *Machine[S, T] {
	clone := &Machine[S, T]{
		cfg:     m.cfg,
		initial: m.initial,
		current: m.initial,
		history: Slice[S]{m.initial.state},
		data:    NewMapSafe[String, any](),
	}
	clone.enabled.Store(true)

	return clone
}

// OnTransition registers a handler invoked synchronously after every
// completed transition, in registration order. Handlers must not call Fire on
// the same machine; the reentrancy guard rejects it.
func (m *Machine[S, T]) OnTransition(handler TransitionHandler[S]) *Machine[S, T] {
	if handler != nil {
		m.onTransition.Push(handler)
	}

	return m
}

// OnUnhandledTrigger registers a handler invoked synchronously whenever a
// fired trigger is unconfigured for the current state or blocked by its
// guard, in registration order.
func (m *Machine[S, T]) OnUnhandledTrigger(handler UnhandledTriggerHandler[S, T]) *Machine[S, T] {
	if handler != nil {
		m.onUnhandled.Push(handler)
	}

	return m
}

// Sync wraps the machine in a SyncMachine for cross-goroutine use.
func (m *Machine[S, T]) Sync() *SyncMachine[S, T] {
	return &SyncMachine[S, T]{m: m}
}
