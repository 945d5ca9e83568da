package machine

import . "github.com/enetx/g"

// Interface compliance check.
var _ StateMachine[int, int] = (*SyncMachine[int, int])(nil)

// Fire is the thread-safe version of Machine.Fire.
// It atomically dispatches a trigger against the current state.
func (sm *SyncMachine[S, T]) Fire(trigger T) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Fire(trigger)
}

// Current is the thread-safe version of Machine.Current.
// It returns the machine's current state.
func (sm *SyncMachine[S, T]) Current() S {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// CanFire is the thread-safe version of Machine.CanFire.
func (sm *SyncMachine[S, T]) CanFire(trigger T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.CanFire(trigger)
}

// CanTransitionTo is the thread-safe version of Machine.CanTransitionTo.
func (sm *SyncMachine[S, T]) CanTransitionTo(state S) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.CanTransitionTo(state)
}

// PermittedTriggers is the thread-safe version of Machine.PermittedTriggers.
// The returned sequence iterates a snapshot taken under the lock.
func (sm *SyncMachine[S, T]) PermittedTriggers() SeqSlice[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.PermittedTriggers()
}

// Pause is the thread-safe version of Machine.Pause.
func (sm *SyncMachine[S, T]) Pause() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Pause()
}

// Resume is the thread-safe version of Machine.Resume.
func (sm *SyncMachine[S, T]) Resume() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Resume()
}

// IsEnabled is the thread-safe version of Machine.IsEnabled.
func (sm *SyncMachine[S, T]) IsEnabled() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.IsEnabled()
}

// Stop is the thread-safe version of Machine.Stop.
// It disables dispatch and runs the current state's exit actions once.
func (sm *SyncMachine[S, T]) Stop() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.Stop()
}

// History is the thread-safe version of Machine.History.
// It returns a copy of the state transition history.
func (sm *SyncMachine[S, T]) History() Slice[S] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.History()
}

// Data is the thread-safe version of Machine.Data.
// The returned bag is itself safe for concurrent use.
func (sm *SyncMachine[S, T]) Data() *MapSafe[String, any] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Data()
}

// Reset is the thread-safe version of Machine.Reset.
// It returns the machine to its initial state and clears its bookkeeping.
func (sm *SyncMachine[S, T]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.Reset()
}

// SetState is the thread-safe version of Machine.SetState.
// It forcefully positions the machine, bypassing all actions and guards.
// WARNING: This is a low-level method intended for specific use cases like
// state restoration. For all standard operations, use Fire.
func (sm *SyncMachine[S, T]) SetState(state S) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.SetState(state)
}

// OnTransition is the thread-safe version of Machine.OnTransition.
func (sm *SyncMachine[S, T]) OnTransition(handler TransitionHandler[S]) *SyncMachine[S, T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.OnTransition(handler)

	return sm
}

// OnUnhandledTrigger is the thread-safe version of Machine.OnUnhandledTrigger.
func (sm *SyncMachine[S, T]) OnUnhandledTrigger(handler UnhandledTriggerHandler[S, T]) *SyncMachine[S, T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.m.OnUnhandledTrigger(handler)

	return sm
}

// ToDOT is the thread-safe version of Machine.ToDOT.
// It generates a DOT language representation of the machine for visualization.
func (sm *SyncMachine[S, T]) ToDOT() String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's runtime state.
func (sm *SyncMachine[S, T]) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for thread-safe
// restoration of the machine's runtime state.
func (sm *SyncMachine[S, T]) UnmarshalJSON(data []byte) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.UnmarshalJSON(data)
}
