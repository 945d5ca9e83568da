package machine

import . "github.com/enetx/g"

// NewConfig creates an empty configuration for states of type S and triggers
// of type T. An optional capacity hint sizes the state table up front.
func NewConfig[S, T comparable](capacity ...Int) *Config[S, T] {
	return &Config[S, T]{states: NewMap[S, *stateRepresentation[S, T]](capacity...)}
}

// Configure begins (or resumes) configuration of a state. The representation
// is created lazily on first reference; repeated calls for the same state
// return builders operating on the same underlying representation.
func (c *Config[S, T]) Configure(state S) *StateBuilder[S, T] {
	return &StateBuilder[S, T]{cfg: c, rep: c.rep(state)}
}

// Contains reports whether a representation exists for state.
func (c *Config[S, T]) Contains(state S) bool {
	return c.states.Contains(state)
}

// States returns the configured state identities. Order is unspecified.
func (c *Config[S, T]) States() Slice[S] {
	return c.states.Keys()
}

func (c *Config[S, T]) rep(state S) *stateRepresentation[S, T] {
	if found := c.states.Get(state); found.IsSome() {
		return found.Some()
	}

	rep := newStateRepresentation[S, T](state)
	c.states.Set(state, rep)

	return rep
}

// validate checks that every transition destination resolves to a configured
// state. Dangling transitions are surfaced here, at machine construction,
// never at fire time.
func (c *Config[S, T]) validate() error {
	for _, rep := range c.states.Iter() {
		for tr := range rep.triggers.Iter() {
			if tr.dest.IsSome() && !c.states.Contains(tr.dest.Some()) {
				return &ErrDanglingTransition{From: rep.state, Trigger: tr.trigger, To: tr.dest.Some()}
			}
		}
	}

	return nil
}

// OnEntry appends an action executed when the state is entered. Actions run
// in registration order. A nil action is ignored.
func (b *StateBuilder[S, T]) OnEntry(action Action) *StateBuilder[S, T] {
	if action != nil {
		b.rep.onEntry.Push(action)
	}

	return b
}

// OnExit appends an action executed when the state is exited. Actions run in
// registration order. A nil action is ignored.
func (b *StateBuilder[S, T]) OnExit(action Action) *StateBuilder[S, T] {
	if action != nil {
		b.rep.onExit.Push(action)
	}

	return b
}

// Permit allows trigger from this state, transitioning to dest.
// Reconfiguring a trigger replaces the earlier record (last wins).
func (b *StateBuilder[S, T]) Permit(trigger T, dest S) *StateBuilder[S, T] {
	return b.set(&triggerRepresentation[S, T]{trigger: trigger, dest: Some(dest)})
}

// PermitWhen allows trigger from this state when guard returns true,
// transitioning to dest. A nil guard always passes.
func (b *StateBuilder[S, T]) PermitWhen(trigger T, dest S, guard Guard) *StateBuilder[S, T] {
	return b.set(&triggerRepresentation[S, T]{trigger: trigger, dest: Some(dest), guard: guard})
}

// PermitDo allows trigger from this state, executing action between the exit
// and entry actions of the transition.
func (b *StateBuilder[S, T]) PermitDo(trigger T, dest S, action Action) *StateBuilder[S, T] {
	return b.set(&triggerRepresentation[S, T]{trigger: trigger, dest: Some(dest), run: action})
}

// PermitWhenDo combines PermitWhen and PermitDo.
func (b *StateBuilder[S, T]) PermitWhenDo(trigger T, dest S, guard Guard, action Action) *StateBuilder[S, T] {
	return b.set(&triggerRepresentation[S, T]{trigger: trigger, dest: Some(dest), guard: guard, run: action})
}

// Ignore accepts trigger from this state without transitioning, executing
// actions, or raising the unhandled-trigger event.
func (b *StateBuilder[S, T]) Ignore(trigger T) *StateBuilder[S, T] {
	return b.set(&triggerRepresentation[S, T]{trigger: trigger, dest: None[S]()})
}

// IgnoreWhen accepts trigger silently when guard returns true; when the guard
// rejects, the fire is reported through the unhandled-trigger event instead.
func (b *StateBuilder[S, T]) IgnoreWhen(trigger T, guard Guard) *StateBuilder[S, T] {
	return b.set(&triggerRepresentation[S, T]{trigger: trigger, dest: None[S](), guard: guard})
}

// State returns the state identity this builder configures.
func (b *StateBuilder[S, T]) State() S {
	return b.rep.state
}

func (b *StateBuilder[S, T]) set(tr *triggerRepresentation[S, T]) *StateBuilder[S, T] {
	b.rep.setTrigger(tr)
	return b
}
