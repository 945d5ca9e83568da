package machine

import (
	"reflect"
	"sync"

	"github.com/enetx/g"
	"go.uber.org/atomic"
)

type (
	// Action is a zero-argument side effect attached to a state entry, a state
	// exit, or a transition.
	Action func() error

	// Guard determines whether a configured transition is allowed. It is
	// re-evaluated on every fire and must be safe to call repeatedly.
	Guard func() bool

	// TransitionHandler is notified after a completed transition with the
	// previous and the new state.
	TransitionHandler[S comparable] func(from, to S)

	// UnhandledTriggerHandler is notified when a fired trigger is not
	// configured for the current state, or its guard rejected it.
	UnhandledTriggerHandler[S, T comparable] func(trigger T, state S)

	// ParamTrigger binds a trigger identity to the argument type A. It is a
	// typed capability token: firing through FireWith requires a matching
	// token, which moves argument mistakes to the call boundary. A is a
	// phantom type parameter and carries no runtime state of its own.
	ParamTrigger[T comparable, A any] struct {
		trigger T
		argType reflect.Type
	}

	// triggerRepresentation is an internal record describing one configured
	// trigger of a state: its guard, its action slot, and its destination.
	// The destination is a key into the Config state table rather than a
	// pointer; None means the trigger is explicitly ignored. At most one of
	// run and runArg is set; argType is non-nil iff the trigger is
	// parameterized.
	triggerRepresentation[S, T comparable] struct {
		trigger T
		guard   Guard
		dest    g.Option[S]
		run     Action
		runArg  func(any) error
		argType reflect.Type
	}

	// stateRepresentation is an internal per-state record: the state
	// identity, its entry and exit actions, and its configured triggers in
	// configuration order. Immutable once a machine built on the Config
	// starts firing.
	stateRepresentation[S, T comparable] struct {
		state    S
		onEntry  g.Slice[Action]
		onExit   g.Slice[Action]
		triggers g.Slice[*triggerRepresentation[S, T]]
	}

	// Config owns the mapping from state identity to its representation. A
	// Config is built once, validated when a Machine is constructed against
	// it, and is read-only (and shareable across machines) from then on.
	Config[S, T comparable] struct {
		states g.Map[S, *stateRepresentation[S, T]]
	}

	// StateBuilder configures a single state. Obtain one via
	// Config.Configure; repeated Configure calls for the same state return
	// builders over the same underlying representation, so the configuration
	// of one state may be split across multiple calls.
	StateBuilder[S, T comparable] struct {
		cfg *Config[S, T]
		rep *stateRepresentation[S, T]
	}

	// Machine is the dispatch core. It holds the current state, an enabled
	// flag toggled by Pause/Resume/Stop, and an exclusion flag that rejects
	// overlapping Fire calls. A Machine is affine to a single goroutine; use
	// Sync for cross-goroutine firing.
	Machine[S, T comparable] struct {
		cfg     *Config[S, T]
		initial *stateRepresentation[S, T]
		current *stateRepresentation[S, T]
		history g.Slice[S]
		data    *g.MapSafe[g.String, any]

		enabled atomic.Bool
		firing  atomic.Bool

		onTransition g.Slice[TransitionHandler[S]]
		onUnhandled  g.Slice[UnhandledTriggerHandler[S, T]]
	}

	// SyncMachine is a thread-safe wrapper around a Machine.
	// It protects all state-mutating and state-reading operations with a
	// sync.RWMutex, making it safe for use across multiple goroutines.
	// All methods on SyncMachine are the thread-safe counterparts to the
	// methods on the base Machine.
	SyncMachine[S, T comparable] struct {
		m  *Machine[S, T]
		mu sync.RWMutex
	}
)
