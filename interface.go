package machine

import . "github.com/enetx/g"

// StateMachine is the operation surface shared by Machine and SyncMachine.
// The typed parameterized fire path lives in the top-level FireWith and
// FireWithSync functions, since Go methods cannot introduce the argument
// type parameter.
type StateMachine[S, T comparable] interface {
	Fire(T) error
	Current() S
	CanFire(T) bool
	CanTransitionTo(S) bool
	PermittedTriggers() SeqSlice[T]
	Pause()
	Resume()
	IsEnabled() bool
	Stop() error
	History() Slice[S]
	Data() *MapSafe[String, any]
	Reset()
	SetState(S) error
	ToDOT() String
	MarshalJSON() ([]byte, error)
	UnmarshalJSON(data []byte) error
}

// Interface compliance check.
var _ StateMachine[int, int] = (*Machine[int, int])(nil)
