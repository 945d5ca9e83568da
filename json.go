package machine

import (
	"encoding/json"
	"fmt"

	"github.com/enetx/g"
)

// MachineState is a serializable snapshot of a machine's runtime state. The
// configuration itself is never serialized; a snapshot is only meaningful
// when restored into a machine built on an equivalent configuration.
type MachineState[S comparable] struct {
	Current S                    `json:"current"`
	Enabled bool                 `json:"enabled"`
	History g.Slice[S]           `json:"history"`
	Data    g.Map[g.String, any] `json:"data"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine[S, T]) MarshalJSON() ([]byte, error) {
	state := MachineState[S]{
		Current: m.current.state,
		Enabled: m.enabled.Load(),
		History: m.history.Clone(),
		Data:    m.data.Iter().Collect(),
	}

	return json.Marshal(state)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Snapshots naming a
// state absent from the configuration are rejected with ErrUnknownState.
func (m *Machine[S, T]) UnmarshalJSON(data []byte) error {
	var state MachineState[S]
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("machine: failed to unmarshal state: %w", err)
	}

	rep := m.cfg.states.Get(state.Current)
	if rep.IsNone() {
		return &ErrUnknownState{State: state.Current}
	}

	for visited := range state.History.Iter() {
		if !m.cfg.states.Contains(visited) {
			return &ErrUnknownState{State: visited}
		}
	}

	restored := g.NewMapSafe[g.String, any]()
	for key, value := range state.Data.Iter() {
		restored.Set(key, value)
	}

	m.current = rep.Some()
	m.history = state.History
	m.data = restored
	m.enabled.Store(state.Enabled)

	return nil
}
