package machine_test

import (
	"testing"

	"github.com/enetx/g"
	"github.com/enetx/machine"
	"github.com/stretchr/testify/require"
)

func TestConfigureSplitAcrossCalls(t *testing.T) {
	entered := false

	cfg := machine.NewConfig[string, string]()

	// Declaring entry actions and permitted transitions for one state may be
	// split across multiple Configure calls; both operate on the same
	// underlying representation.
	cfg.Configure("a").Permit("go", "b")
	cfg.Configure("a").OnEntry(func() error { entered = true; return nil })
	cfg.Configure("b").Permit("back", "a")

	m, err := machine.New("b", cfg)
	require.NoError(t, err)

	require.NoError(t, m.Fire("back"))
	require.Equal(t, "a", m.Current())
	require.True(t, entered)
}

func TestLastConfiguredTriggerWins(t *testing.T) {
	cfg := machine.NewConfig[string, string]()
	cfg.Configure("a").
		Permit("go", "b").
		Permit("other", "c").
		Permit("go", "c")
	cfg.Configure("b")
	cfg.Configure("c")

	m, err := machine.New("a", cfg)
	require.NoError(t, err)

	// The replacement keeps the original configuration-order position.
	var triggers []string
	for trigger := range m.PermittedTriggers() {
		triggers = append(triggers, trigger)
	}
	require.Equal(t, []string{"go", "other"}, triggers)

	require.NoError(t, m.Fire("go"))
	require.Equal(t, "c", m.Current())
}

func TestDanglingTransitionRejectedAtConstruction(t *testing.T) {
	cfg := machine.NewConfig[string, string]()
	cfg.Configure("a").Permit("go", "ghost")

	_, err := machine.New("a", cfg)

	var dangling *machine.ErrDanglingTransition
	require.ErrorAs(t, err, &dangling)
	require.Equal(t, "a", dangling.From)
	require.Equal(t, "go", dangling.Trigger)
	require.Equal(t, "ghost", dangling.To)
}

func TestUnreachableInitialState(t *testing.T) {
	// Empty configuration.
	_, err := machine.New("a", machine.NewConfig[string, string]())

	var unreachable *machine.ErrUnreachableInitialState
	require.ErrorAs(t, err, &unreachable)

	// Populated configuration without the requested initial state.
	cfg := machine.NewConfig[string, string]()
	cfg.Configure("a").Permit("go", "a")

	_, err = machine.New("missing", cfg)
	require.ErrorAs(t, err, &unreachable)
	require.Equal(t, "missing", unreachable.State)
}

func TestConfigQueries(t *testing.T) {
	cfg := machine.NewConfig[string, string]()
	cfg.Configure("a").Permit("go", "b")
	cfg.Configure("b")

	require.True(t, cfg.Contains("a"))
	require.True(t, cfg.Contains("b"))
	require.False(t, cfg.Contains("c"))
	require.Equal(t, g.Int(2), cfg.States().Len())

	require.Equal(t, "a", cfg.Configure("a").State())
}

func TestConfigSharedAcrossMachines(t *testing.T) {
	cfg := doorConfig()

	m1, err := machine.New("open", cfg)
	require.NoError(t, err)

	m2, err := machine.New("closed", cfg)
	require.NoError(t, err)

	require.NoError(t, m1.Fire("close"))
	require.Equal(t, "closed", m1.Current())
	require.Equal(t, "closed", m2.Current())

	require.NoError(t, m2.Fire("open"))
	require.Equal(t, "open", m2.Current())
	require.Equal(t, "closed", m1.Current())
}

func TestNilGuardAndActionAreIgnored(t *testing.T) {
	cfg := machine.NewConfig[string, string]()
	cfg.Configure("a").
		OnEntry(nil).
		OnExit(nil).
		PermitWhenDo("go", "b", nil, nil)
	cfg.Configure("b")

	m, err := machine.New("a", cfg)
	require.NoError(t, err)

	require.NoError(t, m.Fire("go"))
	require.Equal(t, "b", m.Current())
}
