package machine_test

import (
	"errors"
	"testing"

	"github.com/enetx/machine"
	"github.com/stretchr/testify/require"
)

var errAmount = errors.New("amount must be positive")

func fundingConfig(t *testing.T, deposit machine.ParamTrigger[string, float64]) (*machine.Machine[string, string], *float64) {
	t.Helper()

	var received float64

	cfg := machine.NewConfig[string, string]()
	machine.PermitParam(cfg.Configure("idle"), deposit, "funded", func(amount float64) error {
		received = amount
		return nil
	})
	cfg.Configure("funded")

	m, err := machine.New("idle", cfg)
	require.NoError(t, err)

	return m, &received
}

func TestFireWithThreadsArgument(t *testing.T) {
	deposit := machine.Param[float64]("deposit")
	m, received := fundingConfig(t, deposit)

	require.NoError(t, machine.FireWith(m, deposit, 42.5))
	require.Equal(t, "funded", m.Current())
	require.Equal(t, 42.5, *received)
}

func TestPlainFireOnParameterizedTrigger(t *testing.T) {
	deposit := machine.Param[float64]("deposit")
	m, received := fundingConfig(t, deposit)

	err := m.Fire("deposit")

	var invalid *machine.ErrInvalidTriggerParameter
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "idle", m.Current())
	require.Zero(t, *received)
}

func TestFireWithOnPlainTrigger(t *testing.T) {
	cfg := machine.NewConfig[string, string]()
	cfg.Configure("a").Permit("go", "b")
	cfg.Configure("b")

	m, err := machine.New("a", cfg)
	require.NoError(t, err)

	stray := machine.Param[int]("go")
	err = machine.FireWith(m, stray, 7)

	var invalid *machine.ErrInvalidTriggerParameter
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "a", m.Current())
}

func TestFireWithTypeMismatch(t *testing.T) {
	deposit := machine.Param[float64]("deposit")
	m, received := fundingConfig(t, deposit)

	wrong := machine.Param[string]("deposit")
	err := machine.FireWithSync(m.Sync(), wrong, "a lot")

	var invalid *machine.ErrInvalidTriggerParameter
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "idle", m.Current())
	require.Zero(t, *received)
}

func TestShapeMismatchPerformsNoSideEffects(t *testing.T) {
	deposit := machine.Param[float64]("deposit")
	exited := false

	cfg := machine.NewConfig[string, string]()
	builder := cfg.Configure("idle").OnExit(func() error { exited = true; return nil })
	machine.PermitParam(builder, deposit, "funded", func(float64) error { return nil })
	cfg.Configure("funded")

	m, err := machine.New("idle", cfg)
	require.NoError(t, err)

	require.Error(t, m.Fire("deposit"))
	require.False(t, exited)
	require.Equal(t, "idle", m.Current())

	// The machine remains usable in its prior state.
	require.NoError(t, machine.FireWith(m, deposit, 10))
	require.True(t, exited)
	require.Equal(t, "funded", m.Current())
}

func TestPermitParamWhenGuard(t *testing.T) {
	open := false
	deposit := machine.Param[float64]("deposit")
	var unhandled []string

	cfg := machine.NewConfig[string, string]()
	machine.PermitParamWhen(cfg.Configure("idle"), deposit, "funded",
		func() bool { return open },
		func(float64) error { return nil })
	cfg.Configure("funded")

	m, err := machine.New("idle", cfg)
	require.NoError(t, err)

	m.OnUnhandledTrigger(func(trigger, _ string) { unhandled = append(unhandled, trigger) })

	require.NoError(t, machine.FireWith(m, deposit, 5))
	require.Equal(t, "idle", m.Current())
	require.Equal(t, []string{"deposit"}, unhandled)

	open = true
	require.NoError(t, machine.FireWith(m, deposit, 5))
	require.Equal(t, "funded", m.Current())
}

func TestParamTriggerAccessors(t *testing.T) {
	deposit := machine.Param[float64]("deposit")

	require.Equal(t, "deposit", deposit.Trigger())
	require.Equal(t, "float64", deposit.ArgType().String())
}

func TestParamArgumentErrorPropagates(t *testing.T) {
	deposit := machine.Param[float64]("deposit")

	cfg := machine.NewConfig[string, string]()
	machine.PermitParam(cfg.Configure("idle"), deposit, "funded", func(amount float64) error {
		if amount <= 0 {
			return errAmount
		}
		return nil
	})
	cfg.Configure("funded")

	m, err := machine.New("idle", cfg)
	require.NoError(t, err)

	require.ErrorIs(t, machine.FireWith(m, deposit, -1), errAmount)
	require.Equal(t, "idle", m.Current())
}
