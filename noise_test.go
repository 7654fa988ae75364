package noisim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroProbabilityChannelsAreIdentity(t *testing.T) {
	channels := map[string]func(sv *StateVector) error{
		"depolarizing": func(sv *StateVector) error { return sv.Depolarizing(0, 0) },
		"bitflip":      func(sv *StateVector) error { return sv.BitFlip(1, 0) },
		"phaseflip":    func(sv *StateVector) error { return sv.PhaseFlip(2, 0) },
		"twoqubit_depolarizing": func(sv *StateVector) error {
			return sv.TwoQubitDepolarizing(0, 1, 0)
		},
		"damping": func(sv *StateVector) error { return sv.AmplitudeDamping(1, 0) },
	}
	for name, apply := range channels {
		t.Run(name, func(t *testing.T) {
			sv := prepareState(t)
			want := snapshot(sv)
			require.NoError(t, apply(sv))
			requireStateClose(t, want, sv.Amplitudes)
		})
	}
}

func TestCertainChannelsKeepStateValid(t *testing.T) {
	channels := map[string]func(sv *StateVector) error{
		"depolarizing": func(sv *StateVector) error { return sv.Depolarizing(0, 1) },
		"bitflip":      func(sv *StateVector) error { return sv.BitFlip(1, 1) },
		"phaseflip":    func(sv *StateVector) error { return sv.PhaseFlip(2, 1) },
		"twoqubit_depolarizing": func(sv *StateVector) error {
			return sv.TwoQubitDepolarizing(0, 2, 1)
		},
		"damping": func(sv *StateVector) error { return sv.AmplitudeDamping(1, 1) },
	}
	for name, apply := range channels {
		t.Run(name, func(t *testing.T) {
			sv := prepareState(t)
			require.NoError(t, apply(sv))
			assert.InDelta(t, 1.0, sv.Norm(), eps)
		})
	}
}

func TestBitFlipCertain(t *testing.T) {
	sv, err := NewStateVector(1)
	require.NoError(t, err)
	require.NoError(t, sv.BitFlip(0, 1))
	assert.InDelta(t, 1.0, absSqr(sv.Amplitudes[1]), eps)
}

func TestPhaseFlipCertain(t *testing.T) {
	sv, err := NewStateVector(1)
	require.NoError(t, err)
	require.NoError(t, sv.Hadamard(0, nil, false))
	require.NoError(t, sv.PhaseFlip(0, 1))
	// |+⟩ → |−⟩
	h := complex(1/math.Sqrt2, 0)
	requireStateClose(t, []Complex{h, -h}, sv.Amplitudes)
}

func TestAmplitudeDampingCertainDecay(t *testing.T) {
	sv, err := NewStateVector(1)
	require.NoError(t, err)
	require.NoError(t, sv.X(0, nil, false))
	require.NoError(t, sv.AmplitudeDamping(0, 1))
	requireStateClose(t, []Complex{1, 0}, sv.Amplitudes)
}

func TestAmplitudeDampingEntangled(t *testing.T) {
	// damping q0 of a Bell pair with p=1 must leave q0 in |0⟩ either way
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.Hadamard(0, nil, false))
	require.NoError(t, sv.CNOT(0, 1, nil, false))
	require.NoError(t, sv.AmplitudeDamping(0, 1))
	assert.InDelta(t, 1.0, sv.Norm(), eps)
	// q0 is now definitely |0⟩
	p0 := absSqr(sv.Amplitudes[0b00]) + absSqr(sv.Amplitudes[0b10])
	assert.InDelta(t, 1.0, p0, eps)
}

func TestResetForcesGround(t *testing.T) {
	sv, err := NewStateVector(1)
	require.NoError(t, err)
	require.NoError(t, sv.Hadamard(0, nil, false))
	require.NoError(t, sv.Reset(0))
	assert.InDelta(t, 1.0, absSqr(sv.Amplitudes[0]), eps)
	assert.InDelta(t, 0.0, absSqr(sv.Amplitudes[1]), eps)
}

func TestChannelArgumentValidation(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)

	assert.ErrorIs(t, sv.Depolarizing(0, 1.5), ErrProbability)
	assert.ErrorIs(t, sv.BitFlip(0, -0.1), ErrProbability)
	assert.ErrorIs(t, sv.Depolarizing(2, 0.1), ErrQubitIndex)
	assert.ErrorIs(t, sv.TwoQubitDepolarizing(0, 0, 0.1), ErrDuplicateQubit)
	assert.ErrorIs(t, sv.AmplitudeDamping(5, 0.1), ErrQubitIndex)
}

func TestDepolarizingBranches(t *testing.T) {
	// repeated certain-probability draws exercise the Pauli branches, and
	// each application keeps the state valid
	sv, err := NewStateVector(1)
	require.NoError(t, err)
	sv.Reseed(7)
	for i := 0; i < 100; i++ {
		require.NoError(t, sv.Depolarizing(0, 1))
		require.InDelta(t, 1.0, sv.Norm(), eps)
	}
}

func TestTwoQubitDepolarizingCertain(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	sv.Reseed(11)
	for i := 0; i < 100; i++ {
		require.NoError(t, sv.TwoQubitDepolarizing(0, 1, 1))
		require.InDelta(t, 1.0, sv.Norm(), eps)
	}
}
