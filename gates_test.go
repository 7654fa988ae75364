package noisim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBellState(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.Hadamard(0, nil, false))
	require.NoError(t, sv.CNOT(0, 1, nil, false))

	want := complex(1/math.Sqrt2, 0)
	requireStateClose(t, []Complex{want, 0, 0, want}, sv.Amplitudes)
}

func TestToffoliDeterministic(t *testing.T) {
	sv, err := NewStateVector(3)
	require.NoError(t, err)
	require.NoError(t, sv.X(0, nil, false))
	require.NoError(t, sv.X(1, nil, false))
	require.NoError(t, sv.Toffoli(0, 1, 2, nil, false))
	assert.InDelta(t, 1.0, absSqr(sv.Amplitudes[0b111]), eps)
}

func TestCSwapSwapsOnlyWhenControlSet(t *testing.T) {
	sv, err := NewStateVector(3)
	require.NoError(t, err)
	require.NoError(t, sv.X(1, nil, false))
	require.NoError(t, sv.CSwap(0, 1, 2, nil, false))
	// control |0⟩: untouched
	assert.InDelta(t, 1.0, absSqr(sv.Amplitudes[0b010]), eps)

	require.NoError(t, sv.X(0, nil, false))
	require.NoError(t, sv.CSwap(0, 1, 2, nil, false))
	assert.InDelta(t, 1.0, absSqr(sv.Amplitudes[0b101]), eps)
}

func TestISwapPhase(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.X(0, nil, false))
	require.NoError(t, sv.ISwap(0, 1, nil, false))
	// |01⟩ → i|10⟩
	requireStateClose(t, []Complex{0, 0, 1i, 0}, sv.Amplitudes)
}

func TestXYRotatesNumberSubspace(t *testing.T) {
	theta := 0.8
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.X(0, nil, false))
	require.NoError(t, sv.XY(0, 1, theta, nil, false))

	want := make([]Complex, 4)
	want[1] = complex(math.Cos(theta), 0)
	want[2] = complex(0, -math.Sin(theta))
	requireStateClose(t, want, sv.Amplitudes)
}

func TestCZDiagonalPhase(t *testing.T) {
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.X(0, nil, false))
	require.NoError(t, sv.X(1, nil, false))
	require.NoError(t, sv.CZ(0, 1, nil, false))
	requireStateClose(t, []Complex{0, 0, 0, -1}, sv.Amplitudes)
}

func TestU3Specializations(t *testing.T) {
	theta := 0.95

	t.Run("RX", func(t *testing.T) {
		a := prepareState(t)
		b := a.Clone()
		require.NoError(t, a.RX(1, theta, nil, false))
		require.NoError(t, b.U3(1, theta, -math.Pi/2, math.Pi/2, nil, false))
		requireStateClose(t, a.Amplitudes, b.Amplitudes)
	})

	t.Run("U2", func(t *testing.T) {
		a := prepareState(t)
		b := a.Clone()
		require.NoError(t, a.U2(2, 0.3, -0.7, nil, false))
		require.NoError(t, b.U3(2, math.Pi/2, 0.3, -0.7, nil, false))
		requireStateClose(t, a.Amplitudes, b.Amplitudes)
	})
}

func TestRPhiAxes(t *testing.T) {
	theta := 1.2

	t.Run("phi=0 matches RX", func(t *testing.T) {
		a := prepareState(t)
		b := a.Clone()
		require.NoError(t, a.RX(0, theta, nil, false))
		require.NoError(t, b.RPhi(0, theta, 0, nil, false))
		requireStateClose(t, a.Amplitudes, b.Amplitudes)
	})

	t.Run("phi=pi/2 matches RY", func(t *testing.T) {
		a := prepareState(t)
		b := a.Clone()
		require.NoError(t, a.RY(0, theta, nil, false))
		require.NoError(t, b.RPhi(0, theta, math.Pi/2, nil, false))
		requireStateClose(t, a.Amplitudes, b.Amplitudes)
	})

	t.Run("RPhi90 and RPhi180 are fixed-angle forms", func(t *testing.T) {
		a := prepareState(t)
		b := a.Clone()
		require.NoError(t, a.RPhi(1, math.Pi/2, 0.4, nil, false))
		require.NoError(t, b.RPhi90(1, 0.4, nil, false))
		requireStateClose(t, a.Amplitudes, b.Amplitudes)

		require.NoError(t, a.RPhi(1, math.Pi, 0.4, nil, false))
		require.NoError(t, b.RPhi180(1, 0.4, nil, false))
		requireStateClose(t, a.Amplitudes, b.Amplitudes)
	})
}

func TestPhase2QPhases(t *testing.T) {
	theta1, theta2, thetaZZ := 0.3, 0.7, 1.1
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.Hadamard(0, nil, false))
	require.NoError(t, sv.Hadamard(1, nil, false))
	require.NoError(t, sv.Phase2Q(0, 1, theta1, theta2, thetaZZ, nil, false))

	phase := func(rad float64) Complex {
		return complex(math.Cos(rad), math.Sin(rad))
	}
	want := []Complex{
		0.5,
		0.5 * phase(theta1),
		0.5 * phase(theta2),
		0.5 * phase(theta1+theta2+thetaZZ),
	}
	requireStateClose(t, want, sv.Amplitudes)
}

func TestZZDiagonal(t *testing.T) {
	theta := 0.9
	sv, err := NewStateVector(2)
	require.NoError(t, err)
	require.NoError(t, sv.Hadamard(0, nil, false))
	require.NoError(t, sv.Hadamard(1, nil, false))
	require.NoError(t, sv.ZZ(0, 1, theta, nil, false))

	minus := complex(math.Cos(theta/2), -math.Sin(theta/2))
	plus := complex(math.Cos(theta/2), math.Sin(theta/2))
	want := []Complex{0.5 * minus, 0.5 * plus, 0.5 * plus, 0.5 * minus}
	requireStateClose(t, want, sv.Amplitudes)
}

func TestSXSquaresToX(t *testing.T) {
	a := prepareState(t)
	b := a.Clone()
	require.NoError(t, a.SX(2, nil, false))
	require.NoError(t, a.SX(2, nil, false))
	require.NoError(t, b.X(2, nil, false))
	requireStateClose(t, b.Amplitudes, a.Amplitudes)
}

func TestSSquaresToZ(t *testing.T) {
	a := prepareState(t)
	b := a.Clone()
	require.NoError(t, a.S(0, nil, false))
	require.NoError(t, a.S(0, nil, false))
	require.NoError(t, b.Z(0, nil, false))
	requireStateClose(t, b.Amplitudes, a.Amplitudes)
}
