package noisim

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatProgramRendersStream(t *testing.T) {
	ns, err := NewNoisySimulator(3, map[string]float64{"depolarizing": 0.01}, nil)
	require.NoError(t, err)
	require.NoError(t, ns.Hadamard(0))
	require.NoError(t, ns.RX(1, math.Pi/2))
	require.NoError(t, ns.CNOT(0, 1))
	require.NoError(t, ns.X(2, WithDagger(), WithControllers(0, 1)))

	text := FormatProgram(3, ns.Opcodes())
	assert.Contains(t, text, "qubits 3")
	assert.Contains(t, text, "HADAMARD q[0]")
	assert.Contains(t, text, "RX(pi/2) q[1]")
	assert.Contains(t, text, "CNOT q[0], q[1]")
	assert.Contains(t, text, "X q[2] dagger ctrl[0, 1]")
	assert.Contains(t, text, "# noise depolarizing 0.01 q[0]")
}

func TestProgramRoundTrip(t *testing.T) {
	ns, err := NewNoisySimulator(3, map[string]float64{"bitflip": 0.02}, nil)
	require.NoError(t, err)
	require.NoError(t, ns.Hadamard(0))
	require.NoError(t, ns.U3(1, 0.4, -math.Pi/2, math.Pi/2))
	require.NoError(t, ns.ISwap(1, 2))
	require.NoError(t, ns.Toffoli(0, 1, 2, WithDagger()))

	text := FormatProgram(3, ns.Opcodes())
	n, ops, err := ParseProgram(text)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, ops, len(ns.Opcodes()))

	for i, want := range ns.Opcodes() {
		got := ops[i]
		assert.Equal(t, want.Op, got.Op, "op %d tag", i)
		assert.Equal(t, want.Qubits, got.Qubits, "op %d qubits", i)
		assert.Equal(t, want.Dagger, got.Dagger, "op %d dagger", i)
		assert.Equal(t, want.Controllers, got.Controllers, "op %d controllers", i)
		require.Len(t, got.Params, len(want.Params), "op %d params", i)
		for j := range want.Params {
			assert.InDelta(t, want.Params[j], got.Params[j], 1e-12)
		}
	}
}

func TestRecordProgramReplaysGates(t *testing.T) {
	src, err := NewNoisySimulator(2, map[string]float64{"depolarizing": 0.05}, nil)
	require.NoError(t, err)
	require.NoError(t, src.Hadamard(0))
	require.NoError(t, src.CNOT(0, 1))

	_, ops, err := ParseProgram(FormatProgram(2, src.Opcodes()))
	require.NoError(t, err)

	dst, err := NewNoisySimulator(2, map[string]float64{"depolarizing": 0.05}, nil)
	require.NoError(t, err)
	require.NoError(t, dst.RecordProgram(ops))

	// noise lines are skipped and re-inserted by the destination's policy,
	// so the two noisy streams coincide
	assert.Equal(t, src.Opcodes(), dst.Opcodes())
	assert.Equal(t, src.OriginalOpcodes(), dst.OriginalOpcodes())
}

func TestParseProgramErrors(t *testing.T) {
	_, _, err := ParseProgram("qubits 2\nBOGUS q[0]\n")
	assert.ErrorIs(t, err, ErrUnknownGate)

	_, _, err = ParseProgram("qubits 2\nnot a line\n")
	assert.ErrorIs(t, err, ErrUnknownGate)

	_, _, err = ParseProgram("# noise thermal 0.1 q[0]\n")
	assert.ErrorIs(t, err, ErrUnknownNoise)
}

func TestParseAngle(t *testing.T) {
	cases := []struct {
		token string
		want  float64
	}{
		{"0.25", 0.25},
		{"-12", -12},
		{"2.5e-3", 2.5e-3},
		{"pi", math.Pi},
		{"Pi", math.Pi},
		{"+pi", math.Pi},
		{"-pi", -math.Pi},
		{"pi/6", math.Pi / 6},
		{"-pi/8", -math.Pi / 8},
		{"5pi/6", 5 * math.Pi / 6},
		{"7*pi/12", 7 * math.Pi / 12},
		{"-5*pi/4", -5 * math.Pi / 4},
		{"0.5pi", math.Pi / 2},
		{"1.5*pi", 3 * math.Pi / 2},
		{" pi / 3 ", math.Pi / 3},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseAngle(tc.token)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}

	for _, bad := range []string{"", "  ", "pi/0", "piper", "two*pi", "--pi", "1..2", "pi//2"} {
		t.Run("bad:"+bad, func(t *testing.T) {
			_, err := ParseAngle(bad)
			assert.ErrorIs(t, err, ErrAngleSyntax)
		})
	}
}

func TestFormatAngle(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{0, "0"},
		{math.Pi, "pi"},
		{-math.Pi, "-pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 12, "pi/12"},
		{5 * math.Pi / 6, "5*pi/6"},
		{-7 * math.Pi / 12, "-7*pi/12"},
		{2 * math.Pi, "2*pi"},
		{6 * math.Pi / 8, "3*pi/4"}, // reduced fraction
		{0.25, "0.25"},
		{-1.5, "-1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAngle(tc.val))
		})
	}
}

func TestAngleRoundTrip(t *testing.T) {
	// formatted angles must parse back to the same value
	values := []float64{0, 0.3, -2.75, math.Pi, math.Pi / 5, -11 * math.Pi / 12, 2 * math.Pi, 1e-6}
	for _, val := range values {
		got, err := ParseAngle(FormatAngle(val))
		require.NoError(t, err)
		assert.InDelta(t, val, got, 1e-12)
	}
}

func TestParseAngleList(t *testing.T) {
	angles, err := ParseAngleList("pi/2, -pi, 0.75")
	require.NoError(t, err)
	require.Len(t, angles, 3)
	assert.InDelta(t, math.Pi/2, angles[0], 1e-12)
	assert.InDelta(t, -math.Pi, angles[1], 1e-12)
	assert.InDelta(t, 0.75, angles[2], 1e-12)

	angles, err = ParseAngleList("  ")
	require.NoError(t, err)
	assert.Empty(t, angles)

	_, err = ParseAngleList("pi/2, banana")
	assert.ErrorIs(t, err, ErrAngleSyntax)
}

func TestParseProgramSkipsComments(t *testing.T) {
	text := strings.Join([]string{
		"# a bell pair",
		"qubits 2",
		"",
		"HADAMARD q[0]",
		"CNOT q[0], q[1]",
	}, "\n")
	n, ops, err := ParseProgram(text)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, ops, 2)
}
