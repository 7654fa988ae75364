package noisim

import "fmt"

// Gate and noise opcodes share one 32-bit tag namespace: gate tags start at
// gateTagBase, noise tags are small positive integers, tag 0 is invalid.

// GateTag identifies a catalogue gate in the opcode stream.
type GateTag uint32

const gateTagBase = 1000

const (
	GateHadamard GateTag = gateTagBase + iota
	GateU22
	GateX
	GateY
	GateZ
	GateSX
	GateS
	GateT
	GateCZ
	GateSwap
	GateISwap
	GateXY
	GateCNOT
	GateRX
	GateRY
	GateRZ
	GateU1
	GateU2
	GateU3
	GateRPhi90
	GateRPhi180
	GateRPhi
	GateToffoli
	GateCSwap
	GateZZ
	GateXX
	GateYY
	GatePhase2Q
	GateUU15
	GateIdentity
)

// NoiseTag identifies a stochastic channel in the opcode stream.
type NoiseTag uint32

const (
	NoiseDepolarizing NoiseTag = iota + 1
	NoiseDamping
	NoiseBitFlip
	NoisePhaseFlip
	NoiseTwoQubitDepolarizing
)

var gateNames = map[string]GateTag{
	"HADAMARD": GateHadamard,
	"U22":      GateU22,
	"X":        GateX,
	"Y":        GateY,
	"Z":        GateZ,
	"SX":       GateSX,
	"S":        GateS,
	"T":        GateT,
	"CZ":       GateCZ,
	"SWAP":     GateSwap,
	"ISWAP":    GateISwap,
	"XY":       GateXY,
	"CNOT":     GateCNOT,
	"RX":       GateRX,
	"RY":       GateRY,
	"RZ":       GateRZ,
	"U1":       GateU1,
	"U2":       GateU2,
	"U3":       GateU3,
	"RPHI90":   GateRPhi90,
	"RPHI180":  GateRPhi180,
	"RPHI":     GateRPhi,
	"TOFFOLI":  GateToffoli,
	"CSWAP":    GateCSwap,
	"ZZ":       GateZZ,
	"XX":       GateXX,
	"YY":       GateYY,
	"PHASE2Q":  GatePhase2Q,
	"UU15":     GateUU15,
	"IDENTITY": GateIdentity,
}

var noiseNames = map[string]NoiseTag{
	"depolarizing":          NoiseDepolarizing,
	"damping":               NoiseDamping,
	"bitflip":               NoiseBitFlip,
	"phaseflip":             NoisePhaseFlip,
	"twoqubit_depolarizing": NoiseTwoQubitDepolarizing,
}

var gateTagNames = func() map[GateTag]string {
	m := make(map[GateTag]string, len(gateNames))
	for name, tag := range gateNames {
		m[tag] = name
	}
	return m
}()

var noiseTagNames = func() map[NoiseTag]string {
	m := make(map[NoiseTag]string, len(noiseNames))
	for name, tag := range noiseNames {
		m[tag] = name
	}
	return m
}()

// ParseGateName resolves a case-sensitive gate token (e.g. "HADAMARD").
func ParseGateName(name string) (GateTag, error) {
	tag, ok := gateNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGate, name)
	}
	return tag, nil
}

// ParseNoiseName resolves a case-sensitive noise token (e.g. "bitflip").
func ParseNoiseName(name string) (NoiseTag, error) {
	tag, ok := noiseNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNoise, name)
	}
	return tag, nil
}

func (t GateTag) String() string {
	if name, ok := gateTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("GateTag(%d)", uint32(t))
}

func (t NoiseTag) String() string {
	if name, ok := noiseTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NoiseTag(%d)", uint32(t))
}

// gateQubitCount is the number of qubit operands each gate takes.
var gateQubitCount = map[GateTag]int{
	GateHadamard: 1, GateU22: 1, GateX: 1, GateY: 1, GateZ: 1,
	GateSX: 1, GateS: 1, GateT: 1, GateRX: 1, GateRY: 1, GateRZ: 1,
	GateU1: 1, GateU2: 1, GateU3: 1, GateRPhi90: 1, GateRPhi180: 1,
	GateRPhi: 1, GateIdentity: 1,
	GateCZ: 2, GateSwap: 2, GateISwap: 2, GateXY: 2, GateCNOT: 2,
	GateZZ: 2, GateXX: 2, GateYY: 2, GatePhase2Q: 2, GateUU15: 2,
	GateToffoli: 3, GateCSwap: 3,
}

// gateParamCount is the number of real parameters each gate takes.
var gateParamCount = map[GateTag]int{
	GateHadamard: 0, GateX: 0, GateY: 0, GateZ: 0, GateSX: 0,
	GateS: 0, GateT: 0, GateCZ: 0, GateSwap: 0, GateISwap: 0,
	GateCNOT: 0, GateToffoli: 0, GateCSwap: 0, GateIdentity: 0,
	GateRX: 1, GateRY: 1, GateRZ: 1, GateU1: 1, GateRPhi90: 1,
	GateRPhi180: 1, GateXY: 1, GateZZ: 1, GateXX: 1, GateYY: 1,
	GateU2: 2, GateRPhi: 2,
	GateU3: 3, GatePhase2Q: 3,
	GateU22:  8,
	GateUU15: 15,
}

// Opcode is one recorded operation: either a catalogue gate or an inserted
// noise channel, distinguished by the tag range. Noise opcodes never carry
// controllers or a dagger flag.
type Opcode struct {
	Op          uint32
	Qubits      []int
	Params      []float64
	Dagger      bool
	Controllers []int
}

// GateOp builds a gate opcode.
func GateOp(tag GateTag, qubits []int, params []float64, dagger bool, controllers []int) Opcode {
	return Opcode{
		Op:          uint32(tag),
		Qubits:      qubits,
		Params:      params,
		Dagger:      dagger,
		Controllers: controllers,
	}
}

// NoiseOp builds a noise opcode with the channel probability as its single
// parameter.
func NoiseOp(tag NoiseTag, qubits []int, p float64) Opcode {
	return Opcode{Op: uint32(tag), Qubits: qubits, Params: []float64{p}}
}

// Gate reports the tag as a gate tag; false for noise opcodes.
func (o Opcode) Gate() (GateTag, bool) {
	if o.Op >= gateTagBase {
		return GateTag(o.Op), true
	}
	return 0, false
}

// Noise reports the tag as a noise tag; false for gate opcodes.
func (o Opcode) Noise() (NoiseTag, bool) {
	if o.Op > 0 && o.Op < gateTagBase {
		return NoiseTag(o.Op), true
	}
	return 0, false
}
