package noisim

import (
	"fmt"
	"sort"
)

// NoiseMap assigns a probability to each noise channel type.
type NoiseMap map[NoiseTag]float64

// sortedNoiseTags walks a NoiseMap in ascending tag order, so noise
// insertion is deterministic for a fixed configuration.
func sortedNoiseTags(m NoiseMap) []NoiseTag {
	tags := make([]NoiseTag, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// parseNoiseMap converts a string-keyed noise description into typed form,
// validating names and probabilities.
func parseNoiseMap(desc map[string]float64) (NoiseMap, error) {
	m := make(NoiseMap, len(desc))
	for name, p := range desc {
		tag, err := ParseNoiseName(name)
		if err != nil {
			return nil, err
		}
		if err := checkProbability(p); err != nil {
			return nil, fmt.Errorf("noise %q: %w", name, err)
		}
		m[tag] = p
	}
	return m, nil
}

// GateQubit keys a per-(gate, qubit) error description at the API boundary.
type GateQubit struct {
	Gate  string
	Qubit int
}

// GateQubitPair keys a per-(gate, qubit-pair) error description. For a
// 2-qubit gate the pair is its operand pair; for a 1-qubit gate it is
// (acting qubit, partner qubit) and models crosstalk onto the partner.
type GateQubitPair struct {
	Gate   string
	Qubit1 int
	Qubit2 int
}

type gateQubitKey struct {
	gate GateTag
	q    int
}

type gateQubitPairKey struct {
	gate   GateTag
	q1, q2 int
}

// noisePolicy decides which noise opcodes follow a recorded gate. Every
// policy starts with the global channels; the variants add their own maps.
type noisePolicy interface {
	noiseOps(global NoiseMap, qubits []int, gate GateTag) ([]Opcode, error)
}

// globalNoiseOps emits one opcode per configured global channel, on the
// gate's own qubits.
func globalNoiseOps(global NoiseMap, qubits []int) []Opcode {
	ops := make([]Opcode, 0, len(global))
	for _, tag := range sortedNoiseTags(global) {
		ops = append(ops, NoiseOp(tag, qubits, global[tag]))
	}
	return ops
}

func genericNoiseOps(m NoiseMap, qubits []int) []Opcode {
	ops := make([]Opcode, 0, len(m))
	for _, tag := range sortedNoiseTags(m) {
		ops = append(ops, NoiseOp(tag, qubits, m[tag]))
	}
	return ops
}

// globalPolicy applies only the per-type global probabilities.
type globalPolicy struct{}

func (globalPolicy) noiseOps(global NoiseMap, qubits []int, gate GateTag) ([]Opcode, error) {
	return globalNoiseOps(global, qubits), nil
}

// gateDependentPolicy adds a per-gate-kind noise map after the global
// channels.
type gateDependentPolicy struct {
	gateNoise map[GateTag]NoiseMap
}

func (p gateDependentPolicy) noiseOps(global NoiseMap, qubits []int, gate GateTag) ([]Opcode, error) {
	ops := globalNoiseOps(global, qubits)
	if m, ok := p.gateNoise[gate]; ok {
		ops = append(ops, genericNoiseOps(m, qubits)...)
	}
	return ops, nil
}

// gateSpecificPolicy adds per-(gate, qubit) and per-(gate, qubit-pair)
// noise after the global channels. A 1-qubit gate also scans the pair table
// for (gate, (q, partner)) entries, emitting crosstalk onto each partner.
type gateSpecificPolicy struct {
	error1q map[gateQubitKey]NoiseMap
	error2q map[gateQubitPairKey]NoiseMap
}

func (p gateSpecificPolicy) noiseOps(global NoiseMap, qubits []int, gate GateTag) ([]Opcode, error) {
	ops := globalNoiseOps(global, qubits)
	switch len(qubits) {
	case 1:
		q := qubits[0]
		ops = append(ops, p.error1qOps(gate, q)...)
		ops = append(ops, p.crosstalkOps(gate, q)...)
	case 2:
		if m, ok := p.error2q[gateQubitPairKey{gate, qubits[0], qubits[1]}]; ok {
			ops = append(ops, genericNoiseOps(m, qubits)...)
		}
		ops = append(ops, p.error1qOps(gate, qubits[0])...)
		ops = append(ops, p.error1qOps(gate, qubits[1])...)
	default:
		return nil, fmt.Errorf("%w: gate-specific noise supports 1- and 2-qubit gates, %s acts on %d",
			ErrArity, gate, len(qubits))
	}
	return ops, nil
}

func (p gateSpecificPolicy) error1qOps(gate GateTag, q int) []Opcode {
	m, ok := p.error1q[gateQubitKey{gate, q}]
	if !ok {
		return nil
	}
	return genericNoiseOps(m, []int{q})
}

// crosstalkOps emits the pair-table entries keyed by (gate, (q, partner)),
// partners in ascending order.
func (p gateSpecificPolicy) crosstalkOps(gate GateTag, q int) []Opcode {
	var partners []int
	for key := range p.error2q {
		if key.gate == gate && key.q1 == q {
			partners = append(partners, key.q2)
		}
	}
	sort.Ints(partners)
	var ops []Opcode
	for _, partner := range partners {
		m := p.error2q[gateQubitPairKey{gate, q, partner}]
		ops = append(ops, genericNoiseOps(m, []int{q, partner})...)
	}
	return ops
}
