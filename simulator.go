package noisim

import (
	"fmt"
	"sort"
)

// NoisySimulator records a gate program as a flat opcode stream, appending
// noise opcodes after every gate per the configured policy, and replays the
// stream once per measurement shot.
//
// Recording never touches the state vector; a recording-time error leaves
// the stream unchanged. A replay-time error leaves the state undefined.
type NoisySimulator struct {
	nQubits int
	sv      *StateVector
	policy  noisePolicy
	global  NoiseMap
	readout [][2]float64
	// readoutActive is false when every flip probability is zero, so a
	// degenerate table consumes no draws and reproduces the noiseless
	// histogram under the same seed.
	readoutActive bool

	opcodes  []Opcode // what actually executes, noise interleaved
	original []Opcode // the noise-free program

	measureQubits []int
}

// GateOption modifies a recorded gate: dagger and global controllers.
type GateOption func(*gateConfig)

type gateConfig struct {
	dagger      bool
	controllers []int
}

// WithDagger records the Hermitian conjugate of the gate.
func WithDagger() GateOption {
	return func(c *gateConfig) { c.dagger = true }
}

// WithControllers adds qubits that must all be |1⟩ for the gate to fire.
func WithControllers(qubits ...int) GateOption {
	return func(c *gateConfig) { c.controllers = append(c.controllers, qubits...) }
}

// NewNoisySimulator builds a simulator whose noise policy applies the
// per-type global probabilities after every gate. The noise description is
// keyed by noise name tokens ("depolarizing", "damping", "bitflip",
// "phaseflip", "twoqubit_depolarizing"). readoutError is either empty or
// one (p0→1, p1→0) flip pair per qubit.
func NewNoisySimulator(n int, noise map[string]float64, readoutError [][2]float64) (*NoisySimulator, error) {
	return newSimulator(n, noise, readoutError, globalPolicy{})
}

// NewGateDependentSimulator adds a per-gate-kind noise map on top of the
// global channels, keyed by gate name tokens.
func NewGateDependentSimulator(n int, noise map[string]float64, gateNoise map[string]map[string]float64, readoutError [][2]float64) (*NoisySimulator, error) {
	policy := gateDependentPolicy{gateNoise: make(map[GateTag]NoiseMap, len(gateNoise))}
	for name, desc := range gateNoise {
		tag, err := ParseGateName(name)
		if err != nil {
			return nil, err
		}
		m, err := parseNoiseMap(desc)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", name, err)
		}
		policy.gateNoise[tag] = m
	}
	return newSimulator(n, noise, readoutError, policy)
}

// NewGateSpecificSimulator adds per-(gate, qubit) and per-(gate,
// qubit-pair) noise maps on top of the global channels. Pair entries keyed
// by a 1-qubit gate model crosstalk onto the partner qubit.
func NewGateSpecificSimulator(n int, noise map[string]float64, error1q map[GateQubit]map[string]float64, error2q map[GateQubitPair]map[string]float64, readoutError [][2]float64) (*NoisySimulator, error) {
	policy := gateSpecificPolicy{
		error1q: make(map[gateQubitKey]NoiseMap, len(error1q)),
		error2q: make(map[gateQubitPairKey]NoiseMap, len(error2q)),
	}
	for key, desc := range error1q {
		tag, err := ParseGateName(key.Gate)
		if err != nil {
			return nil, err
		}
		if key.Qubit < 0 || key.Qubit >= n {
			return nil, fmt.Errorf("%w: error table qubit %d of %d", ErrQubitIndex, key.Qubit, n)
		}
		m, err := parseNoiseMap(desc)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", key.Gate, err)
		}
		policy.error1q[gateQubitKey{tag, key.Qubit}] = m
	}
	for key, desc := range error2q {
		tag, err := ParseGateName(key.Gate)
		if err != nil {
			return nil, err
		}
		if gateQubitCount[tag] > 2 {
			return nil, fmt.Errorf("%w: pair error table requires a 1- or 2-qubit gate, got %s", ErrArity, key.Gate)
		}
		if key.Qubit1 < 0 || key.Qubit1 >= n || key.Qubit2 < 0 || key.Qubit2 >= n {
			return nil, fmt.Errorf("%w: error table pair (%d,%d) of %d", ErrQubitIndex, key.Qubit1, key.Qubit2, n)
		}
		m, err := parseNoiseMap(desc)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", key.Gate, err)
		}
		policy.error2q[gateQubitPairKey{tag, key.Qubit1, key.Qubit2}] = m
	}
	return newSimulator(n, noise, readoutError, policy)
}

func newSimulator(n int, noise map[string]float64, readoutError [][2]float64, policy noisePolicy) (*NoisySimulator, error) {
	sv, err := NewStateVector(n)
	if err != nil {
		return nil, err
	}
	global, err := parseNoiseMap(noise)
	if err != nil {
		return nil, err
	}
	readoutActive := false
	if len(readoutError) != 0 {
		if len(readoutError) != n {
			return nil, fmt.Errorf("%w: got %d entries for %d qubits", ErrReadoutLength, len(readoutError), n)
		}
		for q, pair := range readoutError {
			if err := checkProbability(pair[0]); err != nil {
				return nil, fmt.Errorf("readout qubit %d: %w", q, err)
			}
			if err := checkProbability(pair[1]); err != nil {
				return nil, fmt.Errorf("readout qubit %d: %w", q, err)
			}
			if pair[0] > 0 || pair[1] > 0 {
				readoutActive = true
			}
		}
	}
	return &NoisySimulator{
		nQubits:       n,
		sv:            sv,
		policy:        policy,
		global:        global,
		readout:       readoutError,
		readoutActive: readoutActive,
	}, nil
}

// NumQubits returns the register size.
func (ns *NoisySimulator) NumQubits() int { return ns.nQubits }

// Seed fixes the simulator's uniform source so noise draws and measurement
// sampling, and therefore shot histograms, are reproducible.
func (ns *NoisySimulator) Seed(seed int64) { ns.sv.Reseed(seed) }

// Opcodes returns the noisy stream; the caller must not modify it.
func (ns *NoisySimulator) Opcodes() []Opcode { return ns.opcodes }

// OriginalOpcodes returns the noise-free stream recorded in parallel.
func (ns *NoisySimulator) OriginalOpcodes() []Opcode { return ns.original }

// State returns ψ after the most recent ExecuteOnce; read-only view.
func (ns *NoisySimulator) State() []Complex { return ns.sv.Amplitudes }

// recordOp validates a gate, asks the policy for its trailing noise, and
// appends gate plus noise atomically. Nothing is appended on error.
func (ns *NoisySimulator) recordOp(tag GateTag, qubits []int, params []float64, dagger bool, controllers []int) error {
	want, ok := gateQubitCount[tag]
	if !ok {
		return fmt.Errorf("%w: tag %d", ErrUnknownOpcode, tag)
	}
	if len(qubits) != want {
		return fmt.Errorf("%w: %s takes %d qubits, got %d", ErrArity, tag, want, len(qubits))
	}
	if wantP := gateParamCount[tag]; len(params) != wantP {
		return fmt.Errorf("%w: %s takes %d parameters, got %d", ErrArity, tag, wantP, len(params))
	}
	if err := ns.sv.checkOperands(qubits, controllers); err != nil {
		return err
	}
	noise, err := ns.policy.noiseOps(ns.global, qubits, tag)
	if err != nil {
		return err
	}
	op := GateOp(tag, qubits, params, dagger, controllers)
	ns.opcodes = append(ns.opcodes, op)
	ns.opcodes = append(ns.opcodes, noise...)
	ns.original = append(ns.original, op)
	return nil
}

func (ns *NoisySimulator) record(tag GateTag, qubits []int, params []float64, opts []GateOption) error {
	var cfg gateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return ns.recordOp(tag, qubits, params, cfg.dagger, cfg.controllers)
}

// LoadOpcode records a gate by its name token, the generic form of the
// typed recorders below.
func (ns *NoisySimulator) LoadOpcode(name string, qubits []int, params []float64, dagger bool, controllers []int) error {
	tag, err := ParseGateName(name)
	if err != nil {
		return err
	}
	return ns.recordOp(tag, qubits, params, dagger, controllers)
}

func (ns *NoisySimulator) Identity(q int, opts ...GateOption) error {
	return ns.record(GateIdentity, []int{q}, nil, opts)
}

func (ns *NoisySimulator) Hadamard(q int, opts ...GateOption) error {
	return ns.record(GateHadamard, []int{q}, nil, opts)
}

// U22 records an arbitrary 2×2 unitary, flattened row-major into eight
// (re, im) parameters.
func (ns *NoisySimulator) U22(q int, u [4]Complex, opts ...GateOption) error {
	params := make([]float64, 0, 8)
	for _, e := range u {
		params = append(params, real(e), imag(e))
	}
	return ns.record(GateU22, []int{q}, params, opts)
}

func (ns *NoisySimulator) X(q int, opts ...GateOption) error {
	return ns.record(GateX, []int{q}, nil, opts)
}

func (ns *NoisySimulator) Y(q int, opts ...GateOption) error {
	return ns.record(GateY, []int{q}, nil, opts)
}

func (ns *NoisySimulator) Z(q int, opts ...GateOption) error {
	return ns.record(GateZ, []int{q}, nil, opts)
}

func (ns *NoisySimulator) S(q int, opts ...GateOption) error {
	return ns.record(GateS, []int{q}, nil, opts)
}

func (ns *NoisySimulator) T(q int, opts ...GateOption) error {
	return ns.record(GateT, []int{q}, nil, opts)
}

func (ns *NoisySimulator) SX(q int, opts ...GateOption) error {
	return ns.record(GateSX, []int{q}, nil, opts)
}

func (ns *NoisySimulator) RX(q int, theta float64, opts ...GateOption) error {
	return ns.record(GateRX, []int{q}, []float64{theta}, opts)
}

func (ns *NoisySimulator) RY(q int, theta float64, opts ...GateOption) error {
	return ns.record(GateRY, []int{q}, []float64{theta}, opts)
}

func (ns *NoisySimulator) RZ(q int, theta float64, opts ...GateOption) error {
	return ns.record(GateRZ, []int{q}, []float64{theta}, opts)
}

func (ns *NoisySimulator) U1(q int, lambda float64, opts ...GateOption) error {
	return ns.record(GateU1, []int{q}, []float64{lambda}, opts)
}

func (ns *NoisySimulator) U2(q int, phi, lambda float64, opts ...GateOption) error {
	return ns.record(GateU2, []int{q}, []float64{phi, lambda}, opts)
}

func (ns *NoisySimulator) U3(q int, theta, phi, lambda float64, opts ...GateOption) error {
	return ns.record(GateU3, []int{q}, []float64{theta, phi, lambda}, opts)
}

func (ns *NoisySimulator) RPhi90(q int, phi float64, opts ...GateOption) error {
	return ns.record(GateRPhi90, []int{q}, []float64{phi}, opts)
}

func (ns *NoisySimulator) RPhi180(q int, phi float64, opts ...GateOption) error {
	return ns.record(GateRPhi180, []int{q}, []float64{phi}, opts)
}

func (ns *NoisySimulator) RPhi(q int, theta, phi float64, opts ...GateOption) error {
	return ns.record(GateRPhi, []int{q}, []float64{theta, phi}, opts)
}

func (ns *NoisySimulator) CZ(q1, q2 int, opts ...GateOption) error {
	return ns.record(GateCZ, []int{q1, q2}, nil, opts)
}

func (ns *NoisySimulator) Swap(q1, q2 int, opts ...GateOption) error {
	return ns.record(GateSwap, []int{q1, q2}, nil, opts)
}

func (ns *NoisySimulator) ISwap(q1, q2 int, opts ...GateOption) error {
	return ns.record(GateISwap, []int{q1, q2}, nil, opts)
}

func (ns *NoisySimulator) XY(q1, q2 int, theta float64, opts ...GateOption) error {
	return ns.record(GateXY, []int{q1, q2}, []float64{theta}, opts)
}

func (ns *NoisySimulator) CNOT(control, target int, opts ...GateOption) error {
	return ns.record(GateCNOT, []int{control, target}, nil, opts)
}

func (ns *NoisySimulator) XX(q1, q2 int, theta float64, opts ...GateOption) error {
	return ns.record(GateXX, []int{q1, q2}, []float64{theta}, opts)
}

func (ns *NoisySimulator) YY(q1, q2 int, theta float64, opts ...GateOption) error {
	return ns.record(GateYY, []int{q1, q2}, []float64{theta}, opts)
}

func (ns *NoisySimulator) ZZ(q1, q2 int, theta float64, opts ...GateOption) error {
	return ns.record(GateZZ, []int{q1, q2}, []float64{theta}, opts)
}

func (ns *NoisySimulator) Phase2Q(q1, q2 int, theta1, theta2, thetaZZ float64, opts ...GateOption) error {
	return ns.record(GatePhase2Q, []int{q1, q2}, []float64{theta1, theta2, thetaZZ}, opts)
}

func (ns *NoisySimulator) UU15(q1, q2 int, params []float64, opts ...GateOption) error {
	return ns.record(GateUU15, []int{q1, q2}, params, opts)
}

func (ns *NoisySimulator) Toffoli(q1, q2, target int, opts ...GateOption) error {
	return ns.record(GateToffoli, []int{q1, q2, target}, nil, opts)
}

func (ns *NoisySimulator) CSwap(control, target1, target2 int, opts ...GateOption) error {
	return ns.record(GateCSwap, []int{control, target1, target2}, nil, opts)
}

// ExecuteOnce resets ψ to |0…0⟩ and replays the noisy opcode stream in
// insertion order.
func (ns *NoisySimulator) ExecuteOnce() error {
	ns.sv.InitZero(ns.nQubits)
	for i, op := range ns.opcodes {
		if err := ns.dispatch(op); err != nil {
			return fmt.Errorf("opcode %d: %w", i, err)
		}
	}
	return nil
}

func (ns *NoisySimulator) dispatch(op Opcode) error {
	if tag, ok := op.Noise(); ok {
		return ns.dispatchNoise(tag, op)
	}
	tag, ok := op.Gate()
	if !ok {
		return fmt.Errorf("%w: tag %d", ErrUnknownOpcode, op.Op)
	}
	sv, q, p, ctrl, dg := ns.sv, op.Qubits, op.Params, op.Controllers, op.Dagger
	switch tag {
	case GateIdentity:
		return sv.Identity(q[0], ctrl, dg)
	case GateHadamard:
		return sv.Hadamard(q[0], ctrl, dg)
	case GateU22:
		var u [4]Complex
		for i := range u {
			u[i] = complex(p[2*i], p[2*i+1])
		}
		return sv.U22(q[0], u, ctrl, dg)
	case GateX:
		return sv.X(q[0], ctrl, dg)
	case GateY:
		return sv.Y(q[0], ctrl, dg)
	case GateZ:
		return sv.Z(q[0], ctrl, dg)
	case GateS:
		return sv.S(q[0], ctrl, dg)
	case GateT:
		return sv.T(q[0], ctrl, dg)
	case GateSX:
		return sv.SX(q[0], ctrl, dg)
	case GateRX:
		return sv.RX(q[0], p[0], ctrl, dg)
	case GateRY:
		return sv.RY(q[0], p[0], ctrl, dg)
	case GateRZ:
		return sv.RZ(q[0], p[0], ctrl, dg)
	case GateU1:
		return sv.U1(q[0], p[0], ctrl, dg)
	case GateU2:
		return sv.U2(q[0], p[0], p[1], ctrl, dg)
	case GateU3:
		return sv.U3(q[0], p[0], p[1], p[2], ctrl, dg)
	case GateRPhi90:
		return sv.RPhi90(q[0], p[0], ctrl, dg)
	case GateRPhi180:
		return sv.RPhi180(q[0], p[0], ctrl, dg)
	case GateRPhi:
		return sv.RPhi(q[0], p[0], p[1], ctrl, dg)
	case GateCZ:
		return sv.CZ(q[0], q[1], ctrl, dg)
	case GateSwap:
		return sv.Swap(q[0], q[1], ctrl, dg)
	case GateISwap:
		return sv.ISwap(q[0], q[1], ctrl, dg)
	case GateXY:
		return sv.XY(q[0], q[1], p[0], ctrl, dg)
	case GateCNOT:
		return sv.CNOT(q[0], q[1], ctrl, dg)
	case GateXX:
		return sv.XX(q[0], q[1], p[0], ctrl, dg)
	case GateYY:
		return sv.YY(q[0], q[1], p[0], ctrl, dg)
	case GateZZ:
		return sv.ZZ(q[0], q[1], p[0], ctrl, dg)
	case GatePhase2Q:
		return sv.Phase2Q(q[0], q[1], p[0], p[1], p[2], ctrl, dg)
	case GateUU15:
		return sv.UU15(q[0], q[1], p, ctrl, dg)
	case GateToffoli:
		return sv.Toffoli(q[0], q[1], q[2], ctrl, dg)
	case GateCSwap:
		return sv.CSwap(q[0], q[1], q[2], ctrl, dg)
	}
	return fmt.Errorf("%w: tag %d", ErrUnknownOpcode, op.Op)
}

func (ns *NoisySimulator) dispatchNoise(tag NoiseTag, op Opcode) error {
	p := op.Params[0]
	switch tag {
	case NoiseDepolarizing:
		for _, q := range op.Qubits {
			if err := ns.sv.Depolarizing(q, p); err != nil {
				return err
			}
		}
	case NoiseDamping:
		for _, q := range op.Qubits {
			if err := ns.sv.AmplitudeDamping(q, p); err != nil {
				return err
			}
		}
	case NoiseBitFlip:
		for _, q := range op.Qubits {
			if err := ns.sv.BitFlip(q, p); err != nil {
				return err
			}
		}
	case NoisePhaseFlip:
		for _, q := range op.Qubits {
			if err := ns.sv.PhaseFlip(q, p); err != nil {
				return err
			}
		}
	case NoiseTwoQubitDepolarizing:
		if len(op.Qubits) != 2 {
			return fmt.Errorf("%w: twoqubit_depolarizing needs a qubit pair, got %d", ErrArity, len(op.Qubits))
		}
		return ns.sv.TwoQubitDepolarizing(op.Qubits[0], op.Qubits[1], p)
	default:
		return fmt.Errorf("%w: tag %d", ErrUnknownOpcode, op.Op)
	}
	return nil
}

// validatePlan enforces distinct in-range measurement qubits.
func (ns *NoisySimulator) validatePlan(qubits []int) error {
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= ns.nQubits {
			return fmt.Errorf("%w: measure qubit %d of %d", ErrQubitIndex, q, ns.nQubits)
		}
		if seen[q] {
			return fmt.Errorf("%w: measure qubit %d", ErrDuplicateQubit, q)
		}
		seen[q] = true
	}
	return nil
}

// Measure sets the measurement plan without executing anything.
func (ns *NoisySimulator) Measure(qubits []int) error {
	if err := ns.validatePlan(qubits); err != nil {
		return err
	}
	ns.measureQubits = append([]int(nil), qubits...)
	return nil
}

// MeasurePlan returns the currently configured measurement plan.
func (ns *NoisySimulator) MeasurePlan() []int { return ns.measureQubits }

// packBits extracts the plan qubits from a full basis index into a compact
// outcome index, plan order starting at bit 0.
func packBits(idx int, plan []int) int {
	out := 0
	for i, q := range plan {
		if idx&(1<<q) != 0 {
			out |= 1 << i
		}
	}
	return out
}

// sampleBasisIndex draws one outcome by cumulative-probability inversion.
func (ns *NoisySimulator) sampleBasisIndex() (int, error) {
	r := ns.sv.rng.Float64()
	for i, a := range ns.sv.Amplitudes {
		r -= absSqr(a)
		if r <= 0 {
			return i, nil
		}
	}
	return 0, ErrSamplerExhausted
}

// applyReadoutError flips each measured bit independently per the
// configured asymmetric flip probabilities.
func (ns *NoisySimulator) applyReadoutError(idx int) int {
	if !ns.readoutActive {
		return idx
	}
	for q := 0; q < ns.nQubits; q++ {
		r := ns.sv.rng.Float64()
		if idx&(1<<q) != 0 {
			if r < ns.readout[q][1] {
				idx &^= 1 << q
			}
		} else if r < ns.readout[q][0] {
			idx |= 1 << q
		}
	}
	return idx
}

// MeasureShots replays the program once per shot and accumulates a
// histogram over the compact outcome index of the given qubit subset.
func (ns *NoisySimulator) MeasureShots(qubits []int, shots int) (map[int]int, error) {
	if err := ns.Measure(qubits); err != nil {
		return nil, err
	}
	hist := make(map[int]int)
	for s := 0; s < shots; s++ {
		if err := ns.ExecuteOnce(); err != nil {
			return nil, err
		}
		idx, err := ns.sampleBasisIndex()
		if err != nil {
			return nil, err
		}
		idx = ns.applyReadoutError(idx)
		hist[packBits(idx, qubits)]++
	}
	return hist, nil
}

// MeasureShotsAll measures every qubit: outcomes are full n-bit indices.
func (ns *NoisySimulator) MeasureShotsAll(shots int) (map[int]int, error) {
	all := make([]int, ns.nQubits)
	for q := range all {
		all[q] = q
	}
	return ns.MeasureShots(all, shots)
}

// PMeasure returns the exact outcome distribution of the given qubit
// subset for the current ψ, without sampling.
func (ns *NoisySimulator) PMeasure(qubits []int) ([]float64, error) {
	if err := ns.validatePlan(qubits); err != nil {
		return nil, err
	}
	probs := make([]float64, 1<<len(qubits))
	for i, a := range ns.sv.Amplitudes {
		probs[packBits(i, qubits)] += absSqr(a)
	}
	return probs, nil
}

// Prob returns the probability that qubit q reads v (0 or 1) in ψ.
func (ns *NoisySimulator) Prob(q, v int) (float64, error) {
	if err := ns.sv.checkQubit(q); err != nil {
		return 0, err
	}
	if v != 0 && v != 1 {
		return 0, fmt.Errorf("%w: basis value %d", ErrArity, v)
	}
	p := 0.0
	bit := 1 << q
	for i, a := range ns.sv.Amplitudes {
		if (i&bit != 0) == (v == 1) {
			p += absSqr(a)
		}
	}
	return p, nil
}

// SortedOutcomes lists histogram keys in ascending order, for stable
// rendering of shot results.
func SortedOutcomes(hist map[int]int) []int {
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
