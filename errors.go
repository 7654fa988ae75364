package noisim

import "errors"

var (
	// ErrTooManyQubits indicates a register size outside the dense backend's
	// range of 1..MaxQubits.
	ErrTooManyQubits = errors.New("noisim: qubit count out of range (1..30)")
	// ErrQubitIndex indicates a qubit index outside the register.
	ErrQubitIndex = errors.New("noisim: qubit index out of range")
	// ErrProbability indicates a probability outside [0,1].
	ErrProbability = errors.New("noisim: probability outside [0,1]")
	// ErrControllerOverlap indicates a target qubit reused as a controller.
	ErrControllerOverlap = errors.New("noisim: controller set overlaps gate qubits")
	// ErrDuplicateQubit indicates a qubit repeated in an operand list.
	ErrDuplicateQubit = errors.New("noisim: duplicate qubit in operand list")
	// ErrArity indicates a qubit or parameter count that does not match the gate.
	ErrArity = errors.New("noisim: operand count does not match gate")
	// ErrReadoutLength indicates a readout-error table whose length is not n.
	ErrReadoutLength = errors.New("noisim: readout-error table length does not match qubit count")
	// ErrAngleSyntax indicates an angle token that is neither a number nor
	// a rational multiple of pi.
	ErrAngleSyntax = errors.New("noisim: malformed angle expression")
	// ErrUnknownGate indicates an unrecognized gate name token.
	ErrUnknownGate = errors.New("noisim: unknown gate name")
	// ErrUnknownNoise indicates an unrecognized noise name token.
	ErrUnknownNoise = errors.New("noisim: unknown noise name")
	// ErrUnknownOpcode indicates an opcode tag with no dispatch case at replay.
	ErrUnknownOpcode = errors.New("noisim: unknown opcode tag")
	// ErrKrausSum indicates Kraus branch probabilities that do not sum to 1.
	ErrKrausSum = errors.New("noisim: Kraus branch probabilities do not sum to 1")
	// ErrSamplerExhausted indicates sampling from an unnormalized state.
	ErrSamplerExhausted = errors.New("noisim: sampler exhausted amplitudes; state not normalized")
)
