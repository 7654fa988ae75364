// Package noisim is a dense state-vector simulator for noisy quantum
// circuits.
//
// What:
//
//   - StateVector evolves 2^n complex128 amplitudes under 1- and 2-qubit
//     unitaries with optional multi-qubit control sets, plus stochastic
//     noise channels (depolarizing, bit flip, phase flip, two-qubit
//     depolarizing) and amplitude damping as an explicit Kraus step.
//   - NoisySimulator records a user program as a flat opcode stream and
//     appends noise opcodes after every gate according to the configured
//     policy: global, gate-dependent, or gate-and-qubit-specific (the
//     latter models crosstalk from 1-qubit gates onto partner qubits).
//   - MeasureShots replays the stream once per shot, samples a
//     computational-basis outcome by cumulative-probability inversion,
//     optionally perturbs it with a per-qubit readout-error model, and
//     accumulates a histogram over the measured qubit subset.
//
// Bit q of a basis index is the value of qubit q; qubit 0 is bit 0. The
// compact measurement index packs the measured qubits in the given order
// starting at bit 0.
//
// A simulator owns its state vector, opcode stream, and random source; it
// is not safe for concurrent use, but independent instances may run in
// parallel. Seed makes shot histograms reproducible bit-for-bit.
//
// Errors:
//
//   - ErrQubitIndex, ErrProbability, ErrControllerOverlap, ErrDuplicateQubit,
//     ErrReadoutLength, ErrArity, ErrTooManyQubits: invalid arguments,
//     reported at recording time and leaving the opcode stream unchanged.
//   - ErrUnknownGate, ErrUnknownNoise: unrecognized name tokens.
//   - ErrUnknownOpcode, ErrKrausSum, ErrSamplerExhausted: replay-time
//     failures; the state vector is undefined afterwards.
package noisim
