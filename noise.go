package noisim

import (
	"fmt"
	"math"
)

// Stochastic channels. Each call consumes exactly one uniform draw for the
// branch choice (amplitude damping and reset draw once as well); the Pauli
// branches reuse the gate catalogue with empty controller sets.

// Depolarizing applies X, Y or Z on q, each with probability p/3.
func (s *StateVector) Depolarizing(q int, p float64) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	if err := checkProbability(p); err != nil {
		return err
	}
	r := s.rng.Float64()
	if r >= p {
		return nil
	}
	switch {
	case r < p/3:
		return s.X(q, nil, false)
	case r < 2*p/3:
		return s.Y(q, nil, false)
	default:
		return s.Z(q, nil, false)
	}
}

// BitFlip applies X on q with probability p.
func (s *StateVector) BitFlip(q int, p float64) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	if err := checkProbability(p); err != nil {
		return err
	}
	if s.rng.Float64() < p {
		return s.X(q, nil, false)
	}
	return nil
}

// PhaseFlip applies Z on q with probability p.
func (s *StateVector) PhaseFlip(q int, p float64) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	if err := checkProbability(p); err != nil {
		return err
	}
	if s.rng.Float64() < p {
		return s.Z(q, nil, false)
	}
	return nil
}

// TwoQubitDepolarizing applies one of the fifteen non-identity P⊗P pairs,
// each with probability p/15. The selected index k in [1,15] decodes as
// k%4 on q1 and k/4 on q2 with 0,1,2,3 ↔ I,X,Y,Z.
func (s *StateVector) TwoQubitDepolarizing(q1, q2 int, p float64) error {
	if err := s.checkOperands([]int{q1, q2}, nil); err != nil {
		return err
	}
	if err := checkProbability(p); err != nil {
		return err
	}
	r := s.rng.Float64()
	if r >= p {
		return nil
	}
	k := int(15*r/p) + 1
	if k > 15 {
		k = 15
	}
	if err := s.applyPauli(q1, k%4); err != nil {
		return err
	}
	return s.applyPauli(q2, k/4)
}

func (s *StateVector) applyPauli(q, which int) error {
	switch which {
	case 0:
		return nil
	case 1:
		return s.X(q, nil, false)
	case 2:
		return s.Y(q, nil, false)
	case 3:
		return s.Z(q, nil, false)
	}
	return fmt.Errorf("%w: pauli selector %d", ErrUnknownOpcode, which)
}

// AmplitudeDamping applies the energy-loss channel with Kraus operators
// E0 = diag(1, √(1−p)) and E1 = |0⟩⟨1|·√p. The decay branch fires with
// probability p1 = p·Σ_{bit_q=1}|ψ[i]|²; both branches renormalize.
func (s *StateVector) AmplitudeDamping(q int, p float64) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	if err := checkProbability(p); err != nil {
		return err
	}

	bit := 1 << q
	p0, p1 := 0.0, 0.0
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			w := absSqr(a)
			p1 += p * w
			p0 += (1-p)*w + absSqr(s.Amplitudes[i&^bit])
		}
	}
	if math.Abs(p0+p1-1) > krausTol {
		return fmt.Errorf("%w: p0=%g p1=%g", ErrKrausSum, p0, p1)
	}

	if s.rng.Float64() < p1 {
		// E1: transfer every |1⟩ amplitude onto its |0⟩ sibling.
		for i, a := range s.Amplitudes {
			if i&bit != 0 {
				s.Amplitudes[i&^bit] = a
				s.Amplitudes[i] = 0
			}
		}
	} else {
		// E0: scale the |1⟩ amplitudes by √(1−p).
		scale := complex(math.Sqrt(1-p), 0)
		for i := range s.Amplitudes {
			if i&bit != 0 {
				s.Amplitudes[i] *= scale
			}
		}
	}
	s.Renormalize()
	return nil
}

// Reset forces qubit q to |0⟩. It is amplitude damping with p = 1: the
// decay branch transfers the |1⟩ amplitudes onto their |0⟩ siblings, the
// no-decay branch projects onto the bit_q = 0 subspace.
func (s *StateVector) Reset(q int) error {
	return s.AmplitudeDamping(q, 1)
}
