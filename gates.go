package noisim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Gate catalogue: each named gate materializes its 2×2 or 4×4 matrix (or
// expands into controlled 1-/2-qubit applications for the 3-qubit gates)
// and hands it to the amplitude kernel. Every method takes the global
// controller set and a dagger flag; dagger applies the conjugate transpose.

const invSqrt2 = 1.0 / math.Sqrt2

// Identity validates its operands and leaves the state untouched.
func (s *StateVector) Identity(q int, controllers []int, dagger bool) error {
	return s.checkOperands([]int{q}, controllers)
}

func (s *StateVector) Hadamard(q int, controllers []int, dagger bool) error {
	h := complex(invSqrt2, 0)
	return s.apply1Q(q, [4]Complex{h, h, h, -h}, controllers, dagger)
}

// U22 applies an arbitrary row-major 2×2 unitary.
func (s *StateVector) U22(q int, u [4]Complex, controllers []int, dagger bool) error {
	return s.apply1Q(q, u, controllers, dagger)
}

func (s *StateVector) X(q int, controllers []int, dagger bool) error {
	return s.apply1Q(q, [4]Complex{0, 1, 1, 0}, controllers, dagger)
}

func (s *StateVector) Y(q int, controllers []int, dagger bool) error {
	return s.apply1Q(q, [4]Complex{0, -1i, 1i, 0}, controllers, dagger)
}

func (s *StateVector) Z(q int, controllers []int, dagger bool) error {
	return s.apply1QPhase(q, -1, controllers, dagger)
}

func (s *StateVector) S(q int, controllers []int, dagger bool) error {
	return s.apply1QPhase(q, 1i, controllers, dagger)
}

func (s *StateVector) T(q int, controllers []int, dagger bool) error {
	return s.apply1QPhase(q, cmplx.Exp(complex(0, math.Pi/4)), controllers, dagger)
}

func (s *StateVector) SX(q int, controllers []int, dagger bool) error {
	return s.apply1Q(q, [4]Complex{
		0.5 + 0.5i, 0.5 - 0.5i,
		0.5 - 0.5i, 0.5 + 0.5i,
	}, controllers, dagger)
}

func (s *StateVector) RX(q int, theta float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return s.apply1Q(q, [4]Complex{c, js, js, c}, controllers, dagger)
}

func (s *StateVector) RY(q int, theta float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	return s.apply1Q(q, [4]Complex{c, -sn, sn, c}, controllers, dagger)
}

func (s *StateVector) RZ(q int, theta float64, controllers []int, dagger bool) error {
	p := cmplx.Exp(complex(0, theta/2))
	return s.apply1Q(q, [4]Complex{conj(p), 0, 0, p}, controllers, dagger)
}

func (s *StateVector) U1(q int, lambda float64, controllers []int, dagger bool) error {
	return s.apply1QPhase(q, cmplx.Exp(complex(0, lambda)), controllers, dagger)
}

func (s *StateVector) U2(q int, phi, lambda float64, controllers []int, dagger bool) error {
	el := cmplx.Exp(complex(0, lambda))
	ep := cmplx.Exp(complex(0, phi))
	h := complex(invSqrt2, 0)
	return s.apply1Q(q, [4]Complex{h, -h * el, h * ep, h * ep * el}, controllers, dagger)
}

func (s *StateVector) U3(q int, theta, phi, lambda float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	el := cmplx.Exp(complex(0, lambda))
	ep := cmplx.Exp(complex(0, phi))
	return s.apply1Q(q, [4]Complex{c, -el * sn, ep * sn, ep * el * c}, controllers, dagger)
}

// RPhi rotates by theta around the axis cos(phi)·X + sin(phi)·Y.
func (s *StateVector) RPhi(q int, theta, phi float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta/2), 0)
	sn := math.Sin(theta / 2)
	off := complex(0, -sn) * cmplx.Exp(complex(0, -phi))
	off2 := complex(0, -sn) * cmplx.Exp(complex(0, phi))
	return s.apply1Q(q, [4]Complex{c, off, off2, c}, controllers, dagger)
}

func (s *StateVector) RPhi90(q int, phi float64, controllers []int, dagger bool) error {
	return s.RPhi(q, math.Pi/2, phi, controllers, dagger)
}

func (s *StateVector) RPhi180(q int, phi float64, controllers []int, dagger bool) error {
	return s.RPhi(q, math.Pi, phi, controllers, dagger)
}

func (s *StateVector) CZ(q1, q2 int, controllers []int, dagger bool) error {
	// diag(1,1,1,−1): a phase on |11⟩, so q1 can join the control mask.
	if err := s.checkOperands([]int{q1, q2}, controllers); err != nil {
		return err
	}
	s.applyPhase(q2, -1, controlMask(controllers)|1<<q1, dagger)
	return nil
}

func (s *StateVector) Swap(q1, q2 int, controllers []int, dagger bool) error {
	return s.apply2Q(q1, q2, [16]Complex{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}, controllers, dagger)
}

func (s *StateVector) ISwap(q1, q2 int, controllers []int, dagger bool) error {
	return s.apply2Q(q1, q2, [16]Complex{
		1, 0, 0, 0,
		0, 0, 1i, 0,
		0, 1i, 0, 0,
		0, 0, 0, 1,
	}, controllers, dagger)
}

// XY applies exp(−iθ(X⊗X+Y⊗Y)/2), a number-conserving rotation in the
// {|01⟩,|10⟩} subspace.
func (s *StateVector) XY(q1, q2 int, theta float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta), 0)
	js := complex(0, -math.Sin(theta))
	return s.apply2Q(q1, q2, [16]Complex{
		1, 0, 0, 0,
		0, c, js, 0,
		0, js, c, 0,
		0, 0, 0, 1,
	}, controllers, dagger)
}

// CNOT applies X on target controlled by control; the pair joins any global
// controller set.
func (s *StateVector) CNOT(control, target int, controllers []int, dagger bool) error {
	if err := s.checkOperands([]int{control, target}, controllers); err != nil {
		return err
	}
	return s.X(target, append([]int{control}, controllers...), dagger)
}

// XX applies exp(−iθ/2·X⊗X).
func (s *StateVector) XX(q1, q2 int, theta float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return s.apply2Q(q1, q2, [16]Complex{
		c, 0, 0, js,
		0, c, js, 0,
		0, js, c, 0,
		js, 0, 0, c,
	}, controllers, dagger)
}

// YY applies exp(−iθ/2·Y⊗Y).
func (s *StateVector) YY(q1, q2 int, theta float64, controllers []int, dagger bool) error {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, math.Sin(theta/2))
	return s.apply2Q(q1, q2, [16]Complex{
		c, 0, 0, js,
		0, c, -js, 0,
		0, -js, c, 0,
		js, 0, 0, c,
	}, controllers, dagger)
}

// ZZ applies exp(−iθ/2·Z⊗Z).
func (s *StateVector) ZZ(q1, q2 int, theta float64, controllers []int, dagger bool) error {
	p := cmplx.Exp(complex(0, theta/2))
	return s.apply2Q(q1, q2, [16]Complex{
		conj(p), 0, 0, 0,
		0, p, 0, 0,
		0, 0, p, 0,
		0, 0, 0, conj(p),
	}, controllers, dagger)
}

// Phase2Q applies diag(1, e^{iθ1}, e^{iθ2}, e^{i(θ1+θ2+θzz)}) over
// (|00⟩,|01⟩,|10⟩,|11⟩) with qubit q1 as the low bit.
func (s *StateVector) Phase2Q(q1, q2 int, theta1, theta2, thetaZZ float64, controllers []int, dagger bool) error {
	e1 := cmplx.Exp(complex(0, theta1))
	e2 := cmplx.Exp(complex(0, theta2))
	ezz := cmplx.Exp(complex(0, thetaZZ))
	return s.apply2Q(q1, q2, [16]Complex{
		1, 0, 0, 0,
		0, e1, 0, 0,
		0, 0, e2, 0,
		0, 0, 0, e1 * e2 * ezz,
	}, controllers, dagger)
}

// UU15 applies a generic two-qubit unitary through its 15-parameter
// decomposition: local U3 pair, XX·YY·ZZ core, local U3 pair.
func (s *StateVector) UU15(q1, q2 int, p []float64, controllers []int, dagger bool) error {
	if len(p) != 15 {
		return fmt.Errorf("%w: UU15 takes 15 parameters, got %d", ErrArity, len(p))
	}
	if err := s.checkOperands([]int{q1, q2}, controllers); err != nil {
		return err
	}
	steps := []func() error{
		func() error { return s.U3(q1, p[0], p[1], p[2], controllers, dagger) },
		func() error { return s.U3(q2, p[3], p[4], p[5], controllers, dagger) },
		func() error { return s.XX(q1, q2, p[6], controllers, dagger) },
		func() error { return s.YY(q1, q2, p[7], controllers, dagger) },
		func() error { return s.ZZ(q1, q2, p[8], controllers, dagger) },
		func() error { return s.U3(q1, p[9], p[10], p[11], controllers, dagger) },
		func() error { return s.U3(q2, p[12], p[13], p[14], controllers, dagger) },
	}
	if dagger {
		for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
			steps[i], steps[j] = steps[j], steps[i]
		}
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Toffoli applies X on target controlled by q1 and q2.
func (s *StateVector) Toffoli(q1, q2, target int, controllers []int, dagger bool) error {
	if err := s.checkOperands([]int{q1, q2, target}, controllers); err != nil {
		return err
	}
	return s.X(target, append([]int{q1, q2}, controllers...), dagger)
}

// CSwap swaps target1 and target2 controlled by control.
func (s *StateVector) CSwap(control, target1, target2 int, controllers []int, dagger bool) error {
	if err := s.checkOperands([]int{control, target1, target2}, controllers); err != nil {
		return err
	}
	return s.Swap(target1, target2, append([]int{control}, controllers...), dagger)
}

func (s *StateVector) apply1Q(q int, u [4]Complex, controllers []int, dagger bool) error {
	if err := s.checkOperands([]int{q}, controllers); err != nil {
		return err
	}
	s.applyU22(q, u, controlMask(controllers), dagger)
	return nil
}

func (s *StateVector) apply1QPhase(q int, phase Complex, controllers []int, dagger bool) error {
	if err := s.checkOperands([]int{q}, controllers); err != nil {
		return err
	}
	s.applyPhase(q, phase, controlMask(controllers), dagger)
	return nil
}

func (s *StateVector) apply2Q(q1, q2 int, u [16]Complex, controllers []int, dagger bool) error {
	if err := s.checkOperands([]int{q1, q2}, controllers); err != nil {
		return err
	}
	s.applyU44(q1, q2, u, controlMask(controllers), dagger)
	return nil
}
