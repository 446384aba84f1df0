// Package ssm implements linear time-invariant state space models
//
// x'(t) = A x(t) + B u(t)
//
// y(t)  = C x(t) + D u(t)
//
// and, for sampled systems, the discrete-time analogue with x[k+1] on the
// left hand side. The package covers construction, pole and transmission
// zero extraction and evaluation of the transfer matrix
// G(s) = D + C (sI - A)^(-1) B at complex frequency points.
package ssm

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sampling period markers. Undefined means a discrete-time system whose
// period was never specified; evaluation substitutes a period of one.
const (
	Continuous = 0.
	Undefined  = -1.
)

// StateSpace represents the system
//
// x'(t) = A x(t) + B u(t)
//
// y(t)  = C x(t) + D u(t)
//
// with sampling period Ts (0 continuous, -1 unspecified discrete, >0
// discrete). A static gain (no states) is represented with nil A, B and C.
type StateSpace struct {
	// State Dynamics
	A *mat.Dense
	// Input matrix
	B *mat.Dense
	// Observation matrix
	C *mat.Dense
	// Feedthrough matrix
	D *mat.Dense
	// Sampling period
	Ts float64
}

// NewStateSpace creates a new state space model and checks that the system
// matrices have consistent dimensions. D may be nil in which case a zero
// feedthrough of matching size is inserted.
func NewStateSpace(A, B, C, D *mat.Dense, Ts float64) *StateSpace {
	n, nA := A.Dims()
	nB, m := B.Dims()
	p, nC := C.Dims()
	if n != nA || nB != n || nC != n {
		panic(errors.New("System Parameters don't match"))
	}
	if D == nil {
		D = mat.NewDense(p, m, nil)
	}
	pD, mD := D.Dims()
	if pD != p || mD != m {
		panic(errors.New("Feedthrough dimensions don't match B and C"))
	}
	return &StateSpace{A, B, C, D, Ts}
}

// NewStaticGain creates a state space model with zero states, i.e. the pure
// gain y = D u.
func NewStaticGain(D *mat.Dense, Ts float64) *StateSpace {
	if D == nil {
		panic(errors.New("Static gain requires a feedthrough matrix"))
	}
	return &StateSpace{nil, nil, nil, D, Ts}
}

// Order returns the number of states.
func (sys *StateSpace) Order() int {
	if sys.A == nil {
		return 0
	}
	n, _ := sys.A.Dims()
	return n
}

// Ninputs returns the number of inputs.
func (sys *StateSpace) Ninputs() int {
	_, m := sys.D.Dims()
	return m
}

// Noutputs returns the number of outputs.
func (sys *StateSpace) Noutputs() int {
	p, _ := sys.D.Dims()
	return p
}

// SampleTime returns the sampling period Ts.
func (sys *StateSpace) SampleTime() float64 { return sys.Ts }

// IsContinuous reports whether the system evolves in continuous time.
func (sys *StateSpace) IsContinuous() bool { return sys.Ts == Continuous }

// IsDiscrete reports whether the system evolves in discrete time.
func (sys *StateSpace) IsDiscrete() bool { return sys.Ts != Continuous }

// Poles returns the system poles, i.e. the eigenvalues of A.
func (sys *StateSpace) Poles() []complex128 {
	if sys.Order() == 0 {
		return nil
	}
	var eig mat.Eigen
	if ok := eig.Factorize(sys.A, mat.EigenNone); !ok {
		panic(errors.New("Eigendecomposition of the state matrix failed"))
	}
	return eig.Values(nil)
}

// Zeros returns the transmission zeros for square systems with invertible
// feedthrough, computed as the eigenvalues of A - B D^(-1) C. For other
// systems (including the common D = 0 case) no zeros are reported; the
// automatic frequency grid then falls back on the poles alone.
func (sys *StateSpace) Zeros() []complex128 {
	if sys.Order() == 0 || sys.Ninputs() != sys.Noutputs() {
		return nil
	}
	var dinv mat.Dense
	if err := dinv.Inverse(sys.D); err != nil {
		return nil
	}
	var dc, bdc, M mat.Dense
	dc.Mul(&dinv, sys.C)
	bdc.Mul(sys.B, &dc)
	M.Sub(sys.A, &bdc)
	var eig mat.Eigen
	if ok := eig.Factorize(&M, mat.EigenNone); !ok {
		return nil
	}
	return eig.Values(nil)
}
