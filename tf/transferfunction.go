package tf

import (
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sampling period markers, mirroring the state space conventions.
const (
	Continuous = 0.
	Undefined  = -1.
)

// TransferFunction is a matrix of scalar rational functions indexed
// [output][input], together with the sampling period Ts (0 continuous,
// -1 unspecified discrete, >0 discrete).
type TransferFunction struct {
	M  [][]Rational
	Ts float64
}

// NewTransferFunction creates a transfer function matrix and checks that the
// entry matrix is rectangular and non-empty.
func NewTransferFunction(m [][]Rational, Ts float64) *TransferFunction {
	if len(m) == 0 || len(m[0]) == 0 {
		panic(errors.New("Transfer function matrix is empty"))
	}
	width := len(m[0])
	for _, row := range m {
		if len(row) != width {
			panic(errors.New("Transfer function matrix is ragged"))
		}
	}
	return &TransferFunction{m, Ts}
}

// NewSISO creates a single-input single-output transfer function
// Num(s)/Den(s) with coefficients from the highest power down.
func NewSISO(num, den []float64, Ts float64) *TransferFunction {
	return NewTransferFunction([][]Rational{{NewRational(num, den)}}, Ts)
}

// Ninputs returns the number of inputs.
func (g *TransferFunction) Ninputs() int { return len(g.M[0]) }

// Noutputs returns the number of outputs.
func (g *TransferFunction) Noutputs() int { return len(g.M) }

// SampleTime returns the sampling period Ts.
func (g *TransferFunction) SampleTime() float64 { return g.Ts }

// IsContinuous reports whether the system evolves in continuous time.
func (g *TransferFunction) IsContinuous() bool { return g.Ts == Continuous }

// IsDiscrete reports whether the system evolves in discrete time.
func (g *TransferFunction) IsDiscrete() bool { return g.Ts != Continuous }

// Poles returns the union of the denominator roots of all entries.
func (g *TransferFunction) Poles() []complex128 {
	var poles []complex128
	for _, row := range g.M {
		for _, entry := range row {
			poles = append(poles, entry.Poles()...)
		}
	}
	return poles
}

// Zeros returns the union of the numerator roots of all entries.
func (g *TransferFunction) Zeros() []complex128 {
	var zeros []complex128
	for _, row := range g.M {
		for _, entry := range row {
			zeros = append(zeros, entry.Zeros()...)
		}
	}
	return zeros
}

// At evaluates every entry of the transfer function matrix at the complex
// point s.
func (g *TransferFunction) At(s complex128) *mat.CDense {
	res := mat.NewCDense(g.Noutputs(), g.Ninputs(), nil)
	for i, row := range g.M {
		for j, entry := range row {
			res.Set(i, j, entry.At(s))
		}
	}
	return res
}

// AtFreq evaluates a discrete-time transfer function at the real frequency
// w. With mapToUnitCircle set, w is a frequency in rad/s and the evaluation
// point is exp(i w Ts) (Ts substituted to one when unspecified); otherwise w
// is taken as a raw point on the real z axis. Either form is a usage error
// on a continuous-time system, where At with s = iw is the evaluation that
// makes sense.
func (g *TransferFunction) AtFreq(w float64, mapToUnitCircle bool) (*mat.CDense, error) {
	if g.IsContinuous() {
		return nil, errors.New("frequency evaluation on the unit circle requires a discrete-time system; use At(complex(0, w)) for continuous time")
	}
	if mapToUnitCircle {
		ts := g.Ts
		if ts < 0 {
			ts = 1
		}
		return g.At(cmplx.Exp(complex(0, w*ts))), nil
	}
	return g.At(complex(w, 0)), nil
}
