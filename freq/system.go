// Package freq computes frequency responses of linear time-invariant
// systems and the Bode, Nyquist and singular value views built on top of
// them, including automatic selection of a frequency grid from the pole and
// zero locations when the caller supplies none.
package freq

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// System is the LTI abstraction the frequency domain routines operate on.
// It is satisfied by both ssm.StateSpace and tf.TransferFunction.
type System interface {
	// Ninputs returns the number of inputs.
	Ninputs() int
	// Noutputs returns the number of outputs.
	Noutputs() int
	// SampleTime returns the sampling period: 0 for continuous time, -1
	// for discrete time with unspecified period, >0 for discrete time.
	SampleTime() float64
	// Poles returns the finite system poles.
	Poles() []complex128
	// Zeros returns the finite (transmission) zeros.
	Zeros() []complex128
	// At evaluates the transfer matrix at a complex point.
	At(s complex128) *mat.CDense
}

// Points maps real frequencies to the evaluation points of the system's
// frequency variable: iw for continuous time and exp(i w Ts) for discrete
// time, with Ts substituted to one when unspecified.
func Points(sys System, w []float64) []complex128 {
	pts := make([]complex128, len(w))
	ts := sys.SampleTime()
	switch {
	case ts == 0:
		for k, wk := range w {
			pts[k] = complex(0, wk)
		}
	default:
		if ts < 0 {
			ts = 1
		}
		for k, wk := range w {
			pts[k] = cmplx.Exp(complex(0, wk*ts))
		}
	}
	return pts
}

// Response is the frequency response tensor, indexed
// [frequency, output, input].
type Response struct {
	// Omega holds the frequency axis in rad/s.
	Omega []float64
	// Ny and Nu are the output and input counts.
	Ny, Nu int

	data []complex128
}

func newResponse(w []float64, ny, nu int) *Response {
	return &Response{
		Omega: w,
		Ny:    ny,
		Nu:    nu,
		data:  make([]complex128, len(w)*ny*nu),
	}
}

// Len returns the number of frequency points.
func (r *Response) Len() int { return len(r.Omega) }

// At returns the response of output i to input j at frequency index k.
func (r *Response) At(k, i, j int) complex128 {
	return r.data[(k*r.Ny+i)*r.Nu+j]
}

// Point returns the full transfer matrix at frequency index k. The returned
// matrix shares the tensor's backing storage.
func (r *Response) Point(k int) *mat.CDense {
	return mat.NewCDense(r.Ny, r.Nu, r.data[k*r.Ny*r.Nu:(k+1)*r.Ny*r.Nu])
}

func (r *Response) setPoint(k int, m *mat.CDense) {
	for i := 0; i < r.Ny; i++ {
		for j := 0; j < r.Nu; j++ {
			r.data[(k*r.Ny+i)*r.Nu+j] = m.At(i, j)
		}
	}
}

// Grid is a real valued view of the response tensor, indexed
// [frequency, output, input]. Bode and Nyquist results are returned as
// grids.
type Grid struct {
	// Omega holds the frequency axis in rad/s.
	Omega []float64
	// Ny and Nu are the output and input counts.
	Ny, Nu int

	data []float64
}

func newGrid(w []float64, ny, nu int) *Grid {
	return &Grid{
		Omega: w,
		Ny:    ny,
		Nu:    nu,
		data:  make([]float64, len(w)*ny*nu),
	}
}

// Len returns the number of frequency points.
func (g *Grid) Len() int { return len(g.Omega) }

// At returns the value for output i and input j at frequency index k.
func (g *Grid) At(k, i, j int) float64 {
	return g.data[(k*g.Ny+i)*g.Nu+j]
}

func (g *Grid) set(k, i, j int, v float64) {
	g.data[(k*g.Ny+i)*g.Nu+j] = v
}
