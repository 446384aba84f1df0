package freq

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/lti/ssm"
	"github.com/hammal/lti/tf"
)

const tol = 1e-9

func firstOrder(Ts float64) *ssm.StateSpace {
	A := mat.NewDense(1, 1, []float64{-1})
	B := mat.NewDense(1, 1, []float64{1})
	C := mat.NewDense(1, 1, []float64{1})
	return ssm.NewStateSpace(A, B, C, nil, Ts)
}

func mimo(Ts float64) *ssm.StateSpace {
	A := mat.NewDense(4, 4, []float64{
		-1, 2, 0, 1,
		0, -3, 1, 0,
		2, 0, -2, 1,
		1, 1, 0, -4,
	})
	B := mat.NewDense(4, 2, []float64{1, 0, 0, 1, 1, 1, 0, 0})
	C := mat.NewDense(2, 4, []float64{1, 0, 1, 0, 0, 1, 0, 1})
	D := mat.NewDense(2, 2, []float64{0, 0, 0, 1})
	return ssm.NewStateSpace(A, B, C, D, Ts)
}

func TestFreqRespFirstOrder(t *testing.T) {
	w := []float64{0, 1, 10}
	resp := FreqResp(firstOrder(ssm.Continuous), w)
	for k, wk := range w {
		want := 1 / complex(1, wk)
		if cmplx.Abs(resp.At(k, 0, 0)-want) > tol {
			t.Errorf("w=%v: got %v, want %v", wk, resp.At(k, 0, 0), want)
		}
	}
}

func TestFreqRespMatchesEvalfr(t *testing.T) {
	// The Hessenberg fast path must agree with the direct resolvent
	// evaluation at every point.
	sys := mimo(ssm.Continuous)
	w := Logspace(-2, 2, 40)
	resp := FreqResp(sys, w)
	for k, z := range Points(sys, w) {
		want := Evalfr(sys, z)
		for i := 0; i < resp.Ny; i++ {
			for j := 0; j < resp.Nu; j++ {
				if cmplx.Abs(resp.At(k, i, j)-want.At(i, j)) > tol {
					t.Fatalf("w=%v entry (%d,%d): got %v, want %v", w[k], i, j, resp.At(k, i, j), want.At(i, j))
				}
			}
		}
	}
}

func TestFreqRespDiscreteMapping(t *testing.T) {
	// For Ts = 1 the evaluation point at frequency w is z = exp(iw).
	sys := firstOrder(1)
	w := []float64{0.1, 0.5, 1, 2}
	resp := FreqResp(sys, w)
	for k, wk := range w {
		want := Evalfr(sys, cmplx.Exp(complex(0, wk))).At(0, 0)
		if cmplx.Abs(resp.At(k, 0, 0)-want) > tol {
			t.Errorf("w=%v: got %v, want %v", wk, resp.At(k, 0, 0), want)
		}
	}

	// An unspecified sampling period maps like Ts = 1.
	respU := FreqResp(firstOrder(ssm.Undefined), w)
	for k := range w {
		if cmplx.Abs(respU.At(k, 0, 0)-resp.At(k, 0, 0)) > tol {
			t.Errorf("w=%v: Ts=-1 gives %v, Ts=1 gives %v", w[k], respU.At(k, 0, 0), resp.At(k, 0, 0))
		}
	}
}

func TestFreqRespStaticGainBroadcast(t *testing.T) {
	D := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	sys := ssm.NewStaticGain(D, ssm.Continuous)
	w := []float64{0.1, 1, 10}
	resp := FreqResp(sys, w)
	for k := range w {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				if resp.At(k, i, j) != complex(D.At(i, j), 0) {
					t.Errorf("entry (%d,%d,%d): got %v, want %v", k, i, j, resp.At(k, i, j), D.At(i, j))
				}
			}
		}
	}
}

func TestFreqRespAtPoleIsInf(t *testing.T) {
	// Integrator: pole at the origin, so w = 0 is an unbounded sample.
	// The remaining points must still be computed.
	A := mat.NewDense(1, 1, []float64{0})
	B := mat.NewDense(1, 1, []float64{1})
	C := mat.NewDense(1, 1, []float64{1})
	sys := ssm.NewStateSpace(A, B, C, nil, ssm.Continuous)
	w := []float64{0, 1}
	resp := FreqResp(sys, w)
	if !math.IsInf(real(resp.At(0, 0, 0)), 1) {
		t.Errorf("response at the pole is %v, want +Inf", resp.At(0, 0, 0))
	}
	if cmplx.Abs(resp.At(1, 0, 0)-1/1i) > tol {
		t.Errorf("response at w=1 is %v, want %v", resp.At(1, 0, 0), 1/1i)
	}
}

func TestFreqRespIdempotent(t *testing.T) {
	sys := mimo(ssm.Continuous)
	w := Logspace(-1, 2, 30)
	first := FreqResp(sys, w)
	second := FreqResp(sys, w)
	for k := 0; k < first.Len(); k++ {
		for i := 0; i < first.Ny; i++ {
			for j := 0; j < first.Nu; j++ {
				if first.At(k, i, j) != second.At(k, i, j) {
					t.Fatalf("entry (%d,%d,%d) differs between identical calls", k, i, j)
				}
			}
		}
	}
}

func TestFreqRespTransferFunction(t *testing.T) {
	g := tf.NewSISO([]float64{1}, []float64{1, 1}, tf.Continuous)
	w := []float64{0, 1, 10}
	resp := FreqResp(g, w)
	for k, wk := range w {
		want := 1 / complex(1, wk)
		if cmplx.Abs(resp.At(k, 0, 0)-want) > tol {
			t.Errorf("w=%v: got %v, want %v", wk, resp.At(k, 0, 0), want)
		}
	}
}

func TestResponsePointSharesStorage(t *testing.T) {
	sys := firstOrder(ssm.Continuous)
	resp := FreqResp(sys, []float64{1, 2})
	m := resp.Point(1)
	if m.At(0, 0) != resp.At(1, 0, 0) {
		t.Errorf("Point(1) = %v, want %v", m.At(0, 0), resp.At(1, 0, 0))
	}
}
