package freq

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/lti/ssm"
	"github.com/hammal/lti/tf"
)

func TestBodeMatchesFreqResp(t *testing.T) {
	sys := mimo(ssm.Continuous)
	w := Logspace(-2, 2, 50)
	mag, phase, _ := Bode(sys, w)
	resp := FreqResp(sys, w)
	for k := 0; k < resp.Len(); k++ {
		for i := 0; i < resp.Ny; i++ {
			for j := 0; j < resp.Nu; j++ {
				h := resp.At(k, i, j)
				if math.Abs(mag.At(k, i, j)-cmplx.Abs(h)) > tol {
					t.Fatalf("magnitude (%d,%d,%d) mismatch", k, i, j)
				}
				// Unwrapping only ever shifts by whole turns.
				d := phase.At(k, i, j) - cmplx.Phase(h)*180/math.Pi
				if math.Abs(d-360*math.Round(d/360)) > tol {
					t.Fatalf("phase (%d,%d,%d) is not a 360 degree shift of the principal value", k, i, j)
				}
			}
		}
	}
}

func TestBodePhaseUnwrap(t *testing.T) {
	// G(s) = 1/(s+1)^3 rolls off to -270 degrees; the principal value
	// wraps at -180 but the unwrapped phase must stay continuous.
	g := tf.NewSISO([]float64{1}, []float64{1, 3, 3, 1}, tf.Continuous)
	w := Logspace(-2, 3, 300)
	_, phase, _ := Bode(g, w)
	for k := 1; k < phase.Len(); k++ {
		if math.Abs(phase.At(k, 0, 0)-phase.At(k-1, 0, 0)) > 180 {
			t.Fatalf("phase jumps by %v degrees at w=%v", phase.At(k, 0, 0)-phase.At(k-1, 0, 0), w[k])
		}
	}
	last := phase.At(phase.Len()-1, 0, 0)
	if math.Abs(last-(-270)) > 5 {
		t.Errorf("high frequency phase is %v, want about -270", last)
	}
}

func TestBodeEmptyFrequencyVector(t *testing.T) {
	// A degenerate empty axis is still a valid axis.
	mag, phase, w := Bode(firstOrder(ssm.Continuous), []float64{})
	if len(w) != 0 || mag.Len() != 0 || phase.Len() != 0 {
		t.Errorf("got %d frequencies, %d magnitudes, %d phases, want empty", len(w), mag.Len(), phase.Len())
	}
}

func TestNyquistMatchesFreqResp(t *testing.T) {
	sys := firstOrder(ssm.Continuous)
	w := []float64{0.1, 1, 10}
	re, im, _ := Nyquist(sys, w)
	resp := FreqResp(sys, w)
	for k := range w {
		h := resp.At(k, 0, 0)
		if math.Abs(re.At(k, 0, 0)-real(h)) > tol || math.Abs(im.At(k, 0, 0)-imag(h)) > tol {
			t.Errorf("w=%v: got (%v, %v), want %v", w[k], re.At(k, 0, 0), im.At(k, 0, 0), h)
		}
	}
}

func TestSigmaSISOIsMagnitude(t *testing.T) {
	// For a SISO system the only singular value is |G(iw)|.
	sys := firstOrder(ssm.Continuous)
	w := Logspace(-1, 2, 60)
	sv, _ := Sigma(sys, w)
	resp := FreqResp(sys, w)
	for k := range w {
		if math.Abs(sv.At(k, 0)-cmplx.Abs(resp.At(k, 0, 0))) > tol {
			t.Errorf("w=%v: sigma=%v, |G|=%v", w[k], sv.At(k, 0), cmplx.Abs(resp.At(k, 0, 0)))
		}
	}
}

func TestSigmaSortedDescending(t *testing.T) {
	sys := mimo(ssm.Continuous)
	w := Logspace(-2, 2, 40)
	sv, _ := Sigma(sys, w)
	_, rank := sv.Dims()
	if rank != 2 {
		t.Fatalf("rank = %d, want min(ny, nu) = 2", rank)
	}
	for k := range w {
		for r := 1; r < rank; r++ {
			if sv.At(k, r) > sv.At(k, r-1)+tol {
				t.Fatalf("w=%v: singular values not descending: %v > %v", w[k], sv.At(k, r), sv.At(k, r-1))
			}
		}
	}
}

func TestSigmaStaticGain(t *testing.T) {
	D := mat.NewDense(2, 2, []float64{3, 0, 0, 1})
	sys := ssm.NewStaticGain(D, ssm.Continuous)
	w := []float64{0.1, 1, 10}
	sv, _ := Sigma(sys, w)
	for k := range w {
		if math.Abs(sv.At(k, 0)-3) > tol || math.Abs(sv.At(k, 1)-1) > tol {
			t.Errorf("w=%v: sigma = (%v, %v), want (3, 1)", w[k], sv.At(k, 0), sv.At(k, 1))
		}
		// The largest singular value dominates the gain in any input
		// direction, here the first basis vector with gain 3.
		if sv.At(k, 0) < 3-tol {
			t.Errorf("w=%v: largest singular value %v below induced norm bound 3", w[k], sv.At(k, 0))
		}
	}
}
