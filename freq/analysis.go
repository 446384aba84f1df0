package freq

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/lti/matutil"
)

// Bode returns the magnitude and phase (degrees, unwrapped along the
// frequency axis per channel) of the frequency response, together with the
// frequency vector used. A nil w requests the default grid.
func Bode(sys System, w []float64) (mag, phase *Grid, omega []float64) {
	if w == nil {
		w = DefaultVector([]System{sys}, AnalysisBode)
	}
	resp := FreqResp(sys, w)
	mag = newGrid(w, resp.Ny, resp.Nu)
	phase = newGrid(w, resp.Ny, resp.Nu)
	for k := 0; k < resp.Len(); k++ {
		for i := 0; i < resp.Ny; i++ {
			for j := 0; j < resp.Nu; j++ {
				h := resp.At(k, i, j)
				mag.set(k, i, j, cmplx.Abs(h))
				phase.set(k, i, j, cmplx.Phase(h)*180/math.Pi)
			}
		}
	}
	unwrap(phase)
	return mag, phase, w
}

// unwrap removes the artificial +-360 degree jumps the principal-value phase
// introduces, channel by channel along the frequency axis.
func unwrap(phase *Grid) {
	if phase.Len() == 0 {
		return
	}
	for i := 0; i < phase.Ny; i++ {
		for j := 0; j < phase.Nu; j++ {
			var offset float64
			prev := phase.At(0, i, j)
			for k := 1; k < phase.Len(); k++ {
				raw := phase.At(k, i, j)
				d := raw - prev
				prev = raw
				for d > 180 {
					offset -= 360
					d -= 360
				}
				for d < -180 {
					offset += 360
					d += 360
				}
				phase.set(k, i, j, raw+offset)
			}
		}
	}
}

// Nyquist returns the real and imaginary parts of the frequency response
// together with the frequency vector used. A nil w requests the default
// grid, which for Nyquist is padded by a decade on each side.
func Nyquist(sys System, w []float64) (re, im *Grid, omega []float64) {
	if w == nil {
		w = DefaultVector([]System{sys}, AnalysisNyquist)
	}
	resp := FreqResp(sys, w)
	re = newGrid(w, resp.Ny, resp.Nu)
	im = newGrid(w, resp.Ny, resp.Nu)
	for k := 0; k < resp.Len(); k++ {
		for i := 0; i < resp.Ny; i++ {
			for j := 0; j < resp.Nu; j++ {
				h := resp.At(k, i, j)
				re.set(k, i, j, real(h))
				im.set(k, i, j, imag(h))
			}
		}
	}
	return re, im, w
}

// Sigma returns the singular values of the transfer matrix at each
// frequency, sorted descending, as a (len(w) by min(ny, nu)) matrix, plus
// the frequency vector used. A nil w requests the default grid.
//
// The complex singular values are obtained from the real singular value
// decomposition of the realified matrix
//
// [Re(G)  -Im(G)]
// [Im(G)   Re(G)]
//
// whose spectrum is that of G with every value doubled.
func Sigma(sys System, w []float64) (sv *mat.Dense, omega []float64) {
	if w == nil {
		w = DefaultVector([]System{sys}, AnalysisSigma)
	}
	resp := FreqResp(sys, w)
	ny, nu := resp.Ny, resp.Nu
	rank := ny
	if nu < rank {
		rank = nu
	}
	sv = mat.NewDense(len(w), rank, nil)
	realified := mat.NewDense(2*ny, 2*nu, nil)
	for k := 0; k < resp.Len(); k++ {
		for i := 0; i < ny; i++ {
			for j := 0; j < nu; j++ {
				h := resp.At(k, i, j)
				realified.Set(i, j, real(h))
				realified.Set(ny+i, nu+j, real(h))
				realified.Set(i, nu+j, -imag(h))
				realified.Set(ny+i, j, imag(h))
			}
		}
		if matutil.NANORINF(realified) {
			// Unbounded response at this point, typically a pole.
			for r := 0; r < rank; r++ {
				sv.Set(k, r, math.Inf(1))
			}
			continue
		}
		var svd mat.SVD
		if ok := svd.Factorize(realified, mat.SVDNone); !ok {
			for r := 0; r < rank; r++ {
				sv.Set(k, r, math.Inf(1))
			}
			continue
		}
		values := svd.Values(nil)
		for r := 0; r < rank; r++ {
			sv.Set(k, r, values[2*r])
		}
	}
	return sv, w
}
