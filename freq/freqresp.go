package freq

import (
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/lti/matutil"
	"github.com/hammal/lti/ssm"
	"github.com/hammal/lti/tf"
)

var (
	_ System = (*ssm.StateSpace)(nil)
	_ System = (*tf.TransferFunction)(nil)
)

// Evalfr evaluates the transfer matrix of sys at a single complex point. For
// state space systems a point coinciding with a pole yields a matrix with
// +Inf in every entry rather than an error.
func Evalfr(sys System, s complex128) *mat.CDense {
	return sys.At(s)
}

// FreqResp evaluates the transfer matrix of sys across the frequency vector
// w (rad/s) and returns the response tensor. A nil w requests the default
// grid derived from the system's poles and zeros.
//
// State space systems are first reduced to upper Hessenberg form so that
// each point costs a single O(n^2) shifted solve; transfer function matrices
// are evaluated entry by entry. Points where the resolvent is singular come
// back as all-+Inf matrices and do not abort the sweep.
func FreqResp(sys System, w []float64) *Response {
	if w == nil {
		w = DefaultVector([]System{sys}, AnalysisBode)
	}
	pts := Points(sys, w)
	res := newResponse(w, sys.Noutputs(), sys.Ninputs())
	switch s := sys.(type) {
	case *ssm.StateSpace:
		solver := newHessSolver(s.Hessenberg())
		for k, z := range pts {
			res.setPoint(k, solver.At(z))
		}
	default:
		for k, z := range pts {
			res.setPoint(k, sys.At(z))
		}
	}
	return res
}

// hessSolver evaluates G(z) = D + C (zI - H)^(-1) B for a system already in
// upper Hessenberg form. The shifted matrix zI - H is Hessenberg as well, so
// Gaussian elimination with pivoting between adjacent rows reduces it in
// O(n^2); the work buffers are reused across frequency points.
type hessSolver struct {
	sys       *ssm.StateSpace
	n, ny, nu int
	m         []complex128
	x         []complex128
}

func newHessSolver(sys *ssm.StateSpace) *hessSolver {
	n := sys.Order()
	ny := sys.Noutputs()
	nu := sys.Ninputs()
	return &hessSolver{
		sys: sys,
		n:   n,
		ny:  ny,
		nu:  nu,
		m:   make([]complex128, n*n),
		x:   make([]complex128, n*nu),
	}
}

// At evaluates the transfer matrix at the point z. A singular shifted matrix
// yields an all-+Inf result.
func (h *hessSolver) At(z complex128) *mat.CDense {
	n, ny, nu := h.n, h.ny, h.nu
	res := mat.NewCDense(ny, nu, nil)
	if n == 0 {
		for i := 0; i < ny; i++ {
			for j := 0; j < nu; j++ {
				res.Set(i, j, complex(h.sys.D.At(i, j), 0))
			}
		}
		return res
	}

	// m = zI - H, x = B
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h.m[i*n+j] = -complex(h.sys.A.At(i, j), 0)
		}
		h.m[i*n+i] += z
		for j := 0; j < nu; j++ {
			h.x[i*nu+j] = complex(h.sys.B.At(i, j), 0)
		}
	}

	// Forward elimination. Only the subdiagonal entry of each column is
	// nonzero below the pivot, so pivoting between adjacent rows suffices.
	for i := 0; i < n-1; i++ {
		if cmplx.Abs(h.m[(i+1)*n+i]) > cmplx.Abs(h.m[i*n+i]) {
			for j := i; j < n; j++ {
				h.m[i*n+j], h.m[(i+1)*n+j] = h.m[(i+1)*n+j], h.m[i*n+j]
			}
			for j := 0; j < nu; j++ {
				h.x[i*nu+j], h.x[(i+1)*nu+j] = h.x[(i+1)*nu+j], h.x[i*nu+j]
			}
		}
		piv := h.m[i*n+i]
		if piv == 0 {
			return matutil.InfC(ny, nu)
		}
		f := h.m[(i+1)*n+i] / piv
		if f != 0 {
			for j := i; j < n; j++ {
				h.m[(i+1)*n+j] -= f * h.m[i*n+j]
			}
			for j := 0; j < nu; j++ {
				h.x[(i+1)*nu+j] -= f * h.x[i*nu+j]
			}
		}
	}

	// Back substitution.
	for i := n - 1; i >= 0; i-- {
		piv := h.m[i*n+i]
		if piv == 0 {
			return matutil.InfC(ny, nu)
		}
		for j := 0; j < nu; j++ {
			sum := h.x[i*nu+j]
			for l := i + 1; l < n; l++ {
				sum -= h.m[i*n+l] * h.x[l*nu+j]
			}
			h.x[i*nu+j] = sum / piv
		}
	}

	// G = D + C X
	for i := 0; i < ny; i++ {
		for j := 0; j < nu; j++ {
			sum := complex(h.sys.D.At(i, j), 0)
			for l := 0; l < n; l++ {
				sum += complex(h.sys.C.At(i, l), 0) * h.x[l*nu+j]
			}
			res.Set(i, j, sum)
		}
	}
	return res
}
