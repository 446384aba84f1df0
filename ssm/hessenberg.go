package ssm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/lti/matutil"
)

// Hessenberg returns an equivalent state space model whose state matrix is
// upper Hessenberg, obtained through the orthogonal similarity
//
// H = Q^T A Q,  B -> Q^T B,  C -> C Q
//
// with D and Ts unchanged. Shifted solves (sI - H) X = B then cost O(n^2)
// per frequency point instead of a full O(n^3) factorization, which pays off
// when the same system is evaluated across a long frequency sweep. The
// original system is never mutated; a derived model is returned. A system
// with zero states is returned as is.
func (sys *StateSpace) Hessenberg() *StateSpace {
	n := sys.Order()
	if n == 0 {
		return sys
	}
	H := mat.DenseCopyOf(sys.A)
	Q := matutil.Eye(n, n)
	v := make([]float64, n)
	for k := 0; k < n-2; k++ {
		// Householder reflection annihilating column k below the
		// subdiagonal.
		var norm float64
		for i := k + 1; i < n; i++ {
			v[i] = H.At(i, k)
			norm = math.Hypot(norm, v[i])
		}
		if norm == 0 {
			continue
		}
		alpha := -norm
		if v[k+1] < 0 {
			alpha = norm
		}
		v[k+1] -= alpha
		var vnorm float64
		for i := k + 1; i < n; i++ {
			vnorm = math.Hypot(vnorm, v[i])
		}
		if vnorm == 0 {
			continue
		}
		for i := k + 1; i < n; i++ {
			v[i] /= vnorm
		}
		// H := P H with P = I - 2 v v^T
		for j := 0; j < n; j++ {
			var w float64
			for i := k + 1; i < n; i++ {
				w += v[i] * H.At(i, j)
			}
			for i := k + 1; i < n; i++ {
				H.Set(i, j, H.At(i, j)-2*w*v[i])
			}
		}
		// H := H P
		for i := 0; i < n; i++ {
			var w float64
			for j := k + 1; j < n; j++ {
				w += H.At(i, j) * v[j]
			}
			for j := k + 1; j < n; j++ {
				H.Set(i, j, H.At(i, j)-2*w*v[j])
			}
		}
		// Q := Q P
		for i := 0; i < n; i++ {
			var w float64
			for j := k + 1; j < n; j++ {
				w += Q.At(i, j) * v[j]
			}
			for j := k + 1; j < n; j++ {
				Q.Set(i, j, Q.At(i, j)-2*w*v[j])
			}
		}
		// Flush rounding residue below the subdiagonal.
		for i := k + 2; i < n; i++ {
			H.Set(i, k, 0)
		}
	}
	var B, C mat.Dense
	B.Mul(Q.T(), sys.B)
	C.Mul(sys.C, Q)
	return &StateSpace{A: H, B: &B, C: &C, D: sys.D, Ts: sys.Ts}
}
