package ssm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hammal/lti/matutil"
)

// At evaluates the transfer matrix
//
// G(s) = D + C (sI - A)^(-1) B
//
// at the complex point s. The resolvent solve (sI - A) X = B is carried out
// over the reals by stacking real and imaginary parts,
//
// [Re(sI-A)  -Im(sI-A)] [Re(X)]   [B]
// [Im(sI-A)   Re(sI-A)] [Im(X)] = [0]
//
// so that gonum's real LU factorization can be used directly. If the shifted
// matrix is singular the result is a matrix with +Inf in every entry rather
// than an error; frequency responses legitimately blow up at poles and one
// unbounded sample must not abort a whole sweep.
func (sys *StateSpace) At(s complex128) *mat.CDense {
	p, m := sys.D.Dims()
	n := sys.Order()
	if n == 0 {
		res := mat.NewCDense(p, m, nil)
		for i := 0; i < p; i++ {
			for j := 0; j < m; j++ {
				res.Set(i, j, complex(sys.D.At(i, j), 0))
			}
		}
		return res
	}

	// Assemble the realified shifted matrix and right hand side.
	M := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			re := -sys.A.At(i, j)
			if i == j {
				re += real(s)
			}
			var im float64
			if i == j {
				im = imag(s)
			}
			M.Set(i, j, re)
			M.Set(n+i, n+j, re)
			M.Set(i, n+j, -im)
			M.Set(n+i, j, im)
		}
	}
	rhs := mat.NewDense(2*n, m, nil)
	rhs.Slice(0, n, 0, m).(*mat.Dense).Copy(sys.B)

	var X mat.Dense
	if err := X.Solve(M, rhs); err != nil {
		cond, conditioned := err.(mat.Condition)
		if !conditioned || math.IsInf(float64(cond), 1) {
			return matutil.InfC(p, m)
		}
		// Ill conditioned but factorizable; keep the computed solution.
	}

	// G = D + C X with X = Re(X) + i Im(X).
	var yre, yim mat.Dense
	yre.Mul(sys.C, X.Slice(0, n, 0, m))
	yim.Mul(sys.C, X.Slice(n, 2*n, 0, m))
	res := mat.NewCDense(p, m, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < m; j++ {
			res.Set(i, j, complex(sys.D.At(i, j)+yre.At(i, j), yim.At(i, j)))
		}
	}
	return res
}
