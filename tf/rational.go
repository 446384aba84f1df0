// Package tf implements matrices of scalar rational transfer functions
//
// G(s) = b(s) / a(s)
//
// with coefficients ordered from the highest power down, evaluation at
// complex frequency points and pole/zero extraction through companion matrix
// eigenvalues.
package tf

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Rational is a scalar rational function Num(s)/Den(s). Coefficients are
// stored from the highest power of s down to the constant term.
type Rational struct {
	Num []float64
	Den []float64
}

// NewRational creates a scalar rational function and checks that the
// denominator is not identically zero.
func NewRational(num, den []float64) Rational {
	if len(den) == 0 || allZero(den) {
		panic(errors.New("Denominator polynomial is zero"))
	}
	if len(num) == 0 {
		num = []float64{0}
	}
	return Rational{num, den}
}

// At evaluates the rational function at the complex point s. A vanishing
// denominator yields complex infinity, matching the unbounded-response
// convention used for state space models evaluated at a pole.
func (r Rational) At(s complex128) complex128 {
	den := polyval(r.Den, s)
	if den == 0 {
		return cmplx.Inf()
	}
	return polyval(r.Num, s) / den
}

// Poles returns the roots of the denominator polynomial.
func (r Rational) Poles() []complex128 { return Roots(r.Den) }

// Zeros returns the roots of the numerator polynomial.
func (r Rational) Zeros() []complex128 { return Roots(r.Num) }

// polyval evaluates the polynomial by Horner's rule; coefficients from the
// highest power down.
func polyval(coeffs []float64, s complex128) complex128 {
	var res complex128
	for _, c := range coeffs {
		res = res*s + complex(c, 0)
	}
	return res
}

func allZero(coeffs []float64) bool {
	for _, c := range coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// Roots returns the roots of the polynomial with the given coefficients
// (highest power first) as the eigenvalues of its companion matrix.
func Roots(coeffs []float64) []complex128 {
	// Strip leading zero coefficients.
	first := 0
	for first < len(coeffs) && coeffs[first] == 0 {
		first++
	}
	coeffs = coeffs[first:]
	n := len(coeffs) - 1
	if n < 1 {
		return nil
	}
	companion := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		companion.Set(0, j, -coeffs[j+1]/coeffs[0])
	}
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		panic(errors.New("Eigendecomposition of the companion matrix failed"))
	}
	return eig.Values(nil)
}
