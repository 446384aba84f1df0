// Package matutil collects small matrix helpers shared by the state-space
// and frequency-response packages.
package matutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Eye returns the (m by n) identity matrix
func Eye(m, n int) *mat.Dense {
	res := mat.NewDense(m, n, nil)
	for index := 0; index < m && index < n; index++ {
		res.Set(index, index, 1.)
	}
	return res
}

// FullC returns a (m by n) complex matrix filled with value
func FullC(m, n int, value complex128) *mat.CDense {
	data := make([]complex128, m*n)
	for index := range data {
		data[index] = value
	}
	return mat.NewCDense(m, n, data)
}

// InfC returns a (m by n) complex matrix with +Inf in every entry. It marks
// an unbounded frequency-response sample, typically an evaluation point
// that coincides with a pole.
func InfC(m, n int) *mat.CDense {
	return FullC(m, n, complex(math.Inf(1), math.Inf(1)))
}

// NANORINF checks if there are any NAN or INF in matrix
func NANORINF(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}
