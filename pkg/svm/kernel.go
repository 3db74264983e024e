package svm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// Kernel measures the similarity of two feature vectors
type Kernel func(x, y []float64) (float64, error)

// RBF returns the Gaussian kernel exp(-gamma * ||x - y||).
//
// The exponent uses the Euclidean distance itself, not its square. Models trained
// with this kernel are only comparable with others using the same scaling.
func RBF(gamma float64) Kernel {
	return func(x, y []float64) (float64, error) {
		if len(x) != len(y) {
			return 0, svmerrors.NewInvalidInputError("kernel", "rbf",
				"vectors differ in length: %d != %d", len(x), len(y))
		}

		sumOfSquares := 0.0
		for i := range x {
			d := x[i] - y[i]
			sumOfSquares += d * d
		}

		return math.Exp(-gamma * math.Sqrt(sumOfSquares)), nil
	}
}

// GramMatrix evaluates the kernel on every pair of instances. Only the upper
// triangle is computed; symmetry of the kernel fills the rest.
func GramMatrix(instances [][]float64, kernel Kernel) (*mat.SymDense, error) {
	n := len(instances)
	if n == 0 {
		return nil, svmerrors.NewInvalidInputError("kernel", "gram", "no instances")
	}

	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k, err := kernel(instances[i], instances[j])
			if err != nil {
				return nil, err
			}
			gram.SetSym(i, j, k)
		}
	}
	return gram, nil
}
