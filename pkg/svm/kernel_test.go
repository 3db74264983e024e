package svm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// TestRBF_SelfSimilarity tests that a vector is maximally similar to itself
func TestRBF_SelfSimilarity(t *testing.T) {
	kernel := RBF(0.5)

	k, err := kernel([]float64{1.5, -2, 7}, []float64{1.5, -2, 7})
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)
}

// TestRBF_DistanceNotSquared tests that the exponent uses the plain Euclidean distance
func TestRBF_DistanceNotSquared(t *testing.T) {
	kernel := RBF(0.1)

	k, err := kernel([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.5), k, 1e-15)
}

// TestRBF_Symmetric tests kernel(x, y) == kernel(y, x)
func TestRBF_Symmetric(t *testing.T) {
	kernel := RBF(0.01)
	x := []float64{5, 1, 1, 1, 2}
	y := []float64{8, 10, 10, 8, 7}

	kxy, err := kernel(x, y)
	require.NoError(t, err)
	kyx, err := kernel(y, x)
	require.NoError(t, err)

	assert.Equal(t, kxy, kyx)
	assert.Greater(t, kxy, 0.0)
	assert.Less(t, kxy, 1.0)
}

// TestRBF_LengthMismatch tests that vectors of different length are rejected
func TestRBF_LengthMismatch(t *testing.T) {
	_, err := RBF(0.1)([]float64{1, 2}, []float64{1})

	require.Error(t, err)
	assert.True(t, svmerrors.IsInvalidInput(err))
}

// TestGramMatrix tests the precomputed kernel matrix against direct evaluation
func TestGramMatrix(t *testing.T) {
	instances := [][]float64{{2, 2}, {3, 3}, {-2, -2}}
	kernel := RBF(0.01)

	gram, err := GramMatrix(instances, kernel)
	require.NoError(t, err)

	n, _ := gram.Dims()
	require.Equal(t, 3, n)
	for i := range instances {
		assert.Equal(t, 1.0, gram.At(i, i))
		for j := range instances {
			expected, err := kernel(instances[i], instances[j])
			require.NoError(t, err)
			assert.Equal(t, expected, gram.At(i, j))
			assert.Equal(t, gram.At(i, j), gram.At(j, i))
		}
	}
}

// TestGramMatrix_Errors tests empty and ragged input
func TestGramMatrix_Errors(t *testing.T) {
	_, err := GramMatrix(nil, RBF(0.1))
	assert.True(t, svmerrors.IsInvalidInput(err))

	_, err = GramMatrix([][]float64{{1, 2}, {1}}, RBF(0.1))
	assert.True(t, svmerrors.IsInvalidInput(err))
}
