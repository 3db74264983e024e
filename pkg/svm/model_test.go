package svm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// TestProblem_Weight tests the feature-space weight vector
func TestProblem_Weight(t *testing.T) {
	ds := types.NewDataset([]int{1, -1}, [][]float64{{1, 2}, {3, 4}})
	problem, err := NewProblem(ds, Config{C: 1, Gamma: 0.1})
	require.NoError(t, err)

	w := problem.Weight(chromosomeWithGenes(0.5, 0.25))
	assert.Equal(t, []float64{-0.25, 0}, w)
}

// TestProblem_InstanceWeights tests the per-instance scoring components
func TestProblem_InstanceWeights(t *testing.T) {
	ds := types.NewDataset([]int{1, -1}, [][]float64{{1, 2}, {3, 4}})
	problem, err := NewProblem(ds, Config{C: 1, Gamma: 0.1})
	require.NoError(t, err)

	w := problem.InstanceWeights(chromosomeWithGenes(0.5, 0.25))
	assert.Equal(t, []float64{1.5, -1.75}, w)
}

// TestProblem_Bias tests the averaged bias with the first multiplier non-zero
func TestProblem_Bias(t *testing.T) {
	problem, err := NewProblem(coincidentDataset(), Config{C: 1, Gamma: 0.1})
	require.NoError(t, err)

	// inner sum is 0.5 - 0.25 for both instances: ((1 - 0.25) + (-1 - 0.25)) / 2
	assert.InDelta(t, -0.25, problem.Bias(chromosomeWithGenes(0.5, 0.25)), 1e-12)
}

// TestProblem_Bias_FirstGeneZero tests that the bias falls back to the mean label
func TestProblem_Bias_FirstGeneZero(t *testing.T) {
	ds := types.NewDataset([]int{1, -1, -1}, [][]float64{{0}, {0}, {0}})
	problem, err := NewProblem(ds, Config{C: 1, Gamma: 0.1})
	require.NoError(t, err)

	assert.InDelta(t, -1.0/3.0, problem.Bias(chromosomeWithGenes(0, 0.9, 0.4)), 1e-12)
}

// TestSupportVectors tests selection of non-zero multipliers
func TestSupportVectors(t *testing.T) {
	assert.Equal(t, []int{1, 3}, SupportVectors(chromosomeWithGenes(0, 0.3, 0, 1)))

	none := SupportVectors(chromosomeWithGenes(0, 0))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

// TestMargin tests 1/||W|| and the zero-vector case
func TestMargin(t *testing.T) {
	assert.InDelta(t, 0.2, Margin([]float64{3, 4}), 1e-15)
	assert.Equal(t, 0.0, Margin([]float64{0, 0}))
	assert.False(t, math.IsInf(Margin(nil), 0))
}

// TestClassify tests the sign rule and its boundary
func TestClassify(t *testing.T) {
	w := []float64{1, 1}

	label, err := Classify([]float64{2, 2}, w, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = Classify([]float64{-2, -2}, w, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, label)

	// A score of exactly zero is negative
	label, err = Classify([]float64{1, -1}, w, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, label)

	_, err = Classify([]float64{1}, w, 0)
	assert.True(t, svmerrors.IsInvalidInput(err))
}

// TestModel_ClassifyIndex tests indexed scoring
func TestModel_ClassifyIndex(t *testing.T) {
	model := &Model{InstanceWeights: []float64{1.5, -1.75}, Bias: 0.25}

	label, err := model.ClassifyIndex(0)
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = model.ClassifyIndex(1)
	require.NoError(t, err)
	assert.Equal(t, -1, label)

	_, err = model.ClassifyIndex(2)
	assert.True(t, svmerrors.IsInvalidInput(err))
	_, err = model.ClassifyIndex(-1)
	assert.Error(t, err)
}

// TestProblem_Extract tests that the model bundles every derived quantity
func TestProblem_Extract(t *testing.T) {
	ds := types.NewDataset([]int{1, -1}, [][]float64{{1, 2}, {3, 4}})
	problem, err := NewProblem(ds, Config{C: 1, Gamma: 0.1})
	require.NoError(t, err)

	best := chromosomeWithGenes(0.5, 0.25)
	best.Fitness = 0.7
	model := problem.Extract(best)

	assert.Equal(t, problem.Weight(best), model.Weights)
	assert.Equal(t, problem.InstanceWeights(best), model.InstanceWeights)
	assert.Equal(t, problem.Bias(best), model.Bias)
	assert.Equal(t, Margin(model.Weights), model.Margin)
	assert.Equal(t, []int{0, 1}, model.SupportVectors)
	assert.InDelta(t, 0.25, model.SumAlphaY, 1e-15)
	assert.Equal(t, 0.7, model.Fitness)

	// The model owns its multipliers
	best.Genes[0] = 0
	assert.Equal(t, 0.5, model.Alphas[0])
}
