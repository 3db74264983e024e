package svm

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

func separableDataset() *types.Dataset {
	return types.NewDataset(
		[]int{1, 1, -1, -1},
		[][]float64{{2, 2}, {3, 3}, {-2, -2}, {-3, -3}},
	)
}

func smallConfig() optimization.OptimizationConfig {
	cfg := optimization.GetDefaultOptimizationConfig()
	cfg.NumberOfGenes = 4
	cfg.PopulationSize = 10
	cfg.MaxGenerations = 20
	return cfg
}

// TestOptimize_SeparableData tests that evolution improves on the initial population
// and yields a decision function that separates the training data
func TestOptimize_SeparableData(t *testing.T) {
	ds := separableDataset()
	cfg := Config{C: 1.0, Gamma: 0.01}
	optCfg := smallConfig()

	for _, seed := range []int64{1, 7, 42} {
		// Rebuild the initial population exactly as the optimizer does: populate,
		// then repair, drawing from the same seeded source. Score after repair.
		problem, err := NewProblem(ds, cfg)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(seed))
		initial := problem.Populate(optCfg.PopulationSize, rng)
		adjuster := optimization.NewAdjuster(ds.Labels, optCfg.RepairTolerance, optCfg.RepairMaxIterations)
		for _, c := range initial {
			adjuster.Adjust(c, rng)
			problem.ComputeFitness(c)
		}

		result, err := Optimize(ds, cfg, optCfg, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		assert.Greater(t, result.Best.Fitness, initial.BestFitness(), "seed %d", seed)
		for i, x := range ds.Instances {
			label, err := result.Model.Classify(x)
			require.NoError(t, err)
			assert.Equal(t, ds.Labels[i], label, "seed %d instance %d", seed, i)
		}
	}
}

// TestOptimize_GenesStayInBounds tests that every multiplier of the final population lies in [0, C]
func TestOptimize_GenesStayInBounds(t *testing.T) {
	cfg := Config{C: 0.5, Gamma: 0.01}

	result, err := Optimize(separableDataset(), cfg, smallConfig(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for _, c := range result.Population {
		for _, g := range c.Genes {
			assert.GreaterOrEqual(t, g, 0.0)
			assert.LessOrEqual(t, g, cfg.C+1e-12)
		}
	}
}

// TestOptimize_Deterministic tests that a seed reproduces the run exactly
func TestOptimize_Deterministic(t *testing.T) {
	cfg := Config{C: 1.0, Gamma: 0.01}

	first, err := Optimize(separableDataset(), cfg, smallConfig(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	second, err := Optimize(separableDataset(), cfg, smallConfig(), rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first.Population, second.Population))
	assert.Empty(t, cmp.Diff(first.Model, second.Model))
}

// TestOptimize_AutoGeneCount tests that a zero gene count follows the dataset size
func TestOptimize_AutoGeneCount(t *testing.T) {
	optCfg := smallConfig()
	optCfg.NumberOfGenes = 0

	result, err := Optimize(separableDataset(), DefaultConfig(), optCfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Best.NumberOfGenes())
}

// TestOptimize_GeneCountMismatch tests that a wrong gene count fails before evolution
func TestOptimize_GeneCountMismatch(t *testing.T) {
	optCfg := smallConfig()
	optCfg.NumberOfGenes = 3

	calls := 0
	_, err := Optimize(separableDataset(), DefaultConfig(), optCfg, rand.New(rand.NewSource(5)),
		func(optimization.GenerationStats) { calls++ })

	require.Error(t, err)
	assert.True(t, svmerrors.IsConfigurationError(err))
	assert.Zero(t, calls)
}
