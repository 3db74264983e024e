package validation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

func clusterDataset() *types.Dataset {
	labels := make([]int, 0, 10)
	instances := make([][]float64, 0, 10)
	for i := 0; i < 5; i++ {
		labels = append(labels, 1, -1)
		instances = append(instances,
			[]float64{5 + float64(i)*0.1, 5},
			[]float64{float64(i) * 0.1, 0})
	}
	return types.NewDataset(labels, instances)
}

func foldResult(train, test float64) FoldResult {
	return FoldResult{
		Train: &evaluation.Result{Metrics: evaluation.Metrics{Accuracy: train}},
		Test:  &evaluation.Result{Metrics: evaluation.Metrics{Accuracy: test}},
	}
}

// TestCreateFolds_Partition tests that test parts cover every row exactly once
func TestCreateFolds_Partition(t *testing.T) {
	ds := clusterDataset()

	folds, err := CreateFolds(ds, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, folds, 3)

	seen := make(map[int]int)
	for i, fold := range folds {
		assert.Equal(t, i, fold.Index)
		assert.Equal(t, ds.Len(), fold.Train.Len()+fold.Test.Len())
		assert.InDelta(t, float64(ds.Len())/3, float64(fold.Test.Len()), 1)
		for _, idx := range fold.TestIndices {
			seen[idx]++
		}
	}
	assert.Len(t, seen, ds.Len())
	for idx, count := range seen {
		assert.Equal(t, 1, count, "row %d", idx)
	}
}

// TestCreateFolds_Invalid tests fold count bounds
func TestCreateFolds_Invalid(t *testing.T) {
	ds := clusterDataset()
	rng := rand.New(rand.NewSource(1))

	_, err := CreateFolds(ds, 1, rng)
	assert.True(t, svmerrors.IsConfigurationError(err))

	_, err = CreateFolds(ds, ds.Len()+1, rng)
	assert.True(t, svmerrors.IsConfigurationError(err))

	_, err = CreateFolds(types.NewDataset(nil, nil), 2, rng)
	assert.True(t, svmerrors.IsInvalidInput(err))
}

// TestCalculateSummary tests aggregation and risk levels
func TestCalculateSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []FoldResult
		risk    string
		robust  bool
	}{
		{"consistent", []FoldResult{foldResult(0.9, 0.88), foldResult(0.9, 0.86)}, RiskLow, true},
		{"moderate", []FoldResult{foldResult(1, 0.8), foldResult(1, 0.8)}, RiskModerate, true},
		{"overfit", []FoldResult{foldResult(1, 0.5), foldResult(1, 0.6)}, RiskHigh, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := calculateSummary(tt.results)
			assert.Equal(t, tt.risk, summary.OverfittingRisk)
			assert.Equal(t, tt.robust, summary.IsRobust)
		})
	}

	summary := calculateSummary([]FoldResult{foldResult(1, 0.5), foldResult(1, 0.7)})
	assert.InDelta(t, 0.6, summary.AverageTestAccuracy, 1e-12)
	assert.InDelta(t, 0.1414213562, summary.TestAccuracyStdDev, 1e-9)
	assert.InDelta(t, 40.0, summary.AccuracyDegradation, 1e-9)

	single := calculateSummary([]FoldResult{foldResult(0.8, 0.7)})
	assert.Zero(t, single.TestAccuracyStdDev)
}

// TestCrossValidator_Validate tests one scored result per fold
func TestCrossValidator_Validate(t *testing.T) {
	optCfg := optimization.GetDefaultOptimizationConfig()
	optCfg.PopulationSize = 6
	optCfg.MaxGenerations = 4

	summary, err := RunCrossValidation(context.Background(), clusterDataset(), CrossValidationConfig{
		Folds:        2,
		Seed:         3,
		SVM:          svm.Config{C: 1, Gamma: 0.01},
		Optimization: optCfg,
	})

	require.NoError(t, err)
	require.Len(t, summary.Results, 2)
	for _, r := range summary.Results {
		assert.Equal(t, 5, r.Train.Confusion.Total())
		assert.Equal(t, 5, r.Test.Confusion.Total())
	}
	assert.Contains(t, []string{RiskLow, RiskModerate, RiskHigh}, summary.OverfittingRisk)
}

// TestCrossValidator_Cancelled tests that a cancelled context stops before training
func TestCrossValidator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunCrossValidation(ctx, clusterDataset(), CrossValidationConfig{
		Folds:        2,
		SVM:          svm.DefaultConfig(),
		Optimization: optimization.GetDefaultOptimizationConfig(),
	})

	assert.ErrorIs(t, err, context.Canceled)
}
