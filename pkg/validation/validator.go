package validation

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Overfitting risk levels
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
)

// DefaultCrossValidator implements CrossValidator with the evolutionary trainer
type DefaultCrossValidator struct {
	splitter FoldSplitter
}

// NewDefaultCrossValidator creates a new cross-validator
func NewDefaultCrossValidator() *DefaultCrossValidator {
	return &DefaultCrossValidator{splitter: NewDefaultFoldSplitter()}
}

// Validate splits the dataset with cfg.Seed and trains fold i with seed cfg.Seed+i+1.
// The gene count always follows the fold's training size.
func (v *DefaultCrossValidator) Validate(ctx context.Context, dataset *types.Dataset, cfg CrossValidationConfig) (*CrossValidationSummary, error) {
	folds, err := v.splitter.CreateFolds(dataset, cfg.Folds, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}

	optCfg := cfg.Optimization
	optCfg.NumberOfGenes = 0

	results := make([]FoldResult, 0, len(folds))
	for _, fold := range folds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		klog.V(1).InfoS("Training fold", "fold", fold.Index+1, "folds", len(folds),
			"train", fold.Train.Len(), "test", fold.Test.Len())

		rng := rand.New(rand.NewSource(cfg.Seed + int64(fold.Index) + 1))
		trained, err := svm.Optimize(fold.Train, cfg.SVM, optCfg, rng)
		if err != nil {
			return nil, err
		}

		trainScore, err := evaluation.EvaluateDecision(trained.Model, fold.Train)
		if err != nil {
			return nil, err
		}
		testScore, err := evaluation.EvaluateDecision(trained.Model, fold.Test)
		if err != nil {
			return nil, err
		}

		results = append(results, FoldResult{
			Fold:           fold.Index,
			Train:          trainScore,
			Test:           testScore,
			BestFitness:    trained.Model.Fitness,
			SupportVectors: len(trained.Model.SupportVectors),
		})
	}

	summary := calculateSummary(results)
	klog.InfoS("Cross-validation finished", "folds", len(results),
		"trainAccuracy", summary.AverageTrainAccuracy, "testAccuracy", summary.AverageTestAccuracy,
		"risk", summary.OverfittingRisk)
	return summary, nil
}

// calculateSummary calculates summary statistics from all results
func calculateSummary(results []FoldResult) *CrossValidationSummary {
	if len(results) == 0 {
		return &CrossValidationSummary{}
	}

	trainAccuracies := make([]float64, len(results))
	testAccuracies := make([]float64, len(results))
	for i, r := range results {
		trainAccuracies[i] = r.Train.Metrics.Accuracy
		testAccuracies[i] = r.Test.Metrics.Accuracy
	}

	avgTrain, trainStd := meanStdDev(trainAccuracies)
	avgTest, testStd := meanStdDev(testAccuracies)

	degradation := ((avgTrain - avgTest) / math.Max(0.01, math.Abs(avgTrain))) * 100

	risk := RiskLow
	if degradation > 30 {
		risk = RiskHigh
	} else if degradation > 15 {
		risk = RiskModerate
	}

	return &CrossValidationSummary{
		Results:              results,
		AverageTrainAccuracy: avgTrain,
		TrainAccuracyStdDev:  trainStd,
		AverageTestAccuracy:  avgTest,
		TestAccuracyStdDev:   testStd,
		AccuracyDegradation:  degradation,
		IsRobust:             degradation <= 30,
		OverfittingRisk:      risk,
	}
}

// meanStdDev returns the mean and the sample standard deviation, which is 0 for one value
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 1 {
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// RunCrossValidation is a convenience function using the default validator
func RunCrossValidation(ctx context.Context, dataset *types.Dataset, cfg CrossValidationConfig) (*CrossValidationSummary, error) {
	return NewDefaultCrossValidator().Validate(ctx, dataset, cfg)
}
