package validation

import (
	"context"
	"math/rand"

	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Package validation provides k-fold cross-validation of the SVM trainer

// CrossValidator trains and scores one model per fold
type CrossValidator interface {
	Validate(ctx context.Context, dataset *types.Dataset, cfg CrossValidationConfig) (*CrossValidationSummary, error)
}

// FoldSplitter partitions a dataset into folds
type FoldSplitter interface {
	CreateFolds(dataset *types.Dataset, k int, rng *rand.Rand) ([]Fold, error)
}

// CrossValidationConfig holds the configuration for cross-validation
type CrossValidationConfig struct {
	Folds        int
	Seed         int64
	SVM          svm.Config
	Optimization optimization.OptimizationConfig
}

// Fold is one train/test partition. TestIndices refer to the source dataset.
type Fold struct {
	Index       int
	Train       *types.Dataset
	Test        *types.Dataset
	TestIndices []int
}

// FoldResult holds the scores of one fold. Both sets are scored with the decision function.
type FoldResult struct {
	Fold           int                `json:"fold"`
	Train          *evaluation.Result `json:"train"`
	Test           *evaluation.Result `json:"test"`
	BestFitness    float64            `json:"best_fitness"`
	SupportVectors int                `json:"support_vectors"`
}

// CrossValidationSummary aggregates the fold results
type CrossValidationSummary struct {
	Results              []FoldResult `json:"results"`
	AverageTrainAccuracy float64      `json:"average_train_accuracy"`
	TrainAccuracyStdDev  float64      `json:"train_accuracy_std_dev"`
	AverageTestAccuracy  float64      `json:"average_test_accuracy"`
	TestAccuracyStdDev   float64      `json:"test_accuracy_std_dev"`

	// AccuracyDegradation is the relative drop from train to test accuracy, in percent
	AccuracyDegradation float64 `json:"accuracy_degradation"`
	IsRobust            bool    `json:"is_robust"`
	OverfittingRisk     string  `json:"overfitting_risk"`
}
