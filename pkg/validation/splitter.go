package validation

import (
	"math/rand"
	"sort"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// DefaultFoldSplitter shuffles the rows once and cuts them into k contiguous folds
type DefaultFoldSplitter struct{}

// NewDefaultFoldSplitter creates a new fold splitter
func NewDefaultFoldSplitter() *DefaultFoldSplitter {
	return &DefaultFoldSplitter{}
}

// CreateFolds returns k folds whose test parts cover every row exactly once.
// Fold sizes differ by at most one.
func (s *DefaultFoldSplitter) CreateFolds(dataset *types.Dataset, k int, rng *rand.Rand) ([]Fold, error) {
	if dataset == nil || dataset.Len() == 0 {
		return nil, svmerrors.NewInvalidInputError("validation", "create folds", "dataset is empty")
	}
	n := dataset.Len()
	if k < 2 || k > n {
		return nil, svmerrors.NewConfigurationError("validation", "create folds",
			"folds must be between 2 and %d, got: %d", n, k)
	}

	perm := rng.Perm(n)
	folds := make([]Fold, 0, k)

	for i := 0; i < k; i++ {
		start, end := i*n/k, (i+1)*n/k

		testIdx := append([]int(nil), perm[start:end]...)
		trainIdx := make([]int, 0, n-len(testIdx))
		trainIdx = append(trainIdx, perm[:start]...)
		trainIdx = append(trainIdx, perm[end:]...)
		sort.Ints(testIdx)
		sort.Ints(trainIdx)

		train, err := dataset.Subset(trainIdx)
		if err != nil {
			return nil, err
		}
		test, err := dataset.Subset(testIdx)
		if err != nil {
			return nil, err
		}

		folds = append(folds, Fold{Index: i, Train: train, Test: test, TestIndices: testIdx})
	}

	return folds, nil
}

// CreateFolds is a convenience function that uses the default splitter
func CreateFolds(dataset *types.Dataset, k int, rng *rand.Rand) ([]Fold, error) {
	return NewDefaultFoldSplitter().CreateFolds(dataset, k, rng)
}
