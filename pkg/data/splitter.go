package data

import (
	"math/rand"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Splitter divides one dataset into train and test parts
type Splitter struct{}

// NewSplitter creates a new splitter
func NewSplitter() *Splitter {
	return &Splitter{}
}

// SplitByRatio shuffles the rows with rng and puts the first ratio of them in the
// training set. Both parts must end up non-empty.
func (s *Splitter) SplitByRatio(dataset *types.Dataset, ratio float64, rng *rand.Rand) (*types.Dataset, *types.Dataset, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, nil, svmerrors.NewConfigurationError("splitter", "split",
			"train ratio must be between 0 and 1 (exclusive), got: %.4f", ratio)
	}

	n := int(float64(dataset.Len()) * ratio)
	if n < 1 || n >= dataset.Len() {
		return nil, nil, svmerrors.NewInvalidInputError("splitter", "split",
			"ratio %.4f leaves an empty part for %d instances", ratio, dataset.Len())
	}

	order := rng.Perm(dataset.Len())

	train, err := dataset.Subset(order[:n])
	if err != nil {
		return nil, nil, err
	}
	test, err := dataset.Subset(order[n:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

// SplitByRatio is a convenience function that uses a default splitter
func SplitByRatio(dataset *types.Dataset, ratio float64, rng *rand.Rand) (*types.Dataset, *types.Dataset, error) {
	return NewSplitter().SplitByRatio(dataset, ratio, rng)
}
