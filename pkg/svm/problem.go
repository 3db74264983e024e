package svm

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Default SVM parameters
const (
	DefaultC     = 0.1
	DefaultGamma = 0.001
)

// Config holds the SVM hyper-parameters
type Config struct {
	// C is the soft-margin regularization constant and the upper bound of every multiplier
	C float64 `json:"c"`

	// Gamma scales the RBF kernel
	Gamma float64 `json:"gamma"`
}

// DefaultConfig returns the default SVM parameters
func DefaultConfig() Config {
	return Config{C: DefaultC, Gamma: DefaultGamma}
}

// Validate checks the hyper-parameters
func (c Config) Validate() error {
	if c.C <= 0 {
		return svmerrors.NewConfigurationError("svm", "validate", "C must be positive, got: %g", c.C)
	}
	if c.Gamma < 0 {
		return svmerrors.NewConfigurationError("svm", "validate", "gamma must be non-negative, got: %g", c.Gamma)
	}
	return nil
}

// Problem is the soft-margin kernel SVM dual, posed as a maximization over
// chromosomes of Lagrange multipliers bounded by [0, C]. It is safe for
// concurrent fitness evaluation.
type Problem struct {
	dataset *types.Dataset
	config  Config
	gram    *mat.SymDense
}

// NewProblem validates the dataset and precomputes its kernel matrix
func NewProblem(dataset *types.Dataset, cfg Config) (*Problem, error) {
	if dataset == nil || dataset.Len() == 0 {
		return nil, svmerrors.NewInvalidInputError("svm", "new problem", "training dataset is empty")
	}
	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gram, err := GramMatrix(dataset.Instances, RBF(cfg.Gamma))
	if err != nil {
		return nil, err
	}

	return &Problem{
		dataset: dataset,
		config:  cfg,
		gram:    gram,
	}, nil
}

// NumberOfGenes returns the number of training instances
func (p *Problem) NumberOfGenes() int {
	return p.dataset.Len()
}

// Labels returns the training labels
func (p *Problem) Labels() []int {
	return p.dataset.Labels
}

// Dataset returns the training dataset
func (p *Problem) Dataset() *types.Dataset {
	return p.dataset
}

// Config returns the hyper-parameters
func (p *Problem) Config() Config {
	return p.config
}

// K returns the cached kernel value for instances i and j
func (p *Problem) K(i, j int) float64 {
	return p.gram.At(i, j)
}

// ComputeFitness scores the chromosome with the SVM dual objective.
//
// With F = -sum(alpha) + 1/2 * sum_i sum_j alpha_i alpha_j y_i y_j K(x_i, x_j),
// the stored fitness is -F so that higher is better.
func (p *Problem) ComputeFitness(chromosome *optimization.Chromosome) {
	genes := chromosome.Genes
	labels := p.dataset.Labels
	n := len(genes)

	sum1 := 0.0
	for i := 0; i < n; i++ {
		sum1 += genes[i]
	}

	sum21 := 0.0
	for j := 0; j < n; j++ {
		sum22 := 0.0
		for i := 0; i < n; i++ {
			sum22 += genes[i] * genes[j] * float64(labels[i]) * float64(labels[j]) * p.gram.At(i, j)
		}
		sum21 += sum22
	}

	objective := -sum1 + 0.5*sum21
	chromosome.Fitness = -objective
}

// CreateChromosome creates a chromosome with multipliers drawn uniformly in [0, C]
func (p *Problem) CreateChromosome(rng *rand.Rand) *optimization.Chromosome {
	return optimization.NewUniformChromosome(p.NumberOfGenes(), 0, p.config.C, rng)
}

// Populate creates the initial population
func (p *Problem) Populate(size int, rng *rand.Rand) optimization.Population {
	population := make(optimization.Population, size)
	for i := 0; i < size; i++ {
		population[i] = p.CreateChromosome(rng)
	}
	return population
}
