package svm

import (
	"math/rand"

	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Result is the outcome of a single optimization run
type Result struct {
	Problem    *Problem
	Population optimization.Population
	Best       *optimization.Chromosome
	Model      *Model
}

// Optimize builds the problem for the dataset and evolves it to completion.
// A zero NumberOfGenes in optCfg is filled with the dataset size.
func Optimize(dataset *types.Dataset, cfg Config, optCfg optimization.OptimizationConfig, rng *rand.Rand, observers ...optimization.GenerationObserver) (*Result, error) {
	problem, err := NewProblem(dataset, cfg)
	if err != nil {
		return nil, err
	}

	if optCfg.NumberOfGenes == 0 {
		optCfg.NumberOfGenes = problem.NumberOfGenes()
	}

	ga, err := optimization.NewGeneticAlgorithm(problem, optCfg, rng)
	if err != nil {
		return nil, err
	}
	for _, observer := range observers {
		ga.OnGeneration(observer)
	}

	population, err := ga.Solve()
	if err != nil {
		return nil, err
	}

	best := ga.GetBest(population)
	return &Result{
		Problem:    problem,
		Population: population,
		Best:       best,
		Model:      problem.Extract(best),
	}, nil
}
