package optimization

import (
	"math/rand"
	"time"

	"github.com/sourcegraph/conc/pool"
	"k8s.io/klog/v2"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// GA defaults for the breast cancer experiments
const (
	GAPopulationSize       = 50
	GAGenerations          = 100
	GAMutationRate         = 0.2
	GACrossoverRate        = 0.9
	ProgressReportInterval = 10
)

// GeneticAlgorithm evolves a population of Lagrange multiplier vectors.
// All randomness comes from the rng handed to NewGeneticAlgorithm, so a seeded
// source reproduces a run bit for bit.
type GeneticAlgorithm struct {
	problem   Problem
	adjuster  *Adjuster
	config    OptimizationConfig
	rng       *rand.Rand
	state     State
	observers []GenerationObserver
}

// GetDefaultOptimizationConfig returns the default optimization configuration
func GetDefaultOptimizationConfig() OptimizationConfig {
	return OptimizationConfig{
		NumberOfGenes:       20,
		PopulationSize:      GAPopulationSize,
		MaxGenerations:      GAGenerations,
		CrossoverRate:       GACrossoverRate,
		MutationRate:        GAMutationRate,
		RepairTolerance:     DefaultRepairTolerance,
		RepairMaxIterations: DefaultRepairMaxIterations,
		MaxWorkers:          1,
	}
}

// ValidateConfig checks the configuration on its own, without a problem attached
func ValidateConfig(cfg OptimizationConfig) error {
	if cfg.PopulationSize <= 0 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"population size must be positive, got: %d", cfg.PopulationSize)
	}
	if cfg.MaxGenerations <= 0 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"max generations must be positive, got: %d", cfg.MaxGenerations)
	}
	if cfg.NumberOfGenes <= 0 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"number of genes must be positive, got: %d", cfg.NumberOfGenes)
	}
	if cfg.CrossoverRate < 0 || cfg.CrossoverRate > 1 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"crossover rate must be between 0 and 1, got: %.4f", cfg.CrossoverRate)
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"mutation rate must be between 0 and 1, got: %.4f", cfg.MutationRate)
	}
	if cfg.RepairTolerance < 0 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"repair tolerance must be non-negative, got: %g", cfg.RepairTolerance)
	}
	if cfg.RepairMaxIterations <= 0 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"repair max iterations must be positive, got: %d", cfg.RepairMaxIterations)
	}
	if cfg.MaxWorkers < 0 {
		return svmerrors.NewConfigurationError("optimization", "validate",
			"max workers must be non-negative, got: %d", cfg.MaxWorkers)
	}
	return nil
}

// NewGeneticAlgorithm validates the configuration against the problem and returns a ready optimizer
func NewGeneticAlgorithm(problem Problem, cfg OptimizationConfig, rng *rand.Rand) (*GeneticAlgorithm, error) {
	if problem == nil {
		return nil, svmerrors.NewConfigurationError("optimization", "new", "problem is required")
	}
	if rng == nil {
		return nil, svmerrors.NewConfigurationError("optimization", "new", "random source is required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.NumberOfGenes != problem.NumberOfGenes() {
		return nil, svmerrors.NewConfigurationError("optimization", "new",
			"number of genes (%d) must equal the number of training instances (%d)",
			cfg.NumberOfGenes, problem.NumberOfGenes()).
			WithContext("genes", cfg.NumberOfGenes).
			WithContext("instances", problem.NumberOfGenes())
	}
	if len(problem.Labels()) != cfg.NumberOfGenes {
		return nil, svmerrors.NewConfigurationError("optimization", "new",
			"problem exposes %d labels for %d genes", len(problem.Labels()), cfg.NumberOfGenes)
	}

	return &GeneticAlgorithm{
		problem:  problem,
		adjuster: NewAdjuster(problem.Labels(), cfg.RepairTolerance, cfg.RepairMaxIterations),
		config:   cfg,
		rng:      rng,
		state:    StateInitialized,
	}, nil
}

// OnGeneration registers an observer called after every generation, generation 0 included
func (ga *GeneticAlgorithm) OnGeneration(observer GenerationObserver) {
	ga.observers = append(ga.observers, observer)
}

// State returns where the optimizer is in its lifecycle
func (ga *GeneticAlgorithm) State() State {
	return ga.state
}

// Adjuster exposes the constraint repair used by this optimizer
func (ga *GeneticAlgorithm) Adjuster() *Adjuster {
	return ga.adjuster
}

// Solve runs the full evolution and returns the final population.
//
// The initial population is scored first and repaired afterwards, so generation 0
// fitness values describe the genes as they were before repair. They are refreshed
// only when an individual is replaced by an offspring.
func (ga *GeneticAlgorithm) Solve() (Population, error) {
	started := time.Now()
	ga.state = StateInitialized
	population := ga.problem.Populate(ga.config.PopulationSize, ga.rng)

	ga.state = StateEvaluating
	ga.evaluate(population)

	repairs := make([]RepairResult, len(population))
	for i := range population {
		repairs[i] = ga.adjuster.Adjust(population[i], ga.rng)
	}
	ga.notify(0, population, repairs, time.Since(started))

	ga.state = StateEvolving
	for generation := 1; generation <= ga.config.MaxGenerations; generation++ {
		generationStart := time.Now()

		newPopulation := make(Population, len(population))
		childRepairs := make([]RepairResult, 0, len(population)-1)

		// Elitism: the best individual survives unchanged, fitness included
		newPopulation[0] = population.GetBest()

		for i := 1; i < len(population); i++ {
			mother := TournamentSelection(population, ga.rng)
			father := TournamentSelection(population, ga.rng)

			child := ArithmeticCrossover(mother, father, ga.config.CrossoverRate, ga.rng)
			ResetMutation(child, ga.config.MutationRate, ga.rng)
			childRepairs = append(childRepairs, ga.adjuster.Adjust(child, ga.rng))

			newPopulation[i] = child
		}

		// Fitness draws no randomness, so scoring after breeding matches scoring each child as it is born
		ga.evaluate(newPopulation[1:])

		population = newPopulation
		ga.notify(generation, population, childRepairs, time.Since(generationStart))
	}

	ga.state = StateTerminated
	klog.V(1).InfoS("Genetic algorithm finished",
		"generations", ga.config.MaxGenerations,
		"population", len(population),
		"bestFitness", population.BestFitness(),
		"elapsed", time.Since(started))

	return population, nil
}

// GetBest returns a copy of the fittest individual
func (ga *GeneticAlgorithm) GetBest(population Population) *Chromosome {
	return population.GetBest()
}

// evaluate computes fitness for every chromosome, fanning out when MaxWorkers > 1
func (ga *GeneticAlgorithm) evaluate(chromosomes Population) {
	if ga.config.MaxWorkers <= 1 || len(chromosomes) < 2 {
		for _, c := range chromosomes {
			ga.problem.ComputeFitness(c)
		}
		return
	}

	p := pool.New().WithMaxGoroutines(ga.config.MaxWorkers)
	for _, c := range chromosomes {
		c := c
		p.Go(func() {
			ga.problem.ComputeFitness(c)
		})
	}
	p.Wait()
}

func (ga *GeneticAlgorithm) notify(generation int, population Population, repairs []RepairResult, elapsed time.Duration) {
	stats := GenerationStats{
		Generation:     generation,
		BestFitness:    population.BestFitness(),
		AverageFitness: population.AverageFitness(),
		WorstFitness:   population.WorstFitness(),
		FitnessStdDev:  population.FitnessStdDev(),
		Repairs:        len(repairs),
		Duration:       elapsed,
	}
	if len(population) > 0 {
		stats.EliteAlpha0 = population[0].Genes[0]
	}

	totalIterations := 0
	for _, r := range repairs {
		totalIterations += r.Iterations
		if !r.Converged {
			stats.UnconvergedRepairs++
		}
	}
	if len(repairs) > 0 {
		stats.MeanRepairIterations = float64(totalIterations) / float64(len(repairs))
	}

	if stats.UnconvergedRepairs > 0 {
		klog.V(4).InfoS("Constraint repair hit its iteration cap",
			"generation", generation, "count", stats.UnconvergedRepairs)
	}
	if generation%ProgressReportInterval == 0 {
		klog.V(2).InfoS("Generation progress",
			"generation", generation,
			"bestFitness", stats.BestFitness,
			"averageFitness", stats.AverageFitness)
	}
	klog.V(3).InfoS("Generation", "generation", generation, "eliteFitness", population[0].Fitness, "alpha0", stats.EliteAlpha0)

	for _, observer := range ga.observers {
		observer(stats)
	}
}
