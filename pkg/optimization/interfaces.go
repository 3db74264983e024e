package optimization

import (
	"math/rand"
	"time"
)

// Package optimization provides the genetic algorithm that searches the SVM dual for Lagrange multipliers

// FitnessEvaluator scores a chromosome and stores the result on it
type FitnessEvaluator interface {
	ComputeFitness(chromosome *Chromosome)
}

// Problem is the optimization problem driven by the genetic algorithm.
// ComputeFitness must be safe to call concurrently for distinct chromosomes.
type Problem interface {
	FitnessEvaluator

	// NumberOfGenes returns the gene count every chromosome must carry
	NumberOfGenes() int

	// Labels returns the class label (+1 or -1) owning each gene
	Labels() []int

	// Populate creates size chromosomes with random genes inside their bounds
	Populate(size int, rng *rand.Rand) Population
}

// OptimizationConfig holds the configuration for the genetic algorithm
type OptimizationConfig struct {
	NumberOfGenes       int     `json:"number_of_genes"`
	PopulationSize      int     `json:"population_size"`
	MaxGenerations      int     `json:"max_generations"`
	CrossoverRate       float64 `json:"crossover_rate"`
	MutationRate        float64 `json:"mutation_rate"`
	RepairTolerance     float64 `json:"repair_tolerance"`
	RepairMaxIterations int     `json:"repair_max_iterations"`
	MaxWorkers          int     `json:"max_workers"`
}

// GenerationStats summarizes one generation. Generation 0 is the initial population
// after its first evaluation and repair pass.
type GenerationStats struct {
	Generation           int           `json:"generation"`
	BestFitness          float64       `json:"best_fitness"`
	AverageFitness       float64       `json:"average_fitness"`
	WorstFitness         float64       `json:"worst_fitness"`
	FitnessStdDev        float64       `json:"fitness_std_dev"`
	EliteAlpha0          float64       `json:"elite_alpha0"`
	Repairs              int           `json:"repairs"`
	UnconvergedRepairs   int           `json:"unconverged_repairs"`
	MeanRepairIterations float64       `json:"mean_repair_iterations"`
	Duration             time.Duration `json:"duration"`
}

// GenerationObserver is notified after every generation
type GenerationObserver func(stats GenerationStats)

// State is the lifecycle position of a GeneticAlgorithm
type State string

const (
	StateInitialized State = "initialized"
	StateEvaluating  State = "evaluating"
	StateEvolving    State = "evolving"
	StateTerminated  State = "terminated"
)
