package tuning

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"k8s.io/klog/v2"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/internal/monitoring"
	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// Grid is the set of hyper-parameter values to try. Every C is paired with every gamma.
type Grid struct {
	Cs     []float64 `json:"c"`
	Gammas []float64 `json:"gamma"`
}

// Validate checks that the grid is non-empty and every cell is a valid SVM config
func (g Grid) Validate() error {
	if len(g.Cs) == 0 || len(g.Gammas) == 0 {
		return svmerrors.NewConfigurationError("tuning", "validate grid",
			"grid needs at least one C and one gamma, got %d and %d", len(g.Cs), len(g.Gammas))
	}
	for _, cfg := range g.Cells() {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Cells lists the grid in C-major order
func (g Grid) Cells() []svm.Config {
	cells := make([]svm.Config, 0, len(g.Cs)*len(g.Gammas))
	for _, c := range g.Cs {
		for _, gamma := range g.Gammas {
			cells = append(cells, svm.Config{C: c, Gamma: gamma})
		}
	}
	return cells
}

// CellSeed derives the RNG seed of a cell from the search seed
func CellSeed(base int64, index int) int64 {
	return base + int64(index)
}

// CellResult is the outcome of training one grid cell
type CellResult struct {
	Index          int                `json:"index"`
	C              float64            `json:"c"`
	Gamma          float64            `json:"gamma"`
	Seed           int64              `json:"seed"`
	BestFitness    float64            `json:"best_fitness"`
	SupportVectors int                `json:"support_vectors"`
	Evaluation     *evaluation.Result `json:"evaluation,omitempty"`
	Duration       time.Duration      `json:"duration"`
	Err            error              `json:"-"`
}

// Accuracy returns the validation accuracy, or 0 for a failed cell
func (r CellResult) Accuracy() float64 {
	if r.Evaluation == nil {
		return 0
	}
	return r.Evaluation.Metrics.Accuracy
}

// GridSearch trains one model per grid cell and scores each with the decision
// function on a validation set
type GridSearch struct {
	train        *types.Dataset
	validation   *types.Dataset
	optimization optimization.OptimizationConfig
	seed         int64
	pool         *WorkerPool
}

// NewGridSearch creates a search. workers bounds how many cells train at once.
func NewGridSearch(train, validation *types.Dataset, optCfg optimization.OptimizationConfig, seed int64, workers int) *GridSearch {
	return &GridSearch{
		train:        train,
		validation:   validation,
		optimization: optCfg,
		seed:         seed,
		pool:         NewWorkerPool(workers),
	}
}

// Run trains every cell and returns the results sorted best first. It fails only
// when the grid is invalid, the context is cancelled or every cell failed.
func (s *GridSearch) Run(ctx context.Context, grid Grid) ([]CellResult, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if s.train == nil || s.validation == nil {
		return nil, svmerrors.NewInvalidInputError("tuning", "run", "training and validation datasets are required")
	}

	cells := grid.Cells()
	jobs := make([]CellJob, len(cells))
	for i, cell := range cells {
		jobs[i] = CellJob{Index: i, C: cell.C, Gamma: cell.Gamma, Seed: CellSeed(s.seed, i)}
	}

	klog.InfoS("Starting grid search", "cells", len(jobs), "workers", s.pool.WorkerCount(),
		"trainSize", s.train.Len(), "validationSize", s.validation.Len())

	results, err := s.pool.Run(ctx, jobs, s.trainCell)
	if err != nil {
		return nil, err
	}

	failed := 0
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
		}
	}
	if failed == len(results) {
		return nil, errors.Join(svmerrors.NewInvalidInputError("tuning", "run", "every grid cell failed"), firstErr)
	}

	SortResults(results)
	return results, nil
}

func (s *GridSearch) trainCell(_ context.Context, job CellJob) CellResult {
	start := time.Now()
	result := CellResult{Index: job.Index, C: job.C, Gamma: job.Gamma, Seed: job.Seed}
	defer monitoring.RecordGridCell()

	rng := rand.New(rand.NewSource(job.Seed))
	trained, err := svm.Optimize(s.train, svm.Config{C: job.C, Gamma: job.Gamma}, s.optimization, rng)
	if err != nil {
		klog.ErrorS(err, "Grid cell failed", "cell", job.Index, "c", job.C, "gamma", job.Gamma)
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	scored, err := evaluation.EvaluateDecision(trained.Model, s.validation)
	if err != nil {
		klog.ErrorS(err, "Grid cell evaluation failed", "cell", job.Index)
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.BestFitness = trained.Model.Fitness
	result.SupportVectors = len(trained.Model.SupportVectors)
	result.Evaluation = scored
	result.Duration = time.Since(start)
	return result
}

// SortResults orders by validation accuracy, then best fitness, then cell index.
// Failed cells go last.
func SortResults(results []CellResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if a.Accuracy() != b.Accuracy() {
			return a.Accuracy() > b.Accuracy()
		}
		if a.BestFitness != b.BestFitness {
			return a.BestFitness > b.BestFitness
		}
		return a.Index < b.Index
	})
}

// Best returns the first successful result of a sorted slice
func Best(results []CellResult) (CellResult, bool) {
	for _, r := range results {
		if r.Err == nil {
			return r, true
		}
	}
	return CellResult{}, false
}
