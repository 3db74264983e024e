package orchestrator

import (
	"context"
	"time"

	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/config"
	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
	"github.com/ducminhle1904/evosvm/pkg/types"
	"github.com/ducminhle1904/evosvm/pkg/validation"
)

// Orchestrator coordinates loading, training, evaluation, storage and reporting
type Orchestrator interface {
	// RunTraining trains one model and evaluates it on the test set
	RunTraining(ctx context.Context, cfg *config.TrainingConfig) (*TrainingResult, error)

	// RunGridSearch trains one model per (C, gamma) cell and ranks them on the test set
	RunGridSearch(ctx context.Context, cfg *config.TrainingConfig, grid tuning.Grid, workers int) ([]tuning.CellResult, error)

	// RunCrossValidation trains one model per fold of the training file
	RunCrossValidation(ctx context.Context, cfg *config.TrainingConfig, folds int) (*validation.CrossValidationSummary, error)
}

// Workflow represents different execution workflows
type Workflow interface {
	// Execute runs the workflow and returns results
	Execute(ctx context.Context) (interface{}, error)

	// GetWorkflowType returns the type of workflow
	GetWorkflowType() WorkflowType
}

// WorkflowType represents different types of workflows
type WorkflowType string

const (
	WorkflowTypeTraining        WorkflowType = "training"
	WorkflowTypeGridSearch      WorkflowType = "grid"
	WorkflowTypeCrossValidation WorkflowType = "crossvalidation"
)

// DatasetLoader resolves the datasets a configuration points at
type DatasetLoader interface {
	// LoadDatasets returns the training and test sets, splitting the training
	// file when no test file is configured
	LoadDatasets(cfg *config.TrainingConfig) (train, test *types.Dataset, err error)

	// LoadTrainingSet returns the whole training file
	LoadTrainingSet(cfg *config.TrainingConfig) (*types.Dataset, error)
}

// TrainingResult is the outcome of a training run
type TrainingResult struct {
	RunID      string
	Config     *config.TrainingConfig
	Best       *optimization.Chromosome
	Model      *svm.Model
	History    []optimization.GenerationStats
	Evaluation *evaluation.Result
	Duration   time.Duration
	CreatedAt  time.Time

	// Reports lists the files written for the run
	Reports []string
}

// Record converts the result into its stored form
func (r *TrainingResult) Record() storage.RunRecord {
	record := storage.RunRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		ID:            r.RunID,
		CreatedAt:     r.CreatedAt,
		Model:         r.Model,
		History:       r.History,
		Evaluation:    r.Evaluation,
		Duration:      r.Duration,
	}
	if r.Config != nil {
		record.Dataset = r.Config.Data.TrainFile
		record.Seed = r.Config.Seed
		record.SVM = r.Config.SVM
		record.Optimization = r.Config.Optimization
	}
	return record
}
