package orchestrator

import (
	"context"

	"github.com/ducminhle1904/evosvm/pkg/config"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
)

// TrainingWorkflow trains and evaluates a single model
type TrainingWorkflow struct {
	orchestrator Orchestrator
	config       *config.TrainingConfig
}

// NewTrainingWorkflow creates a new training workflow
func NewTrainingWorkflow(orchestrator Orchestrator, config *config.TrainingConfig) Workflow {
	return &TrainingWorkflow{
		orchestrator: orchestrator,
		config:       config,
	}
}

// Execute runs the training workflow
func (w *TrainingWorkflow) Execute(ctx context.Context) (interface{}, error) {
	return w.orchestrator.RunTraining(ctx, w.config)
}

// GetWorkflowType returns the workflow type
func (w *TrainingWorkflow) GetWorkflowType() WorkflowType {
	return WorkflowTypeTraining
}

// GridSearchWorkflow searches the hyper-parameter grid
type GridSearchWorkflow struct {
	orchestrator Orchestrator
	config       *config.TrainingConfig
	grid         tuning.Grid
	workers      int
}

// NewGridSearchWorkflow creates a new grid-search workflow
func NewGridSearchWorkflow(orchestrator Orchestrator, config *config.TrainingConfig, grid tuning.Grid, workers int) Workflow {
	return &GridSearchWorkflow{
		orchestrator: orchestrator,
		config:       config,
		grid:         grid,
		workers:      workers,
	}
}

// Execute runs the grid search and returns the ranked cells
func (w *GridSearchWorkflow) Execute(ctx context.Context) (interface{}, error) {
	return w.orchestrator.RunGridSearch(ctx, w.config, w.grid, w.workers)
}

// GetWorkflowType returns the workflow type
func (w *GridSearchWorkflow) GetWorkflowType() WorkflowType {
	return WorkflowTypeGridSearch
}

// CrossValidationWorkflow runs k-fold cross-validation
type CrossValidationWorkflow struct {
	orchestrator Orchestrator
	config       *config.TrainingConfig
	folds        int
}

// NewCrossValidationWorkflow creates a new cross-validation workflow
func NewCrossValidationWorkflow(orchestrator Orchestrator, config *config.TrainingConfig, folds int) Workflow {
	return &CrossValidationWorkflow{
		orchestrator: orchestrator,
		config:       config,
		folds:        folds,
	}
}

// Execute runs the cross-validation
func (w *CrossValidationWorkflow) Execute(ctx context.Context) (interface{}, error) {
	return w.orchestrator.RunCrossValidation(ctx, w.config, w.folds)
}

// GetWorkflowType returns the workflow type
func (w *CrossValidationWorkflow) GetWorkflowType() WorkflowType {
	return WorkflowTypeCrossValidation
}
