package orchestrator

import (
	"context"
	"io"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/internal/logger"
	"github.com/ducminhle1904/evosvm/internal/monitoring"
	"github.com/ducminhle1904/evosvm/internal/notifications"
	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/config"
	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/reporting"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
	"github.com/ducminhle1904/evosvm/pkg/validation"
)

// LogDir is the session log directory inside the output directory
const LogDir = "logs"

// DefaultOrchestrator implements the Orchestrator interface
type DefaultOrchestrator struct {
	loader    DatasetLoader
	store     storage.Store
	progress  *monitoring.ProgressTracker
	validator config.Validator
	reporter  *reporting.DefaultReporter
	notifier  notifications.Notifier
}

// Option customizes a DefaultOrchestrator
type Option func(*DefaultOrchestrator)

// WithStore persists every finished training run
func WithStore(store storage.Store) Option {
	return func(o *DefaultOrchestrator) { o.store = store }
}

// WithProgress reports generations to a progress tracker
func WithProgress(progress *monitoring.ProgressTracker) Option {
	return func(o *DefaultOrchestrator) { o.progress = progress }
}

// WithNotifier announces finished and failed training runs
func WithNotifier(notifier notifications.Notifier) Option {
	return func(o *DefaultOrchestrator) { o.notifier = notifier }
}

// WithLoader replaces the dataset loader
func WithLoader(loader DatasetLoader) Option {
	return func(o *DefaultOrchestrator) { o.loader = loader }
}

// WithConsole sends console reports to w
func WithConsole(w io.Writer) Option {
	return func(o *DefaultOrchestrator) { o.reporter = reporting.NewReporter(reporting.NewConsoleReporter(w)) }
}

// NewOrchestrator creates an orchestrator with default components
func NewOrchestrator(opts ...Option) *DefaultOrchestrator {
	o := &DefaultOrchestrator{
		loader:    NewDefaultDatasetLoader(),
		validator: config.NewTrainingValidator(),
		reporter:  reporting.NewDefaultReporter(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunTraining loads the data, evolves the multipliers, evaluates the model, then
// stores and reports the run
func (o *DefaultOrchestrator) RunTraining(ctx context.Context, cfg *config.TrainingConfig) (result *TrainingResult, err error) {
	start := time.Now()
	defer func() {
		status := monitoring.RunStatusSucceeded
		if err != nil {
			status = monitoring.RunStatusFailed
		}
		monitoring.RecordRun(status)
		if o.progress != nil {
			o.progress.Finish(err)
		}
		if err != nil {
			notifications.NotifyRunFailed(o.notifier, cfg.Data.TrainFile, err)
		}
	}()

	if err := o.validator.Validate(cfg); err != nil {
		return nil, err
	}
	mode, err := cfg.EvaluationMode()
	if err != nil {
		return nil, err
	}

	train, test, err := o.loader.LoadDatasets(cfg)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := storage.NewRunID()
	klog.InfoS("Starting training run", "run", runID, "dataset", cfg.Data.TrainFile,
		"train", train.Len(), "test", test.Len(), "c", cfg.SVM.C, "gamma", cfg.SVM.Gamma, "seed", cfg.Seed)

	var sessionLog *logger.Logger
	if cfg.Output.SessionLog {
		sessionLog, err = logger.NewLogger(filepath.Join(cfg.Output.Dir, LogDir), cfg.Data.TrainFile)
		if err != nil {
			klog.ErrorS(err, "Session log disabled")
		} else {
			defer sessionLog.Close()
			sessionLog.Info("Run %s: %d training rows, %d test rows, C=%g gamma=%g seed=%d",
				runID, train.Len(), test.Len(), cfg.SVM.C, cfg.SVM.Gamma, cfg.Seed)
		}
	}

	history := newHistoryRecorder()
	observers := []optimization.GenerationObserver{monitoring.GenerationObserver(), history.Observe}
	if sessionLog != nil {
		observers = append(observers, sessionLog.GenerationObserver())
	}
	if o.progress != nil {
		o.progress.Start(cfg.Optimization.MaxGenerations)
		observers = append(observers, o.progress.Observe)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	trained, err := svm.Optimize(train, cfg.SVM, cfg.Optimization, rng, observers...)
	if err != nil {
		if sessionLog != nil {
			sessionLog.LogError("optimize", err)
		}
		return nil, err
	}
	monitoring.UpdateSupportVectors(len(trained.Model.SupportVectors))

	scored, err := evaluation.Evaluate(mode, trained.Model, test)
	if err != nil {
		return nil, err
	}

	result = &TrainingResult{
		RunID:      runID,
		Config:     cfg,
		Best:       trained.Best,
		Model:      trained.Model,
		History:    history.Stats(),
		Evaluation: scored,
		Duration:   time.Since(start),
		CreatedAt:  start.UTC(),
	}
	record := result.Record()

	if sessionLog != nil {
		sessionLog.LogResult(runID, trained.Model.Fitness, trained.Model.Bias, trained.Model.Margin,
			len(trained.Model.SupportVectors), scored.Metrics.Precision, scored.Metrics.Recall, scored.Metrics.Specificity)
	}

	if o.store != nil {
		if err := o.store.SaveRun(ctx, record); err != nil {
			return nil, err
		}
	}

	manager := reporting.NewReportingManagerWith(o.reporter, reportingConfig(cfg))
	reports, err := manager.ReportRun(&record)
	if err != nil {
		return nil, err
	}
	result.Reports = reports
	notifications.NotifyRunFinished(o.notifier, notifications.RunSummary{
		RunID:          runID,
		Dataset:        cfg.Data.TrainFile,
		C:              cfg.SVM.C,
		Gamma:          cfg.SVM.Gamma,
		BestFitness:    trained.Model.Fitness,
		SupportVectors: len(trained.Model.SupportVectors),
		Accuracy:       scored.Metrics.Accuracy,
		Duration:       result.Duration,
	})

	klog.InfoS("Training run finished", "run", runID, "fitness", trained.Model.Fitness,
		"supportVectors", len(trained.Model.SupportVectors), "accuracy", scored.Metrics.Accuracy,
		"duration", result.Duration)
	return result, nil
}

// RunGridSearch ranks every (C, gamma) cell by decision-function accuracy on the test set
func (o *DefaultOrchestrator) RunGridSearch(ctx context.Context, cfg *config.TrainingConfig, grid tuning.Grid, workers int) ([]tuning.CellResult, error) {
	if err := o.validator.Validate(cfg); err != nil {
		return nil, err
	}

	train, test, err := o.loader.LoadDatasets(cfg)
	if err != nil {
		return nil, err
	}

	optCfg := cfg.Optimization
	optCfg.NumberOfGenes = 0

	results, err := tuning.NewGridSearch(train, test, optCfg, cfg.Seed, workers).Run(ctx, grid)
	if err != nil {
		return nil, err
	}

	if best, ok := tuning.Best(results); ok {
		klog.InfoS("Grid search finished", "cells", len(results), "bestC", best.C,
			"bestGamma", best.Gamma, "accuracy", best.Accuracy())
	}

	manager := reporting.NewReportingManagerWith(o.reporter, reportingConfig(cfg))
	if _, err := manager.ReportGrid(results); err != nil {
		return nil, err
	}
	return results, nil
}

// RunCrossValidation runs k-fold cross-validation over the training file
func (o *DefaultOrchestrator) RunCrossValidation(ctx context.Context, cfg *config.TrainingConfig, folds int) (*validation.CrossValidationSummary, error) {
	if err := o.validator.Validate(cfg); err != nil {
		return nil, err
	}

	dataset, err := o.loader.LoadTrainingSet(cfg)
	if err != nil {
		return nil, err
	}

	summary, err := validation.RunCrossValidation(ctx, dataset, validation.CrossValidationConfig{
		Folds:        folds,
		Seed:         cfg.Seed,
		SVM:          cfg.SVM,
		Optimization: cfg.Optimization,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Output.Console {
		o.reporter.OutputCrossValidation(summary)
	}
	return summary, nil
}

func reportingConfig(cfg *config.TrainingConfig) reporting.ReportingConfig {
	return reporting.ReportingConfig{
		EnableConsole:   cfg.Output.Console,
		OutputDirectory: cfg.Output.Dir,
		ExcelEnabled:    cfg.Output.Excel,
		CSVEnabled:      cfg.Output.CSV,
		JSONEnabled:     cfg.Output.JSON,
	}
}

// historyRecorder collects generation statistics in order
type historyRecorder struct {
	mu    sync.Mutex
	stats []optimization.GenerationStats
}

func newHistoryRecorder() *historyRecorder {
	return &historyRecorder{}
}

func (h *historyRecorder) Observe(stats optimization.GenerationStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = append(h.stats, stats)
}

func (h *historyRecorder) Stats() []optimization.GenerationStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]optimization.GenerationStats(nil), h.stats...)
}

// OpenStore creates and initializes the configured run store. It returns nil
// when storage is disabled.
func OpenStore(ctx context.Context, cfg *config.TrainingConfig) (storage.Store, error) {
	if cfg.Storage.Driver == config.StorageNone {
		return nil, nil
	}

	store, err := storage.NewStore(cfg.Storage.Driver, cfg.DatabasePath())
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
