package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/svm"
)

// Store persists finished training runs
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}

// RunRecord is everything needed to inspect or reproduce a run
type RunRecord struct {
	SchemaVersion int       `json:"schema_version"`
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	Dataset       string    `json:"dataset"`
	Seed          int64     `json:"seed"`

	SVM          svm.Config                      `json:"svm"`
	Optimization optimization.OptimizationConfig `json:"optimization"`

	Model      *svm.Model                     `json:"model"`
	History    []optimization.GenerationStats `json:"history"`
	Evaluation *evaluation.Result             `json:"evaluation,omitempty"`
	Duration   time.Duration                  `json:"duration"`
}

// RunSummary is the listing view of a run
type RunSummary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Dataset        string    `json:"dataset"`
	C              float64   `json:"c"`
	Gamma          float64   `json:"gamma"`
	BestFitness    float64   `json:"best_fitness"`
	SupportVectors int       `json:"support_vectors"`
	Accuracy       float64   `json:"accuracy"`
}

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// Summary derives the listing view of the record
func (r RunRecord) Summary() RunSummary {
	summary := RunSummary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Dataset:   r.Dataset,
		C:         r.SVM.C,
		Gamma:     r.SVM.Gamma,
	}
	if r.Model != nil {
		summary.BestFitness = r.Model.Fitness
		summary.SupportVectors = len(r.Model.SupportVectors)
	}
	if r.Evaluation != nil {
		summary.Accuracy = r.Evaluation.Metrics.Accuracy
	}
	return summary
}
