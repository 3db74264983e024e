package config

import (
	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

// TrainingValidator implements validation for training configurations
type TrainingValidator struct{}

// NewTrainingValidator creates a new training validator
func NewTrainingValidator() *TrainingValidator {
	return &TrainingValidator{}
}

// Validate checks every section. Dataset paths are checked when the run starts,
// since the CLI may still fill them in.
func (v *TrainingValidator) Validate(cfg *TrainingConfig) error {
	if cfg == nil {
		return svmerrors.NewConfigurationError("config", "validate", "configuration is required")
	}

	if err := v.validateOptimization(cfg.Optimization); err != nil {
		return err
	}

	if err := cfg.SVM.Validate(); err != nil {
		return err
	}

	if err := v.validateData(cfg.Data); err != nil {
		return err
	}

	if _, err := cfg.EvaluationMode(); err != nil {
		return err
	}

	switch cfg.Storage.Driver {
	case StorageSQLite, StorageMemory, StorageNone:
	default:
		return svmerrors.NewConfigurationError("config", "validate",
			"storage driver must be one of %s, %s, %s, got: %q", StorageSQLite, StorageMemory, StorageNone, cfg.Storage.Driver)
	}

	if cfg.Output.Dir == "" {
		return svmerrors.NewConfigurationError("config", "validate", "output directory is required")
	}

	return nil
}

// validateOptimization allows a zero gene count, which is resolved from the dataset
func (v *TrainingValidator) validateOptimization(opt optimization.OptimizationConfig) error {
	if opt.NumberOfGenes < 0 {
		return svmerrors.NewConfigurationError("config", "validate",
			"number of genes must be non-negative, got: %d", opt.NumberOfGenes)
	}
	if opt.NumberOfGenes == 0 {
		opt.NumberOfGenes = 1
	}
	return optimization.ValidateConfig(opt)
}

func (v *TrainingValidator) validateData(d DataConfig) error {
	if d.TestFile == "" && (d.SplitRatio <= 0 || d.SplitRatio >= 1) {
		return svmerrors.NewConfigurationError("config", "validate",
			"split ratio must be between 0 and 1 (exclusive) when no test file is given, got: %.4f", d.SplitRatio)
	}
	if d.Limit < 0 {
		return svmerrors.NewConfigurationError("config", "validate",
			"row limit must be non-negative, got: %d", d.Limit)
	}
	switch d.Format {
	case FormatWisconsin, FormatPlain, "":
	default:
		return svmerrors.NewConfigurationError("config", "validate", "unknown data format %q", d.Format)
	}
	return nil
}
