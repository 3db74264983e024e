package config

// Package config provides configuration management for SVM training runs

// ConfigManager handles loading, validation and saving of training configurations
type ConfigManager interface {
	// LoadConfig loads defaults, then the file (if any), then environment overrides
	LoadConfig(configFile string) (*TrainingConfig, error)

	// ValidateConfig validates a configuration
	ValidateConfig(cfg *TrainingConfig) error

	// SaveConfig saves configuration to file
	SaveConfig(cfg *TrainingConfig, path string) error
}

// Validator interface for configuration validation
type Validator interface {
	Validate(cfg *TrainingConfig) error
}

// Common configuration constants
const (
	DefaultSeed       = 1
	DefaultSplitRatio = 0.7

	// Data formats
	FormatWisconsin = "wisconsin"
	FormatPlain     = "plain"

	// Storage drivers
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
	StorageNone   = "none"

	// File and directory constants
	ResultsDir          = "results"
	ModelFile           = "model.json"
	ReportFile          = "report.xlsx"
	DefaultDatabaseFile = "runs.db"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "EVOSVM_"
)
