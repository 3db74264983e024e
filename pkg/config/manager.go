package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
)

// Manager implements ConfigManager for training configurations
type Manager struct {
	validator Validator
	lookupEnv func(string) (string, bool)
}

// NewManager creates a new configuration manager reading the process environment
func NewManager() *Manager {
	return &Manager{
		validator: NewTrainingValidator(),
		lookupEnv: os.LookupEnv,
	}
}

// NewManagerWithEnv creates a manager that resolves overrides through lookup
func NewManagerWithEnv(lookup func(string) (string, bool)) *Manager {
	return &Manager{
		validator: NewTrainingValidator(),
		lookupEnv: lookup,
	}
}

// LoadConfig loads configuration from defaults, file and environment, in that order
func (m *Manager) LoadConfig(configFile string) (*TrainingConfig, error) {
	cfg := NewDefaultTrainingConfig()

	if configFile != "" {
		if err := m.loadFromFile(configFile, cfg); err != nil {
			return nil, err
		}
	}

	if err := m.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := m.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile decodes a JSON or YAML file over the current values. Unknown keys are rejected.
func (m *Manager) loadFromFile(configFile string, cfg *TrainingConfig) error {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return svmerrors.NewIOError("config", "read", err).WithContext("file", configFile)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return svmerrors.NewConfigurationError("config", "parse",
			"could not parse config file %s: %v", configFile, err)
	}

	klog.V(1).InfoS("Loaded configuration file", "file", configFile)
	return nil
}

// applyEnvOverrides reads EVOSVM_* variables
func (m *Manager) applyEnvOverrides(cfg *TrainingConfig) error {
	stringVars := map[string]*string{
		"TRAIN_FILE":       &cfg.Data.TrainFile,
		"TEST_FILE":        &cfg.Data.TestFile,
		"DATA_FORMAT":      &cfg.Data.Format,
		"EVALUATION_MODE":  &cfg.Evaluation.Mode,
		"OUTPUT_DIR":       &cfg.Output.Dir,
		"STORAGE_DRIVER":   &cfg.Storage.Driver,
		"STORAGE_PATH":     &cfg.Storage.Path,
		"TELEGRAM_TOKEN":   &cfg.Notifications.TelegramToken,
		"TELEGRAM_CHAT_ID": &cfg.Notifications.TelegramChatID,
	}
	intVars := map[string]*int{
		"POPULATION_SIZE":  &cfg.Optimization.PopulationSize,
		"GENERATIONS":      &cfg.Optimization.MaxGenerations,
		"NUMBER_OF_GENES":  &cfg.Optimization.NumberOfGenes,
		"WORKERS":          &cfg.Optimization.MaxWorkers,
		"REPAIR_MAX_ITERS": &cfg.Optimization.RepairMaxIterations,
		"DATA_LIMIT":       &cfg.Data.Limit,
	}
	floatVars := map[string]*float64{
		"CROSSOVER_RATE":   &cfg.Optimization.CrossoverRate,
		"MUTATION_RATE":    &cfg.Optimization.MutationRate,
		"REPAIR_TOLERANCE": &cfg.Optimization.RepairTolerance,
		"C":                &cfg.SVM.C,
		"GAMMA":            &cfg.SVM.Gamma,
		"SPLIT_RATIO":      &cfg.Data.SplitRatio,
	}

	for key, target := range stringVars {
		if value, ok := m.lookup(key); ok {
			*target = value
		}
	}

	for key, target := range intVars {
		if value, ok := m.lookup(key); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return envError(key, value, err)
			}
			*target = parsed
		}
	}

	for key, target := range floatVars {
		if value, ok := m.lookup(key); ok {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return envError(key, value, err)
			}
			*target = parsed
		}
	}

	if value, ok := m.lookup("SEED"); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return envError("SEED", value, err)
		}
		cfg.Seed = parsed
	}

	return nil
}

func (m *Manager) lookup(key string) (string, bool) {
	value, ok := m.lookupEnv(EnvPrefix + key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func envError(key, value string, err error) error {
	return svmerrors.NewConfigurationError("config", "env override",
		"invalid value %q for %s%s: %v", value, EnvPrefix, key, err)
}

// ValidateConfig validates a configuration
func (m *Manager) ValidateConfig(cfg *TrainingConfig) error {
	return m.validator.Validate(cfg)
}

// SaveConfig saves configuration as YAML for .yaml/.yml paths and as indented JSON otherwise
func (m *Manager) SaveConfig(cfg *TrainingConfig, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return svmerrors.NewIOError("config", "save", err).WithContext("path", path)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return svmerrors.NewIOError("config", "save", err).WithContext("path", path)
	}
	return nil
}
