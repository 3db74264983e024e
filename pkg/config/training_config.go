package config

import (
	"path/filepath"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/data"
	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/optimization"
	"github.com/ducminhle1904/evosvm/pkg/svm"
)

// TrainingConfig is the full configuration of a training run
type TrainingConfig struct {
	// Seed initializes the run's random source
	Seed int64 `json:"seed"`

	Optimization optimization.OptimizationConfig `json:"optimization"`
	SVM          svm.Config                      `json:"svm"`
	Data         DataConfig                      `json:"data"`
	Evaluation   EvaluationConfig                `json:"evaluation"`
	Output       OutputConfig                    `json:"output"`
	Storage      StorageConfig                   `json:"storage"`

	Notifications NotificationsConfig `json:"notifications,omitempty"`
}

// DataConfig locates the training and test datasets
type DataConfig struct {
	TrainFile string `json:"train_file"`

	// TestFile is optional; without it the training file is split by SplitRatio
	TestFile   string  `json:"test_file,omitempty"`
	SplitRatio float64 `json:"split_ratio"`

	Format    string `json:"format"`
	HasHeader bool   `json:"has_header,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// EvaluationConfig selects how the trained model is scored
type EvaluationConfig struct {
	Mode string `json:"mode"`
}

// OutputConfig selects the reports written after a run
type OutputConfig struct {
	Dir        string `json:"dir"`
	Console    bool   `json:"console"`
	Excel      bool   `json:"excel"`
	JSON       bool   `json:"json"`
	CSV        bool   `json:"csv,omitempty"`
	SessionLog bool   `json:"session_log"`
}

// StorageConfig selects the run store
type StorageConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path,omitempty"`
}

// NotificationsConfig enables Telegram alerts when a run finishes or fails
type NotificationsConfig struct {
	TelegramToken  string `json:"telegram_token,omitempty"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
}

// Enabled reports whether both Telegram credentials are set
func (n NotificationsConfig) Enabled() bool {
	return n.TelegramToken != "" && n.TelegramChatID != ""
}

// NewDefaultTrainingConfig returns the default training setup.
// NumberOfGenes is 0, meaning one gene per training instance.
func NewDefaultTrainingConfig() *TrainingConfig {
	opt := optimization.GetDefaultOptimizationConfig()
	opt.NumberOfGenes = 0

	return &TrainingConfig{
		Seed:         DefaultSeed,
		Optimization: opt,
		SVM:          svm.DefaultConfig(),
		Data: DataConfig{
			SplitRatio: DefaultSplitRatio,
			Format:     FormatWisconsin,
		},
		Evaluation: EvaluationConfig{
			Mode: string(evaluation.ModeIndexed),
		},
		Output: OutputConfig{
			Dir:        ResultsDir,
			Console:    true,
			Excel:      true,
			JSON:       true,
			SessionLog: true,
		},
		Storage: StorageConfig{
			Driver: StorageSQLite,
		},
	}
}

// DatasetFormat resolves the configured data layout
func (c *TrainingConfig) DatasetFormat() (data.DatasetFormat, error) {
	var format data.DatasetFormat
	switch c.Data.Format {
	case FormatWisconsin, "":
		format = data.WisconsinFormat
	case FormatPlain:
		format = data.PlainFormat
	default:
		return data.DatasetFormat{}, svmerrors.NewConfigurationError("config", "dataset format",
			"unknown data format %q", c.Data.Format)
	}
	if c.Data.HasHeader {
		format.HasHeader = true
	}
	format.Limit = c.Data.Limit
	return format, nil
}

// EvaluationMode resolves the configured evaluation mode
func (c *TrainingConfig) EvaluationMode() (evaluation.Mode, error) {
	return evaluation.ParseMode(c.Evaluation.Mode)
}

// DatabasePath returns the SQLite path, defaulting to the output directory
func (c *TrainingConfig) DatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(c.Output.Dir, DefaultDatabaseFile)
}
