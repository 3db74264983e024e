package orchestrator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/internal/monitoring"
	"github.com/ducminhle1904/evosvm/internal/notifications"
	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/config"
	"github.com/ducminhle1904/evosvm/pkg/evaluation"
	"github.com/ducminhle1904/evosvm/pkg/reporting"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
)

const trainingSample = `1000025,5,1,1,1,2,1,3,1,1,2
1002945,5,4,4,5,7,10,3,2,1,2
1015425,3,1,1,1,2,2,3,1,1,2
1016277,6,8,8,1,3,4,3,7,1,2
1017023,4,1,1,3,2,1,3,1,1,2
1017122,8,10,10,8,7,10,9,7,1,4
1018099,1,1,1,1,2,10,3,1,1,2
1018561,2,1,2,1,2,1,3,1,1,2
1033078,2,1,1,1,2,1,1,1,5,2
1035283,1,1,1,1,1,1,3,1,1,2
1036172,2,1,1,1,2,1,2,1,1,2
1041801,5,3,3,3,2,3,4,4,1,4
1043999,1,1,1,1,2,3,3,1,1,2
1044572,8,7,5,10,7,9,5,5,4,4
1047630,7,4,6,4,6,1,4,3,1,4
1048672,4,1,1,1,2,1,2,1,1,2
`

func trainingConfig(t *testing.T) *config.TrainingConfig {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "breast-cancer-wisconsin.data")
	require.NoError(t, os.WriteFile(path, []byte(trainingSample), 0644))

	cfg := config.NewDefaultTrainingConfig()
	cfg.Seed = 11
	cfg.Data.TrainFile = path
	cfg.Data.SplitRatio = 0.75
	cfg.Optimization.PopulationSize = 8
	cfg.Optimization.MaxGenerations = 5
	cfg.Output.Dir = filepath.Join(dir, "results")
	cfg.Storage.Driver = config.StorageMemory
	return cfg
}

// TestRunTraining_Workflow tests the full run from file to stored record and reports
func TestRunTraining_Workflow(t *testing.T) {
	ctx := context.Background()
	cfg := trainingConfig(t)
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init(ctx))
	progress := monitoring.NewProgressTracker()
	var console bytes.Buffer

	o := NewOrchestrator(WithStore(store), WithProgress(progress), WithConsole(&console))
	result, err := o.RunTraining(ctx, cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	require.NotNil(t, result.Model)
	assert.Len(t, result.Model.Alphas, 12)
	assert.Len(t, result.History, cfg.Optimization.MaxGenerations+1)
	assert.Equal(t, evaluation.ModeIndexed, result.Evaluation.Mode)
	assert.Equal(t, result.Best.Fitness, result.Model.Fitness)

	stored, ok, err := store.GetRun(ctx, result.RunID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cfg.Data.TrainFile, stored.Dataset)
	assert.Equal(t, result.Model, stored.Model)

	require.Len(t, result.Reports, 2)
	for _, path := range result.Reports {
		assert.FileExists(t, path)
	}
	model, err := reporting.ReadModelJSON(filepath.Join(filepath.Dir(result.Reports[0]), reporting.ModelFileName))
	require.NoError(t, err)
	assert.Equal(t, result.Model.SupportVectors, model.SupportVectors)

	logs, err := os.ReadDir(filepath.Join(cfg.Output.Dir, LogDir))
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	assert.Contains(t, console.String(), result.RunID)
	assert.Equal(t, "idle", progress.Status().Status)
	assert.Equal(t, cfg.Optimization.MaxGenerations, progress.Status().Generation)
}

// TestRunTraining_Deterministic tests that the seed fixes the trained model
func TestRunTraining_Deterministic(t *testing.T) {
	cfg := trainingConfig(t)
	cfg.Output = config.OutputConfig{Dir: cfg.Output.Dir}

	first, err := NewOrchestrator().RunTraining(context.Background(), cfg)
	require.NoError(t, err)
	second, err := NewOrchestrator().RunTraining(context.Background(), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Model, second.Model)
	assert.Equal(t, first.Evaluation, second.Evaluation)
	assert.Empty(t, first.Reports)
}

// TestRunTraining_Errors tests configuration and data failures
func TestRunTraining_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.TrainingConfig)
		check  func(error) bool
	}{
		{"missing train file", func(cfg *config.TrainingConfig) { cfg.Data.TrainFile = "" }, svmerrors.IsConfigurationError},
		{"invalid C", func(cfg *config.TrainingConfig) { cfg.SVM.C = 0 }, svmerrors.IsConfigurationError},
		{"gene count mismatch", func(cfg *config.TrainingConfig) { cfg.Optimization.NumberOfGenes = 3 }, svmerrors.IsConfigurationError},
		{"unknown mode", func(cfg *config.TrainingConfig) { cfg.Evaluation.Mode = "nearest" }, svmerrors.IsConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := trainingConfig(t)
			cfg.Output = config.OutputConfig{Dir: cfg.Output.Dir}
			tt.mutate(cfg)
			progress := monitoring.NewProgressTracker()

			_, err := NewOrchestrator(WithProgress(progress)).RunTraining(context.Background(), cfg)

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.Equal(t, "failed", progress.Status().Status)
		})
	}
}

type capturedAlert struct {
	level   string
	message string
}

type captureNotifier struct {
	alerts []capturedAlert
}

func (c *captureNotifier) SendAlert(level, message string) error {
	c.alerts = append(c.alerts, capturedAlert{level, message})
	return nil
}

// TestRunTraining_Notifications tests that finished and failed runs are announced
func TestRunTraining_Notifications(t *testing.T) {
	cfg := trainingConfig(t)
	cfg.Output = config.OutputConfig{Dir: cfg.Output.Dir}
	notifier := &captureNotifier{}
	o := NewOrchestrator(WithNotifier(notifier))

	result, err := o.RunTraining(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, notifications.LevelSuccess, notifier.alerts[0].level)
	assert.Contains(t, notifier.alerts[0].message, result.RunID[:8])

	cfg.SVM.C = 0
	_, err = o.RunTraining(context.Background(), cfg)
	require.Error(t, err)
	require.Len(t, notifier.alerts, 2)
	assert.Equal(t, notifications.LevelError, notifier.alerts[1].level)
}

// TestRunTraining_Cancelled tests that a cancelled context stops before evolution
func TestRunTraining_Cancelled(t *testing.T) {
	cfg := trainingConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOrchestrator().RunTraining(ctx, cfg)

	assert.ErrorIs(t, err, context.Canceled)
}

// TestDatasetLoader_TestFile tests that a separate test file is used instead of a split
func TestDatasetLoader_TestFile(t *testing.T) {
	cfg := trainingConfig(t)
	testPath := filepath.Join(t.TempDir(), "test.data")
	require.NoError(t, os.WriteFile(testPath, []byte("1,5,1,1,1,2,1,3,1,1,4\n2,1,1,1,1,2,1,3,1,1,2\n"), 0644))
	cfg.Data.TestFile = testPath

	train, test, err := NewDefaultDatasetLoader().LoadDatasets(cfg)

	require.NoError(t, err)
	assert.Equal(t, 16, train.Len())
	assert.Equal(t, []int{1, -1}, test.Labels)
}

// TestRunGridSearch tests ranked grid results and written reports
func TestRunGridSearch(t *testing.T) {
	cfg := trainingConfig(t)
	cfg.Output.Console = false
	cfg.Output.CSV = true

	results, err := NewOrchestrator().RunGridSearch(context.Background(), cfg,
		tuning.Grid{Cs: []float64{0.1, 1}, Gammas: []float64{0.01}}, 2)

	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, reporting.GridXLSXName))
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, reporting.GridCSVName))
}

// TestRunCrossValidation tests one result per fold
func TestRunCrossValidation(t *testing.T) {
	cfg := trainingConfig(t)
	var console bytes.Buffer

	summary, err := NewOrchestrator(WithConsole(&console)).RunCrossValidation(context.Background(), cfg, 4)

	require.NoError(t, err)
	assert.Len(t, summary.Results, 4)
	assert.Contains(t, console.String(), "CROSS-VALIDATION")
}

// TestWorkflows tests that each workflow reports its type and delegates
func TestWorkflows(t *testing.T) {
	cfg := trainingConfig(t)
	cfg.Output = config.OutputConfig{Dir: cfg.Output.Dir}
	o := NewOrchestrator()

	training := NewTrainingWorkflow(o, cfg)
	assert.Equal(t, WorkflowTypeTraining, training.GetWorkflowType())
	out, err := training.Execute(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &TrainingResult{}, out)

	assert.Equal(t, WorkflowTypeGridSearch, NewGridSearchWorkflow(o, cfg, tuning.Grid{}, 1).GetWorkflowType())
	assert.Equal(t, WorkflowTypeCrossValidation, NewCrossValidationWorkflow(o, cfg, 2).GetWorkflowType())
}

// TestOpenStore tests store selection from configuration
func TestOpenStore(t *testing.T) {
	cfg := trainingConfig(t)

	cfg.Storage.Driver = config.StorageNone
	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, store)

	cfg.Storage.Driver = config.StorageSQLite
	store, err = OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()
	assert.FileExists(t, cfg.DatabasePath())
}
