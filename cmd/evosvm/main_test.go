package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/evosvm/pkg/reporting"
)

const sampleData = `1000025,5,1,1,1,2,1,3,1,1,2
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

const sampleConfig = `seed: 11
optimization:
  population_size: 8
  max_generations: 4
data:
  split_ratio: 0.75
output:
  console: true
  excel: false
  json: true
  csv: true
  session_log: false
`

type fixture struct {
	dir       string
	dataFile  string
	config    string
	outputDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:       dir,
		dataFile:  filepath.Join(dir, "wisconsin.data"),
		config:    filepath.Join(dir, "config.yaml"),
		outputDir: filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(f.dataFile, []byte(sampleData), 0644))
	require.NoError(t, os.WriteFile(f.config, []byte(sampleConfig), 0644))
	return f
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestVersionCommand_Output tests the version banner
func TestVersionCommand_Output(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "evosvm v"+Version)
	assert.Contains(t, out, "Go: ")
}

// TestTrainCommand_WritesReportsAndStoresRun tests train followed by runs list and show
func TestTrainCommand_WritesReportsAndStoresRun(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "train", "--config", f.config, "--train", f.dataFile, "--output", f.outputDir)
	require.NoError(t, err)
	assert.Contains(t, out, "TRAINING RUN")

	entries, err := os.ReadDir(f.outputDir)
	require.NoError(t, err)
	var runDir string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "wisconsin_") {
			runDir = filepath.Join(f.outputDir, entry.Name())
		}
	}
	require.NotEmpty(t, runDir, "run output directory")
	assert.FileExists(t, filepath.Join(runDir, reporting.ModelFileName))
	assert.NoFileExists(t, filepath.Join(runDir, reporting.ReportFileName))

	db := filepath.Join(f.outputDir, "runs.db")
	require.FileExists(t, db)

	list, err := execute(t, "runs", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, list, "RUNS")
	assert.Contains(t, list, "wisconsin.data")

	runID := strings.TrimPrefix(filepath.Base(runDir), "wisconsin_")
	assert.Contains(t, list, runID)
}

// TestTrainCommand_SaveConfig tests that the resolved configuration is written back
func TestTrainCommand_SaveConfig(t *testing.T) {
	f := newFixture(t)
	saved := filepath.Join(f.dir, "resolved.yaml")

	_, err := execute(t, "train", "--config", f.config, "--train", f.dataFile,
		"--output", f.outputDir, "--c", "0.5", "--save-config", saved)
	require.NoError(t, err)

	content, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(content), "c: 0.5")
	assert.Contains(t, string(content), "train_file: "+f.dataFile)
}

// TestTrainCommand_MissingTrainFile tests that training without data fails
func TestTrainCommand_MissingTrainFile(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, "train", "--config", f.config, "--output", f.outputDir)
	assert.Error(t, err)
}

// TestRootCommand_ExplicitEnvFileMissing tests that an explicit env file must exist
func TestRootCommand_ExplicitEnvFileMissing(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, "--env-file", filepath.Join(f.dir, "missing.env"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestRunsCommand_ShowUnknown tests that an unknown run id is reported
func TestRunsCommand_ShowUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, "runs", "show", "does-not-exist", "--db", filepath.Join(f.dir, "runs.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

// TestGridCommand_SmallGrid tests a two by one grid search
func TestGridCommand_SmallGrid(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "grid", "--config", f.config, "--train", f.dataFile,
		"--output", f.outputDir, "--c", "0.1,1", "--gamma", "0.01", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "GRID SEARCH")
	assert.FileExists(t, filepath.Join(f.outputDir, reporting.GridCSVName))
}

// TestCrossValidateCommand_Folds tests cross-validation output
func TestCrossValidateCommand_Folds(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "cv", "--config", f.config, "--train", f.dataFile, "--folds", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "CROSS-VALIDATION (4 FOLDS)")
}
