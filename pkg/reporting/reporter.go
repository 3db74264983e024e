package reporting

import (
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
	"github.com/ducminhle1904/evosvm/pkg/validation"
)

// Output file names inside a run directory
const (
	ModelFileName   = "model.json"
	ReportFileName  = "report.xlsx"
	HistoryFileName = "generations.csv"
	GridXLSXName    = "grid.xlsx"
	GridCSVName     = "grid.csv"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return NewReporter(NewDefaultConsoleReporter())
}

// NewReporter creates a reporter around the given console output
func NewReporter(console *DefaultConsoleReporter) *DefaultReporter {
	return &DefaultReporter{
		console: console,
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) OutputRun(run *storage.RunRecord) {
	r.console.OutputRun(run)
}

func (r *DefaultReporter) OutputGrid(results []tuning.CellResult) {
	r.console.OutputGrid(results)
}

func (r *DefaultReporter) OutputRuns(summaries []storage.RunSummary) {
	r.console.OutputRuns(summaries)
}

func (r *DefaultReporter) OutputCrossValidation(summary *validation.CrossValidationSummary) {
	r.console.OutputCrossValidation(summary)
}

// File output methods
func (r *DefaultReporter) WriteRunXLSX(run *storage.RunRecord, path string) error {
	return r.excel.WriteRunXLSX(run, path)
}

func (r *DefaultReporter) WriteGridXLSX(results []tuning.CellResult, path string) error {
	return r.excel.WriteGridXLSX(results, path)
}

func (r *DefaultReporter) WriteHistoryCSV(run *storage.RunRecord, path string) error {
	return r.csv.WriteHistoryCSV(run, path)
}

func (r *DefaultReporter) WriteModelJSON(model *svm.Model, path string) error {
	return WriteModelJSON(model, path)
}

// Path management methods
func (r *DefaultReporter) GetRunOutputDir(baseDir, dataset, runID string) string {
	return r.paths.GetRunOutputDir(baseDir, dataset, runID)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}

// ReportingManager provides a high-level interface for all reporting needs
type ReportingManager struct {
	reporter *DefaultReporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	return NewReportingManagerWith(NewDefaultReporter(), config)
}

// NewReportingManagerWith creates a manager around an existing reporter
func NewReportingManagerWith(reporter *DefaultReporter, config ReportingConfig) *ReportingManager {
	return &ReportingManager{
		reporter: reporter,
		config:   config,
	}
}

// ReportRun outputs a finished run according to configuration and returns the files written
func (m *ReportingManager) ReportRun(run *storage.RunRecord) ([]string, error) {
	if m.config.EnableConsole {
		m.reporter.OutputRun(run)
	}

	outputDir := m.reporter.GetRunOutputDir(m.config.OutputDirectory, run.Dataset, run.ID)
	var written []string

	if m.config.JSONEnabled && run.Model != nil {
		path := filepath.Join(outputDir, ModelFileName)
		if err := m.reporter.WriteModelJSON(run.Model, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if m.config.ExcelEnabled {
		path := filepath.Join(outputDir, ReportFileName)
		if err := m.reporter.WriteRunXLSX(run, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if m.config.CSVEnabled {
		path := filepath.Join(outputDir, HistoryFileName)
		if err := m.reporter.WriteHistoryCSV(run, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(written) > 0 {
		klog.InfoS("Reports written", "run", run.ID, "dir", outputDir, "files", len(written))
	}
	return written, nil
}

// ReportGrid outputs grid-search results according to configuration and returns the files written
func (m *ReportingManager) ReportGrid(results []tuning.CellResult) ([]string, error) {
	if m.config.EnableConsole {
		m.reporter.OutputGrid(results)
	}

	var written []string
	if m.config.ExcelEnabled {
		path := filepath.Join(m.config.OutputDirectory, GridXLSXName)
		if err := m.reporter.WriteGridXLSX(results, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if m.config.CSVEnabled {
		path := filepath.Join(m.config.OutputDirectory, GridCSVName)
		if err := m.reporter.csv.WriteGridCSV(results, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}
