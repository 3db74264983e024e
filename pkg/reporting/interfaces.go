package reporting

import (
	"github.com/ducminhle1904/evosvm/internal/storage"
	"github.com/ducminhle1904/evosvm/pkg/svm"
	"github.com/ducminhle1904/evosvm/pkg/tuning"
	"github.com/ducminhle1904/evosvm/pkg/validation"
)

// Package reporting renders training runs and grid searches to the console and to files

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputRun(run *storage.RunRecord)
	OutputGrid(results []tuning.CellResult)
	OutputRuns(summaries []storage.RunSummary)
	OutputCrossValidation(summary *validation.CrossValidationSummary)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteRunXLSX(run *storage.RunRecord, path string) error
	WriteGridXLSX(results []tuning.CellResult, path string) error
	WriteHistoryCSV(run *storage.RunRecord, path string) error
	WriteModelJSON(model *svm.Model, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetRunOutputDir(baseDir, dataset, runID string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	NumberStyle  int
	PercentStyle int
	BaseStyle    int
	LabelStyle   int
	SummaryStyle int
}

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	EnableConsole   bool
	OutputDirectory string
	ExcelEnabled    bool
	CSVEnabled      bool
	JSONEnabled     bool
}
