package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

// Logger writes a human-readable log of one training session to a file
type Logger struct {
	dataset string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
	path    string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo       LogLevel = "INFO"
	LogLevelWarning    LogLevel = "WARN"
	LogLevelError      LogLevel = "ERROR"
	LogLevelGeneration LogLevel = "GEN"
	LogLevelResult     LogLevel = "RESULT"
)

// NewLogger creates a session log for the named dataset under logDir
func NewLogger(logDir, dataset string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := sanitize(dataset)
	timestamp := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", name, timestamp))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		dataset: name,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
		path:    logPath,
	}

	l.writeSessionHeader()

	return l, nil
}

func sanitize(dataset string) string {
	base := strings.TrimSuffix(filepath.Base(dataset), filepath.Ext(dataset))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "session"
	}
	return strings.ReplaceAll(base, " ", "_")
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🚀 SVM TRAINING SESSION STARTED
================================================================================
Dataset: %s
Started: %s
Log File: %s
================================================================================
`, l.dataset, time.Now().Format("2006-01-02 15:04:05"), filepath.Base(l.path))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level, message))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogGeneration writes one line per generation
func (l *Logger) LogGeneration(stats optimization.GenerationStats) {
	l.Log(LogLevelGeneration, "#%d best=%.6f avg=%.6f worst=%.6f alpha0=%.6f unconverged=%d",
		stats.Generation, stats.BestFitness, stats.AverageFitness, stats.WorstFitness,
		stats.EliteAlpha0, stats.UnconvergedRepairs)
}

// GenerationObserver adapts LogGeneration to the optimizer's observer hook
func (l *Logger) GenerationObserver() optimization.GenerationObserver {
	return l.LogGeneration
}

// LogResult writes the final model summary
func (l *Logger) LogResult(runID string, fitness, bias, margin float64, supportVectors int, precision, recall, specificity float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	result := fmt.Sprintf(`
[%s] [RESULT] ==================== TRAINING COMPLETED ====================
🆔 Run: %s
🏆 Best fitness: %.6f
📐 Bias: %.6f | Margin: %.6f
🎯 Support vectors: %d
📊 Precision: %.4f | Recall: %.4f | Specificity: %.4f
=====================================================================`,
		timestamp, runID, fitness, bias, margin, supportVectors, precision, recall, specificity)

	l.logger.Println(result)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close writes the session footer and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}

	footer := fmt.Sprintf(`
================================================================================
🛑 SVM TRAINING SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Print(footer)

	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// GetLogPath returns the current log file path
func (l *Logger) GetLogPath() string {
	return l.path
}
