package reporting

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetRunOutputDir returns <base>/<dataset>_<short run id>
func (p *DefaultPathManager) GetRunOutputDir(baseDir, dataset, runID string) string {
	name := strings.TrimSuffix(filepath.Base(strings.TrimSpace(dataset)), filepath.Ext(dataset))
	if name == "" || name == "." {
		name = "dataset"
	}
	id := runID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "run"
	}
	if baseDir == "" {
		baseDir = "results"
	}

	return filepath.Join(baseDir, fmt.Sprintf("%s_%s", name, id))
}

// EnsureDirectoryExists creates the parent directory of path
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	return ensureDir(path)
}

// RunOutputDir is the package-level form of GetRunOutputDir
func RunOutputDir(baseDir, dataset, runID string) string {
	return NewDefaultPathManager().GetRunOutputDir(baseDir, dataset, runID)
}
