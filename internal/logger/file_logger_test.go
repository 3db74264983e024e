package logger

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

// TestLogger_Session tests header, entries and footer of a session log
func TestLogger_Session(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "data/breast-cancer-wisconsin.data")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(l.GetLogPath(), dir))
	assert.Contains(t, l.GetLogPath(), "breast-cancer-wisconsin_")

	l.Info("loaded %d instances", 699)
	l.Warning("skipped %d rows", 16)
	l.LogError("store", errors.New("disk full"))
	l.GenerationObserver()(optimization.GenerationStats{Generation: 3, BestFitness: 1.5, UnconvergedRepairs: 2})
	l.LogResult("run-1", 1.5, -0.25, 0.2, 7, 0.9, 0.8, 0.95)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	content, err := os.ReadFile(l.GetLogPath())
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "SVM TRAINING SESSION STARTED")
	assert.Contains(t, text, "[INFO] loaded 699 instances")
	assert.Contains(t, text, "[WARN] skipped 16 rows")
	assert.Contains(t, text, "[ERROR] store: disk full")
	assert.Contains(t, text, "[GEN] #3 best=1.500000")
	assert.Contains(t, text, "unconverged=2")
	assert.Contains(t, text, "Support vectors: 7")
	assert.Contains(t, text, "SVM TRAINING SESSION ENDED")
}

// TestSanitize tests log name derivation
func TestSanitize(t *testing.T) {
	assert.Equal(t, "train", sanitize("/tmp/train.csv"))
	assert.Equal(t, "my_data", sanitize("my data.xlsx"))
	assert.Equal(t, "session", sanitize(""))
}
