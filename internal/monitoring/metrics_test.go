package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

// TestRecordGeneration tests that generation statistics reach the gauges and counters
func TestRecordGeneration(t *testing.T) {
	generationsBefore := testutil.ToFloat64(generationsTotal)
	unconvergedBefore := testutil.ToFloat64(repairUnconvergedTotal)

	observer := GenerationObserver()
	observer(optimization.GenerationStats{
		Generation:         4,
		BestFitness:        1.25,
		AverageFitness:     0.5,
		UnconvergedRepairs: 3,
		Duration:           20 * time.Millisecond,
	})

	assert.Equal(t, 1.25, testutil.ToFloat64(bestFitness))
	assert.Equal(t, 0.5, testutil.ToFloat64(averageFitness))
	assert.Equal(t, 4.0, testutil.ToFloat64(currentGeneration))
	assert.Equal(t, generationsBefore+1, testutil.ToFloat64(generationsTotal))
	assert.Equal(t, unconvergedBefore+3, testutil.ToFloat64(repairUnconvergedTotal))
}

// TestRecordRun tests the labelled run counter
func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(runsTotal.WithLabelValues(RunStatusFailed))

	RecordRun(RunStatusFailed)
	UpdateSupportVectors(12)
	RecordGridCell()

	assert.Equal(t, before+1, testutil.ToFloat64(runsTotal.WithLabelValues(RunStatusFailed)))
	assert.Equal(t, 12.0, testutil.ToFloat64(supportVectors))
}

// TestServeMux tests the metrics and progress endpoints
func TestServeMux(t *testing.T) {
	progress := NewProgressTracker()
	progress.Start(100)
	progress.Observe(optimization.GenerationStats{Generation: 10, BestFitness: 2})
	RecordGeneration(optimization.GenerationStats{Generation: 10, BestFitness: 2})

	server := httptest.NewServer(NewServeMux(progress))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status ProgressStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "running", status.Status)
	assert.Equal(t, 10, status.Generation)
	assert.Equal(t, 100, status.MaxGenerations)

	metrics, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}

// TestProgressTracker_Failure tests that a failed run is reported as an error status
func TestProgressTracker_Failure(t *testing.T) {
	progress := NewProgressTracker()
	progress.Start(5)
	progress.Finish(errors.New("dataset is empty"))

	rec := httptest.NewRecorder()
	progress.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "dataset is empty"))
	assert.Equal(t, "failed", progress.Status().Status)
}
