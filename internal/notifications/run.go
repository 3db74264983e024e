package notifications

import (
	"fmt"
	"path/filepath"
	"time"

	"k8s.io/klog/v2"
)

// RunSummary is the part of a finished run worth announcing
type RunSummary struct {
	RunID          string
	Dataset        string
	C              float64
	Gamma          float64
	BestFitness    float64
	SupportVectors int
	Accuracy       float64
	Duration       time.Duration
}

// NotifyRunFinished announces a finished run. Delivery failures are logged and
// never fail the run.
func NotifyRunFinished(n Notifier, summary RunSummary) {
	if n == nil {
		return
	}
	message := fmt.Sprintf("Run `%s` on %s finished in %s\nC=%g gamma=%g\nbest fitness %.6f, %d support vectors, accuracy %.2f%%",
		shortID(summary.RunID), filepath.Base(summary.Dataset), summary.Duration.Round(time.Millisecond),
		summary.C, summary.Gamma, summary.BestFitness, summary.SupportVectors, summary.Accuracy*100)
	if err := n.SendAlert(LevelSuccess, message); err != nil {
		klog.ErrorS(err, "Failed to send run notification", "runID", summary.RunID)
	}
}

// NotifyRunFailed announces a failed run
func NotifyRunFailed(n Notifier, dataset string, runErr error) {
	if n == nil || runErr == nil {
		return
	}
	message := fmt.Sprintf("Run on %s failed: %v", filepath.Base(dataset), runErr)
	if err := n.SendAlert(LevelError, message); err != nil {
		klog.ErrorS(err, "Failed to send failure notification", "dataset", dataset)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
