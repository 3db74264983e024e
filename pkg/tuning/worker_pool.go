package tuning

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"k8s.io/klog/v2"
)

// WorkerPool runs grid cells in parallel with a bounded number of goroutines
type WorkerPool struct {
	workerCount int
}

// CellJob is a single grid cell waiting to be trained
type CellJob struct {
	Index int
	C     float64
	Gamma float64
	Seed  int64
}

// CellProcessor trains and scores one cell
type CellProcessor func(ctx context.Context, job CellJob) CellResult

// NewWorkerPool creates a pool. A non-positive count uses one worker per CPU.
func NewWorkerPool(workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &WorkerPool{workerCount: workerCount}
}

// WorkerCount returns the goroutine bound
func (wp *WorkerPool) WorkerCount() int {
	return wp.workerCount
}

// Run processes every job and returns the results in job order. Jobs that have
// not started when ctx is cancelled are skipped and the context error is returned.
func (wp *WorkerPool) Run(ctx context.Context, jobs []CellJob, process CellProcessor) ([]CellResult, error) {
	results := make([]CellResult, len(jobs))
	tracker := NewProgressTracker(len(jobs))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(wp.workerCount)
	for i, job := range jobs {
		i, job := i, job
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				results[i] = CellResult{Index: job.Index, C: job.C, Gamma: job.Gamma, Seed: job.Seed, Err: err}
				return err
			}

			results[i] = process(ctx, job)
			tracker.Increment()

			completed, total, progress, _ := tracker.GetProgress()
			klog.V(2).InfoS("Grid cell finished", "cell", job.Index, "completed", completed,
				"total", total, "progress", progress, "remaining", tracker.EstimateTimeRemaining())
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ProgressTracker tracks the progress of a grid search
type ProgressTracker struct {
	total     int
	completed int
	startTime time.Time
	mutex     sync.RWMutex
}

// NewProgressTracker creates a new progress tracker
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{
		total:     total,
		startTime: time.Now(),
	}
}

// Increment increments the completion count
func (pt *ProgressTracker) Increment() {
	pt.mutex.Lock()
	defer pt.mutex.Unlock()
	pt.completed++
}

// GetProgress returns completed, total, percentage and elapsed time
func (pt *ProgressTracker) GetProgress() (int, int, float64, time.Duration) {
	pt.mutex.RLock()
	defer pt.mutex.RUnlock()

	elapsed := time.Since(pt.startTime)
	progress := 0.0
	if pt.total > 0 {
		progress = float64(pt.completed) / float64(pt.total) * 100
	}

	return pt.completed, pt.total, progress, elapsed
}

// EstimateTimeRemaining extrapolates from the average time per finished cell
func (pt *ProgressTracker) EstimateTimeRemaining() time.Duration {
	pt.mutex.RLock()
	defer pt.mutex.RUnlock()

	if pt.completed == 0 {
		return 0
	}

	elapsed := time.Since(pt.startTime)
	avgTimePerItem := elapsed / time.Duration(pt.completed)
	remaining := pt.total - pt.completed

	return avgTimePerItem * time.Duration(remaining)
}
