package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

var startTime = time.Now()

// ProgressTracker follows a training run and reports it over HTTP
type ProgressTracker struct {
	mu             sync.RWMutex
	generation     int
	maxGenerations int
	bestFitness    float64
	lastUpdate     time.Time
	running        bool
	errors         []string
}

// ProgressStatus is the JSON body served by ProgressTracker
type ProgressStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Generation     int       `json:"generation"`
	MaxGenerations int       `json:"max_generations"`
	BestFitness    float64   `json:"best_fitness"`
	LastUpdate     time.Time `json:"last_update"`
	Uptime         string    `json:"uptime"`
	Errors         []string  `json:"errors,omitempty"`
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		errors: make([]string, 0),
	}
}

// Start marks a run as in progress
func (p *ProgressTracker) Start(maxGenerations int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = true
	p.maxGenerations = maxGenerations
	p.generation = 0
	p.lastUpdate = time.Now()
}

// Observe is a GenerationObserver
func (p *ProgressTracker) Observe(stats optimization.GenerationStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation = stats.Generation
	p.bestFitness = stats.BestFitness
	p.lastUpdate = time.Now()
}

// Finish marks the run as done, recording err if it failed
func (p *ProgressTracker) Finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.running = false
	if err != nil {
		p.errors = append(p.errors, err.Error())
	}
}

// Status returns a snapshot of the progress
func (p *ProgressTracker) Status() ProgressStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	status := "idle"
	if p.running {
		status = "running"
	}
	if len(p.errors) > 0 {
		status = "failed"
	}

	return ProgressStatus{
		Status:         status,
		Timestamp:      time.Now(),
		Generation:     p.generation,
		MaxGenerations: p.maxGenerations,
		BestFitness:    p.bestFitness,
		LastUpdate:     p.lastUpdate,
		Uptime:         time.Since(startTime).String(),
		Errors:         append([]string(nil), p.errors...),
	}
}

func (p *ProgressTracker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := p.Status()

	w.Header().Set("Content-Type", "application/json")
	if status.Status == "failed" {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(status)
}

// NewServeMux exposes /metrics and /healthz
func NewServeMux(progress *ProgressTracker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", NewMetricsHandler())
	mux.Handle("/healthz", progress)
	return mux
}
