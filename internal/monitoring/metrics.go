package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ducminhle1904/evosvm/pkg/optimization"
)

// Run outcomes reported on evosvm_runs_total
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

var (
	// Evolution metrics
	bestFitness = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "evosvm_best_fitness",
			Help: "Best dual objective value in the current generation",
		},
	)

	averageFitness = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "evosvm_average_fitness",
			Help: "Average dual objective value in the current generation",
		},
	)

	currentGeneration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "evosvm_generation",
			Help: "Index of the last completed generation",
		},
	)

	generationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "evosvm_generations_total",
			Help: "Total number of completed generations",
		},
	)

	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evosvm_generation_duration_seconds",
			Help:    "Wall time spent per generation",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Constraint repair metrics
	repairUnconvergedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "evosvm_repair_unconverged_total",
			Help: "Total number of repairs that hit the iteration cap",
		},
	)

	// Model metrics
	supportVectors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "evosvm_support_vectors",
			Help: "Number of support vectors of the last trained model",
		},
	)

	// Run metrics
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evosvm_runs_total",
			Help: "Total number of training runs",
		},
		[]string{"status"},
	)

	gridCellsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "evosvm_grid_cells_total",
			Help: "Total number of evaluated grid search cells",
		},
	)
)

func init() {
	prometheus.MustRegister(bestFitness)
	prometheus.MustRegister(averageFitness)
	prometheus.MustRegister(currentGeneration)
	prometheus.MustRegister(generationsTotal)
	prometheus.MustRegister(generationDuration)
	prometheus.MustRegister(repairUnconvergedTotal)
	prometheus.MustRegister(supportVectors)
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(gridCellsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordGeneration records the statistics of one generation
func RecordGeneration(stats optimization.GenerationStats) {
	bestFitness.Set(stats.BestFitness)
	averageFitness.Set(stats.AverageFitness)
	currentGeneration.Set(float64(stats.Generation))
	generationsTotal.Inc()
	generationDuration.Observe(stats.Duration.Seconds())
	repairUnconvergedTotal.Add(float64(stats.UnconvergedRepairs))
}

// GenerationObserver returns an optimizer hook feeding RecordGeneration
func GenerationObserver() optimization.GenerationObserver {
	return RecordGeneration
}

// UpdateSupportVectors records the support-vector count of a trained model
func UpdateSupportVectors(count int) {
	supportVectors.Set(float64(count))
}

// RecordRun records a finished run
func RecordRun(status string) {
	runsTotal.WithLabelValues(status).Inc()
}

// RecordGridCell records one evaluated grid search cell
func RecordGridCell() {
	gridCellsTotal.Inc()
}
