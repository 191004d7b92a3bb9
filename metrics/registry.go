package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pathviz"

// Registry holds all metrics for the visualizer
type Registry struct {
	registry *prometheus.Registry

	// Search Metrics
	SearchesTotal      *prometheus.CounterVec
	SearchVisitedCells *prometheus.HistogramVec
	SearchDuration     *prometheus.HistogramVec
	RouteLength        *prometheus.HistogramVec

	// Maze Metrics
	MazesGeneratedTotal prometheus.Counter
	MazeWalls           prometheus.Gauge

	// Playback Metrics
	PlaybackRunsTotal      *prometheus.CounterVec
	PlaybackCancelledTotal prometheus.Counter
	PlaybackBusy           prometheus.Gauge
}

// NewRegistry creates a registry with all metrics registered on a private prometheus registry
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initSearchMetrics()
	r.initMazeMetrics()
	r.initPlaybackMetrics()
	return r
}

// WithProcessCollectors adds Go runtime and process collectors
func (r *Registry) WithProcessCollectors() *Registry {
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Registry) initSearchMetrics() {
	r.SearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches run",
		},
		[]string{"algorithm", "outcome"},
	)

	r.SearchVisitedCells = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_visited_cells",
			Help:      "Cells finalized per search",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 10000},
		},
		[]string{"algorithm"},
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"algorithm"},
	)

	r.RouteLength = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_length",
			Help:      "Cells in the reconstructed route of successful searches",
			Buckets:   []float64{2, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"algorithm"},
	)
}

func (r *Registry) initMazeMetrics() {
	r.MazesGeneratedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mazes_generated_total",
			Help:      "Total number of mazes generated",
		},
	)

	r.MazeWalls = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "maze_walls",
			Help:      "Wall count of the most recent maze",
		},
	)
}

func (r *Registry) initPlaybackMetrics() {
	r.PlaybackRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_runs_total",
			Help:      "Playback runs started",
		},
		[]string{"mode"},
	)

	r.PlaybackCancelledTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_cancelled_total",
			Help:      "Playback runs superseded or cancelled before completing",
		},
	)

	r.PlaybackBusy = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "playback_busy",
			Help:      "1 while an animated playback is in progress",
		},
	)
}

// ObserveSearch records one search invocation
func (r *Registry) ObserveSearch(algorithm string, reachable bool, visited, routeLen int, elapsed time.Duration) {
	outcome := "trapped"
	if reachable {
		outcome = "reached"
		r.RouteLength.WithLabelValues(algorithm).Observe(float64(routeLen))
	}
	r.SearchesTotal.WithLabelValues(algorithm, outcome).Inc()
	r.SearchVisitedCells.WithLabelValues(algorithm).Observe(float64(visited))
	r.SearchDuration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// ObserveMaze records one maze generation
func (r *Registry) ObserveMaze(walls int) {
	r.MazesGeneratedTotal.Inc()
	r.MazeWalls.Set(float64(walls))
}

// PlaybackStarted records a new run; animated runs raise the busy gauge
func (r *Registry) PlaybackStarted(mode string) {
	r.PlaybackRunsTotal.WithLabelValues(mode).Inc()
	if mode == "animated" {
		r.PlaybackBusy.Set(1)
	}
}

func (r *Registry) PlaybackCancelled() {
	r.PlaybackCancelledTotal.Inc()
	r.PlaybackBusy.Set(0)
}

func (r *Registry) PlaybackCompleted() {
	r.PlaybackBusy.Set(0)
}
