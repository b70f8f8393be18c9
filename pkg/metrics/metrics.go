package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global metrics, registered with the default registry through promauto.

var (
	// 1. HTTP Requests Total (Counter)
	// Counts how many requests arrive, labeled by method, path, and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorpath_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// 2. HTTP Request Duration (Histogram)
	// Path queries on game-sized maps finish in microseconds, so the buckets
	// start low.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorpath_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	// 3. Solves (Counter)
	// kind is "path" or "near"; status is the query outcome or "error".
	SolvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorpath_solves_total",
			Help: "Total number of search queries by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	// 4. Expanded nodes per query (Histogram)
	SolveExpandedNodes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorpath_solve_expanded_nodes",
			Help:    "Number of states taken off the open list per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"kind"},
	)

	// 5. Solve duration (Histogram)
	SolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorpath_solve_duration_seconds",
			Help:    "Time spent inside the solver per query",
			Buckets: prometheus.ExponentialBuckets(0.000005, 4, 10),
		},
		[]string{"kind"},
	)

	// 6. Adjacency cache lookups (Counter)
	// result is "hit" or "miss".
	AdjacencyCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorpath_adjacency_cache_lookups_total",
			Help: "Neighbor list lookups served by the adjacency cache or the graph",
		},
		[]string{"result"},
	)

	// 7. Node pool size (Gauge)
	NodePoolNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kektorpath_node_pool_nodes",
			Help: "Search records allocated by the solver's node pool",
		},
	)
)

// SolverObserver feeds solver query summaries into the global metrics.
type SolverObserver struct{}

func (SolverObserver) ObserveSolve(kind, status string, expanded int, elapsed time.Duration) {
	SolvesTotal.WithLabelValues(kind, status).Inc()
	SolveExpandedNodes.WithLabelValues(kind).Observe(float64(expanded))
	SolveDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (SolverObserver) ObserveCache(hits, misses int) {
	AdjacencyCacheLookups.WithLabelValues("hit").Add(float64(hits))
	AdjacencyCacheLookups.WithLabelValues("miss").Add(float64(misses))
}

func (SolverObserver) ObservePool(nodes int) {
	NodePoolNodes.Set(float64(nodes))
}
