// Package prometheus exposes worker pool activity as Prometheus metrics.
// The pool core stays metrics-free; this package plugs in through the
// pool.Observer hook.
package prometheus

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DefaultRegistry is the default Prometheus registry
	DefaultRegistry = prometheus.NewRegistry()

	// DefaultRegisterer is the default Prometheus registerer
	DefaultRegisterer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "threaded"}, DefaultRegistry)

	metricsOnce sync.Once
	metrics     *Metrics
)

// Metrics holds all worker pool Prometheus metrics
type Metrics struct {
	JobsSubmittedTotal prometheus.Counter
	JobsCompletedTotal prometheus.Counter
	JobsPanickedTotal  prometheus.Counter
	WorkersLive        prometheus.Gauge
	QueueDepth         prometheus.Gauge
	JobDuration        prometheus.Histogram
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = NewMetrics(DefaultRegisterer)
	})
	return metrics
}

// NewMetrics creates a new metrics collection
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = DefaultRegisterer
	}

	return &Metrics{
		JobsSubmittedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "threaded_jobs_submitted_total",
				Help: "Total number of jobs accepted by Execute",
			},
		),
		JobsCompletedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "threaded_jobs_completed_total",
				Help: "Total number of jobs that returned normally",
			},
		),
		JobsPanickedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "threaded_jobs_panicked_total",
				Help: "Total number of jobs that panicked, each retiring a worker",
			},
		),
		WorkersLive: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "threaded_workers_live",
				Help: "Number of workers still running their loop",
			},
		),
		QueueDepth: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "threaded_queue_depth",
				Help: "Number of jobs queued and not yet picked up",
			},
		),
		JobDuration: promauto.With(registerer).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "threaded_job_duration_seconds",
				Help:    "Job execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Handler returns an http.Handler serving the default registry, for
// mounting on a /metrics route.
func Handler() http.Handler {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
}

// PoolObserver adapts Metrics to the pool.Observer hook. Safe for
// concurrent use; all underlying prometheus types are.
type PoolObserver struct {
	m *Metrics
}

// NewPoolObserver creates an observer recording into m.
// Pass GetMetrics() to record into the default registry.
func NewPoolObserver(m *Metrics) *PoolObserver {
	return &PoolObserver{m: m}
}

func (o *PoolObserver) JobEnqueued() {
	o.m.JobsSubmittedTotal.Inc()
	o.m.QueueDepth.Inc()
}

func (o *PoolObserver) JobStarted() {
	o.m.QueueDepth.Dec()
}

func (o *PoolObserver) JobCompleted(d time.Duration) {
	o.m.JobsCompletedTotal.Inc()
	o.m.JobDuration.Observe(d.Seconds())
}

func (o *PoolObserver) JobPanicked() {
	o.m.JobsPanickedTotal.Inc()
}

func (o *PoolObserver) WorkerStarted() {
	o.m.WorkersLive.Inc()
}

func (o *PoolObserver) WorkerExited() {
	o.m.WorkersLive.Dec()
}
