package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/voyago/voyago/internal/ports"
)

// Collector implements ports.MetricsCollector using Prometheus.
type Collector struct {
	plansSubmitted prometheus.Counter
	plansCompleted *prometheus.CounterVec
	planDuration   *prometheus.HistogramVec
	phaseDuration  *prometheus.HistogramVec
	workerCalls    *prometheus.CounterVec
	workerTimeouts *prometheus.CounterVec
	workerDuration *prometheus.HistogramVec
	activePlans    prometheus.Gauge
}

// NewCollector creates a Prometheus metrics collector. Metrics are
// registered on the default registry.
func NewCollector() *Collector {
	return &Collector{
		plansSubmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "voyago_plans_submitted_total",
				Help: "Total number of trip plans submitted",
			},
		),
		plansCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voyago_plans_completed_total",
				Help: "Total number of trip plans finished, by outcome",
			},
			[]string{"status"},
		),
		planDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voyago_plan_duration_seconds",
				Help:    "End-to-end plan duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
			[]string{"status"},
		),
		phaseDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voyago_phase_duration_seconds",
				Help:    "Pipeline phase duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"phase"},
		),
		workerCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voyago_worker_calls_total",
				Help: "Total number of worker invocations, by worker and outcome",
			},
			[]string{"worker", "status"},
		),
		workerTimeouts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "voyago_worker_timeouts_total",
				Help: "Total number of worker calls abandoned on timeout",
			},
			[]string{"worker"},
		),
		workerDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "voyago_worker_call_duration_seconds",
				Help:    "Worker call duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"worker"},
		),
		activePlans: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "voyago_active_plans",
				Help: "Number of plans currently in the pipeline",
			},
		),
	}
}

// RecordPlanSubmitted counts a plan submission.
func (c *Collector) RecordPlanSubmitted() {
	c.plansSubmitted.Inc()
}

// RecordPlanCompleted counts a finished plan and records its duration.
func (c *Collector) RecordPlanCompleted(status string, duration time.Duration) {
	c.plansCompleted.WithLabelValues(status).Inc()
	c.planDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordPhase records a pipeline phase duration.
func (c *Collector) RecordPhase(phase string, duration time.Duration) {
	c.phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordWorkerCall counts a worker invocation and records its duration.
func (c *Collector) RecordWorkerCall(worker, status string, duration time.Duration) {
	c.workerCalls.WithLabelValues(worker, status).Inc()
	c.workerDuration.WithLabelValues(worker).Observe(duration.Seconds())
}

// RecordWorkerTimeout counts an abandoned worker call.
func (c *Collector) RecordWorkerTimeout(worker string) {
	c.workerTimeouts.WithLabelValues(worker).Inc()
}

// SetActivePlans sets the in-flight plan gauge.
func (c *Collector) SetActivePlans(count int) {
	c.activePlans.Set(float64(count))
}

var _ ports.MetricsCollector = (*Collector)(nil)
