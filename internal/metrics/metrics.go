// Package metrics records per-stage timings for a run and optionally
// pushes them to a Prometheus Pushgateway. Batch runs push once at exit;
// there is no metrics HTTP server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder owns a private registry so concurrent tests never collide on
// the default global one.
type Recorder struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	runsTotal     *prometheus.CounterVec
}

// New creates a recorder with an empty registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skyrun_stage_duration_seconds",
			Help:    "Wall-clock duration of external pipeline stages",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
		}, []string{"pipeline", "stage"}),
		stageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skyrun_stage_failures_total",
			Help: "External stages that exited non-zero",
		}, []string{"pipeline", "stage"}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skyrun_runs_total",
			Help: "Pipeline runs by terminal status",
		}, []string{"pipeline", "status"}),
	}
}

// ObserveStage records one stage execution.
func (r *Recorder) ObserveStage(pipeline, stage string, d time.Duration, err error) {
	r.stageDuration.WithLabelValues(pipeline, stage).Observe(d.Seconds())
	if err != nil {
		r.stageFailures.WithLabelValues(pipeline, stage).Inc()
	}
}

// RunCompleted records a run reaching a terminal status.
func (r *Recorder) RunCompleted(pipeline, status string) {
	r.runsTotal.WithLabelValues(pipeline, status).Inc()
}

// Registry exposes the underlying registry (used in tests).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Push sends everything recorded so far to a Pushgateway. An empty gateway
// URL is a no-op so runs without SKYRUN_PUSHGATEWAY stay offline.
func (r *Recorder) Push(gateway, pipeline string) error {
	if gateway == "" {
		return nil
	}

	return push.New(gateway, "skyrun").
		Gatherer(r.registry).
		Grouping("pipeline", pipeline).
		Push()
}
