// Package metrics exposes simulation counters through a private Prometheus
// registry. Nothing is served over HTTP; WriteTextfile exports a snapshot in
// the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reasons attached to container spawn and removal counters
const (
	ReasonRestore   = "restore"
	ReasonScaleUp   = "scale_up"
	ReasonScaleDown = "scale_down"
	ReasonFailed    = "failed"
)

// Recorder collects orchestration and simulation metrics. All methods are
// safe for concurrent use and a nil *Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	containersSpawned *prometheus.CounterVec
	containersRemoved *prometheus.CounterVec
	containerFailures *prometheus.CounterVec
	containerLifetime prometheus.Histogram
	orchestratorRuns  *prometheus.CounterVec
	runningCost       prometheus.Counter
	failureCost       prometheus.Counter
	activeContainers  *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		containersSpawned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reliabilitysim_containers_spawned_total",
				Help: "Total number of containers spawned by microservice and reason",
			},
			[]string{"microservice", "reason"},
		),
		containersRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reliabilitysim_containers_removed_total",
				Help: "Total number of containers removed by microservice and reason",
			},
			[]string{"microservice", "reason"},
		),
		containerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reliabilitysim_container_failures_total",
				Help: "Total number of container failures by microservice",
			},
			[]string{"microservice"},
		),
		containerLifetime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reliabilitysim_container_lifetime",
				Help:    "Local time at which containers failed",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
		orchestratorRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reliabilitysim_orchestrator_runs_total",
				Help: "Total number of orchestrator invocations",
			},
			[]string{"orchestrator"},
		),
		runningCost: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reliabilitysim_running_cost_total",
				Help: "Accumulated cost of running containers",
			},
		),
		failureCost: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reliabilitysim_failure_cost_total",
				Help: "Accumulated cost charged for task failures",
			},
		),
		activeContainers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reliabilitysim_active_containers",
				Help: "Active containers per microservice at the last observed step",
			},
			[]string{"microservice"},
		),
	}

	r.registry.MustRegister(
		r.containersSpawned,
		r.containersRemoved,
		r.containerFailures,
		r.containerLifetime,
		r.orchestratorRuns,
		r.runningCost,
		r.failureCost,
		r.activeContainers,
	)
	return r
}

// Registry returns the registry backing the recorder
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ContainerSpawned(microservice, reason string) {
	if r == nil {
		return
	}
	r.containersSpawned.WithLabelValues(microservice, reason).Inc()
}

func (r *Recorder) ContainerRemoved(microservice, reason string) {
	if r == nil {
		return
	}
	r.containersRemoved.WithLabelValues(microservice, reason).Inc()
}

// ContainerFailed counts a failure and observes the container's local
// failure time.
func (r *Recorder) ContainerFailed(microservice string, localTime float64) {
	if r == nil {
		return
	}
	r.containerFailures.WithLabelValues(microservice).Inc()
	r.containerLifetime.Observe(localTime)
}

func (r *Recorder) OrchestratorRun(name string) {
	if r == nil {
		return
	}
	r.orchestratorRuns.WithLabelValues(name).Inc()
}

func (r *Recorder) AddRunningCost(v float64) {
	if r == nil || v <= 0 {
		return
	}
	r.runningCost.Add(v)
}

func (r *Recorder) AddFailureCost(v float64) {
	if r == nil || v <= 0 {
		return
	}
	r.failureCost.Add(v)
}

func (r *Recorder) SetActiveContainers(microservice string, n int) {
	if r == nil {
		return
	}
	r.activeContainers.WithLabelValues(microservice).Set(float64(n))
}

// WriteTextfile writes every metric to path in the text exposition format
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
