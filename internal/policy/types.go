// Package policy implements the orchestrators that decide how many
// redundant containers each microservice runs.
package policy

import (
	"log/slog"
	"math"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/cost"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
)

// Orchestrator adjusts the containers of a cloud at a point in time
type Orchestrator interface {
	// Name returns the orchestrator name for identification
	Name() string
	// Orchestrate removes failed containers, restores empty microservices
	// and then applies the orchestrator's scaling policy at global time t
	Orchestrate(cloud *reliability.Cloud, t float64) error
	// ExpectedCostOfFailure prices the cloud's failure probability over
	// [t, t+delta] at the higher of the two endpoint failure costs
	ExpectedCostOfFailure(t, delta float64, cloud *reliability.Cloud) float64
}

// Options are shared by every orchestrator
type Options struct {
	Costs    cost.Provider
	Recorder *metrics.Recorder
	Logger   *slog.Logger
	Trace    bool
}

// base implements the preconditions and pricing common to all orchestrators
type base struct {
	costs    cost.Provider
	recorder *metrics.Recorder
	tracer   logger.Tracer
}

func newBase(opts Options) base {
	costs := opts.Costs
	if costs == nil {
		costs = &cost.RateProvider{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Component("orchestrator")
	}
	return base{
		costs:    costs,
		recorder: opts.Recorder,
		tracer:   logger.NewTracer(log, opts.Trace),
	}
}

func (b *base) ExpectedCostOfFailure(t, delta float64, cloud *reliability.Cloud) float64 {
	highest := math.Max(b.costs.CostOfFailure(t, delta), b.costs.CostOfFailure(t+delta, delta))
	return highest * cloud.ProbabilityOfFailure(t, delta)
}

// prepare drops failed containers and gives every empty microservice one
// fresh container started at t.
func (b *base) prepare(cloud *reliability.Cloud, t float64) {
	for _, ms := range cloud.Microservices() {
		for _, c := range ms.RemoveFailed() {
			b.tracer.Trace("removed failed container", "container", c.Name(), "t", t)
			b.recorder.ContainerRemoved(ms.Name(), metrics.ReasonFailed)
		}
	}
	for _, ms := range cloud.Microservices() {
		if ms.Len() > 0 {
			continue
		}
		c := ms.SpawnContainer(t)
		b.tracer.Trace("microservice had no containers, spawned one", "microservice", ms.Name(), "container", c.Name(), "t", t)
		b.recorder.ContainerSpawned(ms.Name(), metrics.ReasonRestore)
	}
}

func (b *base) spawn(ms *reliability.Microservice, t float64, reason string) {
	c := ms.SpawnContainer(t)
	b.tracer.Trace("spawned container", "container", c.Name(), "reason", reason, "t", t)
	b.recorder.ContainerSpawned(ms.Name(), reason)
}

func (b *base) remove(ms *reliability.Microservice, i int, t float64, reason string) error {
	c, err := ms.RemoveContainer(i)
	if err != nil {
		return err
	}
	b.tracer.Trace("removed container", "container", c.Name(), "reason", reason, "t", t)
	b.recorder.ContainerRemoved(ms.Name(), reason)
	return nil
}

// underLimit reports whether ms may grow by one more container
func underLimit(ms *reliability.Microservice, maxContainers int) bool {
	return maxContainers <= 0 || ms.Len() < maxContainers
}
