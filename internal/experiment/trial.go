// Package experiment runs independent trials of a scenario and summarises
// their outcomes.
package experiment

import (
	"fmt"
	"log/slog"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/cost"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/engine"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/policy"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

// Options carries the collaborators shared by every trial
type Options struct {
	Recorder *metrics.Recorder
	Logger   *slog.Logger
}

// BuildTrial wires the cost provider, cloud, orchestrator and simulator of
// one trial. All randomness of the trial comes from a single source seeded
// with seed.
func BuildTrial(scenario *config.Scenario, seed int64, opts Options) (*engine.Simulator, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Default
	}
	rng := utils.NewRandSource(seed)

	costs, err := cost.NewProviderFromConfig(&scenario.Costs)
	if err != nil {
		return nil, fmt.Errorf("costs: %w", err)
	}

	list := make([]*reliability.Microservice, 0, len(scenario.Microservices))
	for i, msCfg := range scenario.Microservices {
		model, err := reliability.NewModelFromConfig(msCfg.Distribution)
		if err != nil {
			return nil, fmt.Errorf("microservice %d: %w", i, err)
		}
		ms, err := reliability.NewMicroservice(msCfg.Name, msCfg.Cost, msCfg.Containers, 0, model, rng)
		if err != nil {
			return nil, fmt.Errorf("microservice %d: %w", i, err)
		}
		list = append(list, ms)
	}
	cloud := reliability.NewCloud(list...)

	trace := scenario.Simulation.Trace
	orch, err := policy.NewOrchestratorFromConfig(&scenario.Orchestrator, policy.Options{
		Costs:    costs,
		Recorder: opts.Recorder,
		Logger:   log.With("component", "orchestrator"),
		Trace:    trace,
	})
	if err != nil {
		return nil, err
	}

	return engine.NewSimulator(orch, cloud, costs, engine.Options{
		ClockStep:          scenario.Simulation.ClockStep,
		OrchestratorPeriod: scenario.Simulation.OrchestratorPeriod,
		FailureMode:        scenario.Simulation.FailureMode,
		Trace:              trace,
		Rand:               rng,
		Recorder:           opts.Recorder,
		Logger:             log.With("component", "simulator"),
	})
}

// withResolvedNames gives every unnamed microservice a generated name so
// that all trials of a run report the same names.
func withResolvedNames(s *config.Scenario, rng *utils.RandSource) *config.Scenario {
	cp := *s
	cp.Microservices = append([]config.Microservice(nil), s.Microservices...)
	for i := range cp.Microservices {
		if cp.Microservices[i].Name == "" {
			cp.Microservices[i].Name = "MS_" + rng.Digits(5)
		}
	}
	return &cp
}
