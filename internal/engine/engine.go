package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/cost"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/policy"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

var (
	ErrInvalidClockStep          = errors.New("clock step must be positive")
	ErrInvalidOrchestratorPeriod = errors.New("orchestrator period must be positive")
)

// Options configures a Simulator
type Options struct {
	ClockStep          float64
	OrchestratorPeriod float64
	// FailureMode is config.FailureModeScheduled (default) or
	// config.FailureModeBernoulli
	FailureMode string
	Trace       bool
	Rand        *utils.RandSource
	Recorder    *metrics.Recorder
	Logger      *slog.Logger
}

// Simulator is the discrete-time simulation loop. It owns the cloud it
// simulates and is not safe for concurrent use.
type Simulator struct {
	orchestrator policy.Orchestrator
	cloud        *reliability.Cloud
	costs        cost.Provider
	clockStep    float64
	period       float64
	mode         string
	rng          *utils.RandSource
	recorder     *metrics.Recorder
	logger       *slog.Logger
	tracer       logger.Tracer

	t                 float64
	sinceOrchestrator float64
	telemetry         models.Telemetry
	finalized         bool
}

// NewSimulator creates a simulator starting at t = 0. The orchestrator is
// due on the very first step.
func NewSimulator(orch policy.Orchestrator, cloud *reliability.Cloud, costs cost.Provider, opts Options) (*Simulator, error) {
	if orch == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	if cloud == nil {
		return nil, fmt.Errorf("cloud is required")
	}
	if !(opts.ClockStep > 0) || math.IsInf(opts.ClockStep, 1) {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidClockStep, opts.ClockStep)
	}
	if !(opts.OrchestratorPeriod > 0) || math.IsInf(opts.OrchestratorPeriod, 1) {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidOrchestratorPeriod, opts.OrchestratorPeriod)
	}

	mode := opts.FailureMode
	switch mode {
	case "":
		mode = config.FailureModeScheduled
	case config.FailureModeScheduled, config.FailureModeBernoulli:
	default:
		return nil, fmt.Errorf("unknown failure mode: %s", mode)
	}

	if costs == nil {
		costs = &cost.RateProvider{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = utils.NewRandSource(time.Now().UnixNano())
	}
	log := opts.Logger
	if log == nil {
		log = logger.Component("simulator")
	}

	names := make([]string, 0, cloud.Len())
	for _, ms := range cloud.Microservices() {
		names = append(names, ms.Name())
	}

	return &Simulator{
		orchestrator:      orch,
		cloud:             cloud,
		costs:             costs,
		clockStep:         opts.ClockStep,
		period:            opts.OrchestratorPeriod,
		mode:              mode,
		rng:               rng,
		recorder:          opts.Recorder,
		logger:            log,
		tracer:            logger.NewTracer(log, opts.Trace),
		sinceOrchestrator: math.Inf(1),
		telemetry:         models.Telemetry{Microservices: names},
	}, nil
}

// Iterate advances the simulation by one clock step
func (s *Simulator) Iterate() error {
	if s.sinceOrchestrator >= s.period {
		if err := s.orchestrator.Orchestrate(s.cloud, s.t); err != nil {
			return fmt.Errorf("orchestrate at t=%g: %w", s.t, err)
		}
		s.sinceOrchestrator = 0
	}

	runningBefore := s.telemetry.RunningCost
	failureBefore := s.telemetry.ActualCostOfFailure

	spot := s.costs.SpotPrice(s.t, s.clockStep)
	active := make([]int, s.cloud.Len())
	for i, ms := range s.cloud.Microservices() {
		for _, c := range ms.Containers() {
			if c.State() != reliability.StateActive {
				continue
			}
			if failedAt, failed := s.failureDuringStep(c); failed {
				c.Fail()
				s.telemetry.FailureTimes = append(s.telemetry.FailureTimes, failedAt)
				s.recorder.ContainerFailed(ms.Name(), failedAt)
				s.tracer.Trace("container failed", "container", c.Name(), "local_time", failedAt, "t", s.t)
			}
			s.telemetry.RunningCost += ms.Cost() * spot
		}
		active[i] = ms.ActiveCount()
		s.recorder.SetActiveContainers(ms.Name(), active[i])
	}

	p := s.cloud.ProbabilityOfFailure(s.t, s.clockStep)
	if p >= 1 {
		s.telemetry.ActualCostOfFailure += s.costs.CostOfFailure(s.t, s.clockStep)
	}
	expected := s.orchestrator.ExpectedCostOfFailure(s.t, s.clockStep, s.cloud)

	step := models.StepRecord{
		Time:                s.t,
		FailureProbability:  p,
		ExpectedFailureCost: expected,
		RunningCost:         s.telemetry.RunningCost - runningBefore,
		FailureCost:         s.telemetry.ActualCostOfFailure - failureBefore,
		SpotPrice:           s.costs.SpotPricePerSecond(s.t),
		FailureCostRate:     s.costs.CostOfFailurePerSecond(s.t),
		ActiveContainers:    active,
	}
	s.telemetry.TaskFailureProbability = append(s.telemetry.TaskFailureProbability, p)
	s.telemetry.ExpectedCostsOfFailure = append(s.telemetry.ExpectedCostsOfFailure, expected)
	s.telemetry.Steps = append(s.telemetry.Steps, step)
	s.recorder.AddRunningCost(step.RunningCost)
	s.recorder.AddFailureCost(step.FailureCost)

	s.t += s.clockStep
	s.sinceOrchestrator += s.clockStep
	return nil
}

// failureDuringStep decides whether c fails in [t, t+clockStep] and returns
// the local failure time to record.
func (s *Simulator) failureDuringStep(c *reliability.Container) (float64, bool) {
	local := c.LocalTime(s.t)
	if s.mode == config.FailureModeBernoulli {
		return local, s.rng.BernoulliBool(c.ProbabilityOfFailure(s.t, s.clockStep))
	}
	return c.LocalFailureTime(), local+s.clockStep >= c.LocalFailureTime()
}

// Finalize records the would-be failure time of every container still
// active. Calling it again has no effect.
func (s *Simulator) Finalize() {
	if s.finalized {
		return
	}
	s.finalized = true

	for _, ms := range s.cloud.Microservices() {
		for _, c := range ms.Containers() {
			if c.State() != reliability.StateActive {
				continue
			}
			failAt := c.LocalFailureTime()
			if s.mode == config.FailureModeBernoulli {
				local := c.LocalTime(s.t)
				failAt = local + c.Model().SampleFailureOffset(local, s.rng)
			}
			s.telemetry.FailureTimes = append(s.telemetry.FailureTimes, failAt)
		}
	}
}

// Run iterates steps times and finalizes. The context is checked between
// steps.
func (s *Simulator) Run(ctx context.Context, steps int) (*models.Telemetry, error) {
	if steps < 0 {
		return nil, fmt.Errorf("steps must be non-negative, got %d", steps)
	}

	start := time.Now()
	s.logger.Debug("Starting simulation",
		"orchestrator", s.orchestrator.Name(),
		"steps", steps,
		"clock_step", s.clockStep,
		"orchestrator_period", s.period,
		"failure_mode", s.mode)

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Simulation cancelled", "step", i, "t", s.t)
			return nil, err
		}
		if err := s.Iterate(); err != nil {
			return nil, err
		}
	}
	s.Finalize()

	s.logger.Debug("Simulation completed",
		"t", s.t,
		"running_cost", s.telemetry.RunningCost,
		"actual_cost_of_failure", s.telemetry.ActualCostOfFailure,
		"failure_times", len(s.telemetry.FailureTimes),
		"elapsed", time.Since(start))

	return s.Telemetry(), nil
}

// Time returns the current global simulation time
func (s *Simulator) Time() float64 {
	return s.t
}

func (s *Simulator) RunningCost() float64 {
	return s.telemetry.RunningCost
}

func (s *Simulator) ActualCostOfFailure() float64 {
	return s.telemetry.ActualCostOfFailure
}

func (s *Simulator) Cloud() *reliability.Cloud {
	return s.cloud
}

// Telemetry returns a copy of the telemetry gathered so far. The series
// slices are shared with the simulator.
func (s *Simulator) Telemetry() *models.Telemetry {
	tel := s.telemetry
	return &tel
}
