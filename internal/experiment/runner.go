package experiment

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

// Runner executes independent trials of one scenario. Trial i is seeded
// with Seed+i; a zero Seed draws a base seed from the wall clock.
type Runner struct {
	Scenario    *config.Scenario
	Trials      int
	Parallelism int
	Seed        int64
	// Steps overrides the scenario's step count when positive
	Steps   int
	Options Options
}

// Run executes every trial and returns the completed run. On error the run
// is returned in the failed state together with the error.
func (r *Runner) Run(ctx context.Context) (*models.Run, error) {
	if r.Scenario == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if r.Trials < 1 {
		return nil, fmt.Errorf("trials must be at least 1, got %d", r.Trials)
	}
	log := r.Options.Logger
	if log == nil {
		log = logger.Default
	}

	parallelism := r.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	steps := r.Scenario.Simulation.Steps
	if r.Steps > 0 {
		steps = r.Steps
	}
	base := r.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	scenario := withResolvedNames(r.Scenario, utils.NewRandSource(base))

	run := &models.Run{
		ID:        utils.GenerateRunID(),
		Status:    models.RunStatusRunning,
		StartTime: time.Now(),
		Metadata: map[string]string{
			"orchestrator": scenario.Orchestrator.Type,
			"failure_mode": scenario.Simulation.FailureMode,
			"base_seed":    fmt.Sprintf("%d", base),
		},
	}
	log = log.With("run_id", run.ID)
	log.Info("Starting experiment",
		"trials", r.Trials,
		"parallelism", parallelism,
		"steps", steps,
		"orchestrator", scenario.Orchestrator.Type)

	opts := r.Options
	opts.Logger = log
	results := make([]*models.TrialResult, r.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := 0; i < r.Trials; i++ {
		g.Go(func() error {
			seed := base + int64(i)
			sim, err := BuildTrial(scenario, seed, opts)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			tel, err := sim.Run(gctx, steps)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = &models.TrialResult{
				Trial:               i,
				Seed:                seed,
				RunningCost:         tel.RunningCost,
				ActualCostOfFailure: tel.ActualCostOfFailure,
				TotalCost:           tel.TotalCost(),
				FailureTimes:        tel.FailureTimes,
				Telemetry:           tel,
			}
			log.Info("Trial completed",
				"trial_id", utils.GenerateTrialID(run.ID, i),
				"running_cost", tel.RunningCost,
				"actual_cost_of_failure", tel.ActualCostOfFailure)
			return nil
		})
	}

	err := g.Wait()
	run.EndTime = time.Now()
	run.Duration = run.EndTime.Sub(run.StartTime)
	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		log.Error("Experiment failed", "error", err)
		return run, err
	}

	run.Trials = results
	run.Summary = Summarize(run.ID, scenario.Orchestrator.Type, results)
	run.Status = models.RunStatusCompleted
	log.Info("Experiment completed", "duration", run.Duration)
	return run, nil
}
