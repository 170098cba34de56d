package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/experiment"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/report"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run independent trials of a scenario",
	Long: `Run loads a scenario, simulates the requested number of independent
trials and prints mean, median and variance of container failure times,
running cost, failure cost and total cost.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioPath, _ := cmd.Flags().GetString("scenario")
		trials, _ := cmd.Flags().GetInt("trials")
		parallel, _ := cmd.Flags().GetInt("parallel")
		seed, _ := cmd.Flags().GetInt64("seed")
		steps, _ := cmd.Flags().GetInt("steps")
		trace, _ := cmd.Flags().GetBool("trace")
		logLevel, _ := cmd.Flags().GetString("log-level")
		stepsCSV, _ := cmd.Flags().GetString("csv")
		trialsCSV, _ := cmd.Flags().GetString("trials-csv")
		summaryPath, _ := cmd.Flags().GetString("summary")
		metricsPath, _ := cmd.Flags().GetString("metrics-file")

		scenario, err := config.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		if trace {
			scenario.Simulation.Trace = true
		}
		if logLevel == "" {
			logLevel = scenario.LogLevel
		}
		logger.SetDefault(logger.NewText(logLevel, cmd.ErrOrStderr()))

		if seed == 0 {
			seed = scenario.Simulation.Seed
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rec := metrics.NewRecorder()
		runner := &experiment.Runner{
			Scenario:    scenario,
			Trials:      trials,
			Parallelism: parallel,
			Seed:        seed,
			Steps:       steps,
			Options:     experiment.Options{Recorder: rec, Logger: logger.Default},
		}
		run, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("experiment failed: %w", err)
		}

		if stepsCSV != "" {
			if err := writeFile(stepsCSV, func(w io.Writer) error {
				return report.WriteStepsCSV(w, run.Trials[0].Telemetry)
			}); err != nil {
				return err
			}
		}
		if trialsCSV != "" {
			if err := writeFile(trialsCSV, func(w io.Writer) error {
				return report.WriteTrialsCSV(w, run.Trials)
			}); err != nil {
				return err
			}
		}
		if summaryPath != "" {
			data, err := report.MarshalSummary(run.Summary)
			if err != nil {
				return err
			}
			if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
		if metricsPath != "" {
			if err := rec.WriteTextfile(metricsPath); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
		}

		printSummary(cmd.OutOrStdout(), run)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioPath, _ := cmd.Flags().GetString("scenario")

		scenario, err := config.LoadScenario(scenarioPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%d microservices, %s orchestrator, %d steps)\n",
			scenarioPath, len(scenario.Microservices), scenario.Orchestrator.Type, scenario.Simulation.Steps)
		return nil
	},
}

func init() {
	runCmd.Flags().String("scenario", "", "Path to the scenario YAML file")
	runCmd.Flags().Int("trials", 1, "Number of independent trials")
	runCmd.Flags().Int("parallel", 0, "Trials run concurrently (0 = GOMAXPROCS)")
	runCmd.Flags().Int64("seed", 0, "Base random seed; trial i uses seed+i (0 = scenario seed or wall clock)")
	runCmd.Flags().Int("steps", 0, "Override the scenario's step count")
	runCmd.Flags().Bool("trace", false, "Log orchestrator and simulator decisions at info level")
	runCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error); defaults to the scenario's")
	runCmd.Flags().String("csv", "", "Write the first trial's per-step series to this CSV file")
	runCmd.Flags().String("trials-csv", "", "Write per-trial costs to this CSV file")
	runCmd.Flags().String("summary", "", "Write the run summary as JSON to this file")
	runCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this file")
	runCmd.MarkFlagRequired("scenario")

	validateCmd.Flags().String("scenario", "", "Path to the scenario YAML file")
	validateCmd.MarkFlagRequired("scenario")
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func printSummary(w io.Writer, run *models.Run) {
	s := run.Summary
	fmt.Fprintf(w, "Run %s: %d trial(s) with the %s orchestrator in %s\n", run.ID, s.Trials, s.Orchestrator, run.Duration)
	for _, line := range []struct {
		label string
		stat  *models.Statistic
	}{
		{"Container Failure Times", s.ContainerFailures},
		{"Running Cost", s.RunningCost},
		{"Actual Cost of Failures", s.ActualCostOfFailure},
		{"Total Cost", s.TotalCost},
	} {
		if line.stat == nil {
			continue
		}
		fmt.Fprintf(w, "%s >> Mean: %g | Median: %g | Variance: %g\n", line.label, line.stat.Mean, line.stat.Median, line.stat.Variance)
	}
	if len(run.Trials) == 1 {
		t := run.Trials[0]
		fmt.Fprintf(w, "RunningCost: %g\nActualCostOfFailure: %g\n", t.RunningCost, t.ActualCostOfFailure)
	}
}
