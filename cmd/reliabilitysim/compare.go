package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/experiment"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare scenarios under identical trial seeds",
	Long: `Compare runs every scenario with the same base seed, so trial i of each
scenario sees the same random stream, then ranks them by mean total cost and
reports each scenario's cost difference against the first one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, _ := cmd.Flags().GetStringArray("scenario")
		trials, _ := cmd.Flags().GetInt("trials")
		parallel, _ := cmd.Flags().GetInt("parallel")
		seed, _ := cmd.Flags().GetInt64("seed")
		steps, _ := cmd.Flags().GetInt("steps")
		logLevel, _ := cmd.Flags().GetString("log-level")

		if len(paths) < 2 {
			return fmt.Errorf("compare needs at least two --scenario files, got %d", len(paths))
		}
		logger.SetDefault(logger.NewText(logLevel, cmd.ErrOrStderr()))
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runs := make([]*models.Run, 0, len(paths))
		byID := make(map[string]string, len(paths))
		for _, path := range paths {
			scenario, err := config.LoadScenario(path)
			if err != nil {
				return err
			}
			runner := &experiment.Runner{
				Scenario:    scenario,
				Trials:      trials,
				Parallelism: parallel,
				Seed:        seed,
				Steps:       steps,
				Options:     experiment.Options{Logger: logger.Default.With("scenario", path)},
			}
			run, err := runner.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			runs = append(runs, run)
			byID[run.ID] = path
		}

		ranking, err := experiment.RankRuns(runs)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Base seed %d, %d trial(s) per scenario\n\n", seed, trials)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tSCENARIO\tORCHESTRATOR\tRUNNING\tFAILURE\tTOTAL")
		for i, r := range ranking.Runs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%g\t%g\t%g\n",
				i+1, byID[r.Run.ID], r.Run.Metadata["orchestrator"], r.RunningCost, r.FailureCost, r.TotalCost)
		}
		w.Flush()

		fmt.Fprintf(out, "\nAgainst %s:\n", paths[0])
		for _, run := range runs[1:] {
			c, err := experiment.CompareRuns(runs[0], run)
			if err != nil {
				return err
			}
			verdict := "worse"
			if c.Improvement {
				verdict = "better"
			}
			fmt.Fprintf(out, "  %s: total %+g (%.2f%%, %s), running %+g, failure %+g\n",
				byID[run.ID], c.TotalCostDiff, c.ImprovementPercent, verdict, c.RunningCostDiff, c.FailureCostDiff)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringArray("scenario", nil, "Scenario YAML file (repeat for each scenario; the first is the baseline)")
	compareCmd.Flags().Int("trials", 10, "Number of independent trials per scenario")
	compareCmd.Flags().Int("parallel", 0, "Trials run concurrently (0 = GOMAXPROCS)")
	compareCmd.Flags().Int64("seed", 0, "Base random seed shared by all scenarios (0 = wall clock)")
	compareCmd.Flags().Int("steps", 0, "Override every scenario's step count")
	compareCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	compareCmd.MarkFlagRequired("scenario")
}
