// Package report renders simulation telemetry and experiment summaries for
// offline analysis.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
)

// WriteStepsCSV writes one row per simulator step
func WriteStepsCSV(w io.Writer, tel *models.Telemetry) error {
	cw := csv.NewWriter(w)

	header := []string{"t", "p_failure", "expected_failure_cost", "running_cost", "actual_failure_cost", "spot_price", "failure_cost_rate"}
	for _, name := range tel.Microservices {
		header = append(header, "redundancy_"+name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, step := range tel.Steps {
		row := []string{
			formatFloat(step.Time),
			formatFloat(step.FailureProbability),
			formatFloat(step.ExpectedFailureCost),
			formatFloat(step.RunningCost),
			formatFloat(step.FailureCost),
			formatFloat(step.SpotPrice),
			formatFloat(step.FailureCostRate),
		}
		for m := range tel.Microservices {
			n := 0
			if m < len(step.ActiveContainers) {
				n = step.ActiveContainers[m]
			}
			row = append(row, strconv.Itoa(n))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write step %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTrialsCSV writes one row per trial
func WriteTrialsCSV(w io.Writer, results []*models.TrialResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trial", "seed", "running_cost", "actual_cost_of_failure", "total_cost"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		row := []string{
			strconv.Itoa(r.Trial),
			strconv.FormatInt(r.Seed, 10),
			formatFloat(r.RunningCost),
			formatFloat(r.ActualCostOfFailure),
			formatFloat(r.TotalCost),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write trial %d: %w", r.Trial, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
