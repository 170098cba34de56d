package experiment

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
)

// Summarize computes mean, median and sample variance of container failure
// times, running cost, failure cost and total cost across trials. A sample
// with fewer than two values is left unsummarised. Non-finite failure times
// (containers that can never fail) are excluded.
func Summarize(runID, orchestrator string, results []*models.TrialResult) *models.Summary {
	var failures, running, failureCost, total []float64
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, ft := range r.FailureTimes {
			if !math.IsInf(ft, 0) && !math.IsNaN(ft) {
				failures = append(failures, ft)
			}
		}
		running = append(running, r.RunningCost)
		failureCost = append(failureCost, r.ActualCostOfFailure)
		total = append(total, r.TotalCost)
	}

	return &models.Summary{
		RunID:               runID,
		Orchestrator:        orchestrator,
		Trials:              len(running),
		ContainerFailures:   Describe(failures),
		RunningCost:         Describe(running),
		ActualCostOfFailure: Describe(failureCost),
		TotalCost:           Describe(total),
	}
}

// Describe summarises xs, or returns nil when it has fewer than two values.
// The median of an even-sized sample is the mean of the two middle values.
func Describe(xs []float64) *models.Statistic {
	if len(xs) < 2 {
		return nil
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	return &models.Statistic{
		Count:    len(sorted),
		Mean:     stat.Mean(sorted, nil),
		Median:   median(sorted),
		Variance: stat.Variance(sorted, nil),
	}
}

// median expects sorted input
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
