package experiment

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/models"
)

// RunComparison compares the mean per-trial costs of two runs
type RunComparison struct {
	RunID1        string
	RunID2        string
	Orchestrator1 string
	Orchestrator2 string

	// Differences are run2 - run1
	RunningCostDiff float64
	FailureCostDiff float64
	TotalCostDiff   float64

	Improvement        bool    // run2 has the lower mean total cost
	ImprovementPercent float64 // relative reduction of mean total cost, 0 when run1 costs nothing
}

// RunRanking orders runs by mean total cost, cheapest first
type RunRanking struct {
	Runs        []*RankedRun
	BestRunID   string
	WorstRunID  string
	AverageCost float64
	// CostVariance is the sample variance of the runs' mean total costs,
	// zero when fewer than two runs are ranked
	CostVariance float64
}

// RankedRun associates a run with its mean costs
type RankedRun struct {
	Run         *models.Run
	RunningCost float64
	FailureCost float64
	TotalCost   float64
}

// CompareRuns compares two completed runs. Runs seeded identically give a
// paired comparison of their orchestrators.
func CompareRuns(run1, run2 *models.Run) (*RunComparison, error) {
	if run1 == nil {
		return nil, fmt.Errorf("run1 is nil")
	}
	if run2 == nil {
		return nil, fmt.Errorf("run2 is nil")
	}
	r1, err := rankRun(run1)
	if err != nil {
		return nil, err
	}
	r2, err := rankRun(run2)
	if err != nil {
		return nil, err
	}

	c := &RunComparison{
		RunID1:          run1.ID,
		RunID2:          run2.ID,
		Orchestrator1:   orchestratorOf(run1),
		Orchestrator2:   orchestratorOf(run2),
		RunningCostDiff: r2.RunningCost - r1.RunningCost,
		FailureCostDiff: r2.FailureCost - r1.FailureCost,
		TotalCostDiff:   r2.TotalCost - r1.TotalCost,
		Improvement:     r2.TotalCost < r1.TotalCost,
	}
	if r1.TotalCost != 0 {
		c.ImprovementPercent = -(c.TotalCostDiff / r1.TotalCost) * 100
	}
	return c, nil
}

// RankRuns ranks completed runs by mean total cost. Equal costs keep their
// input order.
func RankRuns(runs []*models.Run) (*RunRanking, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs provided")
	}

	ranked := make([]*RankedRun, 0, len(runs))
	totals := make([]float64, 0, len(runs))
	for _, run := range runs {
		r, err := rankRun(run)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, r)
		totals = append(totals, r.TotalCost)
	}
	slices.SortStableFunc(ranked, func(a, b *RankedRun) int {
		return cmp.Compare(a.TotalCost, b.TotalCost)
	})

	ranking := &RunRanking{
		Runs:        ranked,
		BestRunID:   ranked[0].Run.ID,
		WorstRunID:  ranked[len(ranked)-1].Run.ID,
		AverageCost: stat.Mean(totals, nil),
	}
	if len(totals) > 1 {
		ranking.CostVariance = stat.Variance(totals, nil)
	}
	return ranking, nil
}

func rankRun(run *models.Run) (*RankedRun, error) {
	if run == nil {
		return nil, fmt.Errorf("run is nil")
	}
	if run.Status != models.RunStatusCompleted {
		return nil, fmt.Errorf("run %s is %s, not completed", run.ID, run.Status)
	}
	if len(run.Trials) == 0 {
		return nil, fmt.Errorf("run %s has no trials", run.ID)
	}

	running := make([]float64, 0, len(run.Trials))
	failure := make([]float64, 0, len(run.Trials))
	total := make([]float64, 0, len(run.Trials))
	for _, t := range run.Trials {
		if t == nil {
			continue
		}
		running = append(running, t.RunningCost)
		failure = append(failure, t.ActualCostOfFailure)
		total = append(total, t.TotalCost)
	}
	r := &RankedRun{
		Run:         run,
		RunningCost: stat.Mean(running, nil),
		FailureCost: stat.Mean(failure, nil),
		TotalCost:   stat.Mean(total, nil),
	}
	if math.IsNaN(r.TotalCost) {
		return nil, fmt.Errorf("run %s has no trial costs", run.ID)
	}
	return r, nil
}

func orchestratorOf(run *models.Run) string {
	if run.Summary != nil && run.Summary.Orchestrator != "" {
		return run.Summary.Orchestrator
	}
	return run.Metadata["orchestrator"]
}
