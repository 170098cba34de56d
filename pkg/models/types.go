package models

import (
	"time"
)

// RunStatus represents the status of an experiment run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one experiment: a batch of independent trials of a scenario
type Run struct {
	ID        string            `json:"id"`
	Status    RunStatus         `json:"status"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Trials    []*TrialResult    `json:"trials,omitempty"`
	Summary   *Summary          `json:"summary,omitempty"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// StepRecord is what the simulator observed during one clock step
type StepRecord struct {
	Time                float64 `json:"t"`
	FailureProbability  float64 `json:"p_failure"`
	ExpectedFailureCost float64 `json:"expected_failure_cost"`
	RunningCost         float64 `json:"running_cost"`        // accrued during this step
	FailureCost         float64 `json:"actual_failure_cost"` // accrued during this step
	SpotPrice           float64 `json:"spot_price"`          // per second at Time
	FailureCostRate     float64 `json:"failure_cost_rate"`   // per second at Time
	ActiveContainers    []int   `json:"active_containers"`   // per microservice, cloud order
}

// Telemetry collects everything a simulation run produces
type Telemetry struct {
	Microservices          []string     `json:"microservices"`
	TaskFailureProbability []float64    `json:"task_failure_probability"`
	ExpectedCostsOfFailure []float64    `json:"expected_costs_of_failure"`
	FailureTimes           []float64    `json:"failure_times"`
	Steps                  []StepRecord `json:"steps"`
	RunningCost            float64      `json:"running_cost"`
	ActualCostOfFailure    float64      `json:"actual_cost_of_failure"`
}

// TotalCost is running cost plus the actual cost of failures
func (t *Telemetry) TotalCost() float64 {
	return t.RunningCost + t.ActualCostOfFailure
}

// Redundancy returns the active container series of microservice i
func (t *Telemetry) Redundancy(i int) []int {
	out := make([]int, len(t.Steps))
	for s, step := range t.Steps {
		if i < len(step.ActiveContainers) {
			out[s] = step.ActiveContainers[i]
		}
	}
	return out
}

// TrialResult is the outcome of one independent simulation trial
type TrialResult struct {
	Trial               int        `json:"trial"`
	Seed                int64      `json:"seed"`
	RunningCost         float64    `json:"running_cost"`
	ActualCostOfFailure float64    `json:"actual_cost_of_failure"`
	TotalCost           float64    `json:"total_cost"`
	FailureTimes        []float64  `json:"failure_times,omitempty"`
	Telemetry           *Telemetry `json:"-"`
}

// Statistic summarises one sample
type Statistic struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Variance float64 `json:"variance"`
}

// Summary aggregates the trials of a run. A nil statistic means the sample
// was too small to summarise.
type Summary struct {
	RunID               string     `json:"run_id"`
	Orchestrator        string     `json:"orchestrator"`
	Trials              int        `json:"trials"`
	ContainerFailures   *Statistic `json:"container_failure_times,omitempty"`
	RunningCost         *Statistic `json:"running_cost,omitempty"`
	ActualCostOfFailure *Statistic `json:"actual_cost_of_failure,omitempty"`
	TotalCost           *Statistic `json:"total_cost,omitempty"`
}
