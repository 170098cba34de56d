package config

import (
	"fmt"
	"os"
)

// LoadScenario loads and parses a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	scenario, err := ParseScenarioYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return scenario, nil
}

// ApplyDefaults fills unset fields with the reference experiment values
func ApplyDefaults(s *Scenario) {
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}

	sim := &s.Simulation
	if sim.ClockStep == 0 {
		sim.ClockStep = DefaultClockStep
	}
	if sim.OrchestratorPeriod == 0 {
		sim.OrchestratorPeriod = DefaultOrchestratorPeriod
	}
	if sim.Steps == 0 {
		sim.Steps = DefaultSteps
	}
	if sim.FailureMode == "" {
		sim.FailureMode = FailureModeScheduled
	}

	orch := &s.Orchestrator
	if orch.Type == "" {
		orch.Type = OrchestratorUtility
	}
	if orch.Delta == 0 {
		orch.Delta = DefaultOrchestratorDelta
	}
	if orch.Type == OrchestratorThreshold && orch.Threshold == 0 {
		orch.Threshold = DefaultThreshold
	}
	if orch.MaxContainers == nil {
		limit := DefaultMaxContainers
		orch.MaxContainers = &limit
	}

	applyRateDefaults(&s.Costs.CostOfFailure)
	applyRateDefaults(&s.Costs.SpotPrice)
}

func applyRateDefaults(r *RateSchedule) {
	if r.Type == "" {
		r.Type = RateConstant
		if r.Value == 0 {
			r.Value = 1
		}
	}
	if r.Type == RateHourly && r.DayLength == 0 {
		r.DayLength = DefaultDayLength
	}
}

// validateScenario performs validation on the scenario
func validateScenario(s *Scenario) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[s.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", s.LogLevel)
	}

	if err := validateSimulation(&s.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}
	if err := validateOrchestrator(&s.Orchestrator); err != nil {
		return fmt.Errorf("orchestrator validation failed: %w", err)
	}
	if err := validateRate("cost_of_failure", &s.Costs.CostOfFailure); err != nil {
		return fmt.Errorf("costs validation failed: %w", err)
	}
	if err := validateRate("spot_price", &s.Costs.SpotPrice); err != nil {
		return fmt.Errorf("costs validation failed: %w", err)
	}

	if len(s.Microservices) == 0 {
		return fmt.Errorf("at least one microservice must be defined")
	}
	names := make(map[string]bool)
	for i, ms := range s.Microservices {
		if ms.Name != "" {
			if names[ms.Name] {
				return fmt.Errorf("duplicate microservice name: %s", ms.Name)
			}
			names[ms.Name] = true
		}
		if err := validateMicroservice(&ms); err != nil {
			return fmt.Errorf("microservice %d (%s): %w", i, ms.Name, err)
		}
	}

	return nil
}

func validateSimulation(sim *Simulation) error {
	if sim.ClockStep <= 0 {
		return fmt.Errorf("clock_step must be positive")
	}
	if sim.OrchestratorPeriod <= 0 {
		return fmt.Errorf("orchestrator_period must be positive")
	}
	if sim.Steps < 0 {
		return fmt.Errorf("steps cannot be negative")
	}
	switch sim.FailureMode {
	case FailureModeScheduled, FailureModeBernoulli:
	default:
		return fmt.Errorf("failure_mode must be '%s' or '%s', got %s", FailureModeScheduled, FailureModeBernoulli, sim.FailureMode)
	}
	return nil
}

func validateOrchestrator(o *Orchestrator) error {
	switch o.Type {
	case OrchestratorUtility, OrchestratorThreshold, OrchestratorNoop:
	default:
		return fmt.Errorf("unknown orchestrator type: %s", o.Type)
	}
	if o.Delta <= 0 {
		return fmt.Errorf("delta must be positive")
	}
	if o.Type == OrchestratorThreshold && (o.Threshold <= 0 || o.Threshold > 1) {
		return fmt.Errorf("threshold must be in (0, 1], got %g", o.Threshold)
	}
	if o.MaxContainers != nil && *o.MaxContainers < 0 {
		return fmt.Errorf("max_containers cannot be negative")
	}
	return nil
}

func validateRate(name string, r *RateSchedule) error {
	switch r.Type {
	case RateConstant:
		if r.Value < 0 {
			return fmt.Errorf("%s: value cannot be negative", name)
		}
	case RateHourly:
		if r.DayLength <= 0 {
			return fmt.Errorf("%s: day_length must be positive", name)
		}
		if r.Default < 0 {
			return fmt.Errorf("%s: default cannot be negative", name)
		}
		prev := 0.0
		for i, step := range r.Steps {
			if step.UntilHour <= prev || step.UntilHour > 24 {
				return fmt.Errorf("%s: step %d until_hour must increase within (0, 24], got %g", name, i, step.UntilHour)
			}
			if step.Rate < 0 {
				return fmt.Errorf("%s: step %d rate cannot be negative", name, i)
			}
			prev = step.UntilHour
		}
	default:
		return fmt.Errorf("%s: unknown rate type: %s", name, r.Type)
	}
	return nil
}

func validateMicroservice(ms *Microservice) error {
	if ms.Cost <= 0 {
		return fmt.Errorf("cost must be positive")
	}
	if ms.Containers < 0 {
		return fmt.Errorf("containers cannot be negative")
	}
	d := ms.Distribution
	switch d.Type {
	case DistributionExponential:
		if d.Rate <= 0 {
			return fmt.Errorf("exponential rate must be positive")
		}
	case DistributionWeibull:
		if d.Shape <= 0 || d.Scale <= 0 {
			return fmt.Errorf("weibull shape and scale must be positive")
		}
	case DistributionLogNormal:
		if d.Sigma <= 0 {
			return fmt.Errorf("lognormal sigma must be positive")
		}
	default:
		return fmt.Errorf("unknown distribution type: %s", d.Type)
	}
	return nil
}
