package policy

import (
	"errors"
	"testing"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
)

func TestNewOrchestratorFromConfig(t *testing.T) {
	tests := []struct {
		cfg  config.Orchestrator
		name string
	}{
		{config.Orchestrator{Type: config.OrchestratorUtility, Delta: 0.01}, "utility"},
		{config.Orchestrator{Type: config.OrchestratorThreshold, Delta: 0.1, Threshold: 0.01}, "threshold"},
		{config.Orchestrator{Type: config.OrchestratorNoop}, "noop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch, err := NewOrchestratorFromConfig(&tt.cfg, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if orch.Name() != tt.name {
				t.Fatalf("expected %s, got %s", tt.name, orch.Name())
			}
		})
	}
}

func TestNewOrchestratorFromConfigCarriesParameters(t *testing.T) {
	maxContainers := 7
	orch, err := NewOrchestratorFromConfig(&config.Orchestrator{
		Type:          config.OrchestratorThreshold,
		Delta:         0.2,
		Threshold:     0.05,
		MaxContainers: &maxContainers,
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	th, ok := orch.(*ThresholdOrchestrator)
	if !ok {
		t.Fatalf("expected *ThresholdOrchestrator, got %T", orch)
	}
	if th.Delta != 0.2 || th.Threshold != 0.05 || th.MaxContainers != 7 {
		t.Fatalf("unexpected parameters %+v", th)
	}
}

func TestNewOrchestratorFromConfigUnknown(t *testing.T) {
	_, err := NewOrchestratorFromConfig(&config.Orchestrator{Type: "random"}, Options{})
	var unknown *UnknownOrchestratorError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownOrchestratorError, got %v", err)
	}
	if unknown.Error() != "unknown orchestrator type: random" {
		t.Fatalf("unexpected message %q", unknown.Error())
	}
}

func TestNewOrchestratorFromConfigContainerLimit(t *testing.T) {
	zero := 0
	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"unset", nil, config.DefaultMaxContainers},
		{"unbounded", &zero, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch, err := NewOrchestratorFromConfig(&config.Orchestrator{
				Type:          config.OrchestratorUtility,
				Delta:         0.01,
				MaxContainers: tt.limit,
			}, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if got := orch.(*UtilityOrchestrator).MaxContainers; got != tt.want {
				t.Fatalf("expected max containers %d, got %d", tt.want, got)
			}
		})
	}
}
