package policy

import (
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
)

// NewOrchestratorFromConfig creates the orchestrator a scenario selects
func NewOrchestratorFromConfig(cfg *config.Orchestrator, opts Options) (Orchestrator, error) {
	switch cfg.Type {
	case config.OrchestratorUtility:
		return NewUtilityOrchestrator(cfg.Delta, cfg.ContainerLimit(), opts), nil
	case config.OrchestratorThreshold:
		return NewThresholdOrchestrator(cfg.Delta, cfg.Threshold, cfg.ContainerLimit(), opts), nil
	case config.OrchestratorNoop:
		return NewNopOrchestrator(opts), nil
	default:
		return nil, &UnknownOrchestratorError{Type: cfg.Type}
	}
}
