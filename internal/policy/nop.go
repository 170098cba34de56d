package policy

import "github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"

// NopOrchestrator only applies the common preconditions. It is the
// baseline the other orchestrators are compared against.
type NopOrchestrator struct {
	base
}

var _ Orchestrator = (*NopOrchestrator)(nil)

func NewNopOrchestrator(opts Options) *NopOrchestrator {
	return &NopOrchestrator{base: newBase(opts)}
}

func (o *NopOrchestrator) Name() string {
	return "noop"
}

func (o *NopOrchestrator) Orchestrate(cloud *reliability.Cloud, t float64) error {
	o.recorder.OrchestratorRun(o.Name())
	o.prepare(cloud, t)
	return nil
}
