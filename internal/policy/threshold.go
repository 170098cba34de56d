package policy

import (
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
)

// ThresholdOrchestrator keeps each microservice's failure probability over
// Delta below Threshold, independently of cost. After growing, it removes
// the oldest container only while the containers left behind would still
// be below Threshold, so each microservice ends with the fewest containers
// that satisfy it.
type ThresholdOrchestrator struct {
	base
	Delta         float64
	Threshold     float64
	MaxContainers int
}

var _ Orchestrator = (*ThresholdOrchestrator)(nil)

// NewThresholdOrchestrator creates a threshold orchestrator. maxContainers
// bounds growth per microservice; 0 leaves it unbounded.
func NewThresholdOrchestrator(delta, threshold float64, maxContainers int, opts Options) *ThresholdOrchestrator {
	return &ThresholdOrchestrator{
		base:          newBase(opts),
		Delta:         delta,
		Threshold:     threshold,
		MaxContainers: maxContainers,
	}
}

func (o *ThresholdOrchestrator) Name() string {
	return "threshold"
}

func (o *ThresholdOrchestrator) Orchestrate(cloud *reliability.Cloud, t float64) error {
	o.recorder.OrchestratorRun(o.Name())
	o.prepare(cloud, t)

	for _, ms := range cloud.Microservices() {
		for ms.ProbabilityOfFailure(t, o.Delta) >= o.Threshold && underLimit(ms, o.MaxContainers) {
			o.spawn(ms, t, metrics.ReasonScaleUp)
		}
		// The oldest container goes only while the remainder stays below
		// the threshold, otherwise growth and shrink would oscillate.
		for ms.Len() > 1 && o.probabilityWithoutOldest(ms, t) < o.Threshold {
			if err := o.remove(ms, 0, t, metrics.ReasonScaleDown); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *ThresholdOrchestrator) probabilityWithoutOldest(ms *reliability.Microservice, t float64) float64 {
	p := 1.0
	for _, c := range ms.Containers()[1:] {
		p *= c.ProbabilityOfFailure(t, o.Delta)
	}
	return p
}
