package policy

import (
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
)

// UtilityOrchestrator trades expected failure cost against spot-priced
// running cost. It grows the cloud one container at a time while some
// microservice yields positive utility, then shrinks it the same way.
//
// Every candidate is priced on a deep copy of the cloud, so one pass costs
// O(containers) clones of O(containers) each.
type UtilityOrchestrator struct {
	base
	Delta         float64
	MaxContainers int
}

var _ Orchestrator = (*UtilityOrchestrator)(nil)

// NewUtilityOrchestrator creates a utility orchestrator over horizon delta
func NewUtilityOrchestrator(delta float64, maxContainers int, opts Options) *UtilityOrchestrator {
	return &UtilityOrchestrator{
		base:          newBase(opts),
		Delta:         delta,
		MaxContainers: maxContainers,
	}
}

func (o *UtilityOrchestrator) Name() string {
	return "utility"
}

func (o *UtilityOrchestrator) Orchestrate(cloud *reliability.Cloud, t float64) error {
	o.recorder.OrchestratorRun(o.Name())
	o.prepare(cloud, t)
	before := cloud.String()

	for {
		i, ok := o.selectForRedundancy(cloud, t)
		if !ok {
			break
		}
		o.spawn(cloud.Microservice(i), t, metrics.ReasonScaleUp)
	}

	for {
		i, c, ok, err := o.selectForRemoval(cloud, t)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := o.remove(cloud.Microservice(i), c, t, metrics.ReasonScaleDown); err != nil {
			return err
		}
	}

	if after := cloud.String(); after != before {
		o.tracer.Trace("cloud rescaled", "t", t, "before", before, "after", after)
	}
	return nil
}

// AdditionUtility is the net benefit of one more container in microservice i
func (o *UtilityOrchestrator) AdditionUtility(cloud *reliability.Cloud, t float64, i int) float64 {
	snap := cloud.Snapshot()
	return o.additionUtility(snap, o.ExpectedCostOfFailure(t, o.Delta, cloud), cloud.Microservice(i), t, i)
}

// RemovalUtility is the net benefit of removing container c of microservice i
func (o *UtilityOrchestrator) RemovalUtility(cloud *reliability.Cloud, t float64, i, c int) (float64, error) {
	snap := cloud.Snapshot()
	return o.removalUtility(snap, o.ExpectedCostOfFailure(t, o.Delta, cloud), cloud.Microservice(i), t, i, c)
}

func (o *UtilityOrchestrator) additionUtility(snap reliability.Snapshot, current float64, ms *reliability.Microservice, t float64, i int) float64 {
	proposed, _ := snap.Evaluate(func(c *reliability.Cloud) error {
		c.Microservice(i).SpawnContainer(t)
		return nil
	}, o.pricer(t))
	return current - proposed - ms.Cost()*o.costs.SpotPrice(t, o.Delta)
}

func (o *UtilityOrchestrator) removalUtility(snap reliability.Snapshot, current float64, ms *reliability.Microservice, t float64, i, c int) (float64, error) {
	proposed, err := snap.Evaluate(func(cl *reliability.Cloud) error {
		_, err := cl.Microservice(i).RemoveContainer(c)
		return err
	}, o.pricer(t))
	if err != nil {
		return 0, err
	}
	return current - proposed + ms.Cost()*o.costs.SpotPrice(t, o.Delta), nil
}

func (o *UtilityOrchestrator) pricer(t float64) func(*reliability.Cloud) float64 {
	return func(c *reliability.Cloud) float64 {
		return o.ExpectedCostOfFailure(t, o.Delta, c)
	}
}

// selectForRedundancy returns the microservice with the strictly highest
// positive addition utility. The first candidate wins ties.
func (o *UtilityOrchestrator) selectForRedundancy(cloud *reliability.Cloud, t float64) (int, bool) {
	snap := cloud.Snapshot()
	current := o.ExpectedCostOfFailure(t, o.Delta, cloud)

	best, selected := 0.0, -1
	for i, ms := range cloud.Microservices() {
		if !underLimit(ms, o.MaxContainers) {
			continue
		}
		if u := o.additionUtility(snap, current, ms, t, i); u > best {
			best, selected = u, i
		}
	}
	return selected, selected >= 0
}

// selectForRemoval returns the (microservice, container) pair with the
// strictly highest positive removal utility.
func (o *UtilityOrchestrator) selectForRemoval(cloud *reliability.Cloud, t float64) (int, int, bool, error) {
	snap := cloud.Snapshot()
	current := o.ExpectedCostOfFailure(t, o.Delta, cloud)

	best, selMS, selC := 0.0, -1, -1
	for i, ms := range cloud.Microservices() {
		for c := 0; c < ms.Len(); c++ {
			u, err := o.removalUtility(snap, current, ms, t, i, c)
			if err != nil {
				return 0, 0, false, err
			}
			if u > best {
				best, selMS, selC = u, i, c
			}
		}
	}
	return selMS, selC, selMS >= 0, nil
}
