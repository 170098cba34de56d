package policy

import (
	"math"
	"testing"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/cost"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

// halfLife makes every fresh exponential(1) container fail within the
// horizon with probability one half.
var halfLife = math.Ln2

type msSpec struct {
	name       string
	cost       float64
	containers int
}

func newTestCloud(t *testing.T, specs ...msSpec) *reliability.Cloud {
	t.Helper()
	model, err := reliability.NewExponential(1)
	if err != nil {
		t.Fatal(err)
	}
	rng := utils.NewRandSource(17)
	list := make([]*reliability.Microservice, 0, len(specs))
	for _, s := range specs {
		ms, err := reliability.NewMicroservice(s.name, s.cost, s.containers, 0, model, rng)
		if err != nil {
			t.Fatalf("NewMicroservice(%s): %v", s.name, err)
		}
		list = append(list, ms)
	}
	return reliability.NewCloud(list...)
}

// unitPrices prices one failure at 1 and one spot window at 1 over delta
func unitPrices(delta float64) *cost.RateProvider {
	return &cost.RateProvider{
		FailureRate: cost.Constant(1 / delta),
		SpotRate:    cost.Constant(1 / delta),
	}
}

func quietOptions(p cost.Provider) Options {
	return Options{Costs: p, Logger: logger.Discard()}
}

func containerNames(ms *reliability.Microservice) []string {
	names := make([]string, 0, ms.Len())
	for _, c := range ms.Containers() {
		names = append(names, c.Name())
	}
	return names
}
