package policy

import (
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/cost"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
)

func TestPrepareReplacesFailedContainer(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 1, containers: 1})
	cloud.Microservice(0).Containers()[0].Fail()
	rec := metrics.NewRecorder()

	orch := NewNopOrchestrator(Options{Recorder: rec, Logger: logger.Discard(), Trace: true})
	if err := orch.Orchestrate(cloud, 2.5); err != nil {
		t.Fatalf("Orchestrate: %v", err)
	}

	ms := cloud.Microservice(0)
	if ms.Len() != 1 || ms.ActiveCount() != 1 {
		t.Fatalf("expected exactly one active container, got %d/%d", ms.ActiveCount(), ms.Len())
	}
	c := ms.Containers()[0]
	if c.Name() != "api-c2" || c.StartTime() != 2.5 {
		t.Fatalf("expected a fresh container at t=2.5, got %s at %g", c.Name(), c.StartTime())
	}

	expected := `
# HELP reliabilitysim_containers_removed_total Total number of containers removed by microservice and reason
# TYPE reliabilitysim_containers_removed_total counter
reliabilitysim_containers_removed_total{microservice="api",reason="failed"} 1
# HELP reliabilitysim_containers_spawned_total Total number of containers spawned by microservice and reason
# TYPE reliabilitysim_containers_spawned_total counter
reliabilitysim_containers_spawned_total{microservice="api",reason="restore"} 1
`
	if err := testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected),
		"reliabilitysim_containers_removed_total", "reliabilitysim_containers_spawned_total"); err != nil {
		t.Fatal(err)
	}
}

func TestPrepareKeepsHealthyMicroservices(t *testing.T) {
	cloud := newTestCloud(t,
		msSpec{name: "a", cost: 1, containers: 2},
		msSpec{name: "b", cost: 1, containers: 0},
	)

	orch := NewNopOrchestrator(quietOptions(nil))
	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatal(err)
	}
	if cloud.Microservice(0).Len() != 2 {
		t.Fatalf("expected a to keep 2 containers, got %d", cloud.Microservice(0).Len())
	}
	if cloud.Microservice(1).Len() != 1 {
		t.Fatalf("expected b to be restored to 1 container, got %d", cloud.Microservice(1).Len())
	}
}

func TestExpectedCostOfFailureUsesHigherEndpoint(t *testing.T) {
	step := &cost.RateProvider{
		FailureRate: func(t float64) float64 {
			if t < 1 {
				return 1
			}
			return 10
		},
	}
	cloud := newTestCloud(t, msSpec{name: "a", cost: 1, containers: 1})
	orch := NewNopOrchestrator(quietOptions(step))

	p := cloud.ProbabilityOfFailure(0.95, 0.1)
	want := 10 * 0.1 * p
	if got := orch.ExpectedCostOfFailure(0.95, 0.1, cloud); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %g, got %g", want, got)
	}

	want = 1 * 0.1 * cloud.ProbabilityOfFailure(0.2, 0.1)
	if got := orch.ExpectedCostOfFailure(0.2, 0.1, cloud); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %g, got %g", want, got)
	}
}

func TestNopOrchestratorName(t *testing.T) {
	orch := NewNopOrchestrator(Options{})
	if orch.Name() != "noop" {
		t.Fatalf("expected noop, got %s", orch.Name())
	}
}
