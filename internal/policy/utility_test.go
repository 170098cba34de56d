package policy

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/GoSim-25-26J-441/reliability-sim/internal/metrics"
	"github.com/GoSim-25-26J-441/reliability-sim/internal/reliability"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/logger"
)

func TestUtilityGrowthStopsAtBreakEven(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 0.1, containers: 1})
	rec := metrics.NewRecorder()
	orch := NewUtilityOrchestrator(halfLife, 0, Options{
		Costs:    unitPrices(halfLife),
		Recorder: rec,
		Logger:   logger.Discard(),
	})

	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatalf("Orchestrate: %v", err)
	}
	if got := cloud.Microservice(0).Len(); got != 3 {
		t.Fatalf("expected 3 containers after two additions, got %d", got)
	}

	expected := `
# HELP reliabilitysim_containers_spawned_total Total number of containers spawned by microservice and reason
# TYPE reliabilitysim_containers_spawned_total counter
reliabilitysim_containers_spawned_total{microservice="api",reason="scale_up"} 2
`
	if err := testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "reliabilitysim_containers_spawned_total"); err != nil {
		t.Fatal(err)
	}

	if u := orch.AdditionUtility(cloud, 0, 0); u > 0 {
		t.Fatalf("expected a third addition to be unprofitable, got utility %g", u)
	}
	for c := 0; c < cloud.Microservice(0).Len(); c++ {
		u, err := orch.RemovalUtility(cloud, 0, 0, c)
		if err != nil {
			t.Fatal(err)
		}
		if u > 0 {
			t.Fatalf("expected removal of container %d to be unprofitable, got %g", c, u)
		}
	}
}

func TestUtilityShrinksExcessContainers(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 0.1, containers: 6})
	orch := NewUtilityOrchestrator(halfLife, 0, quietOptions(unitPrices(halfLife)))

	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatalf("Orchestrate: %v", err)
	}

	want := []string{"api-c4", "api-c5", "api-c6"}
	if got := containerNames(cloud.Microservice(0)); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUtilityPrefersCheaperMicroservice(t *testing.T) {
	cloud := newTestCloud(t,
		msSpec{name: "expensive", cost: 0.2, containers: 1},
		msSpec{name: "cheap", cost: 0.1, containers: 1},
	)
	orch := NewUtilityOrchestrator(halfLife, 0, quietOptions(unitPrices(halfLife)))

	if u := orch.AdditionUtility(cloud, 0, 0); u >= 0 {
		t.Fatalf("expected negative utility for the expensive microservice, got %g", u)
	}
	if u := orch.AdditionUtility(cloud, 0, 1); u <= 0 {
		t.Fatalf("expected positive utility for the cheap microservice, got %g", u)
	}

	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatal(err)
	}
	if cloud.Microservice(0).Len() != 1 || cloud.Microservice(1).Len() != 2 {
		t.Fatalf("expected 1 and 2 containers, got %d and %d",
			cloud.Microservice(0).Len(), cloud.Microservice(1).Len())
	}
}

func TestUtilityTieKeepsFirstCandidate(t *testing.T) {
	cloud := newTestCloud(t,
		msSpec{name: "a", cost: 0.1, containers: 1},
		msSpec{name: "b", cost: 0.1, containers: 1},
	)
	orch := NewUtilityOrchestrator(halfLife, 0, quietOptions(unitPrices(halfLife)))

	i, ok := orch.selectForRedundancy(cloud, 0)
	if !ok || i != 0 {
		t.Fatalf("expected the first microservice to win the tie, got %d (%v)", i, ok)
	}
}

func TestUtilityRespectsMaxContainers(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 0.1, containers: 1})
	orch := NewUtilityOrchestrator(halfLife, 2, quietOptions(unitPrices(halfLife)))

	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatal(err)
	}
	if got := cloud.Microservice(0).Len(); got != 2 {
		t.Fatalf("expected growth to stop at 2, got %d", got)
	}
}

func TestUtilityCounterfactualsLeaveCloudUntouched(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 0.1, containers: 2})
	orch := NewUtilityOrchestrator(halfLife, 0, quietOptions(unitPrices(halfLife)))
	before := cloud.String()

	orch.AdditionUtility(cloud, 0, 0)
	if _, err := orch.RemovalUtility(cloud, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if cloud.String() != before {
		t.Fatalf("counterfactual changed the cloud: %s -> %s", before, cloud.String())
	}
}

func TestUtilityRemovalInvalidSelection(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 0.1, containers: 1})
	orch := NewUtilityOrchestrator(halfLife, 0, quietOptions(unitPrices(halfLife)))

	_, err := orch.RemovalUtility(cloud, 0, 0, 4)
	var sel *reliability.InvalidSelectionError
	if !errors.As(err, &sel) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
}
