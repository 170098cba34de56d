package policy

import (
	"math"
	"reflect"
	"testing"
)

func TestThresholdReachesMinimalRedundancy(t *testing.T) {
	const delta, threshold = 0.5, 0.01
	cloud := newTestCloud(t, msSpec{name: "api", cost: 1, containers: 1})

	orch := NewThresholdOrchestrator(delta, threshold, 0, quietOptions(nil))
	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatalf("Orchestrate: %v", err)
	}

	f := 1 - math.Exp(-delta)
	want := 1
	for math.Pow(f, float64(want)) >= threshold {
		want++
	}
	if got := cloud.Microservice(0).Len(); got != want {
		t.Fatalf("expected %d containers, got %d", want, got)
	}
}

func TestThresholdShrinksOldestFirst(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 1, containers: 8})

	orch := NewThresholdOrchestrator(0.5, 0.01, 0, quietOptions(nil))
	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatalf("Orchestrate: %v", err)
	}

	want := []string{"api-c4", "api-c5", "api-c6", "api-c7", "api-c8"}
	if got := containerNames(cloud.Microservice(0)); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestThresholdRespectsMaxContainers(t *testing.T) {
	cloud := newTestCloud(t, msSpec{name: "api", cost: 1, containers: 1})

	orch := NewThresholdOrchestrator(0.5, 1e-300, 3, quietOptions(nil))
	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatalf("Orchestrate: %v", err)
	}
	if got := cloud.Microservice(0).Len(); got != 3 {
		t.Fatalf("expected growth to stop at 3, got %d", got)
	}
}

func TestThresholdIsPerMicroservice(t *testing.T) {
	cloud := newTestCloud(t,
		msSpec{name: "a", cost: 1, containers: 1},
		msSpec{name: "b", cost: 100, containers: 1},
	)

	orch := NewThresholdOrchestrator(0.1, 0.01, 0, quietOptions(nil))
	if err := orch.Orchestrate(cloud, 0); err != nil {
		t.Fatal(err)
	}
	if cloud.Microservice(0).Len() != 2 || cloud.Microservice(1).Len() != 2 {
		t.Fatalf("expected 2 containers each, got %d and %d",
			cloud.Microservice(0).Len(), cloud.Microservice(1).Len())
	}
}
