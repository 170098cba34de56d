package reliability

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

func newTestMicroservice(t *testing.T, name string, n int, rng *utils.RandSource) *Microservice {
	t.Helper()
	ms, err := NewMicroservice(name, 0.05, n, 0, mustExponential(t, 1), rng)
	if err != nil {
		t.Fatalf("NewMicroservice: %v", err)
	}
	return ms
}

func TestNewMicroserviceGeneratedName(t *testing.T) {
	ms := newTestMicroservice(t, "", 1, utils.NewRandSource(9))

	if !strings.HasPrefix(ms.Name(), "MS_") || len(ms.Name()) != 8 {
		t.Fatalf("unexpected generated name %q", ms.Name())
	}
	for _, r := range ms.Name()[3:] {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits in %q", ms.Name())
		}
	}
}

func TestNewMicroserviceValidation(t *testing.T) {
	model := mustExponential(t, 1)
	rng := utils.NewRandSource(1)

	if _, err := NewMicroservice("a", 0, 1, 0, model, rng); err == nil {
		t.Fatal("expected error for zero cost")
	}
	if _, err := NewMicroservice("a", 1, -1, 0, model, rng); err == nil {
		t.Fatal("expected error for negative container count")
	}
	if _, err := NewMicroservice("a", 1, 1, 0, model, nil); err == nil {
		t.Fatal("expected error for nil random source")
	}
}

func TestMicroserviceSpawnAndRemove(t *testing.T) {
	ms := newTestMicroservice(t, "api", 2, utils.NewRandSource(4))

	got := ms.Containers()
	if len(got) != 2 || got[0].Name() != "api-c1" || got[1].Name() != "api-c2" {
		t.Fatalf("unexpected containers %v", got)
	}

	removed, err := ms.RemoveContainer(0)
	if err != nil {
		t.Fatalf("RemoveContainer: %v", err)
	}
	if removed.Name() != "api-c1" {
		t.Fatalf("expected oldest container removed, got %s", removed.Name())
	}

	c := ms.SpawnContainer(1.5)
	if c.Name() != "api-c3" || c.StartTime() != 1.5 {
		t.Fatalf("unexpected spawned container %s at %g", c.Name(), c.StartTime())
	}
	if c.LocalFailureTime() < 0 {
		t.Fatalf("negative failure time %g", c.LocalFailureTime())
	}
	if ms.Len() != 2 {
		t.Fatalf("expected 2 containers, got %d", ms.Len())
	}
}

func TestMicroserviceRemoveInvalidIndex(t *testing.T) {
	ms := newTestMicroservice(t, "api", 1, utils.NewRandSource(4))

	for _, i := range []int{-1, 1, 5} {
		_, err := ms.RemoveContainer(i)
		var sel *InvalidSelectionError
		if !errors.As(err, &sel) {
			t.Fatalf("index %d: expected InvalidSelectionError, got %v", i, err)
		}
		if sel.Count != 1 || sel.Microservice != "api" {
			t.Fatalf("unexpected error fields %+v", sel)
		}
	}
	if ms.Len() != 1 {
		t.Fatalf("invalid removal changed the microservice")
	}
}

func TestMicroserviceRemoveFailed(t *testing.T) {
	ms := newTestMicroservice(t, "api", 4, utils.NewRandSource(4))
	cs := ms.Containers()
	cs[1].Fail()
	cs[3].Fail()

	removed := ms.RemoveFailed()
	if len(removed) != 2 || removed[0].Name() != "api-c2" || removed[1].Name() != "api-c4" {
		t.Fatalf("unexpected removed containers %v", removed)
	}
	left := ms.Containers()
	if len(left) != 2 || left[0].Name() != "api-c1" || left[1].Name() != "api-c3" {
		t.Fatalf("unexpected remaining containers %v", left)
	}
	if ms.ActiveCount() != 2 {
		t.Fatalf("expected 2 active, got %d", ms.ActiveCount())
	}
}

func TestMicroserviceProbability(t *testing.T) {
	ms := newTestMicroservice(t, "api", 2, utils.NewRandSource(4))
	q := 1 - math.Exp(-0.1)

	if got := ms.ProbabilityOfFailure(0, 0.1); math.Abs(got-q*q) > 1e-12 {
		t.Fatalf("expected %g, got %g", q*q, got)
	}

	empty := newTestMicroservice(t, "empty", 0, utils.NewRandSource(4))
	if got := empty.ProbabilityOfFailure(0, 0.1); got != 1 {
		t.Fatalf("expected 1 for a microservice without containers, got %g", got)
	}
}

func TestMicroserviceContainersIsCopy(t *testing.T) {
	ms := newTestMicroservice(t, "api", 2, utils.NewRandSource(4))
	cs := ms.Containers()
	cs[0] = nil

	if ms.Containers()[0] == nil {
		t.Fatal("mutating the returned slice changed the microservice")
	}
}

func TestMicroserviceString(t *testing.T) {
	ms := newTestMicroservice(t, "api", 1, utils.NewRandSource(4))
	if got := ms.String(); got != "api (Cost=0.05): api-c1 (ACTIVE)" {
		t.Fatalf("unexpected string %q", got)
	}
	if _, err := ms.RemoveContainer(0); err != nil {
		t.Fatal(err)
	}
	if got := ms.String(); got != "api (Cost=0.05): No containers" {
		t.Fatalf("unexpected string %q", got)
	}
}
