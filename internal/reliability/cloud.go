package reliability

import (
	"strings"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

// Cloud is a series composition of microservices: the task fails as soon
// as any microservice fails.
type Cloud struct {
	microservices []*Microservice
}

// NewCloud creates a cloud over the given microservices. The argument slice
// is copied.
func NewCloud(microservices ...*Microservice) *Cloud {
	ms := make([]*Microservice, len(microservices))
	copy(ms, microservices)
	return &Cloud{microservices: ms}
}

// Microservices returns the microservices in order. The slice is a copy.
func (c *Cloud) Microservices() []*Microservice {
	out := make([]*Microservice, len(c.microservices))
	copy(out, c.microservices)
	return out
}

// Microservice returns the microservice at index i
func (c *Cloud) Microservice(i int) *Microservice {
	return c.microservices[i]
}

func (c *Cloud) Len() int {
	return len(c.microservices)
}

// ProbabilityOfFailure returns 1 - prod(1 - p_i) over the microservices
func (c *Cloud) ProbabilityOfFailure(t, delta float64) float64 {
	survival := 1.0
	for _, ms := range c.microservices {
		survival *= 1 - ms.ProbabilityOfFailure(t, delta)
	}
	return clamp01(1 - survival)
}

// TotalContainers counts containers in every state
func (c *Cloud) TotalContainers() int {
	n := 0
	for _, ms := range c.microservices {
		n += ms.Len()
	}
	return n
}

// ActiveContainers counts the active containers
func (c *Cloud) ActiveContainers() int {
	n := 0
	for _, ms := range c.microservices {
		n += ms.ActiveCount()
	}
	return n
}

// Clone deep copies the cloud. Random sources are cloned as well, keeping
// any sharing between microservices, so draws made on the copy leave the
// original's stream untouched.
func (c *Cloud) Clone() *Cloud {
	sources := make(map[*utils.RandSource]*utils.RandSource)
	cp := &Cloud{microservices: make([]*Microservice, len(c.microservices))}
	for i, ms := range c.microservices {
		rng, ok := sources[ms.rng]
		if !ok {
			rng = ms.rng.Clone()
			sources[ms.rng] = rng
		}
		cp.microservices[i] = ms.Clone(rng)
	}
	return cp
}

// Snapshot freezes the current cloud for counterfactual evaluation
func (c *Cloud) Snapshot() Snapshot {
	return Snapshot{frozen: c.Clone()}
}

func (c *Cloud) String() string {
	parts := make([]string, len(c.microservices))
	for i, ms := range c.microservices {
		parts[i] = ms.String()
	}
	return strings.Join(parts, " | ")
}

// Snapshot is an immutable view of a cloud. Every evaluation runs against a
// fresh copy, so the snapshot itself never changes.
type Snapshot struct {
	frozen *Cloud
}

// Evaluate applies mutate to a copy of the snapshot and returns metric on
// the result.
func (s Snapshot) Evaluate(mutate func(*Cloud) error, metric func(*Cloud) float64) (float64, error) {
	cp := s.frozen.Clone()
	if mutate != nil {
		if err := mutate(cp); err != nil {
			return 0, err
		}
	}
	return metric(cp), nil
}
