package reliability

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

// Microservice is a named group of redundant containers sharing one
// FailureModel. It fails only when every container fails.
type Microservice struct {
	name       string
	cost       float64
	model      FailureModel
	rng        *utils.RandSource
	containers []*Container
	spawned    int
}

// NewMicroservice creates a microservice with initialContainers containers
// started at t0. An empty name is replaced by "MS_" and five random digits.
func NewMicroservice(name string, cost float64, initialContainers int, t0 float64, model FailureModel, rng *utils.RandSource) (*Microservice, error) {
	if err := validateModel(model); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("microservice %q: random source is required", name)
	}
	if cost <= 0 {
		return nil, fmt.Errorf("microservice %q: cost must be positive, got %g", name, cost)
	}
	if initialContainers < 0 {
		return nil, fmt.Errorf("microservice %q: initial containers must be non-negative, got %d", name, initialContainers)
	}
	if name == "" {
		name = "MS_" + rng.Digits(5)
	}

	ms := &Microservice{
		name:  name,
		cost:  cost,
		model: model,
		rng:   rng,
	}
	for i := 0; i < initialContainers; i++ {
		ms.SpawnContainer(t0)
	}
	return ms, nil
}

func (m *Microservice) Name() string {
	return m.name
}

// Cost is the price of running one container for one unit of spot price
func (m *Microservice) Cost() float64 {
	return m.cost
}

func (m *Microservice) Model() FailureModel {
	return m.model
}

// Rand returns the random source containers are sampled from
func (m *Microservice) Rand() *utils.RandSource {
	return m.rng
}

// SpawnContainer starts a new container at t0 and returns it
func (m *Microservice) SpawnContainer(t0 float64) *Container {
	m.spawned++
	offset := m.model.SampleFailureOffset(0, m.rng)
	c := NewContainer(fmt.Sprintf("%s-c%d", m.name, m.spawned), m.model, t0, offset)
	m.containers = append(m.containers, c)
	return c
}

// RemoveContainer removes the container at index i, oldest first
func (m *Microservice) RemoveContainer(i int) (*Container, error) {
	if i < 0 || i >= len(m.containers) {
		return nil, &InvalidSelectionError{Microservice: m.name, Index: i, Count: len(m.containers)}
	}
	c := m.containers[i]
	m.containers = append(m.containers[:i], m.containers[i+1:]...)
	return c, nil
}

// RemoveFailed drops every failed container and returns them in order
func (m *Microservice) RemoveFailed() []*Container {
	var removed []*Container
	kept := m.containers[:0]
	for _, c := range m.containers {
		if c.State() == StateFailed {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(m.containers); i++ {
		m.containers[i] = nil
	}
	m.containers = kept
	return removed
}

// Containers returns the containers, oldest first. The slice is a copy;
// the containers are not.
func (m *Microservice) Containers() []*Container {
	out := make([]*Container, len(m.containers))
	copy(out, m.containers)
	return out
}

// Len returns the number of containers regardless of state
func (m *Microservice) Len() int {
	return len(m.containers)
}

func (m *Microservice) ActiveCount() int {
	n := 0
	for _, c := range m.containers {
		if c.State() == StateActive {
			n++
		}
	}
	return n
}

// ProbabilityOfFailure is the probability that all containers fail in
// [t, t+delta]. A microservice without containers cannot serve and
// returns 1.
func (m *Microservice) ProbabilityOfFailure(t, delta float64) float64 {
	p := 1.0
	for _, c := range m.containers {
		p *= c.ProbabilityOfFailure(t, delta)
	}
	return p
}

// Clone deep copies the microservice. The copy samples from rng, or from a
// copy of the current source when rng is nil.
func (m *Microservice) Clone(rng *utils.RandSource) *Microservice {
	if rng == nil {
		rng = m.rng.Clone()
	}
	cp := &Microservice{
		name:       m.name,
		cost:       m.cost,
		model:      m.model,
		rng:        rng,
		containers: make([]*Container, len(m.containers)),
		spawned:    m.spawned,
	}
	for i, c := range m.containers {
		cp.containers[i] = c.clone()
	}
	return cp
}

func (m *Microservice) String() string {
	if len(m.containers) == 0 {
		return fmt.Sprintf("%s (Cost=%g): No containers", m.name, m.cost)
	}
	parts := make([]string, len(m.containers))
	for i, c := range m.containers {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s (Cost=%g): %s", m.name, m.cost, strings.Join(parts, ", "))
}
