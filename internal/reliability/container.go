package reliability

import "fmt"

// State is the lifecycle state of a container
type State int

const (
	StateActive State = iota
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Container is one running instance of a microservice. Times passed to its
// methods are global; the container converts them to local time relative to
// its start.
type Container struct {
	name             string
	model            FailureModel
	startTime        float64
	localFailureTime float64
	state            State
}

// NewContainer creates an active container started at t0 whose failure
// instant, in local time, is localFailureTime.
func NewContainer(name string, model FailureModel, t0, localFailureTime float64) *Container {
	return &Container{
		name:             name,
		model:            model,
		startTime:        t0,
		localFailureTime: localFailureTime,
		state:            StateActive,
	}
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) StartTime() float64 {
	return c.startTime
}

func (c *Container) State() State {
	return c.state
}

func (c *Container) Model() FailureModel {
	return c.model
}

// LocalFailureTime is the pre-sampled failure instant in local time
func (c *Container) LocalFailureTime() float64 {
	return c.localFailureTime
}

// LocalTime converts a global time to container-local time
func (c *Container) LocalTime(t float64) float64 {
	return t - c.startTime
}

// Fail marks the container as failed. Failed containers never recover.
func (c *Container) Fail() {
	c.state = StateFailed
}

// ProbabilityOfFailure returns the probability that the container fails in
// [t, t+delta] given that it is still alive at t.
func (c *Container) ProbabilityOfFailure(t, delta float64) float64 {
	if c.state == StateFailed {
		return 1
	}
	from := c.model.CDF(c.LocalTime(t))
	to := c.model.CDF(c.LocalTime(t + delta))
	survival := 1 - from
	if survival <= 0 {
		return 1
	}
	return clamp01((to - from) / survival)
}

func (c *Container) String() string {
	return fmt.Sprintf("%s (%s)", c.name, c.state)
}

func (c *Container) clone() *Container {
	cp := *c
	return &cp
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
