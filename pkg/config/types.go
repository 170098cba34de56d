package config

// Failure determination modes for the simulator
const (
	FailureModeScheduled = "scheduled"
	FailureModeBernoulli = "bernoulli"
)

// Orchestrator types
const (
	OrchestratorUtility   = "utility"
	OrchestratorThreshold = "threshold"
	OrchestratorNoop      = "noop"
)

// Rate schedule types
const (
	RateConstant = "constant"
	RateHourly   = "hourly"
)

// Failure distribution types
const (
	DistributionExponential = "exponential"
	DistributionWeibull     = "weibull"
	DistributionLogNormal   = "lognormal"
)

// Defaults applied by ApplyDefaults
const (
	DefaultClockStep          = 0.01
	DefaultOrchestratorPeriod = 0.01
	DefaultSteps              = 500
	DefaultOrchestratorDelta  = 0.01
	DefaultThreshold          = 1e-9
	DefaultMaxContainers      = 256
	DefaultDayLength          = 5.0
)

// Scenario is a complete reliability simulation scenario
type Scenario struct {
	LogLevel      string         `yaml:"log_level,omitempty"`
	Simulation    Simulation     `yaml:"simulation"`
	Orchestrator  Orchestrator   `yaml:"orchestrator"`
	Costs         Costs          `yaml:"costs"`
	Microservices []Microservice `yaml:"microservices"`
}

// Simulation holds the discrete-time loop parameters
type Simulation struct {
	ClockStep          float64 `yaml:"clock_step"`
	OrchestratorPeriod float64 `yaml:"orchestrator_period"`
	Steps              int     `yaml:"steps"`
	Seed               int64   `yaml:"seed,omitempty"`
	FailureMode        string  `yaml:"failure_mode,omitempty"` // scheduled or bernoulli
	Trace              bool    `yaml:"trace,omitempty"`
}

// Orchestrator selects and parameterises the scaling policy
type Orchestrator struct {
	Type          string  `yaml:"type"`                     // utility, threshold, noop
	Delta         float64 `yaml:"delta"`                    // reliability horizon of each decision
	Threshold     float64 `yaml:"threshold,omitempty"`      // threshold orchestrator only
	MaxContainers *int    `yaml:"max_containers,omitempty"` // per microservice growth bound, 0 disables, unset means DefaultMaxContainers
}

// ContainerLimit returns the per microservice growth bound, 0 meaning
// unbounded
func (o *Orchestrator) ContainerLimit() int {
	if o.MaxContainers == nil {
		return DefaultMaxContainers
	}
	return *o.MaxContainers
}

// Costs defines the cost-of-failure and spot-price schedules (per second)
type Costs struct {
	CostOfFailure RateSchedule `yaml:"cost_of_failure"`
	SpotPrice     RateSchedule `yaml:"spot_price"`
}

// RateSchedule describes a per-second rate as a function of global time
type RateSchedule struct {
	Type      string     `yaml:"type"`                 // constant or hourly
	Value     float64    `yaml:"value,omitempty"`      // constant rate
	DayLength float64    `yaml:"day_length,omitempty"` // simulated seconds per day (hourly)
	Default   float64    `yaml:"default,omitempty"`    // rate after the last step (hourly)
	Steps     []RateStep `yaml:"steps,omitempty"`
}

// RateStep applies Rate to every hour strictly below UntilHour
// not covered by an earlier step
type RateStep struct {
	UntilHour float64 `yaml:"until_hour"`
	Rate      float64 `yaml:"rate"`
}

// Microservice describes one redundant microservice of the task
type Microservice struct {
	Name         string       `yaml:"name,omitempty"`
	Cost         float64      `yaml:"cost"`
	Containers   int          `yaml:"containers"`
	Distribution Distribution `yaml:"distribution"`
}

// Distribution selects the container failure-time distribution
type Distribution struct {
	Type  string  `yaml:"type"`
	Rate  float64 `yaml:"rate,omitempty"`  // exponential
	Shape float64 `yaml:"shape,omitempty"` // weibull
	Scale float64 `yaml:"scale,omitempty"` // weibull
	Mu    float64 `yaml:"mu,omitempty"`    // lognormal
	Sigma float64 `yaml:"sigma,omitempty"` // lognormal
}
