package reliability

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
	"github.com/GoSim-25-26J-441/reliability-sim/pkg/utils"
)

// FailureModel is the failure-time distribution shared by the containers of
// a microservice. CDF must be non-decreasing with CDF(x) = 0 for x <= 0.
type FailureModel interface {
	// Name identifies the model in traces
	Name() string
	// CDF returns the probability of having failed by container-local time local
	CDF(local float64) float64
	// SampleFailureOffset draws the remaining time to failure for a
	// container that has survived until local
	SampleFailureOffset(local float64, rng *utils.RandSource) float64
}

type quantiler interface {
	CDF(x float64) float64
	Quantile(p float64) float64
}

// distModel adapts a gonum distribution. Conditional samples come from
// inverting the CDF restricted to [F(local), 1). A positive rate marks the
// memoryless exponential, which samples directly.
type distModel struct {
	name string
	dist quantiler
	rate float64
}

// NewExponential returns the exponential model F(t) = 1 - exp(-rate*t)
func NewExponential(rate float64) (FailureModel, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("exponential rate must be positive, got %g", rate)
	}
	return &distModel{
		name: fmt.Sprintf("exponential(rate=%g)", rate),
		dist: distuv.Exponential{Rate: rate},
		rate: rate,
	}, nil
}

// NewWeibull returns a Weibull model with the given shape and scale
func NewWeibull(shape, scale float64) (FailureModel, error) {
	if shape <= 0 || scale <= 0 {
		return nil, fmt.Errorf("weibull shape and scale must be positive, got %g, %g", shape, scale)
	}
	return &distModel{
		name: fmt.Sprintf("weibull(shape=%g,scale=%g)", shape, scale),
		dist: distuv.Weibull{K: shape, Lambda: scale},
	}, nil
}

// NewLogNormal returns a log-normal model
func NewLogNormal(mu, sigma float64) (FailureModel, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("lognormal sigma must be positive, got %g", sigma)
	}
	return &distModel{
		name: fmt.Sprintf("lognormal(mu=%g,sigma=%g)", mu, sigma),
		dist: distuv.LogNormal{Mu: mu, Sigma: sigma},
	}, nil
}

// NewModelFromConfig builds the failure model a scenario asks for
func NewModelFromConfig(cfg config.Distribution) (FailureModel, error) {
	switch cfg.Type {
	case config.DistributionExponential:
		return NewExponential(cfg.Rate)
	case config.DistributionWeibull:
		return NewWeibull(cfg.Shape, cfg.Scale)
	case config.DistributionLogNormal:
		return NewLogNormal(cfg.Mu, cfg.Sigma)
	default:
		return nil, &UnknownModelError{Type: cfg.Type}
	}
}

func (m *distModel) Name() string {
	return m.name
}

func (m *distModel) CDF(local float64) float64 {
	if local <= 0 {
		return 0
	}
	return m.dist.CDF(local)
}

func (m *distModel) SampleFailureOffset(local float64, rng *utils.RandSource) float64 {
	survived := m.CDF(local)
	if survived >= 1 {
		return 0
	}
	if m.rate > 0 {
		return rng.ExpFloat64(m.rate)
	}
	p := rng.UniformFloat64(survived, 1)
	x := m.dist.Quantile(p)
	if x < local {
		return 0
	}
	return x - local
}

// FuncModel builds a FailureModel from plain functions. A missing function
// is reported by Validate and panics with *NotImplementedError when called.
type FuncModel struct {
	ID         string
	CDFFunc    func(local float64) float64
	SampleFunc func(local float64, rng *utils.RandSource) float64
}

func (m *FuncModel) Name() string {
	if m.ID == "" {
		return "custom"
	}
	return m.ID
}

// Validate reports the first missing capability
func (m *FuncModel) Validate() error {
	if m.CDFFunc == nil {
		return &NotImplementedError{Model: m.Name(), Capability: "failure function"}
	}
	if m.SampleFunc == nil {
		return &NotImplementedError{Model: m.Name(), Capability: "failure time sampler"}
	}
	return nil
}

func (m *FuncModel) CDF(local float64) float64 {
	if m.CDFFunc == nil {
		panic(&NotImplementedError{Model: m.Name(), Capability: "failure function"})
	}
	return m.CDFFunc(local)
}

func (m *FuncModel) SampleFailureOffset(local float64, rng *utils.RandSource) float64 {
	if m.SampleFunc == nil {
		panic(&NotImplementedError{Model: m.Name(), Capability: "failure time sampler"})
	}
	return m.SampleFunc(local, rng)
}

// validateModel rejects nil models and models that can tell they are incomplete
func validateModel(model FailureModel) error {
	if model == nil {
		return &NotImplementedError{Capability: "failure model"}
	}
	if v, ok := model.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}
