// Package cost supplies the time-varying prices the orchestrators and the
// simulator charge against: the cost of a task failure and the spot price of
// running containers.
package cost

import (
	"fmt"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
)

// Provider returns prices integrated over a window and instantaneous rates.
// All methods must be pure functions of their arguments.
type Provider interface {
	// CostOfFailure is the cost of a failure occurring in [t, t+delta]
	CostOfFailure(t, delta float64) float64
	// SpotPrice is the price multiplier for running in [t, t+delta]
	SpotPrice(t, delta float64) float64
	CostOfFailurePerSecond(t float64) float64
	SpotPricePerSecond(t float64) float64
}

// RateFunc is an instantaneous price at global time t
type RateFunc func(t float64) float64

// Constant returns a RateFunc that always yields v
func Constant(v float64) RateFunc {
	return func(float64) float64 { return v }
}

// RateProvider integrates instantaneous rates over a window as rate(t)*delta.
// A nil rate behaves as a constant 1.
type RateProvider struct {
	FailureRate RateFunc
	SpotRate    RateFunc
}

var _ Provider = (*RateProvider)(nil)

func (p *RateProvider) CostOfFailure(t, delta float64) float64 {
	return p.CostOfFailurePerSecond(t) * delta
}

func (p *RateProvider) SpotPrice(t, delta float64) float64 {
	return p.SpotPricePerSecond(t) * delta
}

func (p *RateProvider) CostOfFailurePerSecond(t float64) float64 {
	if p.FailureRate == nil {
		return 1
	}
	return p.FailureRate(t)
}

func (p *RateProvider) SpotPricePerSecond(t float64) float64 {
	if p.SpotRate == nil {
		return 1
	}
	return p.SpotRate(t)
}

// NewProviderFromConfig builds a RateProvider from scenario costs
func NewProviderFromConfig(cfg *config.Costs) (*RateProvider, error) {
	if cfg == nil {
		return &RateProvider{}, nil
	}
	failure, err := RateFromConfig(cfg.CostOfFailure)
	if err != nil {
		return nil, fmt.Errorf("cost_of_failure: %w", err)
	}
	spot, err := RateFromConfig(cfg.SpotPrice)
	if err != nil {
		return nil, fmt.Errorf("spot_price: %w", err)
	}
	return &RateProvider{FailureRate: failure, SpotRate: spot}, nil
}

// RateFromConfig converts one rate schedule. An empty type is a constant.
func RateFromConfig(cfg config.RateSchedule) (RateFunc, error) {
	switch cfg.Type {
	case "", config.RateConstant:
		return Constant(cfg.Value), nil
	case config.RateHourly:
		steps := make([]Step, len(cfg.Steps))
		for i, s := range cfg.Steps {
			steps[i] = Step{UntilHour: s.UntilHour, Rate: s.Rate}
		}
		schedule, err := NewHourlySchedule(cfg.DayLength, cfg.Default, steps)
		if err != nil {
			return nil, err
		}
		return schedule.Rate, nil
	default:
		return nil, fmt.Errorf("unknown rate type: %s", cfg.Type)
	}
}
