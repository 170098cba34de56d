package cost

import (
	"math"
	"testing"

	"github.com/GoSim-25-26J-441/reliability-sim/pkg/config"
)

func TestRateProviderDefaults(t *testing.T) {
	p := &RateProvider{}

	if got := p.CostOfFailure(3, 0.5); got != 0.5 {
		t.Fatalf("expected 0.5, got %g", got)
	}
	if got := p.SpotPrice(3, 0.25); got != 0.25 {
		t.Fatalf("expected 0.25, got %g", got)
	}
	if p.CostOfFailurePerSecond(1) != 1 || p.SpotPricePerSecond(1) != 1 {
		t.Fatalf("expected unit rates")
	}
}

func TestRateProviderIntegratesRate(t *testing.T) {
	p := &RateProvider{
		FailureRate: func(t float64) float64 { return 10 * t },
		SpotRate:    Constant(3),
	}

	if got := p.CostOfFailure(2, 0.1); math.Abs(got-2) > 1e-12 {
		t.Fatalf("expected 2, got %g", got)
	}
	if got := p.SpotPrice(7, 0.01); math.Abs(got-0.03) > 1e-12 {
		t.Fatalf("expected 0.03, got %g", got)
	}
}

func TestNewProviderFromConfig(t *testing.T) {
	cfg := &config.Costs{
		CostOfFailure: config.RateSchedule{
			Type:      config.RateHourly,
			DayLength: 24,
			Default:   1,
			Steps:     []config.RateStep{{UntilHour: 12, Rate: 5}},
		},
		SpotPrice: config.RateSchedule{Type: config.RateConstant, Value: 2},
	}

	p, err := NewProviderFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.CostOfFailurePerSecond(3); got != 5 {
		t.Fatalf("expected 5 before noon, got %g", got)
	}
	if got := p.CostOfFailurePerSecond(13); got != 1 {
		t.Fatalf("expected default after noon, got %g", got)
	}
	if got := p.SpotPricePerSecond(13); got != 2 {
		t.Fatalf("expected 2, got %g", got)
	}
}

func TestNewProviderFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Costs
	}{
		{"unknown type", config.Costs{SpotPrice: config.RateSchedule{Type: "tiered"}}},
		{"bad day length", config.Costs{CostOfFailure: config.RateSchedule{Type: config.RateHourly}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProviderFromConfig(&tt.cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewProviderFromNilConfig(t *testing.T) {
	p, err := NewProviderFromConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.SpotPricePerSecond(0) != 1 {
		t.Fatalf("expected unit spot price")
	}
}
