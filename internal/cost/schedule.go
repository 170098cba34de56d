package cost

import (
	"fmt"
	"math"
)

// Step applies Rate to every hour strictly below UntilHour not covered by an
// earlier step.
type Step struct {
	UntilHour float64
	Rate      float64
}

// HourlySchedule maps global time onto a simulated day of DayLength time
// units and looks the rate up by hour of day.
type HourlySchedule struct {
	DayLength float64
	Steps     []Step
	Default   float64
}

// NewHourlySchedule validates and builds a schedule
func NewHourlySchedule(dayLength, def float64, steps []Step) (*HourlySchedule, error) {
	if dayLength <= 0 {
		return nil, fmt.Errorf("day length must be positive, got %g", dayLength)
	}
	prev := 0.0
	for i, s := range steps {
		if s.UntilHour <= prev || s.UntilHour > 24 {
			return nil, fmt.Errorf("step %d: until_hour %g must increase within (0, 24]", i, s.UntilHour)
		}
		prev = s.UntilHour
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &HourlySchedule{DayLength: dayLength, Steps: cp, Default: def}, nil
}

// Hour returns the hour of day, in [0, 24), for global time t
func (s *HourlySchedule) Hour(t float64) float64 {
	phase := math.Mod(t, s.DayLength)
	if phase < 0 {
		phase += s.DayLength
	}
	return 24 * phase / s.DayLength
}

// Rate returns the rate in force at global time t
func (s *HourlySchedule) Rate(t float64) float64 {
	hour := s.Hour(t)
	for _, step := range s.Steps {
		if hour < step.UntilHour {
			return step.Rate
		}
	}
	return s.Default
}
