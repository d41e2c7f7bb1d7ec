package simulate

import (
	"fmt"

	"battery-sim/internal/model"
)

// Generate computes the sample of one cell at one step of a linear run.
//
// Charging ramps voltage from MinVoltage to MaxVoltage over the run,
// Discharging ramps it back down, and Idle holds NominalVoltage. With
// duration == 0 the ramp position is 0, so the single sample sits at
// MinVoltage when charging and at MaxVoltage when discharging.
func Generate(state model.State, step, duration int, profile model.ChemistryProfile, cell model.CellInput) (model.Sample, error) {
	if duration < 0 {
		return model.Sample{}, fmt.Errorf("%w: duration must be >= 0, got %d", model.ErrInvalidInput, duration)
	}
	if step < 0 || step > duration {
		return model.Sample{}, fmt.Errorf("%w: step %d outside [0, %d]", model.ErrInvalidInput, step, duration)
	}
	if cell.Current < 0 {
		return model.Sample{}, fmt.Errorf("%w: current must be >= 0, got %v", model.ErrInvalidInput, cell.Current)
	}
	if cell.Temperature < 0 {
		return model.Sample{}, fmt.Errorf("%w: temperature must be >= 0, got %v", model.ErrInvalidInput, cell.Temperature)
	}

	var voltage float64
	switch state {
	case model.StateCharging:
		voltage = model.Round(profile.MinVoltage+ramp(step, duration)*profile.Span(), 2)
	case model.StateDischarging:
		voltage = model.Round(profile.MaxVoltage-ramp(step, duration)*profile.Span(), 2)
	case model.StateIdle:
		voltage = profile.NominalVoltage
	default:
		return model.Sample{}, fmt.Errorf("%w: state %q", model.ErrInvalidInput, state)
	}

	return model.Sample{
		Step:        step,
		Voltage:     voltage,
		Current:     cell.Current,
		Temperature: cell.Temperature,
		Capacity:    model.Round(voltage*cell.Current, 2),
	}, nil
}

func ramp(step, duration int) float64 {
	if duration == 0 {
		return 0
	}
	return float64(step) / float64(duration)
}

// LinearRamp synthesizes one cell of a linear run.
type LinearRamp struct {
	State    model.State
	Duration int
	Cell     model.CellInput
}

func (l *LinearRamp) Name() string { return string(model.ModeLinear) }

// Steps is Duration+1: both ends of the ramp are sampled.
func (l *LinearRamp) Steps() int { return l.Duration + 1 }

func (l *LinearRamp) Sample(step int) (model.Sample, error) {
	return Generate(l.State, step, l.Duration, l.Cell.Profile, l.Cell)
}
