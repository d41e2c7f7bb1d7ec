package simulate

import (
	"fmt"
	"math/rand/v2"

	"battery-sim/internal/model"

	"gonum.org/v1/gonum/stat/distuv"
)

// Scripted waveform constants. These reproduce the cycler demo profile and
// must not be tuned.
const (
	WaveformSteps = 40
	WaveformLabel = "Waveform"

	waveformBreak   = 20
	waveformRate    = 0.1
	waveformBound   = 5.0
	waveformVoltMin = 3.1
	waveformVoltMax = 3.6
	waveformTempMin = 25.0
	waveformTempMax = 40.0
)

// StepCurrent is the scripted current at sample index i:
// 5.0 - 0.1*i before the break at i == 20, then -5.0 + 0.1*i.
func StepCurrent(i int) float64 {
	if i < waveformBreak {
		return model.Round(waveformBound-float64(i)*waveformRate, 2)
	}
	return model.Round(-waveformBound+float64(i)*waveformRate, 2)
}

// Waveform draws voltage and temperature from independent uniform
// distributions and pairs them with the scripted current. It ignores any
// cell configuration.
type Waveform struct {
	voltage     distuv.Uniform
	temperature distuv.Uniform
}

// NewWaveform builds a waveform over src. A nil src uses the global source.
func NewWaveform(src rand.Source) *Waveform {
	return &Waveform{
		voltage:     distuv.Uniform{Min: waveformVoltMin, Max: waveformVoltMax, Src: src},
		temperature: distuv.Uniform{Min: waveformTempMin, Max: waveformTempMax, Src: src},
	}
}

func (w *Waveform) Name() string { return string(model.ModeWaveform) }

func (w *Waveform) Steps() int { return WaveformSteps }

func (w *Waveform) Sample(step int) (model.Sample, error) {
	if step < 0 || step >= WaveformSteps {
		return model.Sample{}, fmt.Errorf("%w: waveform step %d outside [0, %d)", model.ErrInvalidInput, step, WaveformSteps)
	}
	// Voltage is drawn before temperature on every step.
	voltage := model.Round(w.voltage.Rand(), 3)
	temperature := model.Round(w.temperature.Rand(), 2)
	current := StepCurrent(step)
	return model.Sample{
		Step:        step,
		Voltage:     voltage,
		Current:     current,
		Temperature: temperature,
		Capacity:    model.Round(voltage*current, 2),
	}, nil
}

// SeededSource returns a deterministic source for reproducible waveforms.
func SeededSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}
