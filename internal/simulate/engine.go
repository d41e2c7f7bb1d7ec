package simulate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"battery-sim/internal/model"
)

// RunRequest is the "start run" trigger of a linear run.
type RunRequest struct {
	Cells    []model.CellInput
	State    model.State
	Duration int
	Tasks    []model.Task
}

func (r RunRequest) Validate() error {
	if err := r.State.Validate(); err != nil {
		return err
	}
	if r.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0, got %d", model.ErrInvalidInput, r.Duration)
	}
	for i, c := range r.Cells {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%s: %w", model.CellLabel(i), err)
		}
	}
	return model.ValidateTasks(r.Tasks)
}

// SampleEvent is delivered to Engine.OnSample after every generated sample.
type SampleEvent struct {
	Mode   model.Mode
	Cell   int // 0-based index of the series
	Label  string
	Steps  int // total samples of this series
	Sample model.Sample
	Gauge  *Gauge // nil for waveform runs
}

// SampleFunc observes samples as they are produced. Returning an error stops the run.
type SampleFunc func(ev SampleEvent) error

// Engine drives synthesizers across their steps, strictly in order.
type Engine struct {
	// OnSample, when set, is called after each sample is appended.
	OnSample SampleFunc
	// Pace is slept after each sample (after OnSample). Zero means no delay.
	Pace time.Duration

	now func() time.Time
}

func New() *Engine { return &Engine{now: time.Now} }

// Run executes a linear run: one series per cell, in input order, each with
// Duration+1 samples. Inputs are validated up front, so an invalid request
// produces no samples at all. A cancelled context discards the partial run.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*model.Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	run := &model.Run{
		Mode:      model.ModeLinear,
		State:     req.State,
		Duration:  req.Duration,
		StartedAt: e.clock(),
		Cells:     append([]model.CellInput(nil), req.Cells...),
		Tasks:     normalizeTasks(req.Tasks),
		Series:    make([]model.CellSeries, 0, len(req.Cells)),
	}

	for idx, cell := range req.Cells {
		syn := &LinearRamp{State: req.State, Duration: req.Duration, Cell: cell}
		profile := cell.Profile
		series, err := e.drive(ctx, idx, model.CellLabel(idx), syn, func(s model.Sample) *Gauge {
			g := NewGauge(req.State, profile, s.Voltage)
			return &g
		})
		if err != nil {
			return nil, err
		}
		run.Series = append(run.Series, series)
	}
	return run, nil
}

// RunWaveform executes the scripted waveform as a single series.
func (e *Engine) RunWaveform(ctx context.Context, src rand.Source) (*model.Run, error) {
	run := &model.Run{
		Mode:      model.ModeWaveform,
		Duration:  WaveformSteps - 1,
		StartedAt: e.clock(),
	}
	series, err := e.drive(ctx, 0, WaveformLabel, NewWaveform(src), nil)
	if err != nil {
		return nil, err
	}
	run.Series = []model.CellSeries{series}
	return run, nil
}

func (e *Engine) drive(ctx context.Context, idx int, label string, syn Synthesizer, gauge func(model.Sample) *Gauge) (model.CellSeries, error) {
	steps := syn.Steps()
	series := model.CellSeries{
		Label:   label,
		Samples: make([]model.Sample, 0, steps),
	}
	for step := 0; step < steps; step++ {
		if err := ctx.Err(); err != nil {
			return model.CellSeries{}, err
		}
		s, err := syn.Sample(step)
		if err != nil {
			return model.CellSeries{}, fmt.Errorf("%s step %d: %w", label, step, err)
		}
		series.Samples = append(series.Samples, s)

		if e.OnSample != nil {
			ev := SampleEvent{
				Mode:   model.Mode(syn.Name()),
				Cell:   idx,
				Label:  label,
				Steps:  steps,
				Sample: s,
			}
			if gauge != nil {
				ev.Gauge = gauge(s)
			}
			if err := e.OnSample(ev); err != nil {
				return model.CellSeries{}, fmt.Errorf("%s step %d: %w", label, step, err)
			}
		}
		if err := e.pace(ctx); err != nil {
			return model.CellSeries{}, err
		}
	}
	return series, nil
}

func (e *Engine) pace(ctx context.Context) error {
	if e.Pace <= 0 {
		return nil
	}
	t := time.NewTimer(e.Pace)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (e *Engine) clock() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}

func normalizeTasks(tasks []model.Task) []model.Task {
	if len(tasks) == 0 {
		return nil
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Normalize()
	}
	return out
}
