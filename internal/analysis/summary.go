package analysis

import (
	"battery-sim/internal/model"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesSummary condenses one series for the analysis panel.
type SeriesSummary struct {
	Label string `json:"label"`
	Count int    `json:"count"`

	MinVoltage  float64 `json:"min_voltage"`
	MaxVoltage  float64 `json:"max_voltage"`
	MeanVoltage float64 `json:"mean_voltage"`
	StdVoltage  float64 `json:"std_voltage"`

	MeanCurrent float64 `json:"mean_current"`

	MeanTemperature float64 `json:"mean_temperature"`
	MaxTemperature  float64 `json:"max_temperature"`

	// FinalCapacity is the capacity (V×A) of the last sample.
	FinalCapacity float64 `json:"final_capacity"`
	MeanCapacity  float64 `json:"mean_capacity"`
}

// Summarize computes the summary of one series. An empty series yields a
// zero summary carrying only its label.
func Summarize(s model.CellSeries) SeriesSummary {
	out := SeriesSummary{Label: s.Label, Count: s.Len()}
	if s.Len() == 0 {
		return out
	}

	volts := s.Voltages()
	temps := s.Temperatures()
	caps := s.Capacities()

	out.MinVoltage = floats.Min(volts)
	out.MaxVoltage = floats.Max(volts)
	out.MeanVoltage = model.Round(stat.Mean(volts, nil), 4)
	if len(volts) > 1 {
		out.StdVoltage = model.Round(stat.StdDev(volts, nil), 4)
	}
	out.MeanCurrent = model.Round(stat.Mean(s.Currents(), nil), 4)
	out.MeanTemperature = model.Round(stat.Mean(temps, nil), 4)
	out.MaxTemperature = floats.Max(temps)
	out.FinalCapacity = caps[len(caps)-1]
	out.MeanCapacity = model.Round(stat.Mean(caps, nil), 4)
	return out
}

// SummarizeRun summarizes every series of a run, in run order.
func SummarizeRun(run *model.Run) []SeriesSummary {
	if run == nil {
		return nil
	}
	out := make([]SeriesSummary, 0, len(run.Series))
	for _, s := range run.Series {
		out = append(out, Summarize(s))
	}
	return out
}
