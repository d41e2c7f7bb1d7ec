package model

// Sample is one synthesized reading.
type Sample struct {
	Step        int     `json:"step" msgpack:"step"`
	Voltage     float64 `json:"voltage" msgpack:"voltage"`
	Current     float64 `json:"current" msgpack:"current"`
	Temperature float64 `json:"temperature" msgpack:"temperature"`
	Capacity    float64 `json:"capacity" msgpack:"capacity"`
}

// CellSeries is the ordered sample sequence of one cell for one run.
type CellSeries struct {
	Label   string   `json:"label" msgpack:"label"`
	Samples []Sample `json:"samples" msgpack:"samples"`
}

func (s CellSeries) Len() int { return len(s.Samples) }

// Voltages, Currents, Temperatures and Capacities project one column of the series.
func (s CellSeries) Voltages() []float64 {
	return s.column(func(x Sample) float64 { return x.Voltage })
}

func (s CellSeries) Currents() []float64 {
	return s.column(func(x Sample) float64 { return x.Current })
}

func (s CellSeries) Temperatures() []float64 {
	return s.column(func(x Sample) float64 { return x.Temperature })
}

func (s CellSeries) Capacities() []float64 {
	return s.column(func(x Sample) float64 { return x.Capacity })
}

func (s CellSeries) column(f func(Sample) float64) []float64 {
	out := make([]float64, len(s.Samples))
	for i, x := range s.Samples {
		out[i] = f(x)
	}
	return out
}
