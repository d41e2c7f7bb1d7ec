package model

import "time"

// Mode names the synthesizer that produced a run.
type Mode string

const (
	ModeLinear   Mode = "linear"
	ModeWaveform Mode = "waveform"
)

// Run is the result of one "start" trigger. A new trigger produces a new Run;
// nothing is carried over from previous runs.
type Run struct {
	ID        string       `json:"id" msgpack:"id"`
	Mode      Mode         `json:"mode" msgpack:"mode"`
	State     State        `json:"state,omitempty" msgpack:"state,omitempty"`
	Duration  int          `json:"duration" msgpack:"duration"`
	StartedAt time.Time    `json:"started_at" msgpack:"started_at"`
	Cells     []CellInput  `json:"cells,omitempty" msgpack:"cells,omitempty"`
	Tasks     []Task       `json:"tasks,omitempty" msgpack:"tasks,omitempty"`
	Series    []CellSeries `json:"series" msgpack:"series"`
}

// SeriesByLabel returns the series with the given label.
func (r *Run) SeriesByLabel(label string) (CellSeries, bool) {
	for _, s := range r.Series {
		if s.Label == label {
			return s, true
		}
	}
	return CellSeries{}, false
}
