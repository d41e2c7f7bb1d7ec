package simulate

import "battery-sim/internal/model"

// Synthesizer produces the samples of one series, one step at a time.
// The engine calls Sample for step 0..Steps()-1 in order.
type Synthesizer interface {
	Name() string
	Steps() int
	Sample(step int) (model.Sample, error)
}
