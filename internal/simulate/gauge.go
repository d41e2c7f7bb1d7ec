package simulate

import (
	"fmt"
	"math"

	"battery-sim/internal/model"
)

// Gauge is the fill level of the battery widget for one sample.
type Gauge struct {
	Fill    float64 `json:"fill"`    // (voltage - min) / (max - min)
	Percent int     `json:"percent"` // Fill * 100, rounded half to even
	Label   string  `json:"label"`
}

// NewGauge reads "N% Charged" while charging and "N% Remaining" otherwise.
func NewGauge(state model.State, profile model.ChemistryProfile, voltage float64) Gauge {
	fill := 0.0
	if span := profile.Span(); span > 0 {
		fill = (voltage - profile.MinVoltage) / span
	}
	pct := int(math.RoundToEven(fill * 100))
	label := fmt.Sprintf("%d%% Remaining", pct)
	if state == model.StateCharging {
		label = fmt.Sprintf("%d%% Charged", pct)
	}
	return Gauge{Fill: fill, Percent: pct, Label: label}
}
