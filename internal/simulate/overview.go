package simulate

import (
	"fmt"
	"math/rand/v2"

	"battery-sim/internal/model"

	"gonum.org/v1/gonum/stat/distuv"
)

// CellOverview is the at-rest summary card of one configured cell.
type CellOverview struct {
	Name        string  `json:"name"`
	Voltage     float64 `json:"voltage"`
	Current     float64 `json:"current"`
	Temperature float64 `json:"temperature"`
	Capacity    float64 `json:"capacity"`
	MinVoltage  float64 `json:"min_voltage"`
	MaxVoltage  float64 `json:"max_voltage"`
}

// Overview builds one card per chemistry tag. Cells rest at nominal voltage
// with no current; the temperature is a placeholder reading in [25, 40].
func Overview(tags []string, src rand.Source) ([]CellOverview, error) {
	if len(tags) == 0 || len(tags) > model.MaxCells {
		return nil, fmt.Errorf("%w: need 1..%d cells, got %d", model.ErrInvalidInput, model.MaxCells, len(tags))
	}
	temp := distuv.Uniform{Min: waveformTempMin, Max: waveformTempMax, Src: src}

	out := make([]CellOverview, 0, len(tags))
	for i, tag := range tags {
		p, err := model.LookupChemistry(tag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", model.CellLabel(i), err)
		}
		current := 0.0
		out = append(out, CellOverview{
			Name:        fmt.Sprintf("%s (%s)", model.CellLabel(i), p.Tag),
			Voltage:     p.NominalVoltage,
			Current:     current,
			Temperature: model.Round(temp.Rand(), 1),
			Capacity:    model.Round(p.NominalVoltage*current, 2),
			MinVoltage:  p.MinVoltage,
			MaxVoltage:  p.MaxVoltage,
		})
	}
	return out, nil
}
