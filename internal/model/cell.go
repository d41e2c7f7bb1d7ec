package model

import "fmt"

// MaxCells is the largest number of cells a single run accepts.
const MaxCells = 10

// CellInput is the per-cell configuration for one run.
// Units:
// - Current: A, >= 0
// - Temperature: °C, >= 0
type CellInput struct {
	Profile     ChemistryProfile `json:"profile" msgpack:"profile"`
	Current     float64          `json:"current" msgpack:"current"`
	Temperature float64          `json:"temperature" msgpack:"temperature"`
}

// NewCellInput resolves the chemistry tag and validates the inputs.
func NewCellInput(chemistry string, current, temperature float64) (CellInput, error) {
	p, err := LookupChemistry(chemistry)
	if err != nil {
		return CellInput{}, err
	}
	c := CellInput{Profile: p, Current: current, Temperature: temperature}
	if err := c.Validate(); err != nil {
		return CellInput{}, err
	}
	return c, nil
}

func (c CellInput) Validate() error {
	if c.Current < 0 {
		return fmt.Errorf("%w: current must be >= 0, got %v", ErrInvalidInput, c.Current)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("%w: temperature must be >= 0, got %v", ErrInvalidInput, c.Temperature)
	}
	if c.Profile.Tag == "" {
		return fmt.Errorf("%w: cell has no chemistry profile", ErrInvalidInput)
	}
	return nil
}

// CellLabel is the display label of the i-th cell (0-based): "Cell 1", "Cell 2", ...
func CellLabel(i int) string {
	return fmt.Sprintf("Cell %d", i+1)
}
