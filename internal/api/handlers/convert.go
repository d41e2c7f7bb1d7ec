package handlers

import (
	"fmt"

	"battery-sim/internal/api/models"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"
)

// buildRunRequest resolves a request body into an engine request. Nothing is
// generated here; every input error surfaces before the run starts.
func buildRunRequest(req models.RunRequest) (simulate.RunRequest, error) {
	if n := len(req.Cells); n < 1 || n > model.MaxCells {
		return simulate.RunRequest{}, fmt.Errorf("%w: need 1..%d cells, got %d", model.ErrInvalidInput, model.MaxCells, n)
	}
	state, err := model.ParseState(req.State)
	if err != nil {
		return simulate.RunRequest{}, err
	}
	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}

	cells := make([]model.CellInput, 0, len(req.Cells))
	for i, cr := range req.Cells {
		cell, err := model.NewCellInput(cr.Chemistry, cr.Current, cr.Temperature)
		if err != nil {
			return simulate.RunRequest{}, fmt.Errorf("%s: %w", model.CellLabel(i), err)
		}
		cells = append(cells, cell)
	}

	out := simulate.RunRequest{Cells: cells, State: state, Duration: duration, Tasks: req.Tasks}
	if err := out.Validate(); err != nil {
		return simulate.RunRequest{}, err
	}
	return out, nil
}
