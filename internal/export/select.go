package export

import (
	"fmt"

	"battery-sim/internal/model"
)

// MergedCell selects every series of a run, merged into one table.
const MergedCell = "all"

// SelectSeries picks the series of run to export: the first one when cell
// is empty, the one labelled cell, or all of them merged for MergedCell.
func SelectSeries(run *model.Run, cell string) (model.CellSeries, error) {
	switch cell {
	case "":
		if len(run.Series) == 0 {
			return model.CellSeries{}, fmt.Errorf("%w: run has no series", model.ErrInvalidInput)
		}
		return run.Series[0], nil
	case MergedCell:
		return Merge(run.Series...), nil
	}
	s, ok := run.SeriesByLabel(cell)
	if !ok {
		return model.CellSeries{}, fmt.Errorf("%w: run has no series %q", model.ErrInvalidInput, cell)
	}
	return s, nil
}
