package models

import (
	"battery-sim/internal/export"
	"battery-sim/internal/model"
)

// RunRequest represents the request body for starting a linear run
type RunRequest struct {
	State    string        `json:"state" binding:"required"` // Idle, Charging, Discharging
	Duration *int          `json:"duration" binding:"required"`
	Cells    []CellRequest `json:"cells" binding:"required"`
	Tasks    []model.Task  `json:"tasks,omitempty"`
}

// CellRequest configures one cell of a run
type CellRequest struct {
	Chemistry   string  `json:"chemistry" binding:"required"` // LFP, NMC
	Current     float64 `json:"current"`
	Temperature float64 `json:"temperature"`
}

// WaveformRequest starts a scripted waveform run. Without a seed the draw
// is not reproducible.
type WaveformRequest struct {
	Seed *uint64 `json:"seed,omitempty"`
}

// ExportRequest selects what goes into the CSV export
type ExportRequest struct {
	// Cell is a series label ("Cell 1", "Waveform"). Empty picks the first
	// series; "all" merges every series into one table.
	Cell       string `json:"cell,omitempty" form:"cell"`
	StartTime  string `json:"start_time,omitempty" form:"start_time"` // HH:MM:SS, default run start
	Statistics string `json:"statistics,omitempty" form:"statistics"` // reference, derived

	// Events replaces the default operation log. An explicit empty list
	// exports the log header only.
	Events []export.Event `json:"events" form:"-"`
}

// OverviewRequest lists the chemistry of each cell, in order
type OverviewRequest struct {
	Chemistries []string `json:"chemistries" binding:"required"`
	Seed        *uint64  `json:"seed,omitempty"`
}

// StreamRequest is the first websocket message of a live run. Mode selects
// the synthesizer; Run is required for linear runs.
type StreamRequest struct {
	Mode string      `json:"mode"` // linear (default), waveform
	Run  *RunRequest `json:"run,omitempty"`
	Seed *uint64     `json:"seed,omitempty"`
}
