package models

import (
	"battery-sim/internal/analysis"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"
)

// ChemistriesResponse lists the supported chemistry profiles
type ChemistriesResponse struct {
	Chemistries []model.ChemistryProfile `json:"chemistries"`
}

// TaskTypeInfo describes a task step type
type TaskTypeInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a task parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// TaskTypesResponse lists the task step types
type TaskTypesResponse struct {
	MaxTasks  int            `json:"max_tasks"`
	TaskTypes []TaskTypeInfo `json:"task_types"`
}

// AnalysisResponse holds per-series summary statistics of a run
type AnalysisResponse struct {
	RunID     string                   `json:"run_id"`
	Mode      model.Mode               `json:"mode"`
	Summaries []analysis.SeriesSummary `json:"summaries"`
	Charts    []string                 `json:"charts"`
}

// OverviewResponse is the cells overview table
type OverviewResponse struct {
	Cells []simulate.CellOverview `json:"cells"`
}

// StreamFrame is one websocket message of a live run
type StreamFrame struct {
	Type   string          `json:"type"` // "sample", "completed", "error"
	Cell   int             `json:"cell,omitempty"`
	Label  string          `json:"label,omitempty"`
	Steps  int             `json:"steps,omitempty"`
	Sample *model.Sample   `json:"sample,omitempty"`
	Gauge  *simulate.Gauge `json:"gauge,omitempty"`
	RunID  string          `json:"run_id,omitempty"`
	Error  *ErrorDetail    `json:"error,omitempty"`
}

// Stream frame types
const (
	FrameSample    = "sample"
	FrameCompleted = "completed"
	FrameError     = "error"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
