package model

import (
	"errors"
	"fmt"
	"strings"
)

// TaskType is a step type of the cycler task configuration.
type TaskType string

const (
	TaskCCCV TaskType = "CC_CV" // constant-current then constant-voltage charge
	TaskIdle TaskType = "IDLE"  // rest
	TaskCCCD TaskType = "CC_CD" // constant-current discharge
)

// MaxTasks bounds the task list of a single run.
const MaxTasks = 5

// Task is one configured step. Which fields are meaningful depends on Type:
// - CC_CV: CCValue, CVVoltage, Current, Capacity, TimeSeconds
// - IDLE: TimeSeconds
// - CC_CD: CCValue, Voltage, Capacity, TimeSeconds
type Task struct {
	Type        TaskType `json:"task_type" yaml:"task_type" msgpack:"task_type"`
	CCValue     string   `json:"cc_cp,omitempty" yaml:"cc_cp" msgpack:"cc_cp,omitempty"`
	CVVoltage   float64  `json:"cv_voltage,omitempty" yaml:"cv_voltage" msgpack:"cv_voltage,omitempty"`
	Voltage     float64  `json:"voltage,omitempty" yaml:"voltage" msgpack:"voltage,omitempty"`
	Current     float64  `json:"current,omitempty" yaml:"current" msgpack:"current,omitempty"`
	Capacity    float64  `json:"capacity,omitempty" yaml:"capacity" msgpack:"capacity,omitempty"`
	TimeSeconds int      `json:"time_seconds" yaml:"time_seconds" msgpack:"time_seconds"`
}

// ParseTaskType accepts "cc_cv", "CC_CV", "idle", ...
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TaskCCCV, TaskIdle, TaskCCCD:
		return t, nil
	}
	return "", fmt.Errorf("%w: task type %q", ErrInvalidInput, s)
}

// Normalize drops the fields that do not apply to the task type.
func (t Task) Normalize() Task {
	if typ, err := ParseTaskType(string(t.Type)); err == nil {
		t.Type = typ
	}
	out := Task{Type: t.Type, TimeSeconds: t.TimeSeconds}
	switch t.Type {
	case TaskCCCV:
		out.CCValue = t.CCValue
		out.CVVoltage = t.CVVoltage
		out.Current = t.Current
		out.Capacity = t.Capacity
	case TaskCCCD:
		out.CCValue = t.CCValue
		out.Voltage = t.Voltage
		out.Capacity = t.Capacity
	}
	return out
}

func (t Task) Validate() error {
	if _, err := ParseTaskType(string(t.Type)); err != nil {
		return err
	}
	if t.TimeSeconds < 1 {
		return fmt.Errorf("%w: %s time_seconds must be >= 1", ErrInvalidInput, t.Type)
	}
	return nil
}

// ValidateTasks checks the list as a whole. An empty list is allowed.
func ValidateTasks(tasks []Task) error {
	if len(tasks) > MaxTasks {
		return fmt.Errorf("%w: at most %d tasks, got %d", ErrInvalidInput, MaxTasks, len(tasks))
	}
	var errs []error
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("task_%d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// TaskKey is the display key of the i-th task (0-based): "task_1", ...
func TaskKey(i int) string {
	return fmt.Sprintf("task_%d", i+1)
}
