package model

import (
	"fmt"
	"strings"
)

// State is the operating mode applied to every cell for the whole run.
// Keep these values stable; they appear in API payloads and config files.
type State string

const (
	StateIdle        State = "Idle"
	StateCharging    State = "Charging"
	StateDischarging State = "Discharging"
)

// ParseState accepts any casing of the three state names.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "idle":
		return StateIdle, nil
	case "charging":
		return StateCharging, nil
	case "discharging":
		return StateDischarging, nil
	default:
		return "", fmt.Errorf("%w: state %q", ErrInvalidInput, s)
	}
}

func (s State) Validate() error {
	switch s {
	case StateIdle, StateCharging, StateDischarging:
		return nil
	}
	return fmt.Errorf("%w: state %q", ErrInvalidInput, s)
}
