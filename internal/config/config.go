package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"battery-sim/internal/export"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration (YAML).
type Config struct {
	// Optional: load cells from a separate preset YAML (e.g. presets/lab.yaml).
	// Cells listed here are overlaid onto the preset cell at the same index.
	CellsFile  string           `yaml:"cells_file"`
	Simulation SimulationConfig `yaml:"simulation"`
	Cells      []CellConfig     `yaml:"cells"`
	Tasks      []model.Task     `yaml:"tasks"`
	Export     ExportConfig     `yaml:"export"`
}

type SimulationConfig struct {
	State    string        `yaml:"state"`
	Duration *int          `yaml:"duration"`
	Pace     time.Duration `yaml:"pace"`
}

type CellConfig struct {
	Chemistry   string   `yaml:"chemistry"`
	Current     *float64 `yaml:"current"`
	Temperature *float64 `yaml:"temperature"`
}

type ExportConfig struct {
	Statistics string `yaml:"statistics"`

	// StartTime is the wall-clock time of the first sample, "HH:MM:SS".
	// Empty means the run's start time.
	StartTime string `yaml:"start_time"`

	Events []export.Event `yaml:"events"`
}

// Defaults for fields a config may leave out.
const (
	DefaultDuration    = 10
	DefaultCurrent     = 0.5
	DefaultTemperature = 30.0
	DefaultChemistry   = model.ChemistryLFP
)

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.CellsFile != "" {
		cellsPath := c.CellsFile
		if !filepath.IsAbs(cellsPath) {
			// Relative to the config file first, then to cwd.
			cand := filepath.Join(filepath.Dir(path), cellsPath)
			if _, err := os.Stat(cand); err == nil {
				cellsPath = cand
			}
		}
		loaded, err := loadCellsFile(cellsPath)
		if err != nil {
			return nil, err
		}
		c.Cells = MergeCells(loaded, c.Cells)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation.State == "" {
		c.Simulation.State = string(model.StateIdle)
	}
	if c.Simulation.Duration == nil {
		d := DefaultDuration
		c.Simulation.Duration = &d
	}
	for i := range c.Cells {
		cell := &c.Cells[i]
		if cell.Chemistry == "" {
			cell.Chemistry = string(DefaultChemistry)
		}
		if cell.Current == nil {
			v := DefaultCurrent
			cell.Current = &v
		}
		if cell.Temperature == nil {
			v := DefaultTemperature
			cell.Temperature = &v
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if n := len(c.Cells); n < 1 || n > model.MaxCells {
		return fmt.Errorf("%w: cells must list 1..%d entries, got %d", model.ErrInvalidInput, model.MaxCells, n)
	}
	if _, err := c.RunRequest(); err != nil {
		return fmt.Errorf("run config invalid: %w", err)
	}
	if _, err := c.ExportOptions(); err != nil {
		return fmt.Errorf("export config invalid: %w", err)
	}
	if _, err := c.StartTime(time.Time{}); err != nil {
		return fmt.Errorf("export config invalid: %w", err)
	}
	return nil
}

// RunRequest converts the config into an engine request.
func (c *Config) RunRequest() (simulate.RunRequest, error) {
	state, err := model.ParseState(c.Simulation.State)
	if err != nil {
		return simulate.RunRequest{}, err
	}
	duration := DefaultDuration
	if c.Simulation.Duration != nil {
		duration = *c.Simulation.Duration
	}
	cells := make([]model.CellInput, 0, len(c.Cells))
	for i, cc := range c.Cells {
		cell, err := cc.ToModel()
		if err != nil {
			return simulate.RunRequest{}, fmt.Errorf("%s: %w", model.CellLabel(i), err)
		}
		cells = append(cells, cell)
	}
	req := simulate.RunRequest{Cells: cells, State: state, Duration: duration, Tasks: c.Tasks}
	if err := req.Validate(); err != nil {
		return simulate.RunRequest{}, err
	}
	return req, nil
}

func (c *Config) ExportOptions() (export.Options, error) {
	stats, err := export.ParseStatistics(c.Export.Statistics)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{Statistics: stats}, nil
}

// Events returns the configured operation log, or the default one.
func (c *Config) Events() []export.Event {
	if len(c.Export.Events) == 0 {
		return export.DefaultEvents()
	}
	return c.Export.Events
}

// StartTime resolves export.start_time on the date of fallback. With no
// start_time configured, fallback is returned as-is.
func (c *Config) StartTime(fallback time.Time) (time.Time, error) {
	return ParseClock(c.Export.StartTime, fallback)
}

// ParseClock parses "HH:MM:SS" onto the date of day. An empty string returns day.
func ParseClock(s string, day time.Time) (time.Time, error) {
	if s == "" {
		return day, nil
	}
	t, err := time.Parse(time.TimeOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start_time %q must be HH:MM:SS", model.ErrInvalidInput, s)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
}

// ToModel resolves the chemistry and fills unset values with defaults.
func (cc CellConfig) ToModel() (model.CellInput, error) {
	chem := cc.Chemistry
	if chem == "" {
		chem = string(DefaultChemistry)
	}
	cur, temp := DefaultCurrent, DefaultTemperature
	if cc.Current != nil {
		cur = *cc.Current
	}
	if cc.Temperature != nil {
		temp = *cc.Temperature
	}
	return model.NewCellInput(chem, cur, temp)
}

type cellsFileWrapper struct {
	Cells []CellConfig `yaml:"cells"`
}

func loadCellsFile(path string) ([]CellConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w cellsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Cells, nil
}

// MergeCells overlays override onto base index by index. Set fields of an
// override cell replace the preset's; extra override cells are appended.
func MergeCells(base, override []CellConfig) []CellConfig {
	n := max(len(base), len(override))
	out := make([]CellConfig, n)
	copy(out, base)
	for i, o := range override {
		out[i] = MergeCell(out[i], o)
	}
	return out
}

func MergeCell(base, override CellConfig) CellConfig {
	out := base
	if override.Chemistry != "" {
		out.Chemistry = override.Chemistry
	}
	if override.Current != nil {
		out.Current = override.Current
	}
	if override.Temperature != nil {
		out.Temperature = override.Temperature
	}
	return out
}
