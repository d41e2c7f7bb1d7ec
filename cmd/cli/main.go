package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"battery-sim/internal/analysis"
	"battery-sim/internal/chart"
	"battery-sim/internal/config"
	"battery-sim/internal/export"
	"battery-sim/internal/logger"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"
)

var version = "<not set>"

type ExportFlags struct {
	Out        string `arg:"-o,--out" default:"results/battery_simulation.csv" help:"output CSV path"`
	Cell       string `arg:"--cell" help:"series to export (\"Cell 2\", \"all\"); default first"`
	StartTime  string `arg:"--start-time" help:"clock time of the first sample, HH:MM:SS"`
	Statistics string `arg:"--statistics" help:"cycle statistics: reference or derived"`
	Charts     string `arg:"--charts" help:"directory to write PNG charts into"`
}

type runCmd struct {
	Config string `arg:"-c,--config,required" help:"path to YAML run config"`
	ExportFlags
}

type waveformCmd struct {
	Seed *uint64 `arg:"--seed" help:"seed for a reproducible draw"`
	ExportFlags
}

type overviewCmd struct {
	Chemistries []string `arg:"positional,required" help:"chemistry of each cell, in order (LFP, NMC)"`
	Seed        *uint64  `arg:"--seed" help:"seed for the temperature draw"`
}

type Args struct {
	Run      *runCmd      `arg:"subcommand:run" help:"run a linear simulation from a YAML config and export it"`
	Waveform *waveformCmd `arg:"subcommand:waveform" help:"run the scripted 40-step waveform and export it"`
	Overview *overviewCmd `arg:"subcommand:overview" help:"print the cells overview table"`
	LogLevel string       `arg:"--log-level,env:LOG_LEVEL" default:"info" help:"debug, info, warn, error"`
}

func (Args) Version() string {
	return version
}

func (Args) Description() string {
	return "battery-sim generates battery charge/discharge time series and cycler-style CSV exports."
}

func main() {
	var args Args
	p := arg.MustParse(&args)

	log := logger.New(logger.Config{Level: args.LogLevel, Pretty: true, Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case args.Run != nil:
		err = cmdRun(ctx, log, args.Run)
	case args.Waveform != nil:
		err = cmdWaveform(ctx, log, args.Waveform)
	case args.Overview != nil:
		err = cmdOverview(args.Overview)
	default:
		p.WriteHelp(os.Stdout)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("battery-sim failed")
	}
}

func cmdRun(ctx context.Context, log zerolog.Logger, a *runCmd) error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	req, err := cfg.RunRequest()
	if err != nil {
		return err
	}

	engine := simulate.New()
	run, err := engine.Run(ctx, req)
	if err != nil {
		return err
	}
	log.Info().
		Str("state", string(run.State)).
		Int("cells", len(run.Series)).
		Int("duration", run.Duration).
		Msg("run completed")

	// Flags override the export section of the config.
	ea := a.ExportFlags
	if ea.StartTime == "" {
		ea.StartTime = cfg.Export.StartTime
	}
	if ea.Statistics == "" {
		ea.Statistics = cfg.Export.Statistics
	}
	return writeOutputs(log, run, ea, cfg.Events())
}

func cmdWaveform(ctx context.Context, log zerolog.Logger, a *waveformCmd) error {
	engine := simulate.New()
	var src = simulate.SeededSource(uint64(time.Now().UnixNano()))
	if a.Seed != nil {
		src = simulate.SeededSource(*a.Seed)
	}
	run, err := engine.RunWaveform(ctx, src)
	if err != nil {
		return err
	}
	log.Info().Int("samples", run.Series[0].Len()).Msg("waveform completed")
	return writeOutputs(log, run, a.ExportFlags, export.DefaultEvents())
}

func cmdOverview(a *overviewCmd) error {
	seed := uint64(time.Now().UnixNano())
	if a.Seed != nil {
		seed = *a.Seed
	}
	cells, err := simulate.Overview(a.Chemistries, simulate.SeededSource(seed))
	if err != nil {
		return err
	}
	fmt.Printf("%-14s %-8s %-8s %-10s %-9s %-6s %-6s\n", "cell", "voltage", "current", "temp(°C)", "capacity", "min", "max")
	for _, c := range cells {
		fmt.Printf("%-14s %-8.2f %-8.1f %-10.1f %-9.2f %-6.2f %-6.2f\n",
			c.Name, c.Voltage, c.Current, c.Temperature, c.Capacity, c.MinVoltage, c.MaxVoltage)
	}
	return nil
}

func writeOutputs(log zerolog.Logger, run *model.Run, a ExportFlags, events []export.Event) error {
	series, err := export.SelectSeries(run, a.Cell)
	if err != nil {
		return err
	}
	start, err := config.ParseClock(a.StartTime, run.StartedAt)
	if err != nil {
		return err
	}
	stats, err := export.ParseStatistics(a.Statistics)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(a.Out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(a.Out)
	if err != nil {
		return err
	}
	if err := export.Write(f, series, start, events, export.Options{Statistics: stats}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", a.Out).Int("rows", series.Len()).Msg("export written")

	for _, s := range analysis.SummarizeRun(run) {
		fmt.Printf("%-10s V min/mean/max=%.2f/%.4f/%.2f  T mean=%.2f  final capacity=%.2f\n",
			s.Label, s.MinVoltage, s.MeanVoltage, s.MaxVoltage, s.MeanTemperature, s.FinalCapacity)
	}

	if a.Charts == "" {
		return nil
	}
	if err := os.MkdirAll(a.Charts, 0o755); err != nil {
		return err
	}
	for _, kind := range chart.Kinds() {
		path := filepath.Join(a.Charts, string(kind)+".png")
		if err := writeChart(path, kind, run.Series); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("chart written")
	}
	return nil
}

func writeChart(path string, kind chart.Kind, series []model.CellSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.WritePNG(f, kind, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
