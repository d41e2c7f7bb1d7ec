package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"battery-sim/internal/config"
	"battery-sim/internal/logger"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"

	"github.com/alexflint/go-arg"
)

// Demo:
// - Build a run from a YAML config, or from flags when none is given
// - Drive it live, one paced sample per line with the battery gauge
// - Print the final series lengths
type Args struct {
	Config      string        `arg:"-c,--config" help:"path to YAML run config (optional)"`
	State       string        `arg:"--state" default:"Charging" help:"Idle, Charging or Discharging"`
	Duration    int           `arg:"-d,--duration" default:"10" help:"run length in seconds"`
	Chemistry   string        `arg:"--chemistry" default:"LFP" help:"chemistry of every cell"`
	Cells       int           `arg:"-n,--cells" default:"2" help:"number of cells"`
	Current     float64       `arg:"--current" default:"0.5" help:"cell current (A)"`
	Temperature float64       `arg:"--temperature" default:"30" help:"cell temperature (°C)"`
	Pace        time.Duration `arg:"--pace" default:"100ms" help:"delay between samples"`
}

const gaugeWidth = 20

func main() {
	var args Args
	arg.MustParse(&args)

	log := logger.New(logger.Config{Level: "info", Pretty: true, Out: os.Stderr})

	req, pace, err := buildRequest(args)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid demo input")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := simulate.New()
	engine.Pace = pace
	engine.OnSample = func(ev simulate.SampleEvent) error {
		if ev.Sample.Step == 0 {
			fmt.Printf("\n%s (%s)\n", ev.Label, req.Cells[ev.Cell].Profile.Tag)
		}
		s := ev.Sample
		fmt.Printf("  t=%3ds  V=%-5.2f I=%-5.2f T=%-6.2f cap=%-6.2f %s\n",
			s.Step, s.Voltage, s.Current, s.Temperature, s.Capacity, bar(ev.Gauge))
		return nil
	}

	fmt.Printf("State=%s Duration=%ds Cells=%d\n", req.State, req.Duration, len(req.Cells))
	run, err := engine.Run(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("demo run stopped")
	}

	fmt.Println()
	for _, s := range run.Series {
		fmt.Printf("%s: %d samples\n", s.Label, s.Len())
	}
}

func buildRequest(args Args) (simulate.RunRequest, time.Duration, error) {
	if args.Config != "" {
		cfg, err := config.Load(args.Config)
		if err != nil {
			return simulate.RunRequest{}, 0, err
		}
		req, err := cfg.RunRequest()
		pace := args.Pace
		if cfg.Simulation.Pace > 0 {
			pace = cfg.Simulation.Pace
		}
		return req, pace, err
	}

	if args.Cells < 1 || args.Cells > model.MaxCells {
		return simulate.RunRequest{}, 0, fmt.Errorf("%w: cells must be 1..%d", model.ErrInvalidInput, model.MaxCells)
	}
	state, err := model.ParseState(args.State)
	if err != nil {
		return simulate.RunRequest{}, 0, err
	}
	cell, err := model.NewCellInput(args.Chemistry, args.Current, args.Temperature)
	if err != nil {
		return simulate.RunRequest{}, 0, err
	}
	cells := make([]model.CellInput, args.Cells)
	for i := range cells {
		cells[i] = cell
	}
	return simulate.RunRequest{Cells: cells, State: state, Duration: args.Duration}, args.Pace, nil
}

// bar renders the gauge as a fixed-width text meter.
func bar(g *simulate.Gauge) string {
	if g == nil {
		return ""
	}
	n := int(g.Fill*gaugeWidth + 0.5)
	n = max(0, min(gaugeWidth, n))
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", gaugeWidth-n) + "] " + g.Label
}
