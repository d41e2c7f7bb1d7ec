// Package chart renders the analysis charts of a run as images.
package chart

import (
	"fmt"
	"io"

	"battery-sim/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Kind selects one of the analysis charts.
type Kind string

const (
	KindVoltageCurrent Kind = "voltage-current"
	KindTemperature    Kind = "temperature"
	KindCapacity       Kind = "capacity"
)

// Kinds lists every chart, in panel order.
func Kinds() []Kind {
	return []Kind{KindVoltageCurrent, KindTemperature, KindCapacity}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: chart %q", model.ErrInvalidInput, s)
}

// Default image size.
const (
	Width  = 10 * vg.Inch
	Height = 4 * vg.Inch
)

// Build assembles the plot of kind for every series of a run.
func Build(kind Kind, series []model.CellSeries) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Time (s)"
	p.Legend.Top = true

	var lines []interface{}
	switch kind {
	case KindVoltageCurrent:
		p.Title.Text = "Voltage and Current Over Time"
		p.Y.Label.Text = "Values"
		for _, s := range series {
			lines = append(lines,
				s.Label+" Voltage", points(s, func(x model.Sample) float64 { return x.Voltage }),
				s.Label+" Current", points(s, func(x model.Sample) float64 { return x.Current }),
			)
		}
	case KindTemperature:
		p.Title.Text = "Temperature Over Time"
		p.Y.Label.Text = "Temp (°C)"
		for _, s := range series {
			lines = append(lines, s.Label, points(s, func(x model.Sample) float64 { return x.Temperature }))
		}
	case KindCapacity:
		p.Title.Text = "Capacity Over Time"
		p.Y.Label.Text = "Capacity (Wh)"
		for _, s := range series {
			lines = append(lines, s.Label, points(s, func(x model.Sample) float64 { return x.Capacity }))
		}
	default:
		return nil, fmt.Errorf("%w: chart %q", model.ErrInvalidInput, kind)
	}

	if len(lines) > 0 {
		if err := plotutil.AddLinePoints(p, lines...); err != nil {
			return nil, fmt.Errorf("chart %s: %w", kind, err)
		}
	}
	return p, nil
}

// WritePNG renders the chart of kind as PNG into w.
func WritePNG(w io.Writer, kind Kind, series []model.CellSeries) error {
	p, err := Build(kind, series)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("chart %s: %w", kind, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func points(s model.CellSeries, f func(model.Sample) float64) plotter.XYs {
	pts := make(plotter.XYs, len(s.Samples))
	for i, x := range s.Samples {
		pts[i].X = float64(x.Step)
		pts[i].Y = f(x)
	}
	return pts
}
