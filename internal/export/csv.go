package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"battery-sim/internal/model"
	"battery-sim/internal/simulate"
)

// Download metadata of the export blob.
const (
	FileName    = "battery_simulation.csv"
	ContentType = "text/csv"
)

// Section names, in output order.
const (
	SectionTestData    = "Test Data"
	SectionStatistics  = "Cycle Statistics"
	SectionOperations  = "Operation Log"
	SectionProcessInfo = "Process Information"
)

// Options tunes the export. The zero value reproduces the reference layout.
type Options struct {
	Statistics Statistics
}

var testDataHeader = []string{
	"Sample ID",
	"Sampling Time",
	"Termination",
	"Actual Time",
	"Voltage (V)",
	"Current (A)",
	"Capacity (Ah)",
	"Energy (Wh)",
	"Step Type",
	"Cycle Count",
	"Step Number",
	"DC Resistance",
	"Temperature (°C)",
}

var operationHeader = []string{"Timestamp", "Sample ID", "Event Type"}

var processHeader = []string{
	"Step Type", "Constant Type", "Voltage Limit", "Current Limit",
	"Capacity Limit", "Time Limit", "Temp Limit", "Delta V Limit",
	"Target Cap", "Step Num", "Jump Count",
}

// processRow is the fixed CC-CV charge step configuration.
var processRow = []string{
	"CC-CV Charge", "Constant Voltage", "5", "3.65", "3.65",
	"6", "00:40.0", "0.03", "0", "0", "0",
}

// Format renders the four-section export of series as a string.
func Format(series model.CellSeries, start time.Time, events []Event, opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, series, start, events, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write renders the export to w. Sample i (0-based) is stamped start+i
// seconds and paired with the scripted step current; the cycle statistics
// and process rows are fixed unless opts asks for derived statistics.
func Write(w io.Writer, series model.CellSeries, start time.Time, events []Event, opts Options) error {
	if series.Len() == 0 {
		return fmt.Errorf("%w: no samples to export", model.ErrInvalidInput)
	}

	stats := ReferenceStats(series)
	switch opts.Statistics {
	case "", StatisticsReference:
	case StatisticsDerived:
		stats = DerivedStats(series)
	default:
		return fmt.Errorf("%w: statistics %q", model.ErrInvalidInput, opts.Statistics)
	}

	if err := writeSection(w, SectionTestData, testDataHeader, testDataRows(series, start), false); err != nil {
		return err
	}
	if err := writeSection(w, SectionStatistics, statsHeader, [][]string{stats.row()}, true); err != nil {
		return err
	}
	if err := writeSection(w, SectionOperations, operationHeader, eventRows(events), true); err != nil {
		return err
	}
	return writeSection(w, SectionProcessInfo, processHeader, [][]string{processRow}, true)
}

func writeSection(w io.Writer, name string, header []string, rows [][]string, leadingBlank bool) error {
	marker := "### " + name + " ###\n"
	if leadingBlank {
		marker = "\n" + marker
	}
	if _, err := io.WriteString(w, marker); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func testDataRows(series model.CellSeries, start time.Time) [][]string {
	rows := make([][]string, 0, series.Len())
	for i, s := range series.Samples {
		id := i + 1
		rows = append(rows, []string{
			fmtInt(id),
			"00:30.0",
			"Step Jumped",
			fmtClock(start.Add(time.Duration(i) * time.Second)),
			fmtFloat(s.Voltage),
			fmtFloat(simulate.StepCurrent(i)),
			fmtFloat(model.Round(s.Voltage*0.0002, 6)),
			fmtFloat(model.Round(s.Voltage*0.0006, 6)),
			"Constant Voltage",
			fmtInt(1),
			fmtInt(id),
			fmtInt(0),
			fmtFloat(s.Temperature),
		})
	}
	return rows
}

func eventRows(events []Event) [][]string {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{ev.Timestamp, fmtInt(ev.SampleID), ev.Description})
	}
	return rows
}

// Merge concatenates several series into one, renumbering steps so the merged
// export reads as a single channel.
func Merge(series ...model.CellSeries) model.CellSeries {
	labels := make([]string, 0, len(series))
	var samples []model.Sample
	for _, s := range series {
		labels = append(labels, s.Label)
		for _, x := range s.Samples {
			x.Step = len(samples)
			samples = append(samples, x)
		}
	}
	return model.CellSeries{Label: strings.Join(labels, " + "), Samples: samples}
}
