package analysis

import (
	"testing"

	"battery-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := model.CellSeries{
		Label: "Cell 1",
		Samples: []model.Sample{
			{Step: 0, Voltage: 2.8, Current: 0.5, Temperature: 30, Capacity: 1.4},
			{Step: 1, Voltage: 3.2, Current: 0.5, Temperature: 30, Capacity: 1.6},
			{Step: 2, Voltage: 3.6, Current: 0.5, Temperature: 30, Capacity: 1.8},
		},
	}
	got := Summarize(s)
	assert.Equal(t, "Cell 1", got.Label)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 2.8, got.MinVoltage)
	assert.Equal(t, 3.6, got.MaxVoltage)
	assert.Equal(t, 3.2, got.MeanVoltage)
	assert.Equal(t, 0.4, got.StdVoltage)
	assert.Equal(t, 0.5, got.MeanCurrent)
	assert.Equal(t, 30.0, got.MeanTemperature)
	assert.Equal(t, 30.0, got.MaxTemperature)
	assert.Equal(t, 1.8, got.FinalCapacity)
	assert.Equal(t, 1.6, got.MeanCapacity)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(model.CellSeries{Label: "empty"})
	assert.Equal(t, SeriesSummary{Label: "empty"}, got)
}

func TestSummarizeRun(t *testing.T) {
	assert.Nil(t, SummarizeRun(nil))

	run := &model.Run{Series: []model.CellSeries{
		{Label: "Cell 1", Samples: []model.Sample{{Voltage: 3.2}}},
		{Label: "Cell 2", Samples: []model.Sample{{Voltage: 3.6}}},
	}}
	got := SummarizeRun(run)
	require.Len(t, got, 2)
	assert.Equal(t, "Cell 1", got[0].Label)
	assert.Equal(t, 3.6, got[1].MaxVoltage)
	assert.Zero(t, got[1].StdVoltage)
}
