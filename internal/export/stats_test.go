package export

import (
	"testing"

	"battery-sim/internal/model"
	"battery-sim/internal/simulate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceStats_MaxTempFromSeries(t *testing.T) {
	s := ReferenceStats(threeSamples())
	assert.Equal(t, 39.87, s.MaxTemp)
	assert.Equal(t, 75.31, s.Efficiency)
	assert.Equal(t, "00:40.0", s.CCChargeTime)
}

func TestDerivedStats_Waveform(t *testing.T) {
	w := simulate.NewWaveform(simulate.SeededSource(5))
	series := model.CellSeries{Label: simulate.WaveformLabel}
	for i := 0; i < simulate.WaveformSteps; i++ {
		s, err := w.Sample(i)
		require.NoError(t, err)
		series.Samples = append(series.Samples, s)
	}

	got := DerivedStats(series)
	assert.Equal(t, 0.0225, got.CCCharge)
	assert.Equal(t, got.CCCharge, got.TotalCharge)
	assert.Equal(t, 0.011389, got.TotalDischarge)
	assert.Equal(t, "00:20.0", got.CCChargeTime)
	assert.Equal(t, "00:20.0", got.CCDischargeTime)
	assert.Equal(t, 50.62, got.Efficiency)
	assert.GreaterOrEqual(t, got.MedianVoltage, 3.1)
	assert.LessOrEqual(t, got.MedianVoltage, 3.6)
	assert.GreaterOrEqual(t, got.AvgDischargeVolt, 3.1)
	assert.LessOrEqual(t, got.AvgDischargeVolt, 3.6)
	assert.Equal(t, 100, got.CapacityFade)
}

func TestParseStatistics(t *testing.T) {
	s, err := ParseStatistics("")
	require.NoError(t, err)
	assert.Equal(t, StatisticsReference, s)

	s, err = ParseStatistics("derived")
	require.NoError(t, err)
	assert.Equal(t, StatisticsDerived, s)

	_, err = ParseStatistics("mean")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
}
