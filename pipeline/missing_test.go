package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

func TestDropMissing_Scenario(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	in := scenarioTable(t)

	out := DropMissing(in, logger)

	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, []string{"A", "B", "Category"}, out.Names())
	assert.Equal(t, []float64{1, 4}, out.Column(0).Values)
	assert.Equal(t, []float64{5, 8}, out.Column(1).Values)
	assert.Equal(t, []string{"X", "Z"}, out.Column(2).Labels)
	assert.Zero(t, out.MissingCells())

	// 入力は変更されない
	assert.Equal(t, 4, in.NumRows())

	assert.True(t, logger.ContainsMessage("original shape"))
	assert.True(t, logger.ContainsField(log.RowsDroppedKey, float64(2)))
	assert.True(t, logger.ContainsField(log.SamplesKey, float64(4)))
}

func TestDropMissing_AllMissingColumnDroppedFirst(t *testing.T) {
	nan := math.NaN()
	in, err := dataset.New(
		dataset.NewNumericColumn("A", []float64{1, 2, 3}),
		dataset.NewNumericColumn("empty", []float64{nan, nan, nan}),
		dataset.NewCategoricalColumn("C", []string{"a", "", "c"}, []bool{false, true, false}),
	)
	require.NoError(t, err)

	out := DropMissing(in, nil)

	assert.Equal(t, []string{"A", "C"}, out.Names())
	assert.Equal(t, []float64{1, 3}, out.Column(0).Values)
	assert.Equal(t, in.Schema().Version+1, out.Schema().Version)
}

func TestDropMissing_Monotonic(t *testing.T) {
	nan := math.NaN()
	rows := [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}}

	dropped := make([]int, 0, len(rows)+1)
	for gaps := 0; gaps <= len(rows); gaps++ {
		data := make([][]float64, len(rows))
		for i, r := range rows {
			data[i] = append([]float64(nil), r...)
			if i < gaps {
				data[i][i%2] = nan
			}
		}
		in := numericTable(t, []string{"x", "y"}, data)
		out := DropMissing(in, nil)
		assert.Zero(t, out.MissingCells())
		dropped = append(dropped, in.NumRows()-out.NumRows())
	}

	for i := 1; i < len(dropped); i++ {
		assert.GreaterOrEqual(t, dropped[i], dropped[i-1])
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, dropped)
}
