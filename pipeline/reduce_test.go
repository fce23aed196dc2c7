package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

func reduceInput(t *testing.T) *dataset.Table {
	t.Helper()
	return numericTable(t, []string{"a", "b", "c"}, [][]float64{
		{2.5, 2.4, 0.5},
		{0.5, 0.7, 1.9},
		{2.2, 2.9, 0.3},
		{1.9, 2.2, 1.1},
		{3.1, 3.0, 0.2},
	})
}

func TestReduce_ClampsToColumns(t *testing.T) {
	in := reduceInput(t)

	out, proj, err := Reduce(in, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, proj.Components())
	assert.Equal(t, []string{"a", "b", "c", "PC1", "PC2", "PC3"}, out.Names())
	assert.Equal(t, in.Column(0).Values, out.Column(0).Values)

	sum := 0.0
	for _, r := range proj.ExplainedVarianceRatio() {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestReduce_Components(t *testing.T) {
	out, proj, err := Reduce(reduceInput(t), 2, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, out.NumCols())
	ev := proj.ExplainedVariance()
	require.Len(t, ev, 2)
	assert.GreaterOrEqual(t, ev[0], ev[1])
	assert.Len(t, proj.Means(), 3)

	pc1, ok := out.Lookup("PC1")
	require.True(t, ok)
	mean := 0.0
	for _, v := range pc1.Values {
		mean += v
	}
	assert.InDelta(t, 0.0, mean/float64(len(pc1.Values)), 1e-9)
}

func TestReduce_FewRows(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	in := numericTable(t, []string{"a", "b", "c"}, [][]float64{
		{-1, -1, 0},
		{1, 1, 1},
	})

	out, proj, err := Reduce(in, 10, logger)
	require.NoError(t, err)

	assert.Equal(t, 3, proj.Components())
	assert.Equal(t, []string{"a", "b", "c", "PC1", "PC2", "PC3"}, out.Names())

	pc1, _ := out.Lookup("PC1")
	assert.InDeltaSlice(t, []float64{-1.5, 1.5}, pc1.Values, 1e-9)
	for _, name := range []string{"PC2", "PC3"} {
		pc, ok := out.Lookup(name)
		require.True(t, ok, name)
		assert.InDeltaSlice(t, []float64{0, 0}, pc.Values, 1e-9, name)
	}
	assert.InDeltaSlice(t, []float64{1, 0, 0}, proj.ExplainedVarianceRatio(), 1e-9)

	entries, err := logger.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "fitted projection", last["message"])
	assert.Equal(t, 3.0, last[log.ComponentsKey])
	assert.Equal(t, 2.0, last[log.SamplesKey])
}

func TestReduce_TwoRowsKeepsEveryColumnDirection(t *testing.T) {
	in := numericTable(t, []string{"A", "B", "Category_Z"}, [][]float64{
		{-1, -1, 0},
		{1, 1, 1},
	})

	out, proj, err := Reduce(in, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, proj.Components())
	assert.Equal(t, []string{"A", "B", "Category_Z", "PC1", "PC2", "PC3"}, out.Names())
}

func TestReduce_Errors(t *testing.T) {
	t.Run("categorical column", func(t *testing.T) {
		in, err := dataset.New(
			dataset.NewNumericColumn("a", []float64{1, 2}),
			dataset.NewCategoricalColumn("c", []string{"x", "y"}, nil),
		)
		require.NoError(t, err)

		_, _, err = Reduce(in, 2, nil)
		var ve *errors.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "columns", ve.ParamName)
	})

	t.Run("non finite", func(t *testing.T) {
		in := numericTable(t, []string{"a", "b"}, [][]float64{{1, math.Inf(1)}, {2, 3}})
		_, _, err := Reduce(in, 2, nil)
		var ni *errors.NumericalInstabilityError
		assert.True(t, errors.As(err, &ni))
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := Reduce(numericTable(t, []string{"a"}, nil), 2, nil)
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("zero components", func(t *testing.T) {
		_, _, err := Reduce(reduceInput(t), 0, nil)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("unfitted projection", func(t *testing.T) {
		_, err := Projection{}.Apply(reduceInput(t))
		var nf *errors.NotFittedError
		assert.True(t, errors.As(err, &nf))
	})
}
