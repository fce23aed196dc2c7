package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

func TestOneHotEncoder_DropFirst(t *testing.T) {
	columns := [][]string{
		{"Y", "X", "Z", "X"},
		{"b", "a", "a", "b"},
	}

	enc := NewOneHotEncoder(true)
	out, err := enc.FitTransform(columns)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"X", "Y", "Z"}, {"a", "b"}}, enc.Categories)
	assert.Equal(t, 3, enc.NOutputs())

	names, err := enc.FeatureNames([]string{"Category", "flag"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Category_Y", "Category_Z", "flag_b"}, names)

	want := mat.NewDense(4, 3, []float64{
		1, 0, 1,
		0, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	assert.True(t, mat.Equal(want, out))
}

func TestOneHotEncoder_KeepAll(t *testing.T) {
	enc := NewOneHotEncoder(false)
	out, err := enc.FitTransform([][]string{{"a", "b", "a"}})
	require.NoError(t, err)

	r, c := out.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 1.0, out.At(1, 1))
}

func TestOneHotEncoder_SingleCategory(t *testing.T) {
	enc := NewOneHotEncoder(true)
	out, err := enc.FitTransform([][]string{{"only", "only"}})
	require.NoError(t, err)

	assert.Equal(t, 0, enc.NOutputs())
	r, c := out.Dims()
	assert.Zero(t, r)
	assert.Zero(t, c)
}

func TestOneHotEncoder_Errors(t *testing.T) {
	enc := NewOneHotEncoder(true)
	require.NoError(t, enc.Fit([][]string{{"a", "b"}}))

	t.Run("unknown category", func(t *testing.T) {
		_, err := enc.Transform([][]string{{"c", "a"}})
		var ve *errors.ValueError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Message, `"c"`)
	})

	t.Run("ragged columns", func(t *testing.T) {
		err := NewOneHotEncoder(true).Fit([][]string{{"a"}, {"a", "b"}})
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})

	t.Run("column count", func(t *testing.T) {
		_, err := enc.Transform([][]string{{"a"}, {"b"}})
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})
}
