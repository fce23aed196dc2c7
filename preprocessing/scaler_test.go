package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25}, scaler.Mean, 1e-12)
	// 母標準偏差
	assert.InDelta(t, math.Sqrt(1.25), scaler.Scale[0], 1e-12)

	r, c := out.Dims()
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, out)
		mean, variance := stat.PopMeanVariance(col, nil)
		assert.InDelta(t, 0.0, mean, 1e-6)
		assert.InDelta(t, 1.0, math.Sqrt(variance), 1e-6)
	}
	assert.Equal(t, 4, r)
}

func TestStandardScaler_ConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7, 7, 7})

	scaler := NewStandardScalerDefault()
	out, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.Equal(t, 1.0, scaler.Scale[0])
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
	}
}

func TestStandardScaler_InverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, -2, 3, 5, 8, 0.5})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	back, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-10))
}

func TestStandardScaler_Errors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		_, err := NewStandardScalerDefault().Transform(mat.NewDense(1, 1, nil))
		var nf *errors.NotFittedError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		scaler := NewStandardScalerDefault()
		require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))

		_, err := scaler.Transform(mat.NewDense(2, 3, nil))
		var de *errors.DimensionError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 2, de.Expected)
		assert.Equal(t, 3, de.Got)
	})

	t.Run("empty", func(t *testing.T) {
		err := NewStandardScalerDefault().Fit(&mat.Dense{})
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("nan input", func(t *testing.T) {
		err := NewStandardScalerDefault().Fit(mat.NewDense(2, 1, []float64{1, math.NaN()}))
		var ni *errors.NumericalInstabilityError
		assert.True(t, errors.As(err, &ni))
	})
}

func TestStandardScaler_String(t *testing.T) {
	scaler := NewStandardScaler(true, false)
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=false)", scaler.String())

	require.NoError(t, scaler.Fit(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))
	assert.Equal(t, "StandardScaler(with_mean=true, with_std=false, n_features=3)", scaler.String())
	assert.Equal(t, []float64{1, 1, 1}, scaler.Scale)
}
