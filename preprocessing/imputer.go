package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/trajprep/core/model"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ImputeStrategy は欠損値の補完方法
type ImputeStrategy string

const (
	// StrategyMean は列の平均で補完する
	StrategyMean ImputeStrategy = "mean"
)

// SimpleImputer はscikit-learn互換の欠損値補完器
// NaNを欠損値として扱い、列ごとの統計量で置き換える。
type SimpleImputer struct {
	model.BaseEstimator

	// Strategy は補完方法 (デフォルト: mean)
	Strategy ImputeStrategy

	// Statistics は各列の補完値
	Statistics []float64
}

// NewSimpleImputer は平均補完のSimpleImputerを作成する
func NewSimpleImputer() *SimpleImputer {
	return &SimpleImputer{Strategy: StrategyMean}
}

// Fit は各列の欠損でない値から補完値を計算する
//
// 欠損でない値が一つもない列があるとErrNoObservedValuesを包んだModelErrorを返す。
func (imp *SimpleImputer) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("SimpleImputer.Fit", "empty data", errors.ErrEmptyData)
	}
	if imp.Strategy != StrategyMean {
		return errors.NewValidationError("strategy", "unsupported imputation strategy", imp.Strategy)
	}

	imp.Statistics = make([]float64, c)
	col := make([]float64, r)
	observed := make([]float64, 0, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)

		observed = observed[:0]
		for _, v := range col {
			if !math.IsNaN(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == 0 {
			return errors.NewModelError("SimpleImputer.Fit",
				fmt.Sprintf("column %d", j), errors.ErrNoObservedValues)
		}
		imp.Statistics[j] = floats.Sum(observed) / float64(len(observed))
	}

	imp.SetDimensions(c, r)
	imp.SetFitted()
	return nil
}

// Transform はNaNを学習済みの補完値で置き換える
func (imp *SimpleImputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := imp.RequireFitted("SimpleImputer", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if err := imp.CheckFeatures("SimpleImputer.Transform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		if math.IsNaN(v) {
			return imp.Statistics[j]
		}
		return v
	}, X)

	return result, nil
}

// FitTransform は学習と補完を続けて実行する
func (imp *SimpleImputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := imp.Fit(X); err != nil {
		return nil, err
	}
	return imp.Transform(X)
}
