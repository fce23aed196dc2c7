// Package decomposition は主成分分析による次元削減を提供します。
package decomposition

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/trajprep/core/model"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// DefaultComponents は主成分数の既定値
const DefaultComponents = 10

var _ model.Transformer = (*PCA)(nil)

// PCA はscikit-learn互換の主成分分析
//
// 特異値分解はgonumのstat.PCに任せ、行数が足りないときは mat.SVD で
// 基底を補完する。各主成分の符号は、
// 絶対値が最大の負荷量が正になるように揃える。
type PCA struct {
	model.BaseEstimator

	// NComponents は要求された主成分数
	NComponents int

	// Mean は各特徴量の平均
	Mean []float64

	// Components は主成分ベクトル (n_features × k)。列が主成分。
	Components *mat.Dense

	// ExplainedVariance は各主成分の分散 (n-1 で割る)
	ExplainedVariance []float64

	// ExplainedVarianceRatio は全分散に対する各主成分の割合
	ExplainedVarianceRatio []float64
}

// NewPCA は新しいPCAを作成する
func NewPCA(nComponents int) *PCA {
	return &PCA{NComponents: nComponents}
}

// NComponentsFitted は実際に保持している主成分数を返す
func (p *PCA) NComponentsFitted() int {
	return len(p.ExplainedVariance)
}

// Fit は主成分を学習する
//
// 主成分数は min(NComponents, 列数) に切り詰められる。行数が列数より
// 少ない場合、不足分は完全SVDの右特異ベクトルで補い、分散は0とする。
func (p *PCA) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PCA.Fit", "empty data", errors.ErrEmptyData)
	}
	if p.NComponents <= 0 {
		return errors.NewValidationError("n_components", "must be positive", p.NComponents)
	}
	if err := errors.CheckMatrix("PCA.Fit", X, r, c); err != nil {
		return err
	}

	k := min(p.NComponents, c)

	p.Mean = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		p.Mean[j] = stat.Mean(col, nil)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(X, nil); !ok {
		return errors.NewModelError("PCA.Fit", "svd factorization failed", nil)
	}

	// 1行だけでは分散が定義できないため0とする
	available := min(r, c)
	vars := make([]float64, available)
	if r > 1 {
		pc.VarsTo(vars)
	}

	var vecs mat.Dense
	if k <= available {
		pc.VectorsTo(&vecs)
	} else if err := p.completeBasis(X, &vecs); err != nil {
		return err
	}

	p.Components = mat.DenseCopyOf(vecs.Slice(0, c, 0, k))
	flipSigns(p.Components)

	p.ExplainedVariance = make([]float64, k)
	copy(p.ExplainedVariance, vars)
	p.ExplainedVarianceRatio = make([]float64, k)
	if total := floats.Sum(vars); total > 0 {
		floats.ScaleTo(p.ExplainedVarianceRatio, 1/total, p.ExplainedVariance)
	}

	if err := errors.CheckNumericalStability("PCA.Fit", p.ExplainedVariance); err != nil {
		return err
	}

	p.SetDimensions(c, r)
	p.SetFitted()
	return nil
}

// completeBasis は中心化データの完全SVDから c×c の右特異ベクトルを得る。
// 先頭 min(r, c) 列は stat.PC と同じ部分空間を張り、残りは零空間の方向となる。
func (p *PCA) completeBasis(X mat.Matrix, dst *mat.Dense) error {
	var svd mat.SVD
	if ok := svd.Factorize(p.center(X), mat.SVDFullV); !ok {
		return errors.NewModelError("PCA.Fit", "svd factorization failed", nil)
	}
	svd.VTo(dst)
	return nil
}

// center は学習済み平均を引いたコピーを返す
func (p *PCA) center(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	centered := mat.NewDense(r, c, nil)
	centered.Apply(func(i, j int, v float64) float64 {
		return v - p.Mean[j]
	}, X)
	return centered
}

// flipSigns は各列の絶対値最大の要素が正になるよう符号を反転する
func flipSigns(components *mat.Dense) {
	rows, cols := components.Dims()
	col := make([]float64, rows)
	abs := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, components)
		for i, v := range col {
			abs[i] = math.Abs(v)
		}
		if col[floats.MaxIdx(abs)] < 0 {
			floats.Scale(-1, col)
			components.SetCol(j, col)
		}
	}
}

// Transform は中心化したデータを主成分へ射影する
func (p *PCA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.RequireFitted("PCA", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if err := p.CheckFeatures("PCA.Transform", c); err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, errors.NewModelError("PCA.Transform", "empty data", errors.ErrEmptyData)
	}

	var scores mat.Dense
	scores.Mul(p.center(X), p.Components)

	if err := errors.CheckMatrix("PCA.Transform", &scores, r, p.NComponentsFitted()); err != nil {
		return nil, err
	}
	return &scores, nil
}

// FitTransform は学習と射影を続けて実行する
func (p *PCA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// String はPCAの文字列表現を返す
func (p *PCA) String() string {
	if !p.IsFitted() {
		return fmt.Sprintf("PCA(n_components=%d)", p.NComponents)
	}
	return fmt.Sprintf("PCA(n_components=%d, fitted_components=%d)", p.NComponents, p.NComponentsFitted())
}
