package preprocessing

import (
	"fmt"
	"slices"

	"github.com/YuminosukeSato/trajprep/core/model"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// OneHotEncoder はscikit-learn互換のワンホットエンコーダー
// 文字列の列を受け取り、カテゴリごとの0/1指示列に変換する。
// カテゴリは辞書順にソートされ、DropFirstなら先頭のカテゴリを参照水準として落とす。
type OneHotEncoder struct {
	model.BaseEstimator

	// DropFirst は各列の先頭カテゴリを落とすかどうか
	DropFirst bool

	// Categories は列ごとのソート済みカテゴリ
	Categories [][]string

	index []map[string]int
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
func NewOneHotEncoder(dropFirst bool) *OneHotEncoder {
	return &OneHotEncoder{DropFirst: dropFirst}
}

// Fit は列ごとのカテゴリ語彙を学習する
//
// columns は列優先で、columns[j][i] が i 行 j 列の値。
func (e *OneHotEncoder) Fit(columns [][]string) error {
	nSamples, err := checkColumnLengths("OneHotEncoder.Fit", columns)
	if err != nil {
		return err
	}

	e.Categories = make([][]string, len(columns))
	e.index = make([]map[string]int, len(columns))
	for j, col := range columns {
		vocab := slices.Clone(col)
		slices.Sort(vocab)
		vocab = slices.Compact(vocab)

		e.Categories[j] = vocab
		e.index[j] = make(map[string]int, len(vocab))
		for k, cat := range vocab {
			e.index[j][cat] = k
		}
	}

	e.SetDimensions(len(columns), nSamples)
	e.SetFitted()
	return nil
}

// dropped は出力から落とすカテゴリ数
func (e *OneHotEncoder) dropped(j int) int {
	if e.DropFirst && len(e.Categories[j]) > 0 {
		return 1
	}
	return 0
}

// NOutputs は変換後の列数を返す
func (e *OneHotEncoder) NOutputs() int {
	n := 0
	for j := range e.Categories {
		n += len(e.Categories[j]) - e.dropped(j)
	}
	return n
}

// Transform は学習済みの語彙で指示行列を作る
//
// 学習時に見ていないカテゴリはValueErrorになる。
// 出力列がない場合は空の行列を返す。
func (e *OneHotEncoder) Transform(columns [][]string) (*mat.Dense, error) {
	if err := e.RequireFitted("OneHotEncoder", "Transform"); err != nil {
		return nil, err
	}
	if err := e.CheckFeatures("OneHotEncoder.Transform", len(columns)); err != nil {
		return nil, err
	}
	nSamples, err := checkColumnLengths("OneHotEncoder.Transform", columns)
	if err != nil {
		return nil, err
	}

	width := e.NOutputs()
	if width == 0 || nSamples == 0 {
		return &mat.Dense{}, nil
	}

	result := mat.NewDense(nSamples, width, nil)
	offset := 0
	for j, col := range columns {
		drop := e.dropped(j)
		for i, v := range col {
			k, ok := e.index[j][v]
			if !ok {
				return nil, errors.NewValueError("OneHotEncoder.Transform",
					fmt.Sprintf("unknown category %q in column %d", v, j))
			}
			if k < drop {
				continue
			}
			result.Set(i, offset+k-drop, 1)
		}
		offset += len(e.Categories[j]) - drop
	}

	return result, nil
}

// FitTransform は学習と変換を続けて実行する
func (e *OneHotEncoder) FitTransform(columns [][]string) (*mat.Dense, error) {
	if err := e.Fit(columns); err != nil {
		return nil, err
	}
	return e.Transform(columns)
}

// FeatureNames は出力列の名前を "<入力列名>_<カテゴリ>" の形で返す
func (e *OneHotEncoder) FeatureNames(inputNames []string) ([]string, error) {
	if err := e.RequireFitted("OneHotEncoder", "FeatureNames"); err != nil {
		return nil, err
	}
	if err := e.CheckFeatures("OneHotEncoder.FeatureNames", len(inputNames)); err != nil {
		return nil, err
	}

	names := make([]string, 0, e.NOutputs())
	for j, name := range inputNames {
		for _, cat := range e.Categories[j][e.dropped(j):] {
			names = append(names, name+"_"+cat)
		}
	}
	return names, nil
}

func checkColumnLengths(op string, columns [][]string) (int, error) {
	if len(columns) == 0 {
		return 0, nil
	}
	n := len(columns[0])
	for _, col := range columns[1:] {
		if len(col) != n {
			return 0, errors.NewDimensionError(op, n, len(col), 0)
		}
	}
	return n, nil
}
