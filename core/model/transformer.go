package model

import "gonum.org/v1/gonum/mat"

// Transformer は数値行列を変換する推定器のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform は学習済みパラメータでデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを続けて実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
