// Package model は前処理ステップで共有する推定器の基盤を提供します。
package model

import (
	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// EstimatorState は推定器の学習状態を表す
type EstimatorState int

const (
	// NotFitted は未学習の状態
	NotFitted EstimatorState = iota
	// Fitted は学習済みの状態
	Fitted
)

// BaseEstimator は全ての推定器に埋め込む基底構造体
//
// 学習状態に加えて、Fit時に観測した行数と列数を保持する。
// Transform時の列数チェックに使う。
type BaseEstimator struct {
	state     EstimatorState
	nFeatures int
	nSamples  int
}

// IsFitted は学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は初期状態に戻す
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.nFeatures = 0
	e.nSamples = 0
}

// SetDimensions はFit時に観測した列数と行数を記録する
func (e *BaseEstimator) SetDimensions(nFeatures, nSamples int) {
	e.nFeatures = nFeatures
	e.nSamples = nSamples
}

// Dimensions はFit時に観測した列数と行数を返す
func (e *BaseEstimator) Dimensions() (nFeatures, nSamples int) {
	return e.nFeatures, e.nSamples
}

// RequireFitted は未学習ならNotFittedErrorを返す
func (e *BaseEstimator) RequireFitted(modelName, method string) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// CheckFeatures は入力列数がFit時と一致するか検証する
func (e *BaseEstimator) CheckFeatures(op string, got int) error {
	if got != e.nFeatures {
		return errors.NewDimensionError(op, e.nFeatures, got, 1)
	}
	return nil
}
