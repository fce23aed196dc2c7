// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// scikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("trajprep-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
// これにより、MissingColumnsWarningなどの診断メッセージの処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	パイプライン診断用の警告型
//
// ===========================================================================

// MissingColumnsWarning は派生特徴量の生成に必要な列が存在しない場合の警告です。
// 生成ステップ全体がスキップされ、処理は継続します。
type MissingColumnsWarning struct {
	Step    string
	Missing string
}

func (w *MissingColumnsWarning) Error() string {
	return fmt.Sprintf("%s skipped: missing column %q", w.Step, w.Missing)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *MissingColumnsWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("step", w.Step).
		Str("missing_column", w.Missing).
		Str("type", "MissingColumnsWarning")
}

// NewMissingColumnsWarning は新しいMissingColumnsWarningを作成します。
func NewMissingColumnsWarning(step, missing string) *MissingColumnsWarning {
	return &MissingColumnsWarning{Step: step, Missing: missing}
}

// SchemaMismatchWarning は列名リストの長さが実データの列数と異なる場合の警告です。
// 切り詰めまたはプレースホルダー名での補完によって解消されます。
type SchemaMismatchWarning struct {
	Names   int
	Columns int
}

func (w *SchemaMismatchWarning) Error() string {
	action := "padded with placeholder names"
	if w.Names > w.Columns {
		action = "truncated"
	}
	return fmt.Sprintf("column name list has %d entries but the table has %d columns; names %s", w.Names, w.Columns, action)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *SchemaMismatchWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("names", w.Names).
		Int("columns", w.Columns).
		Str("type", "SchemaMismatchWarning")
}

// NewSchemaMismatchWarning は新しいSchemaMismatchWarningを作成します。
func NewSchemaMismatchWarning(names, columns int) *SchemaMismatchWarning {
	return &SchemaMismatchWarning{Names: names, Columns: columns}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFoundError は入力ファイルが存在しない場合のエラーです。
type NotFoundError struct {
	Resource string
	Path     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("trajprep: %s not found: %s", e.Resource, e.Path)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("resource", e.Resource).
		Str("path", e.Path).
		Str("type", "NotFoundError")
}

// NewNotFoundError は新しいNotFoundErrorを作成し、スタックトレースを付与します。
func NewNotFoundError(resource, path string) error {
	err := &NotFoundError{Resource: resource, Path: path}
	return errors.WithStack(err)
}

// ParseError は入力テーブルの解析に失敗した場合のエラーです。
// ログに出して処理を続けることはせず、必ず呼び出し元に返します。
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trajprep: failed to parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("trajprep: failed to parse %s", e.Path)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "ParseError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(path string, err error) error {
	parseErr := &ParseError{Path: path, Err: err}
	return errors.WithStack(parseErr)
}

// NotFittedError はモデルが未学習の状態で `Transform` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("trajprep: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("trajprep: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力の検証に失敗した場合のエラーです。
// `ValueError`よりも具体的なバリデーションロジックの失敗を示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("trajprep: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("trajprep: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は推定器に関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trajprep: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("trajprep: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// NaN、Infなどを検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "pca_fit"）
	Values    []float64 // 問題のある値
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("trajprep: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrNoObservedValues は列に欠損でない値が一つもない場合のエラーです。
	ErrNoObservedValues = New("column has no observed values")
)
