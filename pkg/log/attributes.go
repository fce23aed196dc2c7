// Package log defines standard attribute keys for preprocessing runs.
//
// Using these keys keeps the log stream of every stage uniform, so a run can be
// followed and filtered by stage, operation and data shape.
//
// The attributes are organized into categories:
//   - Operation Context
//   - Data Shape
//   - Decomposition Results
//   - Error Context
//
// Keys follow a hierarchical naming convention (e.g. "data.samples",
// "pipeline.stage").

package log

// Operation Context
// These attributes identify the estimator and the stage being executed.
const (
	// ModelNameKey identifies the estimator doing the work.
	// Examples: "StandardScaler", "SimpleImputer", "OneHotEncoder", "PCA"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "load", "save"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or named logger emitting the record.
	ComponentKey = "component"

	// StageKey names the pipeline stage.
	// Examples: "load", "align", "drop_missing", "numeric", "features", "encode", "reduce", "save"
	StageKey = "pipeline.stage"

	// PathKey is the file a load or save operation touches.
	PathKey = "io.path"
)

// Data Shape
// These attributes describe the table flowing through the pipeline.
const (
	// SamplesKey is the number of rows.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns.
	FeaturesKey = "data.features"

	// NumericKey is the number of numeric columns in the current schema.
	NumericKey = "data.numeric_columns"

	// CategoricalKey is the number of categorical columns in the current schema.
	CategoricalKey = "data.categorical_columns"

	// RowsDroppedKey is the number of rows removed by a stage.
	RowsDroppedKey = "data.rows_dropped"

	// ColumnsDroppedKey is the number of columns removed by a stage.
	ColumnsDroppedKey = "data.columns_dropped"

	// ColumnsAddedKey is the number of columns appended by a stage.
	ColumnsAddedKey = "data.columns_added"

	// SchemaVersionKey is the version of the schema after a stage.
	SchemaVersionKey = "schema.version"
)

// Decomposition Results
const (
	// ComponentsKey is the number of principal components kept.
	ComponentsKey = "pca.components"

	// ExplainedVarianceRatioKey is the fraction of variance a component explains.
	ExplainedVarianceRatioKey = "pca.explained_variance_ratio"

	// CumulativeVarianceKey is the running total of explained variance ratio.
	CumulativeVarianceKey = "pca.cumulative_variance_ratio"

	// DurationMsKey records the execution time of a stage in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationLoad         = "load"
	OperationSave         = "save"

	ErrorNotFound     = "NOT_FOUND"
	ErrorParse        = "PARSE_FAILURE"
	ErrorEmptyData    = "EMPTY_DATA"
	ErrorInvalidInput = "INVALID_INPUT"
	ErrorNumerical    = "NUMERICAL_INSTABILITY"
)
