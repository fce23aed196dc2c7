// Package trajprep prepares raw trajectory measurements for machine learning.
//
// A run reads a headerless CSV together with a file of column names and writes
// a model-ready CSV:
//
//   - columns are named by position; surplus names are dropped and missing
//     ones become Unnamed_0, Unnamed_1, ...
//   - columns with no values are dropped, then rows with any gap
//   - numeric columns are mean-imputed and standardized
//   - velocity_difference, velocity_x_duration and
//     trajectory_distance_ratio are derived when their inputs exist
//   - categorical columns are one-hot encoded, dropping the first category
//   - principal components PC1..PCk are appended
//
// # Quick Start
//
//	trajprep --input data.csv --columns names.txt --output clean.csv
//
// or from Go:
//
//	p := pipeline.New(pipeline.WithComponents(10))
//	res, err := p.Run(pipeline.RunConfig{
//	    InputPath:   "data.csv",
//	    ColumnsPath: "names.txt",
//	    OutputPath:  "clean.csv",
//	})
//
// # Packages
//
//   - dataset: Table, Schema, CSV loading and writing, column alignment
//   - preprocessing: SimpleImputer, StandardScaler, OneHotEncoder
//   - decomposition: PCA
//   - pipeline: the stages and the orchestrator
//   - pkg/errors, pkg/log: error types and structured logging
package trajprep
