package pipeline

import (
	"slices"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/preprocessing"
)

// NumericStats holds the imputation and scaling parameters learned from the
// numeric columns of a table. The zero value applies to tables without
// numeric columns.
type NumericStats struct {
	columns []string
	imputer *preprocessing.SimpleImputer
	scaler  *preprocessing.StandardScaler
}

// Columns returns the numeric columns the stats were fitted on.
func (s NumericStats) Columns() []string { return slices.Clone(s.columns) }

// ImputeValues returns the per-column fill values.
func (s NumericStats) ImputeValues() []float64 {
	if s.imputer == nil {
		return nil
	}
	return slices.Clone(s.imputer.Statistics)
}

// Means returns the per-column means removed by scaling.
func (s NumericStats) Means() []float64 {
	if s.scaler == nil {
		return nil
	}
	return slices.Clone(s.scaler.Mean)
}

// Scales returns the per-column population standard deviations; constant
// columns report 1.
func (s NumericStats) Scales() []float64 {
	if s.scaler == nil {
		return nil
	}
	return slices.Clone(s.scaler.Scale)
}

// FitNumeric learns mean imputation and standardization for every numeric
// column of t. A table with numeric columns but no rows yields a ModelError
// wrapping ErrEmptyData.
func FitNumeric(t *dataset.Table) (NumericStats, error) {
	schema := t.Schema()
	idx := schema.NumericIndices()
	if len(idx) == 0 {
		return NumericStats{}, nil
	}
	if t.NumRows() == 0 {
		return NumericStats{}, errors.NewModelError("FitNumeric", "no rows to fit", errors.ErrEmptyData)
	}

	X, err := t.NumericMatrix(idx)
	if err != nil {
		return NumericStats{}, err
	}

	imputer := preprocessing.NewSimpleImputer()
	imputed, err := imputer.FitTransform(X)
	if err != nil {
		return NumericStats{}, errors.Wrap(err, "fit imputer")
	}

	scaler := preprocessing.NewStandardScalerDefault()
	if err := scaler.Fit(imputed); err != nil {
		return NumericStats{}, errors.Wrap(err, "fit scaler")
	}

	return NumericStats{
		columns: schema.Numeric(),
		imputer: imputer,
		scaler:  scaler,
	}, nil
}

// Apply imputes and standardizes the numeric columns of t. The numeric
// columns of t must match the ones the stats were fitted on.
func (s NumericStats) Apply(t *dataset.Table) (*dataset.Table, error) {
	schema := t.Schema()
	if !slices.Equal(schema.Numeric(), s.columns) {
		return nil, errors.NewValidationError("numeric columns",
			"table does not match the fitted columns", schema.Numeric())
	}
	if len(s.columns) == 0 {
		return t.Clone(), nil
	}

	idx := schema.NumericIndices()
	X, err := t.NumericMatrix(idx)
	if err != nil {
		return nil, err
	}
	if X == nil {
		return nil, errors.NewModelError("NumericStats.Apply", "no rows to transform", errors.ErrEmptyData)
	}

	imputed, err := s.imputer.Transform(X)
	if err != nil {
		return nil, err
	}
	scaled, err := s.scaler.Transform(imputed)
	if err != nil {
		return nil, err
	}
	return t.WithNumericValues(idx, scaled)
}

// TransformNumeric fits NumericStats on t and applies them.
func TransformNumeric(t *dataset.Table) (*dataset.Table, NumericStats, error) {
	stats, err := FitNumeric(t)
	if err != nil {
		return nil, NumericStats{}, err
	}
	out, err := stats.Apply(t)
	if err != nil {
		return nil, NumericStats{}, err
	}
	return out, stats, nil
}
