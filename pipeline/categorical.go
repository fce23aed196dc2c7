package pipeline

import (
	"slices"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/preprocessing"
)

// CategoricalStats holds the per-column vocabularies learned from the
// categorical columns of a table. The first sorted category of each column is
// the dropped reference level.
type CategoricalStats struct {
	columns []string
	encoder *preprocessing.OneHotEncoder
}

// Columns returns the categorical columns the stats were fitted on.
func (s CategoricalStats) Columns() []string { return slices.Clone(s.columns) }

// Vocabulary returns the sorted categories of the named column.
func (s CategoricalStats) Vocabulary(column string) ([]string, bool) {
	i := slices.Index(s.columns, column)
	if i < 0 {
		return nil, false
	}
	return slices.Clone(s.encoder.Categories[i]), true
}

// IndicatorNames returns the names of the columns Apply appends.
func (s CategoricalStats) IndicatorNames() []string {
	if s.encoder == nil {
		return nil
	}
	names, err := s.encoder.FeatureNames(s.columns)
	if err != nil {
		return nil
	}
	return names
}

// FitCategorical learns the vocabulary of every categorical column of t.
func FitCategorical(t *dataset.Table) (CategoricalStats, error) {
	schema := t.Schema()
	idx := schema.CategoricalIndices()
	if len(idx) == 0 {
		return CategoricalStats{}, nil
	}

	encoder := preprocessing.NewOneHotEncoder(true)
	if err := encoder.Fit(labels(t, idx)); err != nil {
		return CategoricalStats{}, errors.Wrap(err, "fit one-hot encoder")
	}
	return CategoricalStats{columns: schema.Categorical(), encoder: encoder}, nil
}

// Apply replaces the categorical columns of t by their indicator columns.
// Numeric columns keep their relative order and the indicators follow them,
// grouped by source column. Without categorical columns an unchanged copy is
// returned.
func (s CategoricalStats) Apply(t *dataset.Table) (*dataset.Table, error) {
	schema := t.Schema()
	if !slices.Equal(schema.Categorical(), s.columns) {
		return nil, errors.NewValidationError("categorical columns",
			"table does not match the fitted columns", schema.Categorical())
	}
	if len(s.columns) == 0 {
		return t.Clone(), nil
	}

	catIdx := schema.CategoricalIndices()
	indicators, err := s.encoder.Transform(labels(t, catIdx))
	if err != nil {
		return nil, err
	}

	names := s.IndicatorNames()
	cols := make([]dataset.Column, len(names))
	for k, name := range names {
		values := make([]float64, t.NumRows())
		if !indicators.IsEmpty() {
			for i := range values {
				values[i] = indicators.At(i, k)
			}
		}
		cols[k] = dataset.NewNumericColumn(name, values)
	}

	out := t.SelectColumns(schema.NumericIndices())
	if len(cols) == 0 {
		return out, nil
	}
	return out.AppendColumns(cols...)
}

// EncodeCategorical fits CategoricalStats on t and applies them.
func EncodeCategorical(t *dataset.Table) (*dataset.Table, CategoricalStats, error) {
	stats, err := FitCategorical(t)
	if err != nil {
		return nil, CategoricalStats{}, err
	}
	out, err := stats.Apply(t)
	if err != nil {
		return nil, CategoricalStats{}, err
	}
	return out, stats, nil
}

func labels(t *dataset.Table, idx []int) [][]string {
	out := make([][]string, len(idx))
	for k, i := range idx {
		out[k] = t.Column(i).Labels
	}
	return out
}
