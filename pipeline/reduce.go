package pipeline

import (
	"slices"
	"strconv"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/decomposition"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

// ComponentPrefix prefixes the projected columns: PC1, PC2, ...
const ComponentPrefix = "PC"

// Projection is a fitted principal component projection of a fully numeric
// table.
type Projection struct {
	columns []string
	pca     *decomposition.PCA
}

// Components returns the number of projected columns Apply appends.
func (p Projection) Components() int {
	if p.pca == nil {
		return 0
	}
	return p.pca.NComponentsFitted()
}

// ExplainedVariance returns the variance of each component.
func (p Projection) ExplainedVariance() []float64 {
	if p.pca == nil {
		return nil
	}
	return slices.Clone(p.pca.ExplainedVariance)
}

// ExplainedVarianceRatio returns the fraction of total variance of each component.
func (p Projection) ExplainedVarianceRatio() []float64 {
	if p.pca == nil {
		return nil
	}
	return slices.Clone(p.pca.ExplainedVarianceRatio)
}

// Means returns the column means removed before projecting.
func (p Projection) Means() []float64 {
	if p.pca == nil {
		return nil
	}
	return slices.Clone(p.pca.Mean)
}

// FitProjection fits k principal components on every column of t. All columns
// must be numeric. k is clamped to the number of columns. With fewer rows than
// columns the trailing components span the null space: they score 0 and carry
// no variance.
func FitProjection(t *dataset.Table, k int, logger log.Logger) (Projection, error) {
	logger = orNop(logger)
	if k <= 0 {
		return Projection{}, errors.NewValidationError("components", "must be positive", k)
	}
	schema := t.Schema()
	if cat := schema.Categorical(); len(cat) > 0 {
		return Projection{}, errors.NewValidationError("columns",
			"dimensionality reduction requires numeric columns only", cat)
	}
	if t.NumCols() == 0 || t.NumRows() == 0 {
		return Projection{}, errors.NewModelError("FitProjection", "no data to project", errors.ErrEmptyData)
	}

	k = min(k, t.NumCols())

	X, err := t.NumericMatrix(schema.NumericIndices())
	if err != nil {
		return Projection{}, err
	}

	pca := decomposition.NewPCA(k)
	if err := pca.Fit(X); err != nil {
		return Projection{}, errors.Wrap(err, "fit pca")
	}
	logger.Debug("fitted projection",
		log.StageKey, "reduce",
		log.SamplesKey, t.NumRows(),
		log.FeaturesKey, t.NumCols(),
		log.ComponentsKey, k,
	)
	return Projection{columns: schema.Names(), pca: pca}, nil
}

// Apply appends the columns PC1..PCk holding the projection of t. The
// original columns are kept.
func (p Projection) Apply(t *dataset.Table) (*dataset.Table, error) {
	if p.pca == nil {
		return nil, errors.NewNotFittedError("Projection", "Apply")
	}
	schema := t.Schema()
	if !slices.Equal(schema.Names(), p.columns) {
		return nil, errors.NewValidationError("columns",
			"table does not match the fitted columns", schema.Names())
	}

	X, err := t.NumericMatrix(schema.NumericIndices())
	if err != nil {
		return nil, err
	}
	if X == nil {
		return nil, errors.NewModelError("Projection.Apply", "no data to project", errors.ErrEmptyData)
	}

	scores, err := p.pca.Transform(X)
	if err != nil {
		return nil, err
	}

	cols := make([]dataset.Column, p.Components())
	for j := range cols {
		values := make([]float64, t.NumRows())
		for i := range values {
			values[i] = scores.At(i, j)
		}
		cols[j] = dataset.NewNumericColumn(ComponentPrefix+strconv.Itoa(j+1), values)
	}
	return t.AppendColumns(cols...)
}

// Reduce fits a k-component Projection on t and applies it.
func Reduce(t *dataset.Table, k int, logger log.Logger) (*dataset.Table, Projection, error) {
	proj, err := FitProjection(t, k, logger)
	if err != nil {
		return nil, Projection{}, err
	}
	out, err := proj.Apply(t)
	if err != nil {
		return nil, Projection{}, err
	}
	return out, proj, nil
}
