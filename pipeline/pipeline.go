// Package pipeline runs the trajectory preprocessing stages in order: load,
// name columns, drop missing values, impute and scale numeric columns,
// synthesize features, one-hot encode categorical columns and append a
// principal component projection.
//
// Each stage is a plain function (or a Fit function returning immutable
// stats with an Apply method) so it can be used and tested on its own.
// Pipeline wires them together and persists the result.
package pipeline

import (
	"time"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/decomposition"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

// RunConfig names the files of one run.
type RunConfig struct {
	InputPath   string
	ColumnsPath string
	OutputPath  string
}

// Result summarizes a successful run.
type Result struct {
	Rows                   int
	Columns                int
	SchemaVersion          int
	FeaturesAdded          bool
	Components             int
	ExplainedVarianceRatio []float64
}

// Pipeline executes the preprocessing stages.
type Pipeline struct {
	components   int
	loadOptions  []dataset.LoadOption
	variancePlot string
	logger       log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithComponents sets the number of principal components to append.
func WithComponents(k int) Option {
	return func(p *Pipeline) {
		p.components = k
	}
}

// WithLogger sets the logger stages report to.
func WithLogger(logger log.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithLoggerProvider takes the pipeline logger from provider.
func WithLoggerProvider(provider log.LoggerProvider) Option {
	return func(p *Pipeline) {
		p.logger = provider.GetLoggerWithName("Pipeline")
	}
}

// WithLoadOptions passes options to dataset.LoadRaw.
func WithLoadOptions(opts ...dataset.LoadOption) Option {
	return func(p *Pipeline) {
		p.loadOptions = append(p.loadOptions, opts...)
	}
}

// WithVariancePlot writes a scree chart of the projection to path.
func WithVariancePlot(path string) Option {
	return func(p *Pipeline) {
		p.variancePlot = path
	}
}

// New creates a Pipeline. Without options it appends 10 components and logs
// nothing.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		components: decomposition.DefaultComponents,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = orNop(p.logger)
	return p
}

// Run executes every stage on cfg.InputPath and writes the result to
// cfg.OutputPath. The first failing stage aborts the run; nothing is written
// in that case.
func (p *Pipeline) Run(cfg RunConfig) (res *Result, err error) {
	defer errors.Recover(&err, "Pipeline.Run")

	if p.components <= 0 {
		return nil, errors.NewValidationError("components", "must be positive", p.components)
	}

	start := time.Now()
	raw, err := dataset.LoadRaw(cfg.InputPath, p.loadOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "load dataset")
	}
	schema := raw.Schema()
	p.logger.Info("dataset loaded",
		log.StageKey, "load",
		log.OperationKey, log.OperationLoad,
		log.PathKey, cfg.InputPath,
		log.SamplesKey, raw.NumRows(),
		log.FeaturesKey, raw.NumCols(),
		log.NumericKey, len(schema.NumericIndices()),
		log.CategoricalKey, len(schema.CategoricalIndices()),
	)

	names, err := dataset.LoadColumnNames(cfg.ColumnsPath)
	if err != nil {
		return nil, errors.Wrap(err, "load column names")
	}

	t := dataset.Align(raw, names)
	t = DropMissing(t, p.logger)

	t, _, err = TransformNumeric(t)
	if err != nil {
		return nil, errors.Wrap(err, "numeric transform")
	}
	p.logger.Debug("numeric columns standardized",
		log.StageKey, "numeric",
		log.NumericKey, len(t.Schema().Numeric()),
	)

	before := t.NumCols()
	t = SynthesizeFeatures(t, p.logger)
	featuresAdded := t.NumCols() > before

	t, cats, err := EncodeCategorical(t)
	if err != nil {
		return nil, errors.Wrap(err, "categorical encoding")
	}
	p.logger.Debug("categorical columns encoded",
		log.StageKey, "encode",
		log.CategoricalKey, len(cats.Columns()),
		log.ColumnsAddedKey, len(cats.IndicatorNames()),
	)

	t, proj, err := Reduce(t, p.components, p.logger)
	if err != nil {
		return nil, errors.Wrap(err, "dimensionality reduction")
	}
	p.logVariance(proj)

	if p.variancePlot != "" {
		if err := PlotVariance(proj, p.variancePlot); err != nil {
			return nil, errors.Wrap(err, "variance plot")
		}
	}

	if err := dataset.WriteCSV(cfg.OutputPath, t); err != nil {
		return nil, errors.Wrap(err, "save dataset")
	}
	p.logger.Info("processed dataset saved",
		log.StageKey, "save",
		log.OperationKey, log.OperationSave,
		log.PathKey, cfg.OutputPath,
		log.SamplesKey, t.NumRows(),
		log.FeaturesKey, t.NumCols(),
		log.SchemaVersionKey, t.Schema().Version,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Result{
		Rows:                   t.NumRows(),
		Columns:                t.NumCols(),
		SchemaVersion:          t.Schema().Version,
		FeaturesAdded:          featuresAdded,
		Components:             proj.Components(),
		ExplainedVarianceRatio: proj.ExplainedVarianceRatio(),
	}, nil
}

func (p *Pipeline) logVariance(proj Projection) {
	cumulative := 0.0
	for i, r := range proj.ExplainedVarianceRatio() {
		cumulative += r
		p.logger.Debug("principal component",
			log.StageKey, "reduce",
			log.ComponentsKey, i+1,
			log.ExplainedVarianceRatioKey, r,
			log.CumulativeVarianceKey, cumulative,
		)
	}
	p.logger.Info("projection appended",
		log.StageKey, "reduce",
		log.ComponentsKey, proj.Components(),
		log.CumulativeVarianceKey, cumulative,
	)
}
