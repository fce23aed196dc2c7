package pipeline

import (
	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

// Names of the synthesized feature columns.
const (
	VelocityDifference      = "velocity_difference"
	VelocityXDuration       = "velocity_x_duration"
	TrajectoryDistanceRatio = "trajectory_distance_ratio"
)

const featureStep = "feature synthesis"

type derivation struct {
	name string
	lhs  string
	rhs  string
	op   func(a, b float64) float64
}

var derivations = []derivation{
	{
		name: VelocityDifference,
		lhs:  "20%-perc. pairwise velocity",
		rhs:  "50%-perc. pairwise velocity",
		op:   func(a, b float64) float64 { return a - b },
	},
	{
		name: VelocityXDuration,
		lhs:  "start $x$",
		rhs:  "stroke duration",
		op:   func(a, b float64) float64 { return a * b },
	},
	{
		name: TrajectoryDistanceRatio,
		lhs:  "length of trajectory",
		rhs:  "direct end-to-end distance",
		op:   errors.SafeDivide,
	},
}

// FeatureInputs returns the columns SynthesizeFeatures reads, in lookup order.
func FeatureInputs() []string {
	names := make([]string, 0, 2*len(derivations))
	for _, d := range derivations {
		names = append(names, d.lhs, d.rhs)
	}
	return names
}

// SynthesizeFeatures appends velocity_difference, velocity_x_duration and
// trajectory_distance_ratio. Either all three are added or none: when an input
// column is absent or not numeric, a MissingColumnsWarning naming the first
// such column is raised and an unchanged copy of t is returned.
func SynthesizeFeatures(t *dataset.Table, logger log.Logger) *dataset.Table {
	logger = orNop(logger)

	inputs := make(map[string][]float64, 2*len(derivations))
	for _, name := range FeatureInputs() {
		col, ok := t.Lookup(name)
		if !ok || col.Kind != dataset.Numeric {
			errors.Warn(errors.NewMissingColumnsWarning(featureStep, name))
			return t.Clone()
		}
		inputs[name] = col.Values
	}

	cols := make([]dataset.Column, len(derivations))
	for k, d := range derivations {
		a, b := inputs[d.lhs], inputs[d.rhs]
		values := make([]float64, t.NumRows())
		for i := range values {
			values[i] = d.op(a[i], b[i])
		}
		cols[k] = dataset.NewNumericColumn(d.name, values)
	}

	out, err := t.AppendColumns(cols...)
	if err != nil {
		// every derived column has NumRows values
		panic(err)
	}

	logger.Info("synthesized features",
		log.StageKey, "features",
		log.ColumnsAddedKey, len(cols),
		log.SchemaVersionKey, out.Schema().Version,
	)
	return out
}
