package pipeline

import (
	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

// DropMissing removes every column without a single observed value and then
// every row that still contains a missing cell. The input table is not
// modified.
func DropMissing(t *dataset.Table, logger log.Logger) *dataset.Table {
	logger = orNop(logger)
	logger.Info("original shape",
		log.StageKey, "drop_missing",
		log.SamplesKey, t.NumRows(),
		log.FeaturesKey, t.NumCols(),
	)

	keepCols := make([]int, 0, t.NumCols())
	for i := 0; i < t.NumCols(); i++ {
		if t.Column(i).Observed() > 0 {
			keepCols = append(keepCols, i)
		}
	}
	out := t
	if len(keepCols) != t.NumCols() {
		out = t.SelectColumns(keepCols)
	}

	keepRows := make([]int, 0, out.NumRows())
	for r := 0; r < out.NumRows(); r++ {
		if !rowHasMissing(out, r) {
			keepRows = append(keepRows, r)
		}
	}
	out = out.SelectRows(keepRows)

	logger.Info("shape after removing missing values",
		log.StageKey, "drop_missing",
		log.SamplesKey, out.NumRows(),
		log.FeaturesKey, out.NumCols(),
		log.RowsDroppedKey, t.NumRows()-out.NumRows(),
		log.ColumnsDroppedKey, t.NumCols()-out.NumCols(),
		log.SchemaVersionKey, out.Schema().Version,
	)
	return out
}

func rowHasMissing(t *dataset.Table, r int) bool {
	for c := 0; c < t.NumCols(); c++ {
		if t.Column(c).IsMissing(r) {
			return true
		}
	}
	return false
}

func orNop(logger log.Logger) log.Logger {
	if logger == nil {
		return log.NewNopLogger()
	}
	return logger
}
