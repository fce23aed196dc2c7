package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var (
		mu       sync.Mutex
		warnings []error
	)
	errors.SetZerologWarnFunc(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, w)
	})
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), warnings...)
	}
}

// scenarioTable is the four-row A/B/Category table used across stage tests.
func scenarioTable(t *testing.T) *dataset.Table {
	t.Helper()
	nan := math.NaN()
	tbl, err := dataset.New(
		dataset.NewNumericColumn("A", []float64{1, 2, nan, 4}),
		dataset.NewNumericColumn("B", []float64{5, nan, 7, 8}),
		dataset.NewCategoricalColumn("Category", []string{"X", "Y", "X", "Z"}, nil),
	)
	require.NoError(t, err)
	return tbl
}

func numericTable(t *testing.T, names []string, rows [][]float64) *dataset.Table {
	t.Helper()
	cols := make([]dataset.Column, len(names))
	for j, name := range names {
		values := make([]float64, len(rows))
		for i, row := range rows {
			values[i] = row[j]
		}
		cols[j] = dataset.NewNumericColumn(name, values)
	}
	tbl, err := dataset.New(cols...)
	require.NoError(t, err)
	return tbl
}
