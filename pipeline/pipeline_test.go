package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/trajprep/dataset"
	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"github.com/YuminosukeSato/trajprep/pkg/log"
)

func TestPipelineRun_Scenario(t *testing.T) {
	warnings := captureWarnings(t)
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	dir := t.TempDir()

	cfg := RunConfig{
		InputPath:   writeFile(t, dir, "data.csv", "1,5,X\n2,,Y\n,7,X\n4,8,Z\n"),
		ColumnsPath: writeFile(t, dir, "columns.txt", "A\nB\nCategory\n"),
		OutputPath:  filepath.Join(dir, "out.csv"),
	}

	res, err := New(WithLoggerProvider(provider)).Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 6, res.Columns)
	assert.Equal(t, 3, res.Components)
	assert.False(t, res.FeaturesAdded)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, res.ExplainedVarianceRatio, 1e-9)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A,B,Category_Z,PC1,PC2,PC3", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "-1,-1,0,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,1,1,"))

	// 特徴量の列がないため警告が一件出る
	require.Len(t, warnings(), 1)
	var mc *errors.MissingColumnsWarning
	assert.True(t, errors.As(warnings()[0], &mc))

	logger := provider.Logger()
	assert.True(t, logger.ContainsMessage("dataset loaded"))
	assert.True(t, logger.ContainsMessage("processed dataset saved"))
	assert.True(t, logger.ContainsField(log.ComponentKey, "Pipeline"))
}

func TestPipelineRun_WithFeatures(t *testing.T) {
	captureWarnings(t)
	dir := t.TempDir()

	names := append(FeatureInputs(), "label")
	rows := []string{
		"3.1,1.2,0.5,2.0,10.4,4.0,a",
		"2.9,1.0,0.7,2.5,8.1,3.9,b",
		"3.5,1.4,0.2,1.8,12.0,4.4,a",
		"4.0,1.9,0.9,2.2,9.7,3.1,c",
		"2.2,0.8,0.4,2.9,7.5,2.8,b",
	}
	cfg := RunConfig{
		InputPath:   writeFile(t, dir, "data.csv", strings.Join(rows, "\n")+"\n"),
		ColumnsPath: writeFile(t, dir, "columns.txt", strings.Join(names, "\n")),
		OutputPath:  filepath.Join(dir, "out.csv"),
	}

	res, err := New(WithComponents(3), WithVariancePlot(filepath.Join(dir, "scree.png"))).Run(cfg)
	require.NoError(t, err)

	// 6 数値 + 3 派生 + 2 指示列 + 3 主成分
	assert.True(t, res.FeaturesAdded)
	assert.Equal(t, 3, res.Components)
	assert.Equal(t, 14, res.Columns)
	assert.Equal(t, 5, res.Rows)

	out, err := dataset.LoadRaw(cfg.OutputPath)
	require.NoError(t, err)
	header := out.Column(6).Labels[0]
	assert.Equal(t, VelocityDifference, header)

	info, err := os.Stat(filepath.Join(dir, "scree.png"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPipelineRun_SchemaMismatch(t *testing.T) {
	warnings := captureWarnings(t)
	dir := t.TempDir()

	cfg := RunConfig{
		InputPath:   writeFile(t, dir, "data.csv", "1,2,3\n4,5,7\n7,8,8\n"),
		ColumnsPath: writeFile(t, dir, "columns.txt", "x\n"),
		OutputPath:  filepath.Join(dir, "out.csv"),
	}

	res, err := New(WithComponents(1)).Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Columns)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "x,Unnamed_0,Unnamed_1,PC1\n"))

	var sm *errors.SchemaMismatchWarning
	found := false
	for _, w := range warnings() {
		if errors.As(w, &sm) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPipelineRun_Errors(t *testing.T) {
	captureWarnings(t)
	dir := t.TempDir()
	columns := writeFile(t, dir, "columns.txt", "a\nb\n")
	out := filepath.Join(dir, "out.csv")

	t.Run("input not found", func(t *testing.T) {
		_, err := New().Run(RunConfig{
			InputPath:   filepath.Join(dir, "absent.csv"),
			ColumnsPath: columns,
			OutputPath:  out,
		})
		var nf *errors.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "dataset", nf.Resource)
	})

	t.Run("columns not found", func(t *testing.T) {
		_, err := New().Run(RunConfig{
			InputPath:   writeFile(t, dir, "ok.csv", "1,2\n3,4\n"),
			ColumnsPath: filepath.Join(dir, "absent.txt"),
			OutputPath:  out,
		})
		var nf *errors.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "column names", nf.Resource)
	})

	t.Run("parse failure aborts", func(t *testing.T) {
		_, err := New().Run(RunConfig{
			InputPath:   writeFile(t, dir, "bad.csv", "1,2\n3\n"),
			ColumnsPath: columns,
			OutputPath:  out,
		})
		var pe *errors.ParseError
		require.True(t, errors.As(err, &pe))
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("no complete rows", func(t *testing.T) {
		_, err := New().Run(RunConfig{
			InputPath:   writeFile(t, dir, "gaps.csv", "1,\n,2\n"),
			ColumnsPath: columns,
			OutputPath:  out,
		})
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("variance plot failure", func(t *testing.T) {
		plot := filepath.Join(dir, "missing", "variance.png")
		_, err := New(WithVariancePlot(plot)).Run(RunConfig{
			InputPath:   writeFile(t, dir, "plot.csv", "1,2\n3,5\n4,4\n"),
			ColumnsPath: columns,
			OutputPath:  out,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "variance plot")
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("invalid components", func(t *testing.T) {
		_, err := New(WithComponents(0)).Run(RunConfig{})
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}
