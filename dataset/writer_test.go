package dataset

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tbl, err := New(
		NewNumericColumn("A", []float64{1, 0.25, math.NaN()}),
		NewCategoricalColumn("name, quoted", []string{"x", "y,z", "w"}, []bool{false, false, true}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))

	assert.Equal(t, "A,\"name, quoted\"\n1,x\n0.25,\"y,z\"\n,\n", buf.String())
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl, err := New(
		NewNumericColumn("A", []float64{-1.5, 2e-7}),
		NewCategoricalColumn("B", []string{"p", "q"}, nil),
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n-1.5,p\n2e-07,q\n", string(data))

	// ヘッダーを除いて読み直すと値が一致する
	body := writeFile(t, "body.csv", "-1.5,p\n2e-07,q\n")
	back, err := LoadRaw(body)
	require.NoError(t, err)
	assert.Equal(t, tbl.Column(0).Values, back.Column(0).Values)
	assert.Equal(t, tbl.Column(1).Labels, back.Column(1).Labels)
}

func TestWriteCSV_BadPath(t *testing.T) {
	tbl, err := New(NewNumericColumn("A", []float64{1}))
	require.NoError(t, err)

	err = WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), tbl)
	assert.Error(t, err)
}
