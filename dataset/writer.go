package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// WriteCSV writes t to path with a header row, creating or truncating the file.
func WriteCSV(path string, t *Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	return Write(f, t)
}

// Write writes t as CSV with a header row. Numbers use the shortest
// representation that round-trips; missing cells are empty.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return errors.Wrap(err, "write header")
	}

	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j := range record {
			record[j] = t.Column(j).Format(i)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}
