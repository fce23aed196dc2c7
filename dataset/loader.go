package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// DefaultMissingTokens are the cell values read as missing.
var DefaultMissingTokens = []string{
	"", "NA", "N/A", "NaN", "nan", "null", "NULL", "<NA>",
	"None", "#N/A", "-NaN", "n/a", "<nil>",
}

type loadConfig struct {
	delimiter     rune
	missingTokens []string
}

// LoadOption configures LoadRaw.
type LoadOption func(*loadConfig)

// WithMissingTokens replaces the set of cell values read as missing.
func WithMissingTokens(tokens ...string) LoadOption {
	return func(c *loadConfig) {
		c.missingTokens = tokens
	}
}

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) LoadOption {
	return func(c *loadConfig) {
		c.delimiter = r
	}
}

// LoadRaw reads a headerless delimited file. Columns get positional names
// "0", "1", ... and a kind inferred from their values: integer and float
// columns are Numeric, everything else is Categorical.
//
// A missing file yields *errors.NotFoundError; malformed content yields
// *errors.ParseError.
func LoadRaw(path string, opts ...LoadOption) (*Table, error) {
	cfg := loadConfig{
		delimiter:     ',',
		missingTokens: DefaultMissingTokens,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := open(path, "dataset")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readRaw(f, path, cfg)
}

func open(path, resource string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(resource, path)
		}
		return nil, errors.NewParseError(path, err)
	}
	return f, nil
}

func readRaw(r io.Reader, path string, cfg loadConfig) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(false),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(cfg.missingTokens),
		dataframe.WithDelimiter(cfg.delimiter),
	)
	if df.Err != nil {
		return nil, errors.NewParseError(path, df.Err)
	}

	names := df.Names()
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = fromSeries(strconv.Itoa(i), df.Col(name))
	}
	t, err := New(cols...)
	if err != nil {
		return nil, errors.NewParseError(path, err)
	}
	return t, nil
}

func fromSeries(name string, s series.Series) Column {
	switch s.Type() {
	case series.Int, series.Float:
		return NewNumericColumn(name, s.Float())
	default:
		return NewCategoricalColumn(name, s.Records(), s.IsNaN())
	}
}

// LoadColumnNames reads one column name per line, trimming surrounding
// whitespace. A missing file yields *errors.NotFoundError.
func LoadColumnNames(path string) ([]string, error) {
	f, err := open(path, "column names")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readNames(f, path)
}

func readNames(r io.Reader, path string) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		names = append(names, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.NewParseError(path, err)
	}
	return names, nil
}
