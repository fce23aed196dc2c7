// Package dataset holds the in-memory table the preprocessing stages pass
// between each other, together with its CSV reader and writer.
package dataset

import (
	"math"
	"slices"
	"strconv"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Kind is the inferred type of a column.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a missing cell.
	Numeric Kind = iota
	// Categorical columns hold string labels with a parallel null mask.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is a single named column. Only the slice matching Kind is populated.
type Column struct {
	Name   string
	Kind   Kind
	Values []float64
	Labels []string
	Null   []bool
}

// NewNumericColumn returns a numeric column. NaN values are missing.
func NewNumericColumn(name string, values []float64) Column {
	return Column{Name: name, Kind: Numeric, Values: values}
}

// NewCategoricalColumn returns a categorical column. A nil null mask means no
// cell is missing.
func NewCategoricalColumn(name string, labels []string, null []bool) Column {
	if null == nil {
		null = make([]bool, len(labels))
	}
	return Column{Name: name, Kind: Categorical, Labels: labels, Null: null}
}

// Len returns the number of cells.
func (c Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Values)
	}
	return len(c.Labels)
}

// IsMissing reports whether cell i is missing.
func (c Column) IsMissing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Values[i])
	}
	return c.Null[i]
}

// Observed returns the number of non-missing cells.
func (c Column) Observed() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if !c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Format renders cell i for CSV output. Missing cells are empty.
func (c Column) Format(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	if c.Kind == Numeric {
		return strconv.FormatFloat(c.Values[i], 'g', -1, 64)
	}
	return c.Labels[i]
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	out.Values = slices.Clone(c.Values)
	out.Labels = slices.Clone(c.Labels)
	out.Null = slices.Clone(c.Null)
	return out
}

func (c Column) take(rows []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == Numeric {
		out.Values = make([]float64, len(rows))
		for k, i := range rows {
			out.Values[k] = c.Values[i]
		}
		return out
	}
	out.Labels = make([]string, len(rows))
	out.Null = make([]bool, len(rows))
	for k, i := range rows {
		out.Labels[k] = c.Labels[i]
		out.Null[k] = c.Null[i]
	}
	return out
}

// Table is an immutable, column-oriented dataset. Every builder method returns
// a new table and leaves the receiver untouched. Changes to the column set
// bump the schema version.
type Table struct {
	columns []Column
	nrows   int
	version int
}

// New builds a table at schema version 1. All columns must have the same length.
func New(columns ...Column) (*Table, error) {
	return newTable(columns, 1)
}

func newTable(columns []Column, version int) (*Table, error) {
	nrows := 0
	if len(columns) > 0 {
		nrows = columns[0].Len()
	}
	for _, c := range columns {
		if c.Kind == Categorical && len(c.Null) != len(c.Labels) {
			return nil, errors.NewDimensionError("dataset.New", len(c.Labels), len(c.Null), 0)
		}
		if c.Len() != nrows {
			return nil, errors.NewDimensionError("dataset.New", nrows, c.Len(), 0)
		}
	}
	return &Table{columns: columns, nrows: nrows, version: version}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nrows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Schema returns the table's schema.
func (t *Table) Schema() Schema {
	fields := make([]Field, len(t.columns))
	for i, c := range t.columns {
		fields[i] = Field{Name: c.Name, Kind: c.Kind}
	}
	return Schema{Version: t.version, Fields: fields}
}

// Column returns column i. The returned slices are shared and must be treated
// as read-only.
func (t *Table) Column(i int) Column { return t.columns[i] }

// Lookup returns the first column with the given name.
func (t *Table) Lookup(name string) (Column, bool) {
	if i := t.Index(name); i >= 0 {
		return t.columns[i], true
	}
	return Column{}, false
}

// Index returns the position of the first column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// MissingCells counts missing cells over the whole table.
func (t *Table) MissingCells() int {
	n := 0
	for _, c := range t.columns {
		n += c.Len() - c.Observed()
	}
	return n
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.clone()
	}
	return &Table{columns: cols, nrows: t.nrows, version: t.version}
}

// WithNames returns a copy whose columns carry the given names. len(names)
// must equal NumCols.
func (t *Table) WithNames(names []string) (*Table, error) {
	if len(names) != len(t.columns) {
		return nil, errors.NewDimensionError("Table.WithNames", len(t.columns), len(names), 1)
	}
	out := t.Clone()
	for i := range out.columns {
		out.columns[i].Name = names[i]
	}
	out.version++
	return out, nil
}

// SelectColumns returns a table holding the columns at idx, in that order.
func (t *Table) SelectColumns(idx []int) *Table {
	cols := make([]Column, len(idx))
	for k, i := range idx {
		cols[k] = t.columns[i].clone()
	}
	nrows := t.nrows
	if len(cols) == 0 {
		nrows = 0
	}
	return &Table{columns: cols, nrows: nrows, version: t.version + 1}
}

// SelectRows returns a table holding the rows at idx. The schema is unchanged.
func (t *Table) SelectRows(idx []int) *Table {
	cols := make([]Column, len(t.columns))
	for k, c := range t.columns {
		cols[k] = c.take(idx)
	}
	nrows := len(idx)
	if len(cols) == 0 {
		nrows = 0
	}
	return &Table{columns: cols, nrows: nrows, version: t.version}
}

// AppendColumns returns a table with cols added after the existing columns.
func (t *Table) AppendColumns(cols ...Column) (*Table, error) {
	all := make([]Column, 0, len(t.columns)+len(cols))
	for _, c := range t.columns {
		all = append(all, c.clone())
	}
	all = append(all, cols...)
	if len(t.columns) > 0 {
		for _, c := range cols {
			if c.Len() != t.nrows {
				return nil, errors.NewDimensionError("Table.AppendColumns", t.nrows, c.Len(), 0)
			}
		}
	}
	return newTable(all, t.version+1)
}

// NumericMatrix copies the numeric columns at idx into a rows × len(idx)
// matrix. It returns nil when there are no rows or no columns to copy.
func (t *Table) NumericMatrix(idx []int) (*mat.Dense, error) {
	for _, i := range idx {
		if t.columns[i].Kind != Numeric {
			return nil, errors.NewValidationError("column", "column is not numeric", t.columns[i].Name)
		}
	}
	if t.nrows == 0 || len(idx) == 0 {
		return nil, nil
	}
	m := mat.NewDense(t.nrows, len(idx), nil)
	for k, i := range idx {
		m.SetCol(k, t.columns[i].Values)
	}
	return m, nil
}

// WithNumericValues returns a copy in which the numeric columns at idx hold
// the columns of m. The schema is unchanged.
func (t *Table) WithNumericValues(idx []int, m mat.Matrix) (*Table, error) {
	r, c := m.Dims()
	if c != len(idx) {
		return nil, errors.NewDimensionError("Table.WithNumericValues", len(idx), c, 1)
	}
	if r != t.nrows {
		return nil, errors.NewDimensionError("Table.WithNumericValues", t.nrows, r, 0)
	}
	out := t.Clone()
	for k, i := range idx {
		if out.columns[i].Kind != Numeric {
			return nil, errors.NewValidationError("column", "column is not numeric", out.columns[i].Name)
		}
		out.columns[i].Values = mat.Col(nil, k, m)
	}
	return out, nil
}
