package dataset

import (
	"strconv"

	"github.com/YuminosukeSato/trajprep/pkg/errors"
)

// PlaceholderPrefix prefixes the names generated for columns without a name.
const PlaceholderPrefix = "Unnamed_"

// Align binds names to the columns of t by position. A longer list is
// truncated; a shorter one is padded with Unnamed_0, Unnamed_1, ... counted
// within the padding. A length mismatch raises a SchemaMismatchWarning through
// errors.Warn and never fails.
func Align(t *Table, names []string) *Table {
	n := t.NumCols()
	if len(names) != n {
		errors.Warn(errors.NewSchemaMismatchWarning(len(names), n))
	}

	bound := make([]string, n)
	copied := copy(bound, names)
	for i := copied; i < n; i++ {
		bound[i] = PlaceholderPrefix + strconv.Itoa(i-copied)
	}

	out, err := t.WithNames(bound)
	if err != nil {
		// len(bound) == NumCols by construction
		panic(err)
	}
	return out
}
