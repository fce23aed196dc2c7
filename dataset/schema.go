package dataset

// Field describes one column of a schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of fields of a table. Version increases each
// time a stage changes the column set.
type Schema struct {
	Version int
	Fields  []Field
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.Fields) }

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Numeric returns the names of numeric fields in column order.
func (s Schema) Numeric() []string { return s.names(Numeric) }

// Categorical returns the names of categorical fields in column order.
func (s Schema) Categorical() []string { return s.names(Categorical) }

// NumericIndices returns the positions of numeric fields.
func (s Schema) NumericIndices() []int { return s.indices(Numeric) }

// CategoricalIndices returns the positions of categorical fields.
func (s Schema) CategoricalIndices() []int { return s.indices(Categorical) }

func (s Schema) names(k Kind) []string {
	var out []string
	for _, f := range s.Fields {
		if f.Kind == k {
			out = append(out, f.Name)
		}
	}
	return out
}

func (s Schema) indices(k Kind) []int {
	var out []int
	for i, f := range s.Fields {
		if f.Kind == k {
			out = append(out, i)
		}
	}
	return out
}
