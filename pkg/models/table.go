package models

// Value is a single cell of a table. Null cells carry an explicit flag so
// profiling can distinguish a missing value from an empty string.
type Value struct {
	Raw  string `json:"raw"`
	Null bool   `json:"null,omitempty"`
}

// Row maps column name to cell value.
type Row map[string]Value

// Table is a named, ordered collection of rows supplied by the parsing
// collaborator. The engine reads tables but never mutates them; a Table's
// lifetime spans one analysis invocation.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ColumnValues returns the cells of one column in row order. Rows that do
// not carry the column at all yield null cells.
func (t *Table) ColumnValues(column string) []Value {
	values := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, ok := row[column]
		if !ok {
			v = Value{Null: true}
		}
		values = append(values, v)
	}
	return values
}

// DistinctNonNull returns the set of distinct non-null values of a column,
// string-normalized (values compare as their raw text).
func (t *Table) DistinctNonNull(column string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, row := range t.Rows {
		v, ok := row[column]
		if !ok || v.Null {
			continue
		}
		set[v.Raw] = struct{}{}
	}
	return set
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}
