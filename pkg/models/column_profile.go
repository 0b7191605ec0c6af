package models

// ============================================================================
// Semantic Types
// ============================================================================

// SemanticType is the inferred role of a column's data.
type SemanticType string

const (
	SemanticID      SemanticType = "ID"
	SemanticCode    SemanticType = "Code"
	SemanticAmount  SemanticType = "Amount"
	SemanticDate    SemanticType = "Date"
	SemanticStatus  SemanticType = "Status"
	SemanticText    SemanticType = "Text"
	SemanticUnknown SemanticType = "Unknown" // column has no non-null values
)

// ValidSemanticTypes contains all valid semantic type values.
var ValidSemanticTypes = []SemanticType{
	SemanticID,
	SemanticCode,
	SemanticAmount,
	SemanticDate,
	SemanticStatus,
	SemanticText,
	SemanticUnknown,
}

// IsValidSemanticType checks if the given type is valid.
func IsValidSemanticType(t SemanticType) bool {
	for _, v := range ValidSemanticTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsIdentifying reports whether the type can anchor a key. Only ID and Code
// columns qualify as key material.
func (t SemanticType) IsIdentifying() bool {
	return t == SemanticID || t == SemanticCode
}

// ============================================================================
// Value Shape
// ============================================================================

// Value shape formats.
const (
	ShapeFormatAlphanumeric = "Alphanumeric"
	ShapeFormatNumeric      = "Numeric"
)

// ValueShape describes the surface form of a column's values. It is
// informational: downstream heuristics may use it as a tie-breaker but never
// as a hard gate.
type ValueShape struct {
	// Prefix is the most frequent 3-character prefix when it covers more
	// than half of the sampled values, empty otherwise.
	Prefix    string `json:"prefix,omitempty"`
	MinLength int    `json:"min_length"`
	MaxLength int    `json:"max_length"`
	// Format is Alphanumeric or Numeric for ID-typed columns, empty otherwise.
	Format string `json:"format,omitempty"`
}

// FixedLength reports whether all sampled values share one length.
func (s ValueShape) FixedLength() bool {
	return s.MinLength == s.MaxLength && s.MaxLength > 0
}

// ============================================================================
// Column Profile
// ============================================================================

// ColumnProfile is the derived, immutable statistics record for one
// (table, column) pair. Created once per invocation by the profiler and
// never mutated afterward.
type ColumnProfile struct {
	TableName      string       `json:"table_name"`
	ColumnName     string       `json:"column_name"`
	NormalizedName string       `json:"normalized_name"`
	SemanticType   SemanticType `json:"semantic_type"`

	// UniquenessRatio is distinct_non_null / non_null (0 for empty columns).
	UniquenessRatio float64 `json:"uniqueness_ratio"`
	// NullRatio is null_count / row_count.
	NullRatio float64 `json:"null_ratio"`

	RowCount      int `json:"row_count"`
	NonNullCount  int `json:"non_null_count"`
	DistinctCount int `json:"distinct_count"`
	NullCount     int `json:"null_count"`

	Shape        ValueShape `json:"value_shape"`
	SampleValues []string   `json:"sample_values,omitempty"`
}
