package models

// ============================================================================
// Cardinality
// ============================================================================

// Cardinality is the inferred relationship cardinality of an edge.
type Cardinality string

const (
	CardinalityOneToOne  Cardinality = "One-to-One"
	CardinalityOneToMany Cardinality = "One-to-Many"
	CardinalityManyToOne Cardinality = "Many-to-One"
)

// ValidCardinalities contains all valid cardinality values.
var ValidCardinalities = []Cardinality{
	CardinalityOneToOne,
	CardinalityOneToMany,
	CardinalityManyToOne,
}

// IsValidCardinality checks if the given cardinality is valid.
func IsValidCardinality(c Cardinality) bool {
	for _, v := range ValidCardinalities {
		if v == c {
			return true
		}
	}
	return false
}

// ReverseCardinality returns the cardinality for the reverse direction of an
// edge. One-to-Many becomes Many-to-One and vice versa; One-to-One is
// symmetric.
func ReverseCardinality(c Cardinality) Cardinality {
	switch c {
	case CardinalityOneToMany:
		return CardinalityManyToOne
	case CardinalityManyToOne:
		return CardinalityOneToMany
	default:
		return c
	}
}

// ============================================================================
// Confidence Levels
// ============================================================================

// ConfidenceLevel labels how trustworthy an edge is.
type ConfidenceLevel string

const (
	ConfidenceStrong  ConfidenceLevel = "STRONG"
	ConfidenceWeak    ConfidenceLevel = "WEAK"
	ConfidenceInvalid ConfidenceLevel = "INVALID"
)

// ValidConfidenceLevels contains all valid confidence level values.
var ValidConfidenceLevels = []ConfidenceLevel{
	ConfidenceStrong,
	ConfidenceWeak,
	ConfidenceInvalid,
}

// IsValidConfidenceLevel checks if the given level is valid.
func IsValidConfidenceLevel(l ConfidenceLevel) bool {
	for _, v := range ValidConfidenceLevels {
		if v == l {
			return true
		}
	}
	return false
}

// ============================================================================
// Relationship Edge
// ============================================================================

// RelationshipEdge is a directed parent→child key relationship between two
// tables: the parent owns the key, the child owns the reference. Edges are
// created by the matcher and progressively annotated by later stages;
// rejected edges are retained with a rejection reason rather than discarded.
type RelationshipEdge struct {
	ParentTable  string `json:"parent_table"`
	ParentColumn string `json:"parent_column"`
	ChildTable   string `json:"child_table"`
	ChildColumn  string `json:"child_column"`

	// MatchRate is |child ∩ parent| / |child| over distinct non-null values.
	MatchRate    float64 `json:"match_rate"`
	OverlapCount int     `json:"overlap_count"`

	// Distinct non-null value counts of the two key columns, used for
	// cardinality derivation and orphan analysis.
	ParentDistinct int `json:"parent_unique_count"`
	ChildDistinct  int `json:"child_unique_count"`

	Cardinality     Cardinality     `json:"relationship_cardinality,omitempty"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level,omitempty"`

	// DirectionValidated is set by the resolver when the edge orientation
	// could be checked against the entity hierarchy (whether or not it
	// needed correcting).
	DirectionValidated bool `json:"direction_validated"`
	// DirectionCorrected is set when the raw detection order contradicted
	// the hierarchy and the endpoints were swapped.
	DirectionCorrected bool `json:"direction_corrected"`

	// RejectionReason is non-empty for edges removed from the valid set.
	RejectionReason string `json:"rejection_reason,omitempty"`
	// Justification is a human-readable domain rationale for valid edges.
	Justification string `json:"justification,omitempty"`
}

// Swap returns a copy of the edge with parent and child roles exchanged and
// the distinct counts carried across. Match statistics are NOT recomputed
// here; the resolver recomputes them against the new child column.
func (e RelationshipEdge) Swap() RelationshipEdge {
	swapped := e
	swapped.ParentTable, swapped.ChildTable = e.ChildTable, e.ParentTable
	swapped.ParentColumn, swapped.ChildColumn = e.ChildColumn, e.ParentColumn
	swapped.ParentDistinct, swapped.ChildDistinct = e.ChildDistinct, e.ParentDistinct
	return swapped
}

// IsRejected reports whether the edge carries a rejection reason.
func (e RelationshipEdge) IsRejected() bool {
	return e.RejectionReason != ""
}
