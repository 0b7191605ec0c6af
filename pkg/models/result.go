package models

// Summary aggregates run-level totals for quick display.
type Summary struct {
	TotalTables         int `json:"total_tables"`
	TotalColumns        int `json:"total_columns"`
	PrimaryKeysDetected int `json:"primary_keys_detected"`
	ValidRelationships  int `json:"valid_relationships"`
	RejectedEdges       int `json:"rejected_edges"`
}

// AnalysisResult is the full structured output of one engine invocation.
// All fields are plain data, serializable without loss; nothing here holds
// behavior or references back into the input tables.
type AnalysisResult struct {
	// Profiles lists every column profile grouped by table name.
	Profiles map[string][]ColumnProfile `json:"column_profiles"`

	// KeyCandidates maps table name to its single best key candidate.
	// Tables with no qualifying column are absent from the map.
	KeyCandidates map[string]KeyCandidate `json:"key_candidates"`

	// Relationships are the surviving edges (STRONG or WEAK), fully
	// annotated with direction, cardinality and confidence.
	Relationships []RelationshipEdge `json:"relationships"`

	// Rejected lists every edge removed after candidate detection, each
	// with its rejection reason. Retained for diagnostics, never silently
	// discarded.
	Rejected []RelationshipEdge `json:"rejected_relationships"`

	Structure   SchemaStructure   `json:"structure"`
	Diagnostics DiagnosticsReport `json:"diagnostics"`
	Summary     Summary           `json:"summary"`
}
