package models

// ============================================================================
// Severity
// ============================================================================

// Severity grades a data-quality issue.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// ValidSeverities contains all valid severity values.
var ValidSeverities = []Severity{
	SeverityHigh,
	SeverityMedium,
}

// IsValidSeverity checks if the given severity is valid.
func IsValidSeverity(s Severity) bool {
	for _, v := range ValidSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// ============================================================================
// Diagnostics
// ============================================================================

// MissingKeyDiagnostic reports a table with no qualifying key candidate.
type MissingKeyDiagnostic struct {
	TableName  string `json:"table"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// DirectionCorrection records an edge whose parent/child roles were swapped
// to agree with the entity hierarchy.
type DirectionCorrection struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Reason    string `json:"reason"`
}

// DataQualityIssue reports orphaned child values on an otherwise valid edge:
// child key values with no counterpart in the parent's key set.
type DataQualityIssue struct {
	TableName   string   `json:"table"`
	ColumnName  string   `json:"column"`
	Issue       string   `json:"issue"`
	OrphanCount int      `json:"orphan_count"`
	OrphanRatio float64  `json:"orphan_ratio"`
	Severity    Severity `json:"severity"`
}

// DiagnosticsReport collects all advisory findings of a run. Every entry is
// non-fatal; the engine still returns a best-effort result alongside it.
type DiagnosticsReport struct {
	MissingPrimaryKeys   []MissingKeyDiagnostic `json:"missing_primary_keys"`
	DirectionCorrections []DirectionCorrection  `json:"direction_corrections"`
	DataQualityIssues    []DataQualityIssue     `json:"data_quality_issues"`
}
