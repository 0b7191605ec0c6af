package models

// KeyCandidate is the single best primary-key hypothesis for a table.
// Only produced when the column's uniqueness ratio clears the configured
// threshold, its semantic type is identifying, and its name matches a
// recognized entity identifier pattern.
type KeyCandidate struct {
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
	// Entity is the recognized entity whose identifier pattern the column
	// name matched (customer, account, transaction, loan, branch, card).
	Entity string `json:"entity"`
	// Confidence equals the column's uniqueness ratio.
	Confidence float64 `json:"confidence"`
}
