package apperrors

import "errors"

var (
	// ErrNoTables signals a violated calling contract: the caller passed a
	// nil or empty table collection. Data-shape problems (empty tables,
	// zero-column tables) are NOT errors; they produce degenerate results.
	ErrNoTables = errors.New("no tables provided")

	// ErrNilTable signals a nil entry inside the table collection.
	ErrNilTable = errors.New("nil table in collection")

	// ErrDuplicateTable signals two tables sharing one name, which would
	// make the output ambiguous.
	ErrDuplicateTable = errors.New("duplicate table name")
)
