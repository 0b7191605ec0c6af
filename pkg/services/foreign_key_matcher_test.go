package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
	"github.com/schemix-inc/schemix-engine/pkg/strmatch"
)

func newTestMatcher() ForeignKeyMatcher {
	return NewForeignKeyMatcher(testAnalyzerConfig(), config.DefaultPolicy(), strmatch.NewLevenshtein(), zap.NewNop())
}

func bankingTables() map[string]*models.Table {
	customers := makeTable("customers",
		[]string{"customer_id", "customer_name"},
		[]string{"C001", "Alice"},
		[]string{"C002", "Bob"},
		[]string{"C003", "Carol"},
		[]string{"C004", "Dan"},
		[]string{"C005", "Eve"},
	)
	accounts := makeTable("accounts",
		[]string{"account_number", "customer_id", "account_status"},
		[]string{"ACC01", "C001", "ACTIVE"},
		[]string{"ACC02", "C001", "ACTIVE"},
		[]string{"ACC03", "C002", "CLOSED"},
		[]string{"ACC04", "C003", "ACTIVE"},
		[]string{"ACC05", "C004", "ACTIVE"},
		[]string{"ACC06", "C005", "FROZEN"},
	)
	return map[string]*models.Table{
		"customers": customers,
		"accounts":  accounts,
	}
}

func bankingKeys() map[string]models.KeyCandidate {
	return map[string]models.KeyCandidate{
		"customers": {TableName: "customers", ColumnName: "customer_id", Entity: "customer", Confidence: 1.0},
	}
}

func TestDetectCandidatesExactNameMatch(t *testing.T) {
	edges, err := newTestMatcher().DetectCandidates(context.Background(), bankingTables(), bankingKeys())
	require.NoError(t, err)
	require.Len(t, edges, 1)

	edge := edges[0]
	assert.Equal(t, "customers", edge.ParentTable)
	assert.Equal(t, "customer_id", edge.ParentColumn)
	assert.Equal(t, "accounts", edge.ChildTable)
	assert.Equal(t, "customer_id", edge.ChildColumn)
	assert.Equal(t, 1.0, edge.MatchRate)
	assert.Equal(t, 5, edge.OverlapCount)
	assert.Equal(t, 5, edge.ParentDistinct)
	assert.Equal(t, 5, edge.ChildDistinct)
}

func TestDetectCandidatesSuffixVariantMatch(t *testing.T) {
	tables := bankingTables()
	// Same key under an abbreviated name still matches via base containment.
	tables["accounts"] = makeTable("accounts",
		[]string{"account_number", "cust_id"},
		[]string{"ACC01", "C001"},
		[]string{"ACC02", "C002"},
		[]string{"ACC03", "C003"},
	)

	edges, err := newTestMatcher().DetectCandidates(context.Background(), tables, bankingKeys())
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "cust_id", edges[0].ChildColumn)
}

func TestDetectCandidatesBelowFloorDroppedSilently(t *testing.T) {
	tables := bankingTables()
	tables["accounts"] = makeTable("accounts",
		[]string{"account_number", "customer_id"},
		[]string{"ACC01", "C001"},
		[]string{"ACC02", "X900"},
		[]string{"ACC03", "X901"},
		[]string{"ACC04", "X902"},
	)

	edges, err := newTestMatcher().DetectCandidates(context.Background(), tables, bankingKeys())
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDetectCandidatesSkipsDescriptiveColumns(t *testing.T) {
	tables := map[string]*models.Table{
		"customers": makeTable("customers",
			[]string{"customer_id"},
			[]string{"C001"}, []string{"C002"}, []string{"C003"},
		),
		// Value overlap is perfect, but the child column is descriptive.
		"audit": makeTable("audit",
			[]string{"customer_id_status"},
			[]string{"C001"}, []string{"C002"}, []string{"C003"},
		),
	}

	edges, err := newTestMatcher().DetectCandidates(context.Background(), tables, bankingKeys())
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDetectCandidatesIgnoresUnrelatedColumnNames(t *testing.T) {
	tables := map[string]*models.Table{
		"customers": makeTable("customers",
			[]string{"customer_id"},
			[]string{"1"}, []string{"2"}, []string{"3"},
		),
		// Identical numeric values under an unrelated name must not match.
		"metrics": makeTable("metrics",
			[]string{"retry_count"},
			[]string{"1"}, []string{"2"}, []string{"3"},
		),
	}

	edges, err := newTestMatcher().DetectCandidates(context.Background(), tables, bankingKeys())
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDetectCandidatesDeterministicOrder(t *testing.T) {
	tables := bankingTables()
	tables["loans"] = makeTable("loans",
		[]string{"loan_id", "customer_id"},
		[]string{"L01", "C001"},
		[]string{"L02", "C002"},
		[]string{"L03", "C003"},
	)

	matcher := newTestMatcher()
	first, err := matcher.DetectCandidates(context.Background(), tables, bankingKeys())
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Child tables scan in sorted order.
	assert.Equal(t, "accounts", first[0].ChildTable)
	assert.Equal(t, "loans", first[1].ChildTable)

	for i := 0; i < 5; i++ {
		again, err := matcher.DetectCandidates(context.Background(), tables, bankingKeys())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDetectCandidatesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestMatcher().DetectCandidates(ctx, bankingTables(), bankingKeys())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
