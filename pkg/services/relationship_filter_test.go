package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

func newTestFilter() RelationshipFilter {
	return NewRelationshipFilter(config.DefaultPolicy(), zap.NewNop())
}

func TestFilterPassesKeyColumns(t *testing.T) {
	edges := []models.RelationshipEdge{{
		ParentTable:  "customers",
		ParentColumn: "customer_id",
		ChildTable:   "accounts",
		ChildColumn:  "customer_id",
		MatchRate:    1.0,
	}}

	valid, rejected := newTestFilter().Filter(edges)
	assert.Len(t, valid, 1)
	assert.Empty(t, rejected)
}

func TestFilterRejectsDescriptiveChildColumn(t *testing.T) {
	edges := []models.RelationshipEdge{{
		ParentTable:  "customers",
		ParentColumn: "customer_id",
		ChildTable:   "accounts",
		ChildColumn:  "customer_id_status",
		MatchRate:    1.0,
	}}

	valid, rejected := newTestFilter().Filter(edges)
	assert.Empty(t, valid)
	require.Len(t, rejected, 1)

	edge := rejected[0]
	assert.True(t, edge.IsRejected())
	assert.Equal(t, models.ConfidenceInvalid, edge.ConfidenceLevel)
	assert.Contains(t, edge.RejectionReason, "customer_id_status")
	assert.Contains(t, edge.RejectionReason, "status")
}

func TestFilterRejectsBothEndpointsWithCombinedReason(t *testing.T) {
	edges := []models.RelationshipEdge{{
		ParentTable:  "branches",
		ParentColumn: "branch_city",
		ChildTable:   "accounts",
		ChildColumn:  "currency_code",
		MatchRate:    0.92,
	}}

	_, rejected := newTestFilter().Filter(edges)
	require.Len(t, rejected, 1)

	reason := rejected[0].RejectionReason
	assert.Contains(t, reason, "parent column")
	assert.Contains(t, reason, "child column")
	assert.Contains(t, reason, "; ")
}

func TestFilterStatisticalStrengthDoesNotOverrideStructure(t *testing.T) {
	// A perfect match rate on a status column is still rejected.
	edges := []models.RelationshipEdge{{
		ParentTable:  "accounts",
		ParentColumn: "account_status",
		ChildTable:   "cards",
		ChildColumn:  "card_status",
		MatchRate:    1.0,
	}}

	valid, rejected := newTestFilter().Filter(edges)
	assert.Empty(t, valid)
	assert.Len(t, rejected, 1)
}
