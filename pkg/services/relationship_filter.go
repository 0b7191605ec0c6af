package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
	"github.com/schemix-inc/schemix-engine/pkg/strmatch"
)

// RelationshipFilter rejects edges whose key columns are semantically
// non-identifying (status, city, currency, names, flags, free text),
// independent of statistical match quality. This structural rule takes
// precedence over all numeric evidence: a status column cannot be a key no
// matter how well its values overlap.
type RelationshipFilter interface {
	// Filter partitions edges into valid and rejected. Rejected edges
	// carry an explicit reason and are retained, never discarded.
	Filter(edges []models.RelationshipEdge) (valid, rejected []models.RelationshipEdge)
}

type relationshipFilter struct {
	policy *config.Policy
	logger *zap.Logger
}

// NewRelationshipFilter creates a new RelationshipFilter.
func NewRelationshipFilter(policy *config.Policy, logger *zap.Logger) RelationshipFilter {
	return &relationshipFilter{
		policy: policy,
		logger: logger.Named("relationship-filter"),
	}
}

func (f *relationshipFilter) Filter(edges []models.RelationshipEdge) (valid, rejected []models.RelationshipEdge) {
	valid = make([]models.RelationshipEdge, 0, len(edges))

	for _, edge := range edges {
		normParent := strmatch.Normalize(edge.ParentColumn)
		normChild := strmatch.Normalize(edge.ChildColumn)

		var reasons []string
		if token, found := f.policy.ExcludedToken(normParent); found {
			reasons = append(reasons, fmt.Sprintf("parent column %q is descriptive/status (%s), not a key", edge.ParentColumn, token))
		}
		if token, found := f.policy.ExcludedToken(normChild); found {
			reasons = append(reasons, fmt.Sprintf("child column %q is descriptive/status (%s), not a key", edge.ChildColumn, token))
		}

		if len(reasons) > 0 {
			edge.RejectionReason = strings.Join(reasons, "; ")
			edge.ConfidenceLevel = models.ConfidenceInvalid
			rejected = append(rejected, edge)
			f.logger.Debug("Rejected descriptive-column edge",
				zap.String("parent", edge.ParentTable+"."+edge.ParentColumn),
				zap.String("child", edge.ChildTable+"."+edge.ChildColumn),
				zap.String("reason", edge.RejectionReason))
			continue
		}

		valid = append(valid, edge)
	}

	return valid, rejected
}
