package services

import (
	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// DirectionResolver corrects the parent→child orientation of candidate
// edges against the entity precedence hierarchy and derives cardinality.
// When the raw detection order contradicts the hierarchy the endpoints are
// swapped and the match statistics recomputed symmetrically.
type DirectionResolver interface {
	Resolve(edges []models.RelationshipEdge) []models.RelationshipEdge
}

type directionResolver struct {
	cfg    config.AnalyzerConfig
	policy *config.Policy
	logger *zap.Logger
}

// NewDirectionResolver creates a new DirectionResolver.
func NewDirectionResolver(cfg config.AnalyzerConfig, policy *config.Policy, logger *zap.Logger) DirectionResolver {
	return &directionResolver{
		cfg:    cfg,
		policy: policy,
		logger: logger.Named("direction-resolver"),
	}
}

func (r *directionResolver) Resolve(edges []models.RelationshipEdge) []models.RelationshipEdge {
	resolved := make([]models.RelationshipEdge, 0, len(edges))
	for _, edge := range edges {
		resolved = append(resolved, r.resolveEdge(edge))
	}
	return resolved
}

func (r *directionResolver) resolveEdge(edge models.RelationshipEdge) models.RelationshipEdge {
	parentEntity := edgeEntity(r.policy, edge.ParentTable, edge.ParentColumn)
	childEntity := edgeEntity(r.policy, edge.ChildTable, edge.ChildColumn)

	parentRank, parentKnown := r.policy.PrecedenceOf(parentEntity)
	childRank, childKnown := r.policy.PrecedenceOf(childEntity)

	switch {
	case parentKnown && childKnown:
		edge.DirectionValidated = true
		if parentRank > childRank {
			// Hierarchy says the detected child is the logical parent.
			edge = edge.Swap()
			edge.DirectionCorrected = true
			edge.DirectionValidated = true
			// Overlap is symmetric; the rate is relative to the new child.
			if edge.ChildDistinct > 0 {
				edge.MatchRate = float64(edge.OverlapCount) / float64(edge.ChildDistinct)
			}
			r.logger.Debug("Corrected edge direction",
				zap.String("parent", edge.ParentTable+"."+edge.ParentColumn),
				zap.String("child", edge.ChildTable+"."+edge.ChildColumn))
		}
	case parentKnown || childKnown:
		// One endpoint anchors the hierarchy; the detected direction stands.
		edge.DirectionValidated = true
	default:
		// Neither endpoint resolves to a recognized entity: the direction
		// cannot be validated at all. The classifier marks such edges
		// INVALID while keeping them for diagnostics.
		edge.DirectionValidated = false
	}

	edge.Cardinality = r.deriveCardinality(edge)
	return edge
}

// deriveCardinality compares the distinct counts of the two key columns:
// the side with materially fewer distinct values is the "one" side; ties
// default to One-to-One.
func (r *directionResolver) deriveCardinality(edge models.RelationshipEdge) models.Cardinality {
	skew := r.cfg.CardinalitySkewRatio
	parent := float64(edge.ParentDistinct)
	child := float64(edge.ChildDistinct)

	switch {
	case parent < child*skew:
		return models.CardinalityOneToMany
	case child < parent*skew:
		return models.CardinalityManyToOne
	default:
		return models.CardinalityOneToOne
	}
}
