package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// ConfidenceClassifier labels surviving edges STRONG, WEAK or INVALID from
// match rate and direction-validation evidence. INVALID edges are excluded
// from the final relationship list but retained for diagnostics.
type ConfidenceClassifier interface {
	// Classify splits edges into the surviving set (STRONG/WEAK, each with
	// a domain justification) and the invalid set (with reasons).
	Classify(edges []models.RelationshipEdge) (surviving, invalid []models.RelationshipEdge)
}

type confidenceClassifier struct {
	cfg    config.AnalyzerConfig
	policy *config.Policy
	logger *zap.Logger
}

// NewConfidenceClassifier creates a new ConfidenceClassifier.
func NewConfidenceClassifier(cfg config.AnalyzerConfig, policy *config.Policy, logger *zap.Logger) ConfidenceClassifier {
	return &confidenceClassifier{
		cfg:    cfg,
		policy: policy,
		logger: logger.Named("confidence-classifier"),
	}
}

func (c *confidenceClassifier) Classify(edges []models.RelationshipEdge) (surviving, invalid []models.RelationshipEdge) {
	for _, edge := range edges {
		switch {
		case edge.MatchRate >= c.cfg.StrongMatchCutoff && edge.DirectionValidated:
			edge.ConfidenceLevel = models.ConfidenceStrong
		case edge.MatchRate >= c.cfg.WeakMatchCutoff && edge.DirectionValidated:
			edge.ConfidenceLevel = models.ConfidenceWeak
		default:
			edge.ConfidenceLevel = models.ConfidenceInvalid
		}

		if edge.ConfidenceLevel == models.ConfidenceInvalid {
			if !edge.DirectionValidated {
				edge.RejectionReason = "direction could not be validated against the entity hierarchy"
			} else {
				edge.RejectionReason = fmt.Sprintf("match rate %.2f below acceptance floor", edge.MatchRate)
			}
			invalid = append(invalid, edge)
			continue
		}

		edge.Justification = c.justify(edge)
		surviving = append(surviving, edge)
	}

	c.logger.Info("Confidence classification complete",
		zap.Int("surviving", len(surviving)),
		zap.Int("invalid", len(invalid)))

	return surviving, invalid
}

// justify produces the human-readable domain rationale attached to each
// surviving edge.
func (c *confidenceClassifier) justify(edge models.RelationshipEdge) string {
	parentEntity := tableFirstEntity(c.policy, edge.ParentTable, edge.ParentColumn)
	childEntity := tableFirstEntity(c.policy, edge.ChildTable, edge.ChildColumn)

	switch {
	case parentEntity == "customer" && childEntity == "account":
		return "One customer can have multiple accounts. Each account belongs to exactly one customer."
	case parentEntity == "account" && childEntity == "transaction":
		return "One account can have many transactions. Each transaction belongs to exactly one account."
	case parentEntity != "" && parentEntity == childEntity:
		caser := strings.ToUpper(parentEntity[:1]) + parentEntity[1:]
		return fmt.Sprintf("%s entity referenced across datasets by a shared identifier.", caser)
	default:
		return fmt.Sprintf("Entity relationship: %s → %s based on matching key values.", edge.ParentTable, edge.ChildTable)
	}
}
