package services

import (
	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// KeyCandidateDetector selects, per table, the single best primary-key
// candidate: the most unique column among those that clear the uniqueness
// threshold, profile as identifying (ID/Code), and match a recognized
// entity identifier naming pattern. Tables with no qualifying column yield
// no candidate; that is a diagnostic, not an error.
type KeyCandidateDetector interface {
	DetectKeys(profiles map[string][]models.ColumnProfile) map[string]models.KeyCandidate
}

type keyCandidateDetector struct {
	cfg    config.AnalyzerConfig
	policy *config.Policy
	logger *zap.Logger
}

// NewKeyCandidateDetector creates a new KeyCandidateDetector.
func NewKeyCandidateDetector(cfg config.AnalyzerConfig, policy *config.Policy, logger *zap.Logger) KeyCandidateDetector {
	return &keyCandidateDetector{
		cfg:    cfg,
		policy: policy,
		logger: logger.Named("key-candidate-detector"),
	}
}

func (d *keyCandidateDetector) DetectKeys(profiles map[string][]models.ColumnProfile) map[string]models.KeyCandidate {
	candidates := make(map[string]models.KeyCandidate)

	for tableName, tableProfiles := range profiles {
		var best *models.KeyCandidate

		for _, profile := range tableProfiles {
			if profile.UniquenessRatio < d.cfg.KeyUniquenessThreshold {
				continue
			}
			if !profile.SemanticType.IsIdentifying() {
				continue
			}
			entity, ok := d.policy.KeyPatternEntity(profile.NormalizedName)
			if !ok {
				continue
			}

			confidence := profile.UniquenessRatio
			if best == nil || confidence > best.Confidence {
				best = &models.KeyCandidate{
					TableName:  tableName,
					ColumnName: profile.ColumnName,
					Entity:     entity,
					Confidence: confidence,
				}
			}
		}

		if best != nil {
			candidates[tableName] = *best
			d.logger.Debug("Selected key candidate",
				zap.String("table", tableName),
				zap.String("column", best.ColumnName),
				zap.String("entity", best.Entity),
				zap.Float64("confidence", best.Confidence))
		} else {
			d.logger.Debug("No key candidate found", zap.String("table", tableName))
		}
	}

	return candidates
}
