package services

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
	"github.com/schemix-inc/schemix-engine/pkg/strmatch"
)

// ForeignKeyMatcher scans, for every ordered pair of tables, the candidate
// child's columns for value-set overlap against the candidate parent's key.
// An edge is emitted only when the column names match, the overlap clears
// the match-rate floor, and the entity pair is business-plausible. Edges
// below the floor are dropped silently: that is expected heuristic
// filtering, not an error.
//
// Pair scanning is parallel across parent tables; each comparison only
// reads profiles and table columns, so workers share no mutable state.
// Results are ordered by (parent, child, column) so repeated runs produce
// identical output.
type ForeignKeyMatcher interface {
	DetectCandidates(
		ctx context.Context,
		tables map[string]*models.Table,
		keys map[string]models.KeyCandidate,
	) ([]models.RelationshipEdge, error)
}

type foreignKeyMatcher struct {
	cfg        config.AnalyzerConfig
	policy     *config.Policy
	similarity strmatch.Similarity
	logger     *zap.Logger
}

// NewForeignKeyMatcher creates a new ForeignKeyMatcher.
func NewForeignKeyMatcher(
	cfg config.AnalyzerConfig,
	policy *config.Policy,
	similarity strmatch.Similarity,
	logger *zap.Logger,
) ForeignKeyMatcher {
	return &foreignKeyMatcher{
		cfg:        cfg,
		policy:     policy,
		similarity: similarity,
		logger:     logger.Named("foreign-key-matcher"),
	}
}

func (m *foreignKeyMatcher) DetectCandidates(
	ctx context.Context,
	tables map[string]*models.Table,
	keys map[string]models.KeyCandidate,
) ([]models.RelationshipEdge, error) {
	parentNames := make([]string, 0, len(keys))
	for name := range keys {
		parentNames = append(parentNames, name)
	}
	sort.Strings(parentNames)

	childNames := make([]string, 0, len(tables))
	for name := range tables {
		childNames = append(childNames, name)
	}
	sort.Strings(childNames)

	workers := m.cfg.MatchWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	edgesByParent := make([][]models.RelationshipEdge, len(parentNames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, parentName := range parentNames {
		i, parentName := i, parentName
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			edgesByParent[i] = m.scanParent(tables, keys[parentName], childNames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan table pairs: %w", err)
	}

	var edges []models.RelationshipEdge
	for _, parentEdges := range edgesByParent {
		edges = append(edges, parentEdges...)
	}

	m.logger.Info("Candidate edge detection complete",
		zap.Int("parents", len(parentNames)),
		zap.Int("tables", len(tables)),
		zap.Int("candidate_edges", len(edges)))

	return edges, nil
}

// scanParent compares one parent's key value set against every column of
// every other table, in deterministic child/column order.
func (m *foreignKeyMatcher) scanParent(
	tables map[string]*models.Table,
	parentKey models.KeyCandidate,
	childNames []string,
) []models.RelationshipEdge {
	parentTable := tables[parentKey.TableName]
	parentValues := parentTable.DistinctNonNull(parentKey.ColumnName)
	if len(parentValues) == 0 {
		return nil
	}
	normParent := strmatch.Normalize(parentKey.ColumnName)

	var edges []models.RelationshipEdge
	for _, childName := range childNames {
		if childName == parentKey.TableName {
			continue
		}
		child := tables[childName]

		for _, childColumn := range child.Columns {
			normChild := strmatch.Normalize(childColumn)

			// Descriptive columns never participate in edges. The filter
			// stage enforces the same rule again on whatever survives.
			if m.policy.IsExcludedColumn(normChild) {
				continue
			}

			if normChild != normParent && !m.columnsMatchForFK(normParent, normChild) {
				continue
			}

			childValues := child.DistinctNonNull(childColumn)
			if len(childValues) == 0 {
				continue
			}

			overlap := intersectionSize(parentValues, childValues)
			matchRate := float64(overlap) / float64(len(childValues))
			if matchRate < m.cfg.MatchRateThreshold {
				continue
			}

			if !m.flowPlausible(parentKey.TableName, childName, normParent, normChild) {
				m.logger.Debug("Rejected implausible entity flow",
					zap.String("parent", parentKey.TableName+"."+parentKey.ColumnName),
					zap.String("child", childName+"."+childColumn),
					zap.Float64("match_rate", matchRate))
				continue
			}

			edges = append(edges, models.RelationshipEdge{
				ParentTable:    parentKey.TableName,
				ParentColumn:   parentKey.ColumnName,
				ChildTable:     childName,
				ChildColumn:    childColumn,
				MatchRate:      matchRate,
				OverlapCount:   overlap,
				ParentDistinct: len(parentValues),
				ChildDistinct:  len(childValues),
			})
		}
	}
	return edges
}

// columnsMatchForFK checks whether two normalized column names refer to the
// same key: equal after suffix stripping, one containing the other, or
// fuzzy-similar above the configured threshold.
func (m *foreignKeyMatcher) columnsMatchForFK(normParent, normChild string) bool {
	parentBase := strmatch.StripKeySuffix(normParent)
	childBase := strmatch.StripKeySuffix(normChild)

	if parentBase == childBase {
		return true
	}
	if parentBase != "" && childBase != "" &&
		(containsAny(childBase, parentBase) || containsAny(parentBase, childBase)) {
		return true
	}
	return m.similarity.Ratio(parentBase, childBase) > m.cfg.NameSimilarityThreshold
}

// flowPlausible applies the coarse business check: the entity pair must be
// in the allowed-dependency list, or the column names must independently be
// near-identical. This keeps numeric coincidences from becoming edges.
func (m *foreignKeyMatcher) flowPlausible(parentTable, childTable, normParent, normChild string) bool {
	parentEntity := edgeEntityNormalized(m.policy, parentTable, normParent)
	childEntity := edgeEntityNormalized(m.policy, childTable, normChild)
	if m.policy.FlowAllowed(parentEntity, childEntity) {
		return true
	}

	if normParent == normChild {
		return true
	}
	parentBase := strmatch.StripKeySuffix(normParent)
	childBase := strmatch.StripKeySuffix(normChild)
	return m.similarity.Ratio(parentBase, childBase) >= m.cfg.NameSimilarityThreshold
}

// edgeEntityNormalized resolves the entity of an endpoint given an
// already-normalized column name.
func edgeEntityNormalized(policy *config.Policy, tableName, normColumn string) string {
	if entity, ok := policy.MatchEntity(normColumn); ok {
		return entity
	}
	return tableEntity(policy, tableName)
}

func intersectionSize(a, b map[string]struct{}) int {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	count := 0
	for v := range small {
		if _, ok := large[v]; ok {
			count++
		}
	}
	return count
}
