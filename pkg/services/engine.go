package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/apperrors"
	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
	"github.com/schemix-inc/schemix-engine/pkg/strmatch"
)

// Engine runs the full schema inference pipeline over a set of tables:
// profiling, key detection, relationship matching, direction resolution,
// filtering, confidence classification, module composition, diagnostics.
// The engine is stateless across invocations; two calls with equal input
// produce equal output.
type Engine interface {
	Analyze(ctx context.Context, tables []*models.Table) (*models.AnalysisResult, error)
}

type engine struct {
	cfg        config.AnalyzerConfig
	profiler   ColumnProfiler
	detector   KeyCandidateDetector
	matcher    ForeignKeyMatcher
	resolver   DirectionResolver
	filter     RelationshipFilter
	classifier ConfidenceClassifier
	composer   SchemaComposer
	reporter   DiagnosticsReporter
	logger     *zap.Logger
}

// New wires the pipeline stages with a shared configuration and policy.
func New(cfg *config.Config, policy *config.Policy, logger *zap.Logger) Engine {
	similarity := strmatch.NewLevenshtein()
	a := cfg.Analyzer

	return &engine{
		cfg:        a,
		profiler:   NewColumnProfiler(a, policy, logger),
		detector:   NewKeyCandidateDetector(a, policy, logger),
		matcher:    NewForeignKeyMatcher(a, policy, similarity, logger),
		resolver:   NewDirectionResolver(a, policy, logger),
		filter:     NewRelationshipFilter(policy, logger),
		classifier: NewConfidenceClassifier(a, policy, logger),
		composer:   NewSchemaComposer(policy, logger),
		reporter:   NewDiagnosticsReporter(a, logger),
		logger:     logger.Named("engine"),
	}
}

func (e *engine) Analyze(ctx context.Context, tables []*models.Table) (*models.AnalysisResult, error) {
	byName, err := indexTables(tables)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string][]models.ColumnProfile, len(tables))
	totalColumns := 0
	for _, table := range tables {
		profiles[table.Name] = e.profiler.ProfileTable(table)
		totalColumns += len(table.Columns)
	}

	keys := e.detector.DetectKeys(profiles)

	candidates, err := e.matcher.DetectCandidates(ctx, byName, keys)
	if err != nil {
		return nil, fmt.Errorf("detect relationship candidates: %w", err)
	}

	resolved := e.resolver.Resolve(candidates)
	kept, filteredOut := e.filter.Filter(resolved)
	relationships, invalid := e.classifier.Classify(kept)

	rejected := make([]models.RelationshipEdge, 0, len(filteredOut)+len(invalid))
	rejected = append(rejected, filteredOut...)
	rejected = append(rejected, invalid...)

	structure := e.composer.Compose(tables, keys, relationships)
	diagnostics := e.reporter.Report(byName, keys, relationships)

	result := &models.AnalysisResult{
		Profiles:      profiles,
		KeyCandidates: keys,
		Relationships: relationships,
		Rejected:      rejected,
		Structure:     structure,
		Diagnostics:   diagnostics,
		Summary: models.Summary{
			TotalTables:         len(tables),
			TotalColumns:        totalColumns,
			PrimaryKeysDetected: len(keys),
			ValidRelationships:  len(relationships),
			RejectedEdges:       len(rejected),
		},
	}

	e.logger.Info("Analysis complete",
		zap.Int("tables", result.Summary.TotalTables),
		zap.Int("columns", result.Summary.TotalColumns),
		zap.Int("primary_keys", result.Summary.PrimaryKeysDetected),
		zap.Int("relationships", result.Summary.ValidRelationships),
		zap.Int("rejected", result.Summary.RejectedEdges))

	return result, nil
}

// indexTables validates the calling contract and builds the name index.
func indexTables(tables []*models.Table) (map[string]*models.Table, error) {
	if len(tables) == 0 {
		return nil, apperrors.ErrNoTables
	}

	byName := make(map[string]*models.Table, len(tables))
	for _, table := range tables {
		if table == nil {
			return nil, apperrors.ErrNilTable
		}
		if _, exists := byName[table.Name]; exists {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateTable, table.Name)
		}
		byName[table.Name] = table
	}
	return byName, nil
}
