package services

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// DiagnosticsReporter produces the advisory findings of a run: tables
// without a detectable primary key, edges whose direction had to be
// corrected, and orphaned child values on otherwise valid relationships.
// Every finding is non-fatal.
type DiagnosticsReporter interface {
	Report(
		tables map[string]*models.Table,
		keys map[string]models.KeyCandidate,
		edges []models.RelationshipEdge,
	) models.DiagnosticsReport
}

type diagnosticsReporter struct {
	cfg    config.AnalyzerConfig
	logger *zap.Logger
}

// NewDiagnosticsReporter creates a new DiagnosticsReporter.
func NewDiagnosticsReporter(cfg config.AnalyzerConfig, logger *zap.Logger) DiagnosticsReporter {
	return &diagnosticsReporter{
		cfg:    cfg,
		logger: logger.Named("diagnostics-reporter"),
	}
}

func (d *diagnosticsReporter) Report(
	tables map[string]*models.Table,
	keys map[string]models.KeyCandidate,
	edges []models.RelationshipEdge,
) models.DiagnosticsReport {
	report := models.DiagnosticsReport{
		MissingPrimaryKeys:   d.missingKeys(tables, keys),
		DirectionCorrections: d.corrections(edges),
		DataQualityIssues:    d.orphanIssues(tables, edges),
	}

	d.logger.Info("Diagnostics report complete",
		zap.Int("missing_primary_keys", len(report.MissingPrimaryKeys)),
		zap.Int("direction_corrections", len(report.DirectionCorrections)),
		zap.Int("data_quality_issues", len(report.DataQualityIssues)))

	return report
}

func (d *diagnosticsReporter) missingKeys(
	tables map[string]*models.Table,
	keys map[string]models.KeyCandidate,
) []models.MissingKeyDiagnostic {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var missing []models.MissingKeyDiagnostic
	for _, name := range names {
		if _, ok := keys[name]; ok {
			continue
		}
		missing = append(missing, models.MissingKeyDiagnostic{
			TableName:  name,
			Issue:      "No primary key detected: no column is both sufficiently unique and named like an identifier",
			Suggestion: "Add a dedicated identifier column, or rename the intended key to a recognized pattern",
		})
	}
	return missing
}

func (d *diagnosticsReporter) corrections(edges []models.RelationshipEdge) []models.DirectionCorrection {
	var corrections []models.DirectionCorrection
	for _, edge := range edges {
		if !edge.DirectionCorrected {
			continue
		}
		corrections = append(corrections, models.DirectionCorrection{
			Original:  fmt.Sprintf("%s.%s → %s.%s", edge.ChildTable, edge.ChildColumn, edge.ParentTable, edge.ParentColumn),
			Corrected: fmt.Sprintf("%s.%s → %s.%s", edge.ParentTable, edge.ParentColumn, edge.ChildTable, edge.ChildColumn),
			Reason:    "detected direction contradicted the entity hierarchy; endpoints swapped to match domain precedence",
		})
	}
	return corrections
}

// orphanIssues flags child key values with no counterpart in the parent's
// key set. A modest orphan share is a data-quality warning; a large one is
// graded HIGH because it usually means the tables come from different
// snapshots or the key semantics differ.
func (d *diagnosticsReporter) orphanIssues(
	tables map[string]*models.Table,
	edges []models.RelationshipEdge,
) []models.DataQualityIssue {
	var issues []models.DataQualityIssue
	for _, edge := range edges {
		parent, parentOK := tables[edge.ParentTable]
		child, childOK := tables[edge.ChildTable]
		if !parentOK || !childOK {
			continue
		}

		parentSet := parent.DistinctNonNull(edge.ParentColumn)
		childSet := child.DistinctNonNull(edge.ChildColumn)
		if len(childSet) == 0 {
			continue
		}

		orphans := 0
		for v := range childSet {
			if _, ok := parentSet[v]; !ok {
				orphans++
			}
		}
		ratio := float64(orphans) / float64(len(childSet))
		if ratio <= d.cfg.OrphanWarnRatio {
			continue
		}

		severity := models.SeverityMedium
		if ratio > d.cfg.OrphanHighRatio {
			severity = models.SeverityHigh
		}

		issues = append(issues, models.DataQualityIssue{
			TableName:  edge.ChildTable,
			ColumnName: edge.ChildColumn,
			Issue: fmt.Sprintf("%d values (%.1f%%) in %s do not exist in parent %s.%s",
				orphans, ratio*100, edge.ChildColumn, edge.ParentTable, edge.ParentColumn),
			OrphanCount: orphans,
			OrphanRatio: ratio,
			Severity:    severity,
		})
	}
	return issues
}
