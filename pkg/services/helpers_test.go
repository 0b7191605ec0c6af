package services

import (
	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// testAnalyzerConfig mirrors the shipped defaults without touching the
// environment.
func testAnalyzerConfig() config.AnalyzerConfig {
	return config.AnalyzerConfig{
		MatchRateThreshold:      0.70,
		KeyUniquenessThreshold:  0.95,
		StrongMatchCutoff:       0.90,
		WeakMatchCutoff:         0.70,
		NameSimilarityThreshold: 0.85,
		IDUniquenessThreshold:   0.80,
		CardinalitySkewRatio:    0.80,
		OrphanWarnRatio:         0.10,
		OrphanHighRatio:         0.30,
		ProfileSampleLimit:      100,
		SampleValueCount:        10,
		MatchWorkers:            2,
	}
}

// makeTable builds a table from row literals; empty strings become nulls.
func makeTable(name string, columns []string, rows ...[]string) *models.Table {
	table := &models.Table{Name: name, Columns: columns}
	for _, record := range rows {
		row := make(models.Row, len(columns))
		for i, column := range columns {
			if i >= len(record) || record[i] == "" {
				row[column] = models.Value{Null: true}
				continue
			}
			row[column] = models.Value{Raw: record[i]}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
