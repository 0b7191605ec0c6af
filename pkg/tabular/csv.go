// Package tabular loads delimited files into the engine's table model.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// LoadCSVFile reads one CSV file into a table. The first record is the
// header; empty cells become null values. The table name is the file name
// without its extension.
func LoadCSVFile(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse %s: file has no header row", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	table := &models.Table{
		Name:    name,
		Columns: append([]string(nil), records[0]...),
	}

	for _, record := range records[1:] {
		row := make(models.Row, len(table.Columns))
		for i, column := range table.Columns {
			if i >= len(record) || record[i] == "" {
				row[column] = models.Value{Null: true}
				continue
			}
			row[column] = models.Value{Raw: record[i]}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// LoadCSVDir loads every .csv file of a directory, in file-name order.
func LoadCSVDir(dir string) ([]*models.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no .csv files in %s", dir)
	}

	tables := make([]*models.Table, 0, len(paths))
	for _, path := range paths {
		table, err := LoadCSVFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}
