package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "accounts.csv",
		"account_number,customer_id,balance\n"+
			"ACC01,C001,100.50\n"+
			"ACC02,,75.00\n")

	table, err := LoadCSVFile(path)
	require.NoError(t, err)

	assert.Equal(t, "accounts", table.Name)
	assert.Equal(t, []string{"account_number", "customer_id", "balance"}, table.Columns)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "ACC01", table.Rows[0]["account_number"].Raw)
	assert.False(t, table.Rows[0]["customer_id"].Null)
	// Empty cells are nulls, not empty strings.
	assert.True(t, table.Rows[1]["customer_id"].Null)
	assert.Equal(t, "75.00", table.Rows[1]["balance"].Raw)
}

func TestLoadCSVFileHeaderOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.csv", "id,name\n")

	table, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"id", "name"}, table.Columns)
}

func TestLoadCSVFileEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "blank.csv", "")

	_, err := LoadCSVFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoadCSVFileMissing(t *testing.T) {
	_, err := LoadCSVFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoadCSVDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers.csv", "customer_id\nC001\n")
	writeFile(t, dir, "accounts.csv", "account_number\nACC01\n")
	writeFile(t, dir, "readme.txt", "not a table")

	tables, err := LoadCSVDir(dir)
	require.NoError(t, err)

	require.Len(t, tables, 2)
	// File-name order.
	assert.Equal(t, "accounts", tables[0].Name)
	assert.Equal(t, "customers", tables[1].Name)
}

func TestLoadCSVDirNoFiles(t *testing.T) {
	_, err := LoadCSVDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .csv files")
}
