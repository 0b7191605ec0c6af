package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/logging"
	"github.com/schemix-inc/schemix-engine/pkg/models"
	"github.com/schemix-inc/schemix-engine/pkg/services"
	"github.com/schemix-inc/schemix-engine/pkg/tabular"
)

var (
	analyzeDir    string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [csv files...]",
	Short: "Analyze tabular datasets and infer their relational schema",
	Long: `Analyze loads CSV files, runs the full inference pipeline and prints
the result.

Output formats:
  tree  module structure tree plus a run summary (default)
  json  the full analysis report as a JSON envelope

Example:
  schemix analyze --dir ./data
  schemix analyze customers.csv accounts.csv transactions.csv -o json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeDir, "dir", "d", "",
		"Directory of .csv files to analyze (alternative to file arguments)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "tree",
		"Output format: tree or json")

	rootCmd.AddCommand(analyzeCmd)
}

// reportEnvelope wraps one analysis result with run identity for JSON output.
type reportEnvelope struct {
	ReportID    string                 `json:"report_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Result      *models.AnalysisResult `json:"result"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if policyFile != "" {
		cfg.PolicyPath = policyFile
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync() //nolint:errcheck

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}

	tables, err := loadTables(args)
	if err != nil {
		return err
	}

	engine := services.New(cfg, policy, logger)
	result, err := engine.Analyze(context.Background(), tables)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	switch analyzeOutput {
	case "json":
		envelope := reportEnvelope{
			ReportID:    uuid.New().String(),
			GeneratedAt: time.Now().UTC(),
			Result:      result,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(envelope); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	case "tree":
		printTree(cmd, result)
	default:
		return fmt.Errorf("unknown output format %q (want tree or json)", analyzeOutput)
	}

	return nil
}

func loadTables(args []string) ([]*models.Table, error) {
	if analyzeDir != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("pass either --dir or file arguments, not both")
		}
		return tabular.LoadCSVDir(analyzeDir)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no input: pass CSV files or --dir")
	}

	tables := make([]*models.Table, 0, len(args))
	for _, path := range args {
		table, err := tabular.LoadCSVFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func printTree(cmd *cobra.Command, result *models.AnalysisResult) {
	cmd.Println(result.Structure.Tree)
	cmd.Println()

	cmd.Printf("Tables: %d  Columns: %d  Primary keys: %d\n",
		result.Summary.TotalTables, result.Summary.TotalColumns, result.Summary.PrimaryKeysDetected)
	cmd.Printf("Relationships: %d valid, %d rejected\n",
		result.Summary.ValidRelationships, result.Summary.RejectedEdges)

	for _, edge := range result.Relationships {
		cmd.Printf("  [%s] %s.%s → %s.%s (%s, match %.0f%%)\n",
			edge.ConfidenceLevel,
			edge.ParentTable, edge.ParentColumn,
			edge.ChildTable, edge.ChildColumn,
			edge.Cardinality, edge.MatchRate*100)
	}

	d := result.Diagnostics
	if len(d.MissingPrimaryKeys)+len(d.DirectionCorrections)+len(d.DataQualityIssues) == 0 {
		return
	}

	cmd.Println()
	cmd.Println("Diagnostics:")
	for _, m := range d.MissingPrimaryKeys {
		cmd.Printf("  [PK] %s: %s\n", m.TableName, m.Issue)
	}
	for _, c := range d.DirectionCorrections {
		cmd.Printf("  [DIR] %s corrected to %s\n", c.Original, c.Corrected)
	}
	for _, q := range d.DataQualityIssues {
		cmd.Printf("  [%s] %s.%s: %s\n", q.Severity, q.TableName, q.ColumnName, q.Issue)
	}
}
