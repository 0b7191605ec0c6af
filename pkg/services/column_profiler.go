package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
	"github.com/schemix-inc/schemix-engine/pkg/strmatch"
)

// ColumnProfiler computes per-column statistics for every column of a
// table: uniqueness, nullability, inferred semantic type, and value shape.
// It is a pure function of its input: it never fails, unparsable values
// degrade confidence instead of aborting.
type ColumnProfiler interface {
	// ProfileTable profiles every column of one table in column order.
	ProfileTable(table *models.Table) []models.ColumnProfile
}

type columnProfiler struct {
	cfg    config.AnalyzerConfig
	policy *config.Policy
	logger *zap.Logger
}

// NewColumnProfiler creates a new ColumnProfiler.
func NewColumnProfiler(cfg config.AnalyzerConfig, policy *config.Policy, logger *zap.Logger) ColumnProfiler {
	return &columnProfiler{
		cfg:    cfg,
		policy: policy,
		logger: logger.Named("column-profiler"),
	}
}

var (
	alphanumericRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	numericRe      = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// dateLayouts are tried in order when probing date-like columns.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func (p *columnProfiler) ProfileTable(table *models.Table) []models.ColumnProfile {
	profiles := make([]models.ColumnProfile, 0, len(table.Columns))
	for _, column := range table.Columns {
		profiles = append(profiles, p.profileColumn(table, column))
	}
	return profiles
}

func (p *columnProfiler) profileColumn(table *models.Table, column string) models.ColumnProfile {
	values := table.ColumnValues(column)
	rowCount := len(values)

	nonNull := make([]string, 0, rowCount)
	distinct := make(map[string]struct{})
	for _, v := range values {
		if v.Null {
			continue
		}
		nonNull = append(nonNull, v.Raw)
		distinct[v.Raw] = struct{}{}
	}
	nullCount := rowCount - len(nonNull)

	profile := models.ColumnProfile{
		TableName:      table.Name,
		ColumnName:     column,
		NormalizedName: strmatch.Normalize(column),
		RowCount:       rowCount,
		NonNullCount:   len(nonNull),
		DistinctCount:  len(distinct),
		NullCount:      nullCount,
	}
	if len(nonNull) > 0 {
		profile.UniquenessRatio = float64(len(distinct)) / float64(len(nonNull))
	}
	if rowCount > 0 {
		profile.NullRatio = float64(nullCount) / float64(rowCount)
	}

	profile.SemanticType = p.detectSemanticType(profile.NormalizedName, nonNull, profile.UniquenessRatio, len(distinct))
	profile.Shape = p.detectValueShape(nonNull, profile.SemanticType)

	sampleLimit := p.cfg.SampleValueCount
	if sampleLimit > len(nonNull) {
		sampleLimit = len(nonNull)
	}
	if sampleLimit > 0 {
		profile.SampleValues = append([]string(nil), nonNull[:sampleLimit]...)
	}

	return profile
}

// detectSemanticType applies the decision order: explicit exclusion
// overrides first, then ID, Code, Amount, Date, Status, and finally
// Text/Amount by underlying storage.
func (p *columnProfiler) detectSemanticType(norm string, nonNull []string, uniqueness float64, distinctCount int) models.SemanticType {
	if len(nonNull) == 0 {
		return models.SemanticUnknown
	}

	nonKey := p.policy.IsNonKeyColumn(norm)
	if nonKey {
		// These columns must never profile as identifiers even when
		// unique; route them to their descriptive type instead.
		if containsAny(norm, "address", "city", "street", "location") {
			return models.SemanticText
		}
		if containsAny(norm, "rate", "percentage", "interest") {
			return models.SemanticAmount
		}
		if containsAny(norm, "dob", "birth", "date") {
			return models.SemanticDate
		}
	}

	if !nonKey && containsAny(norm, "id", "number") && uniqueness >= p.cfg.IDUniquenessThreshold {
		if shareMatching(nonNull, numericRe) > 0.8 || shareMatching(nonNull, alphanumericRe) > 0.8 {
			return models.SemanticID
		}
	}

	if containsAny(norm, "code") && uniqueness >= 0.1 && uniqueness <= 0.5 {
		return models.SemanticCode
	}

	if containsAny(norm, "amount", "balance", "price") {
		if numeric, allNonNegative := numericStats(nonNull); numeric > 0.8 && allNonNegative {
			return models.SemanticAmount
		}
	}

	if containsAny(norm, "date", "time") && leadingValuesParseAsDates(nonNull, 10) {
		return models.SemanticDate
	}

	if containsAny(norm, "status", "flag") && distinctCount <= 10 {
		return models.SemanticStatus
	}

	if shareMatching(nonNull, numericRe) > 0.8 {
		return models.SemanticAmount
	}
	return models.SemanticText
}

// detectValueShape captures the surface form of the column's values:
// dominant 3-char prefix, length range, and Alphanumeric/Numeric format for
// ID columns. Informational only.
func (p *columnProfiler) detectValueShape(nonNull []string, semanticType models.SemanticType) models.ValueShape {
	shape := models.ValueShape{}
	if len(nonNull) == 0 {
		return shape
	}

	sample := nonNull
	if limit := p.cfg.ProfileSampleLimit; limit > 0 && len(sample) > limit {
		sample = sample[:limit]
	}

	prefixCounts := make(map[string]int)
	minLen, maxLen := -1, 0
	for _, v := range sample {
		runes := []rune(v)
		if len(runes) >= 3 {
			prefixCounts[string(runes[:3])]++
		}
		if minLen < 0 || len(runes) < minLen {
			minLen = len(runes)
		}
		if len(runes) > maxLen {
			maxLen = len(runes)
		}
	}
	if minLen < 0 {
		minLen = 0
	}
	shape.MinLength = minLen
	shape.MaxLength = maxLen

	// Dominant prefix: lexicographically smallest among equals so repeated
	// runs produce identical output.
	bestPrefix, bestCount := "", 0
	for prefix, count := range prefixCounts {
		if count > bestCount || (count == bestCount && prefix < bestPrefix) {
			bestPrefix, bestCount = prefix, count
		}
	}
	if bestCount > 0 && float64(bestCount)/float64(len(sample)) > 0.5 {
		shape.Prefix = bestPrefix
	}

	if semanticType == models.SemanticID {
		if shareMatching(sample, alphanumericRe) > 0.8 {
			if shareMatching(sample, numericRe) > 0.8 {
				shape.Format = models.ShapeFormatNumeric
			} else {
				shape.Format = models.ShapeFormatAlphanumeric
			}
		} else if shareMatching(sample, numericRe) > 0.8 {
			shape.Format = models.ShapeFormatNumeric
		}
	}

	return shape
}

func containsAny(s string, tokens ...string) bool {
	for _, token := range tokens {
		if token != "" && strings.Contains(s, token) {
			return true
		}
	}
	return false
}

// shareMatching returns the fraction of values matching the pattern.
func shareMatching(values []string, re *regexp.Regexp) float64 {
	if len(values) == 0 {
		return 0
	}
	matched := 0
	for _, v := range values {
		if re.MatchString(v) {
			matched++
		}
	}
	return float64(matched) / float64(len(values))
}

// numericStats returns the numeric share of values and whether every
// numeric value is non-negative.
func numericStats(values []string) (share float64, allNonNegative bool) {
	if len(values) == 0 {
		return 0, false
	}
	matched := 0
	allNonNegative = true
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		matched++
		if f < 0 {
			allNonNegative = false
		}
	}
	return float64(matched) / float64(len(values)), allNonNegative
}

// leadingValuesParseAsDates probes the first n non-null values against the
// known date layouts; all probed values must parse.
func leadingValuesParseAsDates(values []string, n int) bool {
	if len(values) == 0 {
		return false
	}
	if n > len(values) {
		n = len(values)
	}
	for _, v := range values[:n] {
		if !parsesAsDate(v) {
			return false
		}
	}
	return true
}

func parsesAsDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
