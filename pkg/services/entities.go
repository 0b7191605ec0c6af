package services

import (
	"github.com/jinzhu/inflection"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/strmatch"
)

// columnEntity classifies a column name to a recognized entity via the
// policy keyword lists. Returns "" when no entity matches.
func columnEntity(policy *config.Policy, columnName string) string {
	entity, ok := policy.MatchEntity(strmatch.Normalize(columnName))
	if !ok {
		return ""
	}
	return entity
}

// tableEntity classifies a table name to an entity. Table names are
// singularized first so "customers" and "customer" classify alike.
func tableEntity(policy *config.Policy, tableName string) string {
	normalized := strmatch.Normalize(inflection.Singular(tableName))
	entity, ok := policy.MatchEntity(normalized)
	if !ok {
		return ""
	}
	return entity
}

// edgeEntity resolves the entity of one edge endpoint: the key column name
// decides, the table name breaks the tie when the column is uninformative.
func edgeEntity(policy *config.Policy, tableName, columnName string) string {
	if entity := columnEntity(policy, columnName); entity != "" {
		return entity
	}
	return tableEntity(policy, tableName)
}

// tableFirstEntity resolves an endpoint entity preferring the table name.
// Used where the endpoint stands for the whole table (justifications), not
// for the key column: a customers→accounts edge carries customer_id on both
// ends, so column-first resolution would collapse both sides to "customer".
func tableFirstEntity(policy *config.Policy, tableName, columnName string) string {
	if entity := tableEntity(policy, tableName); entity != "" {
		return entity
	}
	return columnEntity(policy, columnName)
}
