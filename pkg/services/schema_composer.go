package services

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"go.uber.org/zap"

	"github.com/schemix-inc/schemix-engine/pkg/config"
	"github.com/schemix-inc/schemix-engine/pkg/models"
)

// SchemaComposer groups tables into logical modules using key candidates
// and relationship edges, attaches foreign-key annotations to child
// modules, and renders a deterministic structure tree for display. Module
// order is fixed by policy; a table belongs to exactly one module or to
// the ungrouped list.
type SchemaComposer interface {
	Compose(
		tables []*models.Table,
		keys map[string]models.KeyCandidate,
		edges []models.RelationshipEdge,
	) models.SchemaStructure
}

type schemaComposer struct {
	policy *config.Policy
	logger *zap.Logger
}

// NewSchemaComposer creates a new SchemaComposer.
func NewSchemaComposer(policy *config.Policy, logger *zap.Logger) SchemaComposer {
	return &schemaComposer{
		policy: policy,
		logger: logger.Named("schema-composer"),
	}
}

func (c *schemaComposer) Compose(
	tables []*models.Table,
	keys map[string]models.KeyCandidate,
	edges []models.RelationshipEdge,
) models.SchemaStructure {
	// Seed the module map in policy order so iteration is the display order.
	modules := orderedmap.NewOrderedMap[string, *models.Module]()
	for _, mapping := range c.policy.Modules {
		modules.Set(mapping.Name, &models.Module{Name: mapping.Name})
	}

	moduleByTable := make(map[string]string)
	var ungrouped []string

	for _, table := range tables {
		moduleName, ok := c.assignModule(table, keys)
		if !ok {
			ungrouped = append(ungrouped, table.Name)
			continue
		}
		module, found := modules.Get(moduleName)
		if !found {
			ungrouped = append(ungrouped, table.Name)
			continue
		}

		module.Tables = append(module.Tables, table.Name)
		module.Columns = append(module.Columns, table.Columns...)
		if key, hasKey := keys[table.Name]; hasKey {
			module.PrimaryKey = key.ColumnName
		}
		moduleByTable[table.Name] = moduleName
	}

	// Attach each surviving edge to the child table's module, referencing
	// the parent's module.
	for _, edge := range edges {
		childModule, childOK := moduleByTable[edge.ChildTable]
		parentModule, parentOK := moduleByTable[edge.ParentTable]
		if !childOK || !parentOK {
			continue
		}
		module, _ := modules.Get(childModule)
		module.ForeignKeys = append(module.ForeignKeys, models.ModuleForeignKey{
			References:   parentModule,
			ParentTable:  edge.ParentTable,
			ParentColumn: edge.ParentColumn,
			ChildTable:   edge.ChildTable,
			ChildColumn:  edge.ChildColumn,
		})
	}

	var populated []models.Module
	for el := modules.Front(); el != nil; el = el.Next() {
		if len(el.Value.Tables) > 0 {
			populated = append(populated, *el.Value)
		}
	}

	structure := models.SchemaStructure{
		Modules:   populated,
		Ungrouped: ungrouped,
		Tree:      c.renderTree(populated),
	}

	c.logger.Debug("Schema composition complete",
		zap.Int("modules", len(populated)),
		zap.Int("ungrouped", len(ungrouped)))

	return structure
}

// assignModule picks the module of one table: the key candidate's entity
// decides; without a key, the column names vote by entity-keyword hits.
func (c *schemaComposer) assignModule(table *models.Table, keys map[string]models.KeyCandidate) (string, bool) {
	if key, ok := keys[table.Name]; ok {
		if moduleName, mapped := c.policy.ModuleForEntity(key.Entity); mapped {
			return moduleName, true
		}
		return "", false
	}

	entity, ok := c.voteEntity(table)
	if !ok {
		return "", false
	}
	return c.policy.ModuleForEntity(entity)
}

// voteEntity tallies entity-keyword hits across a table's column names and
// returns the majority entity. Ties resolve to the entity listed first in
// the policy keyword order.
func (c *schemaComposer) voteEntity(table *models.Table) (string, bool) {
	hits := make(map[string]int)
	for _, column := range table.Columns {
		if entity := columnEntity(c.policy, column); entity != "" {
			hits[entity]++
		}
	}
	if entity := tableEntity(c.policy, table.Name); entity != "" {
		hits[entity]++
	}

	best, bestCount := "", 0
	for _, kw := range c.policy.EntityKeywords {
		if count := hits[kw.Entity]; count > bestCount {
			best, bestCount = kw.Entity, count
		}
	}
	return best, bestCount > 0
}

// renderTree draws the module structure with box-drawing connectors, one
// module per branch, foreign keys nested under their module.
func (c *schemaComposer) renderTree(modules []models.Module) string {
	lines := []string{c.policy.TreeRoot}

	for i, module := range modules {
		last := i == len(modules)-1
		connector := "├──"
		childIndent := "│   "
		if last {
			connector = "└──"
			childIndent = "    "
		}

		pkInfo := ""
		if module.PrimaryKey != "" {
			pkInfo = fmt.Sprintf(" (PK: %s)", module.PrimaryKey)
		}
		lines = append(lines, fmt.Sprintf("%s %s%s", connector, module.Name, pkInfo))

		for _, fk := range module.ForeignKeys {
			lines = append(lines, fmt.Sprintf("%s    └── FK: %s → %s.%s",
				childIndent, fk.ChildColumn, fk.References, fk.ParentColumn))
		}
	}

	return strings.Join(lines, "\n")
}
