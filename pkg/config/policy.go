package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntityKeyPattern maps one recognized entity to the column-name patterns
// that identify its primary key.
type EntityKeyPattern struct {
	Entity   string   `yaml:"entity"`
	Patterns []string `yaml:"patterns"`
}

// EntityKeyword maps one entity to the name tokens that suggest it. The
// list is ordered: the first entity whose token appears in a name wins.
type EntityKeyword struct {
	Entity string   `yaml:"entity"`
	Tokens []string `yaml:"tokens"`
}

// EntityFlow is one allowed parent→child dependency between entities.
type EntityFlow struct {
	Parent string `yaml:"parent"`
	Child  string `yaml:"child"`
}

// ModuleMapping assigns entities to a named module. Order in the slice is
// the fixed display order of the module tree.
type ModuleMapping struct {
	Name     string   `yaml:"name"`
	Entities []string `yaml:"entities"`
}

// Policy is the externally supplied domain knowledge of the engine: which
// column names identify which entities, which columns can never be keys,
// which dependencies are plausible, and how entities rank in the hierarchy.
// It is data, not code — swap the policy, keep the algorithms.
type Policy struct {
	// EntityKeyPatterns are the recognized primary-key naming patterns,
	// checked by substring containment against normalized column names.
	EntityKeyPatterns []EntityKeyPattern `yaml:"entity_key_patterns"`

	// EntityKeywords classify arbitrary column or table names to entities.
	EntityKeywords []EntityKeyword `yaml:"entity_keywords"`

	// ExcludedColumnTokens mark descriptive, non-identifying columns.
	// A column whose normalized name contains any token can never
	// participate in a relationship edge.
	ExcludedColumnTokens []string `yaml:"excluded_column_tokens"`

	// NonKeyTokens mark columns that must never profile as identifiers
	// even when unique (dates, free text, rates, statuses).
	NonKeyTokens []string `yaml:"non_key_tokens"`

	// EntityPrecedence ranks entities: lower value = closer to the root of
	// the domain hierarchy = must be the parent of any edge to a
	// higher-valued entity.
	EntityPrecedence map[string]int `yaml:"entity_precedence"`

	// AllowedFlows is the business-plausibility whitelist of parent→child
	// entity pairs. Same-entity (reflexive) links are always allowed.
	AllowedFlows []EntityFlow `yaml:"allowed_flows"`

	// Modules defines the module names, their entities, and display order.
	Modules []ModuleMapping `yaml:"modules"`

	// TreeRoot is the label of the structure tree's root node.
	TreeRoot string `yaml:"tree_root"`
}

// DefaultPolicy returns the built-in banking domain policy.
func DefaultPolicy() *Policy {
	return &Policy{
		EntityKeyPatterns: []EntityKeyPattern{
			{Entity: "customer", Patterns: []string{"customer_id", "cust_id", "client_id", "customer_number", "c_id"}},
			{Entity: "account", Patterns: []string{"account_number", "account_no", "acc_no", "account_id", "acc_id"}},
			{Entity: "transaction", Patterns: []string{"transaction_id", "txn_id", "trans_id", "transaction_number"}},
			{Entity: "loan", Patterns: []string{"loan_id", "loan_number", "loan_ref"}},
			{Entity: "branch", Patterns: []string{"branch_id", "branch_code", "branch_number"}},
			{Entity: "card", Patterns: []string{"card_id", "card_number", "card_no"}},
		},
		EntityKeywords: []EntityKeyword{
			{Entity: "customer", Tokens: []string{"customer", "cust", "client"}},
			{Entity: "transaction", Tokens: []string{"transaction", "txn"}},
			{Entity: "loan", Tokens: []string{"loan"}},
			{Entity: "branch", Tokens: []string{"branch"}},
			{Entity: "card", Tokens: []string{"card"}},
			{Entity: "product", Tokens: []string{"product"}},
			{Entity: "account", Tokens: []string{"account", "acc"}},
		},
		ExcludedColumnTokens: []string{
			"status", "city", "currency", "name", "flag", "type",
			"category", "description", "address", "email", "phone",
		},
		NonKeyTokens: []string{
			"dob", "date_of_birth", "birthdate", "birth_date",
			"address", "street", "location", "city", "state",
			"rate", "percentage", "interest",
			"status", "flag", "category", "type",
			"name", "description", "note", "comment",
		},
		EntityPrecedence: map[string]int{
			"customer":    1,
			"branch":      1,
			"product":     1,
			"account":     2,
			"loan":        2,
			"card":        2,
			"transaction": 3,
		},
		AllowedFlows: []EntityFlow{
			{Parent: "customer", Child: "account"},
			{Parent: "customer", Child: "loan"},
			{Parent: "customer", Child: "card"},
			{Parent: "branch", Child: "account"},
			{Parent: "product", Child: "account"},
			{Parent: "product", Child: "loan"},
			{Parent: "account", Child: "transaction"},
			{Parent: "account", Child: "card"},
		},
		Modules: []ModuleMapping{
			{Name: "Customer Module", Entities: []string{"customer"}},
			{Name: "Branch Module", Entities: []string{"branch"}},
			{Name: "Account Module", Entities: []string{"account"}},
			{Name: "Transaction Module", Entities: []string{"transaction"}},
			{Name: "Loan & Product Module", Entities: []string{"loan", "product"}},
		},
		TreeRoot: "Banking Application",
	}
}

// LoadPolicy reads a policy file, falling back to the built-in defaults for
// any section the file leaves empty. An empty path returns the defaults.
func LoadPolicy(path string) (*Policy, error) {
	defaults := DefaultPolicy()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	loaded := &Policy{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	loaded.fillDefaults(defaults)
	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return loaded, nil
}

func (p *Policy) fillDefaults(defaults *Policy) {
	if len(p.EntityKeyPatterns) == 0 {
		p.EntityKeyPatterns = defaults.EntityKeyPatterns
	}
	if len(p.EntityKeywords) == 0 {
		p.EntityKeywords = defaults.EntityKeywords
	}
	if len(p.ExcludedColumnTokens) == 0 {
		p.ExcludedColumnTokens = defaults.ExcludedColumnTokens
	}
	if len(p.NonKeyTokens) == 0 {
		p.NonKeyTokens = defaults.NonKeyTokens
	}
	if len(p.EntityPrecedence) == 0 {
		p.EntityPrecedence = defaults.EntityPrecedence
	}
	if len(p.AllowedFlows) == 0 {
		p.AllowedFlows = defaults.AllowedFlows
	}
	if len(p.Modules) == 0 {
		p.Modules = defaults.Modules
	}
	if p.TreeRoot == "" {
		p.TreeRoot = defaults.TreeRoot
	}
}

// Validate checks internal consistency of the policy.
func (p *Policy) Validate() error {
	if len(p.EntityKeyPatterns) == 0 {
		return fmt.Errorf("entity_key_patterns must not be empty")
	}
	for _, m := range p.Modules {
		if m.Name == "" {
			return fmt.Errorf("module with empty name")
		}
	}
	for _, f := range p.AllowedFlows {
		if f.Parent == "" || f.Child == "" {
			return fmt.Errorf("allowed flow with empty endpoint: %+v", f)
		}
	}
	return nil
}

// KeyPatternEntity returns the entity whose key-naming pattern the
// normalized column name matches, if any.
func (p *Policy) KeyPatternEntity(normalized string) (string, bool) {
	for _, ekp := range p.EntityKeyPatterns {
		for _, pattern := range ekp.Patterns {
			if strings.Contains(normalized, pattern) {
				return ekp.Entity, true
			}
		}
	}
	return "", false
}

// MatchEntity classifies a normalized name (column or table) to the first
// entity whose keyword it contains, if any.
func (p *Policy) MatchEntity(normalized string) (string, bool) {
	for _, kw := range p.EntityKeywords {
		for _, token := range kw.Tokens {
			if strings.Contains(normalized, token) {
				return kw.Entity, true
			}
		}
	}
	return "", false
}

// IsExcludedColumn reports whether a normalized column name contains a
// descriptive, non-identifying token.
func (p *Policy) IsExcludedColumn(normalized string) bool {
	return containsAnyToken(normalized, p.ExcludedColumnTokens)
}

// ExcludedToken returns the first descriptive token found in the name.
func (p *Policy) ExcludedToken(normalized string) (string, bool) {
	for _, token := range p.ExcludedColumnTokens {
		if strings.Contains(normalized, token) {
			return token, true
		}
	}
	return "", false
}

// IsNonKeyColumn reports whether a normalized column name can never be an
// identifier, regardless of its statistics.
func (p *Policy) IsNonKeyColumn(normalized string) bool {
	return containsAnyToken(normalized, p.NonKeyTokens)
}

// FlowAllowed reports whether parent→child is a plausible dependency.
// Reflexive links between the same entity are always plausible.
func (p *Policy) FlowAllowed(parentEntity, childEntity string) bool {
	if parentEntity == "" || childEntity == "" {
		return false
	}
	if parentEntity == childEntity {
		return true
	}
	for _, f := range p.AllowedFlows {
		if f.Parent == parentEntity && f.Child == childEntity {
			return true
		}
	}
	return false
}

// PrecedenceOf returns the hierarchy rank of an entity; ok is false for
// entities outside the hierarchy.
func (p *Policy) PrecedenceOf(entity string) (int, bool) {
	rank, ok := p.EntityPrecedence[entity]
	return rank, ok
}

// ModuleForEntity returns the module name owning an entity, if any.
func (p *Policy) ModuleForEntity(entity string) (string, bool) {
	for _, m := range p.Modules {
		for _, e := range m.Entities {
			if e == entity {
				return m.Name, true
			}
		}
	}
	return "", false
}

func containsAnyToken(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
