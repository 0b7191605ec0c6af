package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyValidates(t *testing.T) {
	policy := DefaultPolicy()
	require.NoError(t, policy.Validate())
	assert.Equal(t, "Banking Application", policy.TreeRoot)
}

func TestKeyPatternEntity(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name       string
		normalized string
		wantEntity string
		wantMatch  bool
	}{
		{"customer id", "customer_id", "customer", true},
		{"pattern inside longer name", "primary_customer_id", "customer", true},
		{"account number", "account_number", "account", true},
		{"transaction id", "txn_id", "transaction", true},
		{"branch code", "branch_code", "branch", true},
		{"plain balance", "balance", "", false},
		{"bare id", "id", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, ok := policy.KeyPatternEntity(tt.normalized)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.wantEntity, entity)
		})
	}
}

func TestMatchEntityOrder(t *testing.T) {
	policy := DefaultPolicy()

	// "transaction_account" contains both tokens; keyword order decides.
	entity, ok := policy.MatchEntity("transaction_account")
	require.True(t, ok)
	assert.Equal(t, "transaction", entity)
}

func TestExcludedAndNonKeyColumns(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.IsExcludedColumn("account_status"))
	assert.True(t, policy.IsExcludedColumn("branch_city"))
	assert.True(t, policy.IsExcludedColumn("customer_name"))
	assert.False(t, policy.IsExcludedColumn("customer_id"))

	token, found := policy.ExcludedToken("currency_code")
	require.True(t, found)
	assert.Equal(t, "currency", token)

	assert.True(t, policy.IsNonKeyColumn("date_of_birth"))
	assert.True(t, policy.IsNonKeyColumn("interest_rate"))
	assert.False(t, policy.IsNonKeyColumn("loan_id"))
}

func TestFlowAllowed(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name    string
		parent  string
		child   string
		allowed bool
	}{
		{"customer to account", "customer", "account", true},
		{"account to transaction", "account", "transaction", true},
		{"reflexive always allowed", "loan", "loan", true},
		{"reverse direction denied", "transaction", "account", false},
		{"unrelated denied", "branch", "transaction", false},
		{"unknown entity denied", "", "account", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, policy.FlowAllowed(tt.parent, tt.child))
		})
	}
}

func TestPrecedenceOf(t *testing.T) {
	policy := DefaultPolicy()

	customer, ok := policy.PrecedenceOf("customer")
	require.True(t, ok)
	account, ok := policy.PrecedenceOf("account")
	require.True(t, ok)
	transaction, ok := policy.PrecedenceOf("transaction")
	require.True(t, ok)

	assert.Less(t, customer, account)
	assert.Less(t, account, transaction)

	_, ok = policy.PrecedenceOf("warehouse")
	assert.False(t, ok)
}

func TestModuleForEntity(t *testing.T) {
	policy := DefaultPolicy()

	module, ok := policy.ModuleForEntity("loan")
	require.True(t, ok)
	assert.Equal(t, "Loan & Product Module", module)

	_, ok = policy.ModuleForEntity("warehouse")
	assert.False(t, ok)
}

func TestLoadPolicyEmptyPathReturnsDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy().ExcludedColumnTokens, policy.ExcludedColumnTokens)
}

func TestLoadPolicyPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `
tree_root: "Retail Application"
entity_keywords:
  - entity: order
    tokens: [order]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, "Retail Application", policy.TreeRoot)
	require.Len(t, policy.EntityKeywords, 1)
	assert.Equal(t, "order", policy.EntityKeywords[0].Entity)
	// Sections the file omits fall back to the built-in policy.
	assert.NotEmpty(t, policy.EntityKeyPatterns)
	assert.NotEmpty(t, policy.ExcludedColumnTokens)
}

func TestLoadPolicyMissingFile(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
