package catalog

import "testing"

func TestRules_IncludesStaticAndStandardsRules(t *testing.T) {
	rules := Rules()

	for _, id := range []string{"SEC001", "SEC101", "SEC201", "STD001", "LIC001", "DUP001"} {
		if _, ok := rules[id]; !ok {
			t.Errorf("expected rule %s in catalog", id)
		}
	}
}

func TestRules_NoDuplicateIDsAcrossSources(t *testing.T) {
	rules := Rules()
	if len(rules) < 10 {
		t.Fatalf("expected at least 10 distinct rules, got %d", len(rules))
	}
}
