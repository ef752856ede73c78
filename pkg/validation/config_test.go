package validation

import (
	"strings"
	"testing"
)

func containsWarning(warnings []string, fragment string) bool {
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func TestConfigValidatorValidateAll(t *testing.T) {
	negative := -10.0
	cv := ConfigValidator{
		Scenarios: []ScenarioConfig{
			{Name: "baseline", Active: true, Calculator: "compound", AnnualRate: 5, Months: 120},
			{Name: "baseline", Active: true, Calculator: "savings", AnnualRate: 0, Months: 12},
			{Name: "parked", Active: false, Calculator: "balance", AnnualRate: 4, Months: 12},
			{Name: "bad", Active: true, Calculator: "loan", AnnualRate: 4, Months: 0, GoalTarget: &negative},
		},
	}

	warnings := cv.ValidateAll()

	tests := []struct {
		fragment string
	}{
		{"'parked' is inactive"},
		{"'baseline' is used 2 times"},
		{"zero annual rate"},
		{"'bad': expected calculator"},
		{"'bad' has no duration"},
		{"goal target must be positive"},
	}
	for _, tt := range tests {
		if !containsWarning(warnings, tt.fragment) {
			t.Errorf("expected warning containing %q, got %v", tt.fragment, warnings)
		}
	}
}

func TestConfigValidatorNoActiveScenarios(t *testing.T) {
	cv := ConfigValidator{Scenarios: []ScenarioConfig{{Name: "off", Calculator: "compound"}}}
	if warnings := cv.ValidateAll(); !containsWarning(warnings, "No active scenarios") {
		t.Errorf("expected no-active warning, got %v", warnings)
	}

	empty := ConfigValidator{}
	if warnings := empty.ValidateAll(); len(warnings) != 1 || warnings[0] != "No scenarios defined" {
		t.Errorf("expected single no-scenarios warning, got %v", warnings)
	}
}

func TestValidateScenarioClean(t *testing.T) {
	warnings := ValidateScenario(ScenarioConfig{Name: "ok", Active: true, Calculator: "balance", AnnualRate: 3, Months: 24})
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestValidateScenarioNegativeRate(t *testing.T) {
	warnings := ValidateScenario(ScenarioConfig{Name: "deflation", Active: true, Calculator: "compound", AnnualRate: -1.5, Months: 12})
	if len(warnings) != 1 || !containsWarning(warnings, "negative annual rate") {
		t.Errorf("expected a negative rate warning, got %v", warnings)
	}
}
