package testutil

import (
	"testing"

	"github.com/suhas-sunder/allsavingscalc-sub000/internal/forecast"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
)

func TestFindScenario(t *testing.T) {
	results := []forecast.Forecast{
		{Name: "Scenario A", Calculator: "compound"},
		{Name: "Scenario B", Calculator: "savings"},
		{Name: "Another Scenario", Calculator: "balance"},
	}

	tests := []struct {
		name             string
		searchName       string
		expectFound      bool
		expectCalculator string
	}{
		{"Find existing scenario A", "Scenario A", true, "compound"},
		{"Find existing scenario B", "Scenario B", true, "savings"},
		{"Find scenario with spaces", "Another Scenario", true, "balance"},
		{"Scenario not found", "Missing", false, ""},
		{"Empty name", "", false, ""},
		{"Case sensitive", "scenario a", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindScenario(results, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindScenario(%q) = %+v, want nil", tt.searchName, result)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindScenario(%q) = nil, want a result", tt.searchName)
			}
			if result.Calculator != tt.expectCalculator {
				t.Errorf("FindScenario(%q).Calculator = %s, want %s", tt.searchName, result.Calculator, tt.expectCalculator)
			}
		})
	}

	if FindScenario(nil, "Scenario A") != nil {
		t.Error("FindScenario on nil slice should return nil")
	}

	found := FindScenario(results, "Scenario B")
	found.Name = "Renamed"
	if results[1].Name != "Renamed" {
		t.Error("FindScenario should return a pointer into the slice")
	}
}

func TestCheckScheduleConsistency(t *testing.T) {
	result, err := calculator.Run(nil, calculator.SavingsInput{
		InitialDeposit: 500,
		Contribution:   25,
		AnnualRate:     4,
		Years:          2,
		Months:         7,
		TaxRate:        15,
	})
	if err != nil {
		t.Fatalf("calculator.Run() error = %v", err)
	}
	if err := CheckScheduleConsistency(result); err != nil {
		t.Errorf("CheckScheduleConsistency() = %v", err)
	}

	result.Yearly[len(result.Yearly)-1].EndBalance += 1
	if err := CheckScheduleConsistency(result); err == nil {
		t.Error("expected an error for a tampered schedule")
	}

	if err := CheckScheduleConsistency(nil); err == nil {
		t.Error("expected an error for a nil result")
	}
}
