package validation

import (
	"fmt"
	"sort"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
)

// ScenarioConfig is the subset of a scenario needed for warnings.
type ScenarioConfig struct {
	Name       string
	Active     bool
	Calculator string
	AnnualRate float64
	Months     int
	GoalTarget *float64
}

// ConfigValidator collects non-fatal warnings about a scenario list.
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Scenarios) == 0 {
		return []string{"No scenarios defined"}
	}

	seen := make(map[string]int)
	active := 0
	for _, scenario := range cv.Scenarios {
		seen[scenario.Name]++
		if !scenario.Active {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is inactive and will be skipped", scenario.Name))
			continue
		}
		active++
		warnings = append(warnings, ValidateScenario(scenario)...)
	}

	var duplicates []string
	for name, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	for _, name := range duplicates {
		warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used %d times", name, seen[name]))
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios; nothing will be calculated")
	}

	return warnings
}

// ValidateScenario returns warnings for a single active scenario.
func ValidateScenario(scenario ScenarioConfig) []string {
	var warnings []string
	if scenario.Name == "" {
		warnings = append(warnings, "Scenario has no name")
	}
	if err := ValidateCalculator(scenario.Calculator); err != nil {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s': %v", scenario.Name, err))
	}
	if scenario.AnnualRate == 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a zero annual rate; no interest will accrue", scenario.Name))
	}
	if mathutil.IsNegative(scenario.AnnualRate) {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a negative annual rate; the balance will shrink", scenario.Name))
	}
	if scenario.Months == 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no duration", scenario.Name))
	}
	if scenario.GoalTarget != nil && *scenario.GoalTarget <= 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' goal target must be positive", scenario.Name))
	}
	return warnings
}
