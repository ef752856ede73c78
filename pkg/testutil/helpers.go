// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/suhas-sunder/allsavingscalc-sub000/internal/forecast"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/schedule"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// CheckScheduleConsistency verifies that every schedule of a result covers
// the full duration and ends on the summary figures, and that each row's
// start balance is the previous row's end balance.
func CheckScheduleConsistency(result *calculator.Result) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	views := map[string][]schedule.Row{
		"monthly":   result.Monthly,
		"quarterly": result.Quarterly,
		"yearly":    result.Yearly,
	}
	for name, rows := range views {
		if len(rows) == 0 {
			return fmt.Errorf("%s schedule is empty", name)
		}

		months := 0
		for i, row := range rows {
			months += row.Months
			if i > 0 && !mathutil.WithinTolerance(row.StartBalance, rows[i-1].EndBalance, 0.005) {
				return fmt.Errorf("%s row %d starts at %.2f but previous row ended at %.2f",
					name, i+1, row.StartBalance, rows[i-1].EndBalance)
			}
		}
		if months != result.Summary.Months {
			return fmt.Errorf("%s schedule covers %d months, want %d", name, months, result.Summary.Months)
		}

		last := rows[len(rows)-1]
		if last.EndBalance != result.Summary.FinalBalance {
			return fmt.Errorf("%s schedule ends at %.2f, summary says %.2f", name, last.EndBalance, result.Summary.FinalBalance)
		}
		if last.TotalContributions != result.Summary.TotalContributions ||
			last.TotalInterest != result.Summary.TotalInterest ||
			last.TotalTax != result.Summary.TotalTax {
			return fmt.Errorf("%s schedule totals disagree with the summary", name)
		}
	}
	return nil
}
