// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/suhas-sunder/allsavingscalc-sub000/internal/forecast"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/history"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/format"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		summary := result.Result.Summary
		fmt.Fprintf(w, "--- Results for scenario %s (%s) ---\n", result.Name, result.Calculator)
		_, _ = p.Fprintf(w, "Final balance:       $%.2f\n", summary.FinalBalance)
		_, _ = p.Fprintf(w, "Total contributions: $%.2f\n", summary.TotalContributions)
		_, _ = p.Fprintf(w, "Total interest:      $%.2f\n", summary.TotalInterest)
		if mathutil.IsPositive(summary.TotalTax) {
			_, _ = p.Fprintf(w, "Total tax:           $%.2f\n", summary.TotalTax)
		}
		if !mathutil.IsZero(summary.FinalBalance - summary.RealFinalBalance) {
			_, _ = p.Fprintf(w, "Inflation adjusted:  $%.2f\n", summary.RealFinalBalance)
		}
		fmt.Fprintf(w, "Effective rate:      %s (%s compounding)\n",
			format.Percent(summary.EffectiveAnnualRate, 4), summary.Compounding)

		if result.Goal != nil {
			goal := result.Goal
			status := "reached"
			if !goal.Converged {
				status = "not reached"
			}
			fmt.Fprintf(w, "Goal: %s = %s (was %s), target %s %s\n",
				goal.Field, goal.ValueDisplay, goal.OriginalDisplay, format.Currency(goal.Target), status)
			for _, note := range goal.Notes {
				fmt.Fprintf(w, "  note: %s\n", note)
			}
		}

		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "Period     | Deposits      | Interest      | Balance\n")
		fmt.Fprintf(w, "__________ | _____________ | _____________ | _____________\n")
		for _, row := range result.Result.Selected() {
			_, _ = p.Fprintf(w, "%-10s | $%-12.2f | $%-12.2f | $%.2f\n",
				row.Label, row.Contributions, row.Interest, row.EndBalance)
		}
	}
}

// JSONFormat writes the results as indented JSON.
func JSONFormat(w io.Writer, results []forecast.Forecast) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", strings.Repeat(" ", 2))
	return enc.Encode(results)
}

// HistoryFormat lists recorded calculations, newest first.
func HistoryFormat(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No recorded calculations\n")
		return
	}
	fmt.Fprintf(w, "Recorded             | Calculator | Final balance   | Name\n")
	fmt.Fprintf(w, "____________________ | __________ | _______________ | ____\n")
	for _, entry := range entries {
		fmt.Fprintf(w, "%-20s | %-10s | %-15s | %s\n",
			entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			entry.Calculator,
			format.Currency(entry.Summary.FinalBalance),
			entry.Name)
	}
}

// HistoryJSONFormat writes history entries as indented JSON.
func HistoryJSONFormat(w io.Writer, entries []history.Entry) error {
	if entries == nil {
		entries = []history.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", strings.Repeat(" ", 2))
	return enc.Encode(entries)
}
