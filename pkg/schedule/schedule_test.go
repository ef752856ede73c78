package schedule

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/finance"
)

// flatRecords builds n months of a zero-rate walk with a fixed deposit.
func flatRecords(n int, deposit float64) []finance.MonthRecord {
	records := make([]finance.MonthRecord, 0, n)
	balance := 0.0
	for i := 0; i < n; i++ {
		start := balance
		balance += deposit
		records = append(records, finance.MonthRecord{
			Month:          i + 1,
			StartBalance:   start,
			Contribution:   deposit,
			EndBalance:     balance,
			RealEndBalance: balance,
		})
	}
	return records
}

func TestBuildYearlyWithPartialYear(t *testing.T) {
	rows, err := Build(flatRecords(18, 100), YearlyView, "")
	require.NoError(t, err)

	want := []Row{
		{Period: 1, Label: "Year 1", Months: 12, StartBalance: 0, Contributions: 1200, EndBalance: 1200, RealEndBalance: 1200, TotalContributions: 1200},
		{Period: 2, Label: "Year 2", Months: 6, StartBalance: 1200, Contributions: 600, EndBalance: 1800, RealEndBalance: 1800, TotalContributions: 1800},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildQuarterlyLabelsFromStartDate(t *testing.T) {
	rows, err := Build(flatRecords(7, 50), QuarterlyView, "2025-11")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2025-11", rows[0].Label)
	assert.Equal(t, "2026-02", rows[1].Label)
	assert.Equal(t, "2026-05", rows[2].Label)
	assert.Equal(t, 1, rows[2].Months)

	_, err = Build(flatRecords(3, 50), QuarterlyView, "November")
	assert.Error(t, err)
}

func TestBuildAggregatesUnroundedValues(t *testing.T) {
	sim := finance.NewSimulator(nil)
	months, err := sim.Simulate(finance.Params{
		InitialBalance:        10000,
		AnnualRate:            3.3,
		Compounding:           finance.Daily,
		Months:                60,
		Contribution:          123.45,
		ContributionFrequency: finance.EveryMonth,
		TaxRate:               15,
		InflationRate:         2.5,
	})
	require.NoError(t, err)
	totals := finance.Sum(months)

	for _, view := range []View{MonthlyView, QuarterlyView, YearlyView} {
		rows, err := Build(months, view, "")
		require.NoError(t, err)

		var interest float64
		for i, row := range rows {
			interest += row.Interest
			if i > 0 {
				assert.Equal(t, rows[i-1].EndBalance, row.StartBalance, "%s row %d does not chain", view, row.Period)
			}
		}
		// each rounded row may drift by at most half a cent
		assert.LessOrEqual(t, math.Abs(interest-totals.Interest), 0.005*float64(len(rows))+1e-9, "%s interest drift", view)

		last := rows[len(rows)-1]
		assert.InDelta(t, totals.Interest, last.TotalInterest, 0.005+1e-9)
		assert.InDelta(t, totals.Tax, last.TotalTax, 0.005+1e-9)
		assert.InDelta(t, months[len(months)-1].EndBalance, last.EndBalance, 0.005+1e-9)
	}
}

func TestBuildEdgeCases(t *testing.T) {
	rows, err := Build(nil, YearlyView, "")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = Build(flatRecords(2, 1), View(0), "")
	assert.Error(t, err)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		input   string
		want    View
		wantErr bool
	}{
		{"", YearlyView, false},
		{"Monthly", MonthlyView, false},
		{"quarterly", QuarterlyView, false},
		{"annually", YearlyView, false},
		{"weekly", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseView(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
