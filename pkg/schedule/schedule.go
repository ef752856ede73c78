// Package schedule aggregates simulated months into monthly, quarterly and
// yearly report rows.
package schedule

import (
	"fmt"
	"strings"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/datetime"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/finance"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
)

// View is the number of months each row covers.
type View int

const (
	MonthlyView   View = 1
	QuarterlyView View = constants.MonthsPerQuarter
	YearlyView    View = constants.MonthsPerYear
)

// ParseView converts "monthly", "quarterly" or "yearly" into a View. An
// empty string selects the yearly view.
func ParseView(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yearly", "annual", "annually":
		return YearlyView, nil
	case "quarterly":
		return QuarterlyView, nil
	case "monthly":
		return MonthlyView, nil
	default:
		return 0, fmt.Errorf("unknown schedule view %q", name)
	}
}

func (v View) String() string {
	switch v {
	case MonthlyView:
		return "monthly"
	case QuarterlyView:
		return "quarterly"
	case YearlyView:
		return "yearly"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

func (v View) unit() string {
	switch v {
	case MonthlyView:
		return "Month"
	case QuarterlyView:
		return "Quarter"
	default:
		return "Year"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *View) UnmarshalText(text []byte) error {
	parsed, err := ParseView(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Row is one reporting period. Money fields are rounded to cents.
type Row struct {
	Period             int     `json:"period"`
	Label              string  `json:"label"`
	Months             int     `json:"months"`
	StartBalance       float64 `json:"startBalance"`
	Contributions      float64 `json:"contributions"`
	Interest           float64 `json:"interest"`
	Tax                float64 `json:"tax,omitempty"`
	EndBalance         float64 `json:"endBalance"`
	RealEndBalance     float64 `json:"realEndBalance"`
	TotalContributions float64 `json:"totalContributions"`
	TotalInterest      float64 `json:"totalInterest"`
	TotalTax           float64 `json:"totalTax,omitempty"`
}

// Build groups consecutive records into rows of the view's length; the last
// row may cover fewer months. Sums are taken over unrounded records and only
// the results are rounded. When startDate ("2006-01") is set, rows are
// labelled with the month they begin in.
func Build(records []finance.MonthRecord, view View, startDate string) ([]Row, error) {
	if view <= 0 {
		return nil, fmt.Errorf("invalid schedule view %d", view)
	}
	if len(records) == 0 {
		return nil, nil
	}

	step := int(view)
	rows := make([]Row, 0, (len(records)+step-1)/step)
	var cumContrib, cumInterest, cumTax float64

	for begin := 0; begin < len(records); begin += step {
		end := begin + step
		if end > len(records) {
			end = len(records)
		}
		block := records[begin:end]
		totals := finance.Sum(block)
		// running totals add record by record so the final row matches
		// finance.Sum over the whole walk exactly
		for _, r := range block {
			cumContrib += r.Contribution
			cumInterest += r.Interest
			cumTax += r.Tax
		}

		label, err := rowLabel(view, len(rows)+1, startDate, begin)
		if err != nil {
			return nil, err
		}

		last := block[len(block)-1]
		rows = append(rows, Row{
			Period:             len(rows) + 1,
			Label:              label,
			Months:             len(block),
			StartBalance:       mathutil.Round(block[0].StartBalance),
			Contributions:      mathutil.Round(totals.Contributions),
			Interest:           mathutil.Round(totals.Interest),
			Tax:                mathutil.Round(totals.Tax),
			EndBalance:         mathutil.Round(last.EndBalance),
			RealEndBalance:     mathutil.Round(last.RealEndBalance),
			TotalContributions: mathutil.Round(cumContrib),
			TotalInterest:      mathutil.Round(cumInterest),
			TotalTax:           mathutil.Round(cumTax),
		})
	}

	return rows, nil
}

func rowLabel(view View, period int, startDate string, monthOffset int) (string, error) {
	if startDate == "" {
		return fmt.Sprintf("%s %d", view.unit(), period), nil
	}
	label, err := datetime.OffsetDate(startDate, datetime.DateTimeLayout, monthOffset)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	return label, nil
}
