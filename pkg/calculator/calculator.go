// Package calculator implements the compound interest, savings and
// savings-balance calculators on top of the shared compounding walk.
package calculator

import (
	"errors"
	"fmt"
	"time"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/datetime"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/finance"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/schedule"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/validation"
	"go.uber.org/zap"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Input is implemented by every calculator's input type.
type Input interface {
	// Calculator returns the calculator name, e.g. "compound".
	Calculator() string
	// ContributionAmount is the recurring deposit.
	ContributionAmount() float64
	// DurationMonths is the total simulated length.
	DurationMonths() int
	// WithContribution returns a copy with a different recurring deposit.
	WithContribution(amount float64) Input
	// WithMonths returns a copy lasting the given number of months.
	WithMonths(months int) Input

	plan() (plan, error)
}

// plan is a validated input ready to simulate.
type plan struct {
	params    finance.Params
	startDate string
	start     time.Time
	daily     bool
	view      schedule.View
}

// Summary holds the headline figures of a calculation, rounded to cents.
type Summary struct {
	InitialBalance      float64 `json:"initialBalance"`
	FinalBalance        float64 `json:"finalBalance"`
	TotalContributions  float64 `json:"totalContributions"`
	TotalInterest       float64 `json:"totalInterest"`
	TotalTax            float64 `json:"totalTax"`
	RealFinalBalance    float64 `json:"realFinalBalance"`
	EffectiveAnnualRate float64 `json:"effectiveAnnualRate"`
	Months              int     `json:"months"`
	Compounding         string  `json:"compounding"`
	DailyWalk           bool    `json:"dailyWalk,omitempty"`
}

// Result is a completed calculation with all three schedule views.
type Result struct {
	Calculator string         `json:"calculator"`
	View       schedule.View  `json:"view"`
	Summary    Summary        `json:"summary"`
	Monthly    []schedule.Row `json:"monthly"`
	Quarterly  []schedule.Row `json:"quarterly"`
	Yearly     []schedule.Row `json:"yearly"`
}

// Selected returns the rows of the requested view.
func (r *Result) Selected() []schedule.Row {
	switch r.View {
	case schedule.MonthlyView:
		return r.Monthly
	case schedule.QuarterlyView:
		return r.Quarterly
	default:
		return r.Yearly
	}
}

// Run validates the input, walks the balance and builds the schedules.
func Run(logger *zap.Logger, in Input) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in == nil {
		return nil, invalid("input", "must not be nil")
	}

	p, err := in.plan()
	if err != nil {
		return nil, err
	}

	sim := finance.NewSimulator(logger)
	var records []finance.MonthRecord
	if p.daily {
		records, err = sim.SimulateDaily(p.params, p.start)
	} else {
		records, err = sim.Simulate(p.params)
	}
	if err != nil {
		return nil, fmt.Errorf("%s simulation failed: %w", in.Calculator(), err)
	}

	result := &Result{Calculator: in.Calculator(), View: p.view}
	views := []struct {
		view schedule.View
		dst  *[]schedule.Row
	}{
		{schedule.MonthlyView, &result.Monthly},
		{schedule.QuarterlyView, &result.Quarterly},
		{schedule.YearlyView, &result.Yearly},
	}
	for _, v := range views {
		rows, err := schedule.Build(records, v.view, p.startDate)
		if err != nil {
			return nil, err
		}
		*v.dst = rows
	}

	totals := finance.Sum(records)
	last := records[len(records)-1]
	result.Summary = Summary{
		InitialBalance:      mathutil.Round(p.params.InitialBalance),
		FinalBalance:        mathutil.Round(last.EndBalance),
		TotalContributions:  mathutil.Round(totals.Contributions),
		TotalInterest:       mathutil.Round(totals.Interest),
		TotalTax:            mathutil.Round(totals.Tax),
		RealFinalBalance:    mathutil.Round(last.RealEndBalance),
		EffectiveAnnualRate: mathutil.RoundTo(finance.EffectiveAnnualRate(p.params.AnnualRate, p.params.Compounding)*constants.PercentageMultiplier, constants.RateDecimalPlaces),
		Months:              len(records),
		Compounding:         p.params.Compounding.String(),
		DailyWalk:           p.daily,
	}

	logger.Debug("calculation complete",
		zap.String("op", "calculator.Run"),
		zap.String("calculator", result.Calculator),
		zap.Int("months", result.Summary.Months),
		zap.Float64("finalBalance", result.Summary.FinalBalance),
	)

	return result, nil
}

// common holds the enum strings shared by every input and parses them.
type common struct {
	annualRate   float64
	compounding  string
	frequency    string
	timing       string
	startDate    string
	view         string
	months       int
	balanceField string
	balance      float64
	contribution float64
}

func (c common) parse() (plan, error) {
	var p plan

	if c.balance < 0 {
		return p, invalid(c.balanceField, "must not be negative")
	}
	if c.contribution < 0 {
		return p, invalid("contribution", "must not be negative")
	}
	if c.annualRate <= -constants.PercentageMultiplier || c.annualRate > constants.PercentageMultiplier {
		return p, invalid("annualRate", "must be greater than -100 and at most 100, got %v", c.annualRate)
	}
	if c.months < 1 || c.months > constants.MaxMonths {
		return p, invalid("duration", "must be between 1 and %d months, got %d", constants.MaxMonths, c.months)
	}

	compounding, err := finance.ParseCompounding(c.compounding)
	if err != nil {
		return p, invalid("compounding", "%v", err)
	}
	frequency, err := finance.ParseContributionFrequency(c.frequency)
	if err != nil {
		return p, invalid("contributionFrequency", "%v", err)
	}
	timing, err := finance.ParseTiming(c.timing)
	if err != nil {
		return p, invalid("contributionTiming", "%v", err)
	}
	view, err := schedule.ParseView(c.view)
	if err != nil {
		return p, invalid("view", "%v", err)
	}
	if err := validation.ValidateStartDate(c.startDate); err != nil {
		return p, invalid("startDate", "%v", err)
	}
	if c.startDate != "" {
		p.start = datetime.MustParseTime(datetime.DateTimeLayout, c.startDate)
	}

	p.params = finance.Params{
		InitialBalance:        c.balance,
		AnnualRate:            c.annualRate,
		Compounding:           compounding,
		Months:                c.months,
		Contribution:          c.contribution,
		ContributionFrequency: frequency,
		Timing:                timing,
	}
	p.startDate = c.startDate
	p.view = view
	return p, nil
}

func checkPercent(field string, value, min, max float64, minInclusive bool) error {
	if value > max || value < min || (!minInclusive && value == min) {
		bound := "at least"
		if !minInclusive {
			bound = "greater than"
		}
		return invalid(field, "must be %s %v and at most %v, got %v", bound, min, max, value)
	}
	return nil
}
