// Package optimizer solves for the recurring contribution or the number of
// months needed to reach a target balance.
package optimizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/format"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/optimization"
	"go.uber.org/zap"
)

// Fields a goal can solve for.
const (
	FieldContribution = "contribution"
	FieldMonths       = "months"
)

// Goal is a target balance and the input field adjusted to reach it.
type Goal struct {
	TargetBalance float64 `json:"targetBalance" yaml:"targetBalance" mapstructure:"targetBalance"`
	SolveFor      string  `json:"solveFor,omitempty" yaml:"solveFor,omitempty" mapstructure:"solveFor"`
}

// CanonicalField normalizes SolveFor; an empty value means contribution.
func CanonicalField(field string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "", "contribution", "deposit", "monthlydeposit":
		return FieldContribution, nil
	case "months", "duration":
		return FieldMonths, nil
	}
	return "", fmt.Errorf("unsupported goal field %q", field)
}

// Runner executes goal seeks.
type Runner struct {
	logger *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run solves the goal for the named input and returns the summary together
// with the input adjusted to the solved value.
func (r *Runner) Run(name string, in calculator.Input, goal Goal) (optimization.Summary, calculator.Input, error) {
	if in == nil {
		return optimization.Summary{}, nil, &calculator.ValidationError{Field: "input", Reason: "must not be nil"}
	}
	if goal.TargetBalance <= 0 {
		return optimization.Summary{}, nil, &calculator.ValidationError{
			Field:  "goal.targetBalance",
			Reason: fmt.Sprintf("must be positive, got %v", goal.TargetBalance),
		}
	}
	field, err := CanonicalField(goal.SolveFor)
	if err != nil {
		return optimization.Summary{}, nil, &calculator.ValidationError{Field: "goal.solveFor", Reason: err.Error()}
	}

	var summary optimization.Summary
	var adjusted calculator.Input
	switch field {
	case FieldMonths:
		summary, adjusted, err = r.monthsToTarget(in, goal.TargetBalance)
	default:
		summary, adjusted, err = r.requiredContribution(in, goal.TargetBalance)
	}
	if err != nil {
		return optimization.Summary{}, nil, err
	}
	summary.TargetName = name

	r.logger.Debug("goal seek complete",
		zap.String("op", "optimizer.Run"),
		zap.String("target", name),
		zap.String("field", summary.Field),
		zap.Float64("value", summary.Value),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary, adjusted, nil
}

func (r *Runner) finalBalance(in calculator.Input) (float64, error) {
	result, err := calculator.Run(r.logger, in)
	if err != nil {
		return 0, err
	}
	return result.Summary.FinalBalance, nil
}

func reached(balance, target float64) bool {
	return balance >= target-1e-9
}

// requiredContribution bisects the recurring deposit. The final balance is
// non-decreasing in the deposit, so the smallest cent amount that reaches
// the target is well defined.
func (r *Runner) requiredContribution(in calculator.Input, target float64) (optimization.Summary, calculator.Input, error) {
	original := in.ContributionAmount()
	summary := optimization.Summary{
		Field:           FieldContribution,
		Original:        original,
		OriginalDisplay: format.Currency(original),
		Target:          target,
	}

	atZero, err := r.finalBalance(in.WithContribution(0))
	if err != nil {
		return summary, nil, err
	}
	if reached(atZero, target) {
		adjusted := in.WithContribution(0)
		summary.Value = 0
		summary.ValueDisplay = format.Currency(0)
		summary.Achieved = atZero
		summary.Converged = true
		summary.Notes = []string{"target reached without contributions"}
		return summary, adjusted, nil
	}

	lo, hi := 0.0, target
	hiBalance, err := r.finalBalance(in.WithContribution(hi))
	if err != nil {
		return summary, nil, err
	}
	for expansions := 0; !reached(hiBalance, target); expansions++ {
		if expansions >= 20 {
			summary.Value = hi
			summary.ValueDisplay = format.Currency(hi)
			summary.Achieved = hiBalance
			summary.Notes = []string{fmt.Sprintf("unable to reach %s with contributions up to %s", format.Currency(target), format.Currency(hi))}
			return summary, in.WithContribution(hi), nil
		}
		lo = hi
		hi *= 2
		if hiBalance, err = r.finalBalance(in.WithContribution(hi)); err != nil {
			return summary, nil, err
		}
	}

	iterations := 0
	for ; iterations < constants.MaxGoalIterations && hi-lo > constants.CurrencyTolerance/2; iterations++ {
		mid := (lo + hi) / 2
		balance, err := r.finalBalance(in.WithContribution(mid))
		if err != nil {
			return summary, nil, err
		}
		if reached(balance, target) {
			hi = mid
		} else {
			lo = mid
		}
	}

	// smallest whole-cent amount at or above lo that reaches the target
	value := math.Ceil(lo*100) / 100
	achieved, err := r.finalBalance(in.WithContribution(value))
	if err != nil {
		return summary, nil, err
	}
	for !reached(achieved, target) {
		value += constants.CurrencyTolerance
		if achieved, err = r.finalBalance(in.WithContribution(value)); err != nil {
			return summary, nil, err
		}
	}
	value = math.Round(value*100) / 100

	summary.Value = value
	summary.ValueDisplay = format.Currency(value)
	summary.Achieved = achieved
	summary.Iterations = iterations
	summary.Converged = true
	return summary, in.WithContribution(value), nil
}

// monthsToTarget runs the longest allowed walk once and finds the first
// month whose closing balance reaches the target.
func (r *Runner) monthsToTarget(in calculator.Input, target float64) (optimization.Summary, calculator.Input, error) {
	original := float64(in.DurationMonths())
	summary := optimization.Summary{
		Field:           FieldMonths,
		Original:        original,
		OriginalDisplay: fmt.Sprintf("%d months", in.DurationMonths()),
		Target:          target,
	}

	result, err := calculator.Run(r.logger, in.WithMonths(constants.MaxMonths))
	if err != nil {
		return summary, nil, err
	}

	if reached(result.Summary.InitialBalance, target) {
		summary.Achieved = result.Summary.InitialBalance
		summary.ValueDisplay = "0 months"
		summary.Converged = true
		summary.Notes = []string{fmt.Sprintf("starting balance already meets target; schedule keeps the configured %d months", in.DurationMonths())}
		return summary, in, nil
	}

	for i, row := range result.Monthly {
		if reached(row.EndBalance, target) {
			months := i + 1
			summary.Value = float64(months)
			summary.ValueDisplay = fmt.Sprintf("%d months", months)
			summary.Achieved = row.EndBalance
			summary.Iterations = months
			summary.Converged = true
			return summary, in.WithMonths(months), nil
		}
	}

	last := result.Monthly[len(result.Monthly)-1]
	summary.Value = float64(constants.MaxMonths)
	summary.ValueDisplay = fmt.Sprintf("%d months", constants.MaxMonths)
	summary.Achieved = last.EndBalance
	summary.Iterations = len(result.Monthly)
	summary.Notes = []string{fmt.Sprintf("target %s not reached within %d months", format.Currency(target), constants.MaxMonths)}
	return summary, in.WithMonths(constants.MaxMonths), nil
}
