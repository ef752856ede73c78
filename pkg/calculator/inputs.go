package calculator

import (
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/finance"
	"go.uber.org/zap"
)

// CompoundInput grows a principal, optionally with recurring contributions.
type CompoundInput struct {
	Principal             float64 `json:"principal"`
	AnnualRate            float64 `json:"annualRate"`
	Compounding           string  `json:"compounding,omitempty"`
	Years                 int     `json:"years"`
	Months                int     `json:"months,omitempty"`
	Contribution          float64 `json:"contribution,omitempty"`
	ContributionFrequency string  `json:"contributionFrequency,omitempty"`
	ContributionTiming    string  `json:"contributionTiming,omitempty"`
	StartDate             string  `json:"startDate,omitempty"`
	View                  string  `json:"view,omitempty"`
}

func (in CompoundInput) Calculator() string          { return constants.CalculatorCompound }
func (in CompoundInput) ContributionAmount() float64 { return in.Contribution }
func (in CompoundInput) DurationMonths() int         { return in.Years*constants.MonthsPerYear + in.Months }

func (in CompoundInput) WithContribution(amount float64) Input {
	in.Contribution = amount
	return in
}

func (in CompoundInput) WithMonths(months int) Input {
	in.Years, in.Months = 0, months
	return in
}

func (in CompoundInput) plan() (plan, error) {
	if in.Years < 0 || in.Months < 0 {
		return plan{}, invalid("duration", "years and months must not be negative")
	}
	return common{
		annualRate:   in.AnnualRate,
		compounding:  in.Compounding,
		frequency:    in.ContributionFrequency,
		timing:       in.ContributionTiming,
		startDate:    in.StartDate,
		view:         in.View,
		months:       in.DurationMonths(),
		balanceField: "principal",
		balance:      in.Principal,
		contribution: in.Contribution,
	}.parse()
}

// CompoundInterest runs the compound interest calculator.
func CompoundInterest(logger *zap.Logger, in CompoundInput) (*Result, error) {
	return Run(logger, in)
}

// SavingsInput is the generic savings calculator: deposits that may grow each
// year, tax withheld on interest, and an inflation-adjusted view.
type SavingsInput struct {
	InitialDeposit         float64 `json:"initialDeposit"`
	Contribution           float64 `json:"contribution,omitempty"`
	ContributionFrequency  string  `json:"contributionFrequency,omitempty"`
	ContributionGrowthRate float64 `json:"contributionGrowthRate,omitempty"`
	ContributionTiming     string  `json:"contributionTiming,omitempty"`
	AnnualRate             float64 `json:"annualRate"`
	Compounding            string  `json:"compounding,omitempty"`
	Years                  int     `json:"years"`
	Months                 int     `json:"months,omitempty"`
	TaxRate                float64 `json:"taxRate,omitempty"`
	InflationRate          float64 `json:"inflationRate,omitempty"`
	StartDate              string  `json:"startDate,omitempty"`
	View                   string  `json:"view,omitempty"`
}

func (in SavingsInput) Calculator() string          { return constants.CalculatorSavings }
func (in SavingsInput) ContributionAmount() float64 { return in.Contribution }
func (in SavingsInput) DurationMonths() int         { return in.Years*constants.MonthsPerYear + in.Months }

func (in SavingsInput) WithContribution(amount float64) Input {
	in.Contribution = amount
	return in
}

func (in SavingsInput) WithMonths(months int) Input {
	in.Years, in.Months = 0, months
	return in
}

func (in SavingsInput) plan() (plan, error) {
	if in.Years < 0 || in.Months < 0 {
		return plan{}, invalid("duration", "years and months must not be negative")
	}
	if err := checkPercent("taxRate", in.TaxRate, 0, 100, true); err != nil {
		return plan{}, err
	}
	if err := checkPercent("inflationRate", in.InflationRate, -100, 100, false); err != nil {
		return plan{}, err
	}
	if err := checkPercent("contributionGrowthRate", in.ContributionGrowthRate, 0, 100, true); err != nil {
		return plan{}, err
	}

	p, err := common{
		annualRate:   in.AnnualRate,
		compounding:  in.Compounding,
		frequency:    in.ContributionFrequency,
		timing:       in.ContributionTiming,
		startDate:    in.StartDate,
		view:         in.View,
		months:       in.DurationMonths(),
		balanceField: "initialDeposit",
		balance:      in.InitialDeposit,
		contribution: in.Contribution,
	}.parse()
	if err != nil {
		return p, err
	}
	p.params.ContributionGrowthRate = in.ContributionGrowthRate
	p.params.TaxRate = in.TaxRate
	p.params.InflationRate = in.InflationRate
	return p, nil
}

// Savings runs the generic savings calculator.
func Savings(logger *zap.Logger, in SavingsInput) (*Result, error) {
	return Run(logger, in)
}

// BalanceInput tracks a savings balance month by month. With daily
// compounding and a start date the balance is walked over real calendar days.
type BalanceInput struct {
	StartingBalance    float64 `json:"startingBalance"`
	MonthlyDeposit     float64 `json:"monthlyDeposit,omitempty"`
	ContributionTiming string  `json:"contributionTiming,omitempty"`
	AnnualRate         float64 `json:"annualRate"`
	Compounding        string  `json:"compounding,omitempty"`
	Months             int     `json:"months"`
	StartDate          string  `json:"startDate,omitempty"`
	View               string  `json:"view,omitempty"`
}

func (in BalanceInput) Calculator() string          { return constants.CalculatorBalance }
func (in BalanceInput) ContributionAmount() float64 { return in.MonthlyDeposit }
func (in BalanceInput) DurationMonths() int         { return in.Months }

func (in BalanceInput) WithContribution(amount float64) Input {
	in.MonthlyDeposit = amount
	return in
}

func (in BalanceInput) WithMonths(months int) Input {
	in.Months = months
	return in
}

func (in BalanceInput) plan() (plan, error) {
	p, err := common{
		annualRate:   in.AnnualRate,
		compounding:  in.Compounding,
		timing:       in.ContributionTiming,
		startDate:    in.StartDate,
		view:         in.View,
		months:       in.Months,
		balanceField: "startingBalance",
		balance:      in.StartingBalance,
		contribution: in.MonthlyDeposit,
	}.parse()
	if err != nil {
		return p, err
	}
	p.daily = p.params.Compounding == finance.Daily && !p.start.IsZero()
	return p, nil
}

// SavingsBalance runs the savings-balance-over-time calculator.
func SavingsBalance(logger *zap.Logger, in BalanceInput) (*Result, error) {
	return Run(logger, in)
}
