package finance

import (
	"fmt"
	"math"
	"time"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/datetime"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
	"go.uber.org/zap"
)

// Params describes one balance walk. Rates are percentages.
type Params struct {
	InitialBalance         float64
	AnnualRate             float64
	Compounding            Compounding
	Months                 int
	Contribution           float64
	ContributionFrequency  ContributionFrequency
	Timing                 Timing
	ContributionGrowthRate float64
	TaxRate                float64
	InflationRate          float64
}

// MonthRecord captures the unrounded activity of a single simulated month.
type MonthRecord struct {
	Month          int
	StartBalance   float64
	Contribution   float64
	Interest       float64
	Tax            float64
	EndBalance     float64
	RealEndBalance float64
	// Days is the number of calendar days walked; zero for the monthly walk.
	Days int
}

// Simulator runs balance walks.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a Simulator.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger}
}

func (p Params) check() error {
	if p.Months <= 0 || p.Months > constants.MaxMonths {
		return fmt.Errorf("months must be between 1 and %d, got %d", constants.MaxMonths, p.Months)
	}
	if p.ContributionFrequency <= 0 {
		return fmt.Errorf("contribution frequency must be positive, got %d", p.ContributionFrequency)
	}
	if p.AnnualRate <= -constants.PercentageMultiplier {
		return fmt.Errorf("annual rate must be greater than -100%%, got %v", p.AnnualRate)
	}
	if p.Compounding != Continuously && p.Compounding <= 0 {
		return fmt.Errorf("invalid compounding frequency %d", p.Compounding)
	}
	return nil
}

// contributionFor returns the deposit due in the zero-based month index.
func (p Params) contributionFor(index int) float64 {
	if p.Contribution == 0 || index%int(p.ContributionFrequency) != 0 {
		return 0
	}
	amount := p.Contribution
	if p.ContributionGrowthRate != 0 {
		years := index / constants.MonthsPerYear
		amount *= math.Pow(1+mathutil.PercentToDecimal(p.ContributionGrowthRate), float64(years))
	}
	return amount
}

func (p Params) taxOn(interest float64) float64 {
	if interest <= 0 || p.TaxRate <= 0 {
		return 0
	}
	return mathutil.ApplyPercentage(interest, p.TaxRate)
}

// Simulate walks the balance month by month. Each month a due contribution
// is added before (Beginning) or after (End) interest is credited at the
// effective monthly rate, then tax is withheld from positive interest.
// Values are kept at full precision; rounding happens when reporting.
func (s *Simulator) Simulate(p Params) ([]MonthRecord, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	rate := MonthlyRate(p.AnnualRate, p.Compounding)
	s.logger.Debug("starting monthly simulation",
		zap.String("op", "finance.Simulate"),
		zap.Int("months", p.Months),
		zap.Float64("monthlyRate", rate),
		zap.String("compounding", p.Compounding.String()),
	)

	records := make([]MonthRecord, 0, p.Months)
	balance := p.InitialBalance
	for i := 0; i < p.Months; i++ {
		rec := MonthRecord{Month: i + 1, StartBalance: balance}
		contribution := p.contributionFor(i)

		if p.Timing == Beginning {
			balance += contribution
		}

		interest := balance * rate
		tax := p.taxOn(interest)
		balance += interest - tax

		if p.Timing == End {
			balance += contribution
		}

		rec.Contribution = contribution
		rec.Interest = interest
		rec.Tax = tax
		rec.EndBalance = balance
		rec.RealEndBalance = balance / InflationFactor(p.InflationRate, i+1)
		records = append(records, rec)
	}

	return records, nil
}

// SimulateDaily walks real calendar days starting on the first of start's
// month, crediting DailyRate interest every day. Contributions post on the
// first day of a due month (Beginning) or after its last day (End). Records
// are aggregated per calendar month.
func (s *Simulator) SimulateDaily(p Params, start time.Time) ([]MonthRecord, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, fmt.Errorf("daily simulation requires a start date")
	}

	rate := DailyRate(p.AnnualRate)
	first := datetime.FirstOfMonth(start)
	s.logger.Debug("starting daily simulation",
		zap.String("op", "finance.SimulateDaily"),
		zap.Int("months", p.Months),
		zap.Float64("dailyRate", rate),
		zap.String("start", first.Format(constants.DateTimeLayout)),
	)

	records := make([]MonthRecord, 0, p.Months)
	balance := p.InitialBalance
	for i := 0; i < p.Months; i++ {
		monthStart := first.AddDate(0, i, 0)
		days := datetime.DaysInMonth(monthStart)
		rec := MonthRecord{Month: i + 1, StartBalance: balance, Days: days}
		contribution := p.contributionFor(i)

		if p.Timing == Beginning {
			balance += contribution
		}

		for d := 0; d < days; d++ {
			interest := balance * rate
			tax := p.taxOn(interest)
			balance += interest - tax
			rec.Interest += interest
			rec.Tax += tax
		}

		if p.Timing == End {
			balance += contribution
		}

		rec.Contribution = contribution
		rec.EndBalance = balance
		rec.RealEndBalance = balance / InflationFactor(p.InflationRate, i+1)
		records = append(records, rec)
	}

	return records, nil
}

// Totals sums the activity across records.
type Totals struct {
	Contributions float64
	Interest      float64
	Tax           float64
}

// Sum adds up contributions, interest and tax over the given records.
func Sum(records []MonthRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Contributions += r.Contribution
		t.Interest += r.Interest
		t.Tax += r.Tax
	}
	return t
}
