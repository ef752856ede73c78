// Package finance implements the compounding math shared by all calculators:
// rate conversion from a nominal annual rate to an effective per-period rate,
// and the month-by-month (or day-by-day) balance walk.
package finance

import (
	"fmt"
	"math"
	"strings"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/mathutil"
)

// Compounding is how often interest is compounded per year.
type Compounding int

// Supported compounding frequencies. The value is the number of compounding
// periods per year; Continuously has no discrete period count.
const (
	Continuously Compounding = -1
	Annually     Compounding = 1
	Semiannually Compounding = 2
	Quarterly    Compounding = 4
	Monthly      Compounding = 12
	Semimonthly  Compounding = 24
	Biweekly     Compounding = 26
	Weekly       Compounding = 52
	Daily        Compounding = 365
)

var compoundingNames = map[Compounding]string{
	Continuously: "continuously",
	Annually:     "annually",
	Semiannually: "semiannually",
	Quarterly:    "quarterly",
	Monthly:      "monthly",
	Semimonthly:  "semimonthly",
	Biweekly:     "biweekly",
	Weekly:       "weekly",
	Daily:        "daily",
}

var compoundingAliases = map[string]Compounding{
	"continuous":    Continuously,
	"annual":        Annually,
	"yearly":        Annually,
	"semi-annually": Semiannually,
	"semiannual":    Semiannually,
	"semi-monthly":  Semimonthly,
	"bi-weekly":     Biweekly,
}

// ParseCompounding converts a name such as "monthly" into a Compounding.
// An empty string selects monthly compounding.
func ParseCompounding(name string) (Compounding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Monthly, nil
	}
	for c, n := range compoundingNames {
		if n == key {
			return c, nil
		}
	}
	if c, ok := compoundingAliases[key]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown compounding frequency %q", name)
}

func (c Compounding) String() string {
	if n, ok := compoundingNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Compounding(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Compounding) MarshalText() ([]byte, error) {
	if _, ok := compoundingNames[c]; !ok {
		return nil, fmt.Errorf("unknown compounding frequency %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compounding) UnmarshalText(text []byte) error {
	parsed, err := ParseCompounding(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ContributionFrequency is the interval between contributions in months.
type ContributionFrequency int

const (
	EveryMonth    ContributionFrequency = 1
	EveryQuarter  ContributionFrequency = 3
	EveryHalfYear ContributionFrequency = 6
	EveryYear     ContributionFrequency = 12
)

// ParseContributionFrequency converts a name such as "quarterly" into a
// ContributionFrequency. An empty string selects monthly contributions.
func ParseContributionFrequency(name string) (ContributionFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "monthly":
		return EveryMonth, nil
	case "quarterly":
		return EveryQuarter, nil
	case "semiannually", "semi-annually", "semiannual":
		return EveryHalfYear, nil
	case "annually", "annual", "yearly":
		return EveryYear, nil
	default:
		return 0, fmt.Errorf("unknown contribution frequency %q", name)
	}
}

func (f ContributionFrequency) String() string {
	switch f {
	case EveryMonth:
		return "monthly"
	case EveryQuarter:
		return "quarterly"
	case EveryHalfYear:
		return "semiannually"
	case EveryYear:
		return "annually"
	}
	return fmt.Sprintf("ContributionFrequency(%d)", int(f))
}

// Timing says whether a contribution lands before or after the month's
// interest is credited.
type Timing int

const (
	End Timing = iota
	Beginning
)

// ParseTiming converts "beginning" or "end" into a Timing. An empty string
// selects End.
func ParseTiming(name string) (Timing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "end":
		return End, nil
	case "beginning", "start":
		return Beginning, nil
	default:
		return 0, fmt.Errorf("unknown contribution timing %q", name)
	}
}

func (t Timing) String() string {
	if t == Beginning {
		return "beginning"
	}
	return "end"
}

// MonthlyRate converts a nominal annual percentage rate compounded c times a
// year into the equivalent effective monthly rate, (1 + r/n)^(n/12) - 1.
func MonthlyRate(annualPercent float64, c Compounding) float64 {
	r := mathutil.PercentToDecimal(annualPercent)
	if r == 0 {
		return 0
	}
	if c == Continuously {
		return math.Expm1(r / constants.MonthsPerYear)
	}
	n := float64(c)
	return math.Pow(1+r/n, n/constants.MonthsPerYear) - 1
}

// EffectiveAnnualRate returns the annual percentage yield as a fraction,
// (1 + r/n)^n - 1.
func EffectiveAnnualRate(annualPercent float64, c Compounding) float64 {
	r := mathutil.PercentToDecimal(annualPercent)
	if r == 0 {
		return 0
	}
	if c == Continuously {
		return math.Expm1(r)
	}
	n := float64(c)
	return math.Pow(1+r/n, n) - 1
}

// DailyRate is the per-day rate used by the calendar-day walk.
func DailyRate(annualPercent float64) float64 {
	return mathutil.PercentToDecimal(annualPercent) / constants.DaysPerYear
}

// InflationFactor is the cumulative price growth after the given number of
// months, (1 + i)^(months/12).
func InflationFactor(inflationPercent float64, months int) float64 {
	i := mathutil.PercentToDecimal(inflationPercent)
	if i == 0 || months == 0 {
		return 1
	}
	return math.Pow(1+i, float64(months)/constants.MonthsPerYear)
}
