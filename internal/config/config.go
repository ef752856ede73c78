// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning scenarios into
// calculator inputs.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/optimizer"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/validation"
)

// Configuration holds all configuration for the calculators.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
	History   HistoryConfig `yaml:"history,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, json
}

// HistoryConfig controls the calculation history store.
type HistoryConfig struct {
	Enabled    bool   `yaml:"enabled,omitempty"`
	Path       string `yaml:"path,omitempty"`
	MaxEntries int    `yaml:"maxEntries,omitempty"`
}

// Scenario is one named calculation. Which fields apply depends on the
// calculator: contribution is the monthly deposit for the balance
// calculator, and taxRate, inflationRate and contributionGrowthRate only
// apply to the savings calculator.
type Scenario struct {
	Name                   string          `yaml:"name"`
	Active                 bool            `yaml:"active"`
	Calculator             string          `yaml:"calculator"`
	InitialBalance         float64         `yaml:"initialBalance,omitempty"`
	AnnualRate             float64         `yaml:"annualRate"`
	Compounding            string          `yaml:"compounding,omitempty"`
	Years                  int             `yaml:"years,omitempty"`
	Months                 int             `yaml:"months,omitempty"`
	Contribution           float64         `yaml:"contribution,omitempty"`
	ContributionFrequency  string          `yaml:"contributionFrequency,omitempty"`
	ContributionTiming     string          `yaml:"contributionTiming,omitempty"`
	ContributionGrowthRate float64         `yaml:"contributionGrowthRate,omitempty"`
	TaxRate                float64         `yaml:"taxRate,omitempty"`
	InflationRate          float64         `yaml:"inflationRate,omitempty"`
	StartDate              string          `yaml:"startDate,omitempty"`
	View                   string          `yaml:"view,omitempty"`
	Goal                   *optimizer.Goal `yaml:"goal,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.History.Path == "" {
		c.History.Path = constants.DefaultHistoryFile
	}
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = constants.DefaultHistoryEntries
	}
}

// ActiveScenarios returns the scenarios that will be calculated, in order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// DurationMonths is the scenario length in months.
func (s Scenario) DurationMonths() int {
	return s.Years*constants.MonthsPerYear + s.Months
}

// Input converts the scenario into the matching calculator input.
func (s Scenario) Input() (calculator.Input, error) {
	switch s.Calculator {
	case constants.CalculatorCompound:
		return calculator.CompoundInput{
			Principal:             s.InitialBalance,
			AnnualRate:            s.AnnualRate,
			Compounding:           s.Compounding,
			Years:                 s.Years,
			Months:                s.Months,
			Contribution:          s.Contribution,
			ContributionFrequency: s.ContributionFrequency,
			ContributionTiming:    s.ContributionTiming,
			StartDate:             s.StartDate,
			View:                  s.View,
		}, nil
	case constants.CalculatorSavings:
		return calculator.SavingsInput{
			InitialDeposit:         s.InitialBalance,
			Contribution:           s.Contribution,
			ContributionFrequency:  s.ContributionFrequency,
			ContributionGrowthRate: s.ContributionGrowthRate,
			ContributionTiming:     s.ContributionTiming,
			AnnualRate:             s.AnnualRate,
			Compounding:            s.Compounding,
			Years:                  s.Years,
			Months:                 s.Months,
			TaxRate:                s.TaxRate,
			InflationRate:          s.InflationRate,
			StartDate:              s.StartDate,
			View:                   s.View,
		}, nil
	case constants.CalculatorBalance:
		return calculator.BalanceInput{
			StartingBalance:    s.InitialBalance,
			MonthlyDeposit:     s.Contribution,
			ContributionTiming: s.ContributionTiming,
			AnnualRate:         s.AnnualRate,
			Compounding:        s.Compounding,
			Months:             s.DurationMonths(),
			StartDate:          s.StartDate,
			View:               s.View,
		}, nil
	}
	reason := fmt.Sprintf("unsupported calculator %q", s.Calculator)
	if err := validation.ValidateCalculator(s.Calculator); err != nil {
		reason = err.Error()
	}
	return nil, fmt.Errorf("scenario %s: %w", s.Name, &calculator.ValidationError{Field: "calculator", Reason: reason})
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	scenarios := make([]validation.ScenarioConfig, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		sc := validation.ScenarioConfig{
			Name:       s.Name,
			Active:     s.Active,
			Calculator: s.Calculator,
			AnnualRate: s.AnnualRate,
			Months:     s.DurationMonths(),
		}
		if s.Goal != nil {
			target := s.Goal.TargetBalance
			sc.GoalTarget = &target
		}
		scenarios = append(scenarios, sc)
	}

	validator := validation.ConfigValidator{Scenarios: scenarios}
	return validator.ValidateAll()
}
