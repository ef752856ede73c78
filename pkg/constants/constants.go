// Package constants provides shared constants for the savings calculators.
package constants

// DateTimeLayout is the format expected for start dates in config files and
// is also the label format for dated schedule rows.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MonthsPerQuarter is the number of months in a quarter
	MonthsPerQuarter = 3

	// DaysPerYear is the day count used for daily compounding
	DaysPerYear = 365

	// MaxMonths caps the length of any simulation (100 years)
	MaxMonths = 1200

	// DecimalPlaces is the precision for currency rounding
	DecimalPlaces = 2

	// RateDecimalPlaces is the precision for reported effective rates
	RateDecimalPlaces = 6
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the machine-readable output format
	OutputFormatJSON = "json"
)

// Calculator names
const (
	CalculatorCompound = "compound"
	CalculatorSavings  = "savings"
	CalculatorBalance  = "balance"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultHistoryFile is the default sqlite database for calculation history
	DefaultHistoryFile = "history.db"

	// DefaultHistoryEntries bounds how many calculations the history keeps
	DefaultHistoryEntries = 50
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxGoalIterations bounds the goal seek bisection
	MaxGoalIterations = 200
)
