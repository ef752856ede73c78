// Package main provides the savings-calculators CLI: it runs the scenarios
// of a configuration file, serves the calculator API and manages the
// calculation history.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Global flags
var (
	configLocation string
	outputFormat   string
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "savings-calculators",
	Short: "Compound interest and savings calculators",
	Long: `savings-calculators runs compound interest, savings and balance-over-time
calculations described in a YAML configuration file.

Examples:
  savings-calculators --config config.yaml          # Run every active scenario
  savings-calculators run --output-format json      # Same, as JSON
  savings-calculators serve                         # Start the JSON API
  savings-calculators history list                  # Show recorded calculations`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScenarios,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
