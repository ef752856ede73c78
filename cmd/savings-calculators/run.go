package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/config"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/forecast"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/history"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/output"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/validation"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every active scenario in the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	return execute(cmd.Context(), logger, conf, os.Stdout)
}

// execute runs the loaded configuration and writes the report to w.
func execute(ctx context.Context, logger *zap.Logger, conf *config.Configuration, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// CLI override takes precedence over config
	format := conf.Output.Format
	if outputFormat != "" {
		format = outputFormat
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.execute"),
		)
	}

	results, err := forecast.GetForecast(ctx, logger, *conf)
	if err != nil {
		return fmt.Errorf("failed to compute scenarios: %w", err)
	}

	if conf.History.Enabled {
		recordHistory(ctx, logger, conf.History, results)
	}

	switch format {
	case constants.OutputFormatJSON:
		return output.JSONFormat(w, results)
	default:
		output.PrettyFormat(w, results)
	}
	return nil
}

// recordHistory stores each result. Failures are logged, never fatal.
func recordHistory(ctx context.Context, logger *zap.Logger, conf config.HistoryConfig, results []forecast.Forecast) {
	store, err := history.Open(conf.Path, conf.MaxEntries, logger)
	if err != nil {
		logger.Warn("history unavailable",
			zap.String("op", "main.recordHistory"),
			zap.Error(err),
		)
		return
	}
	defer func() {
		_ = store.Close()
	}()

	for _, result := range results {
		if _, err := store.Record(ctx, result.Name, result.Input, result.Result.Summary); err != nil {
			logger.Warn("failed to record scenario",
				zap.String("op", "main.recordHistory"),
				zap.String("scenario", result.Name),
				zap.Error(err),
			)
		}
	}
}
