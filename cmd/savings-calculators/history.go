package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/config"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/history"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/output"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/validation"
	"go.uber.org/zap"
)

var (
	historyFile  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear recorded calculations",
	Long: `Recorded calculations live in the SQLite database named by history.path
in the configuration file, or by --history-file.

Examples:
  savings-calculators history list --limit 5
  savings-calculators history clear`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded calculations, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded calculation",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyFile, "history-file", "", "history database override")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 0, "maximum entries to show (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// openHistory resolves the database path from --history-file or the
// configuration file. A missing configuration file is only an error when no
// override is given.
func openHistory() (*history.Store, *zap.Logger, error) {
	hc := config.HistoryConfig{Path: historyFile, MaxEntries: constants.DefaultHistoryEntries}
	logging := config.LoggingConfig{}

	conf, err := config.LoadConfiguration(configLocation)
	switch {
	case err == nil:
		logging = conf.Logging
		if hc.Path == "" {
			hc.Path = conf.History.Path
		}
		hc.MaxEntries = conf.History.MaxEntries
	case historyFile == "":
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(logging, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := history.Open(hc.Path, hc.MaxEntries, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, logger, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	format := outputFormat
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	store, logger, err := openHistory()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
		_ = logger.Sync()
	}()

	entries, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if format == constants.OutputFormatJSON {
		return output.HistoryJSONFormat(os.Stdout, entries)
	}
	output.HistoryFormat(os.Stdout, entries)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, logger, err := openHistory()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
		_ = logger.Sync()
	}()

	deleted, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("history cleared",
		zap.String("op", "main.runHistoryClear"),
		zap.Int64("deleted", deleted),
	)
	fmt.Fprintf(os.Stdout, "Deleted %d recorded calculations\n", deleted)
	return nil
}
