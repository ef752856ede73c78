package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/suhas-sunder/allsavingscalc-sub000/internal/config"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/history"
	"go.uber.org/zap"
)

const testConfig = `output:
  format: pretty
scenarios:
  - name: nest egg
    active: true
    calculator: compound
    initialBalance: 10000
    annualRate: 5
    compounding: annually
    years: 10
  - name: emergency fund
    active: true
    calculator: balance
    contribution: 250
    annualRate: 0
    months: 12
    goal:
      targetBalance: 6000
`

func loadTestConfig(t *testing.T, historyPath string) *config.Configuration {
	t.Helper()
	conf, err := config.LoadConfigurationFromReader(strings.NewReader(testConfig))
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	if historyPath != "" {
		conf.History.Enabled = true
		conf.History.Path = historyPath
	}
	return conf
}

func TestExecutePretty(t *testing.T) {
	outputFormat = ""
	var buf bytes.Buffer
	if err := execute(context.Background(), zap.NewNop(), loadTestConfig(t, ""), &buf); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	for _, fragment := range []string{
		"--- Results for scenario nest egg (compound) ---",
		"Final balance:       $16,288.95",
		"--- Results for scenario emergency fund (balance) ---",
		"Goal: contribution = $500.00 (was $250.00)",
	} {
		if !strings.Contains(buf.String(), fragment) {
			t.Errorf("output missing %q:\n%s", fragment, buf.String())
		}
	}
}

func TestExecuteJSONRecordsHistory(t *testing.T) {
	outputFormat = "json"
	defer func() { outputFormat = "" }()

	path := filepath.Join(t.TempDir(), "history.db")
	var buf bytes.Buffer
	if err := execute(context.Background(), zap.NewNop(), loadTestConfig(t, path), &buf); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 results, got %d", len(decoded))
	}

	store, err := history.Open(path, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to reopen history: %v", err)
	}
	defer store.Close()
	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
}

func TestExecuteRejectsUnknownFormat(t *testing.T) {
	outputFormat = "csv"
	defer func() { outputFormat = "" }()

	if err := execute(context.Background(), zap.NewNop(), loadTestConfig(t, ""), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		conf      config.LoggingConfig
		override  string
		wantError bool
	}{
		{name: "defaults", conf: config.LoggingConfig{}},
		{name: "console debug", conf: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", conf: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "bad level", conf: config.LoggingConfig{Level: "loud"}, wantError: true},
		{name: "bad format", conf: config.LoggingConfig{Format: "xml"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.conf, tt.override)
			if tt.wantError {
				if err == nil {
					t.Errorf("initializeLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			_ = logger.Sync()
		})
	}

	path := filepath.Join(t.TempDir(), "logs", "calc.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}
